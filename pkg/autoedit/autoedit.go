package autoedit

import (
	"fmt"
	"log"
	"strings"

	"github.com/yleoer/lyrics/pkg/converter"
	"github.com/yleoer/lyrics/pkg/lrc"
	"github.com/yleoer/lyrics/pkg/lyric"
)

// InstrumentalText 纯音乐歌词的唯一一行
const InstrumentalText = "[Instrumental]"

// 可通过名称调用的自动编辑
const (
	EditRepeatedSpaces     = "spaces"
	EditRepeatedBlankLines = "repeated-blank-lines"
	EditAllBlankLines      = "blank-lines"
	EditTradToSim          = "t2s"
)

// Result 是一次自动编辑的结果。
// Changed 为 false 时 Document 为原文档，Text 为空；
// 否则 Text 是用于保存的文本，Document 由该文本重新解析得到。
type Result struct {
	Document lyric.Document
	Text     string
	Changed  bool
}

// Editor 对整个歌词文档执行自动编辑
type Editor struct {
	converter converter.TextConverter
	merge     bool // 生成文本时是否合并相同的行
	logger    *log.Logger
}

// NewEditor 创建一个新的 Editor 实例
func NewEditor(tc converter.TextConverter, mergeEquivalentLines bool, logger *log.Logger) *Editor {
	if tc == nil {
		tc = converter.Identity{}
	}
	return &Editor{converter: tc, merge: mergeEquivalentLines, logger: logger}
}

// Apply 按名称执行自动编辑
func (e *Editor) Apply(name string, doc lyric.Document) (Result, error) {
	switch name {
	case EditRepeatedSpaces:
		return e.RemoveRepeatedSpaces(doc), nil
	case EditRepeatedBlankLines:
		return e.RemoveRepeatedBlankLines(doc), nil
	case EditAllBlankLines:
		return e.RemoveAllBlankLines(doc), nil
	case EditTradToSim:
		return e.ConvertToSimplified(doc), nil
	default:
		return Result{Document: doc}, fmt.Errorf("unknown auto-edit %q", name)
	}
}

// CreateInstrumental 生成只有一行 [Instrumental] 的歌词
func (e *Editor) CreateInstrumental(meta lyric.TrackMetadata) Result {
	doc := lyric.Document{
		TrackMetadata: meta,
		Lines:         []lyric.Line{{Text: InstrumentalText, Timestamp: lyric.Untimed}},
	}
	e.logger.Printf("Marked [%s - %s] as instrumental", meta.Artist, meta.Title)
	return e.finish(doc, doc, true)
}

// RemoveRepeatedSpaces 将连续的空格压缩为一个
func (e *Editor) RemoveRepeatedSpaces(doc lyric.Document) Result {
	edited := doc.Clone()
	removed := 0
	for i := range edited.Lines {
		var n int
		edited.Lines[i].Text, n = collapseSpaces(edited.Lines[i].Text)
		removed += n
	}
	e.logger.Printf("Auto-removal removed %d unnecessary spaces", removed)
	return e.finish(doc, edited, removed > 0)
}

// RemoveRepeatedBlankLines 删除紧跟在空行之后（或位于开头）的空行
func (e *Editor) RemoveRepeatedBlankLines(doc lyric.Document) Result {
	edited := doc.Clone()
	edited.Lines = edited.Lines[:0]
	previousBlank := true
	for _, line := range doc.Lines {
		blank := isBlank(line.Text)
		if !(blank && previousBlank) {
			edited.Lines = append(edited.Lines, line)
		}
		previousBlank = blank
	}
	removed := len(doc.Lines) - len(edited.Lines)
	e.logger.Printf("Auto-removal removed %d blank lines", removed)
	return e.finish(doc, edited, removed > 0)
}

// RemoveAllBlankLines 删除所有空行
func (e *Editor) RemoveAllBlankLines(doc lyric.Document) Result {
	edited := doc.Clone()
	edited.Lines = edited.Lines[:0]
	for _, line := range doc.Lines {
		if !isBlank(line.Text) {
			edited.Lines = append(edited.Lines, line)
		}
	}
	removed := len(doc.Lines) - len(edited.Lines)
	e.logger.Printf("Auto-removal removed %d blank lines", removed)
	return e.finish(doc, edited, removed > 0)
}

// ConvertToSimplified 将歌词行和标签中的繁体中文转换为简体
func (e *Editor) ConvertToSimplified(doc lyric.Document) Result {
	edited := doc.Clone()
	converted := 0
	for i, tag := range edited.Tags {
		if out := e.converter.TradToSim(tag); out != tag {
			edited.Tags[i] = out
			converted++
		}
	}
	for i, line := range edited.Lines {
		if out := e.converter.TradToSim(line.Text); out != line.Text {
			edited.Lines[i].Text = out
			converted++
		}
	}
	e.logger.Printf("Converted %d lines to Simplified Chinese", converted)
	return e.finish(doc, edited, converted > 0)
}

// finish 编辑后的文档不直接返回，而是经过 Shrink 和 Parse 重新生成
func (e *Editor) finish(original, edited lyric.Document, changed bool) Result {
	if !changed {
		return Result{Document: original}
	}
	text := lrc.Shrink(edited, e.merge)
	return Result{
		Document: lrc.Parse(edited.TrackMetadata, text),
		Text:     text,
		Changed:  true,
	}
}

// isBlank 只由空格组成（或为空）的行
func isBlank(text string) bool {
	return strings.Trim(text, " ") == ""
}

func collapseSpaces(text string) (string, int) {
	var b strings.Builder
	b.Grow(len(text))
	removed := 0
	previousSpace := false
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == ' ' {
			if previousSpace {
				removed++
				continue
			}
			previousSpace = true
		} else {
			previousSpace = false
		}
		b.WriteByte(c)
	}
	return b.String(), removed
}
