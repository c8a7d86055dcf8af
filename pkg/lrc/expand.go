package lrc

import (
	"strings"

	"github.com/yleoer/lyrics/pkg/lyric"
)

const lineTerminator = "\r\n"

// editPadding 无时间戳的空行在编辑器中显示为一个空格，保存前由 Shrink 去掉
const editPadding = " "

// Expand 将歌词文档展开为可编辑的 LRC 文本，每行以 CRLF 结尾。
//
// 标签原样输出在最前面，之后空一行。合并过的同时间戳行会重新拆开。
// merge 为 true 时，文本相同的行合并为一行多时间戳的行。
// 偏移标签不会自动生成，需要先调用 SetOffsetTag。
// 整个文档都没有时间戳时，空行输出为一个空格。
func Expand(doc lyric.Document, merge bool) string {
	return render(doc, merge, true)
}

// Shrink 与 Expand 相同，但不添加（并去掉已有的）空行占位空格，用于保存
func Shrink(doc lyric.Document, merge bool) string {
	return render(doc, merge, false)
}

func render(doc lyric.Document, merge, padEmpty bool) string {
	var b strings.Builder
	for _, tag := range doc.Tags {
		b.WriteString(tag)
		b.WriteString(lineTerminator)
	}
	if len(doc.Tags) > 0 {
		b.WriteString(lineTerminator)
	}

	if !doc.IsTimestamped() {
		for _, line := range doc.Lines {
			b.WriteString(untimedText(line.Text, padEmpty))
			b.WriteString(lineTerminator)
		}
		return b.String()
	}

	rows := splitRows(doc.Lines)
	if merge {
		rows = mergeEquivalentLines(rows)
	}
	for _, row := range rows {
		if row.IsTimed() {
			b.WriteString(PrintTimestamp(row.Timestamp))
			b.WriteString(row.Text)
		} else if padEmpty {
			b.WriteString(row.Text)
		} else {
			b.WriteString(untimedText(row.Text, false))
		}
		b.WriteString(lineTerminator)
	}
	return b.String()
}

func untimedText(text string, padEmpty bool) string {
	switch {
	case padEmpty && text == "":
		return editPadding
	case !padEmpty && text == editPadding:
		return ""
	default:
		return text
	}
}
