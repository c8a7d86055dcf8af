package lrc

import (
	"strings"

	"github.com/yleoer/lyrics/pkg/lyric"
)

const byteOrderMark = "\uFEFF"

// Parse 将 LRC 文本解析为歌词文档。text 须已解码为 UTF-8。
//
// 支持 \n、\r\n、\r 混用的换行；任意一行开头的 BOM 都会被去掉。
// 文件开头的标签行进入 Tags，其中的偏移标签同时写入 TimestampOffset（标签原文保留）。
// 一行带多个时间戳时拆成多行；无法解析的内容作为无时间戳的行保留，Parse 从不失败。
// 结果按时间戳稳定排序，并合并时间戳相同的相邻行。
func Parse(metadata lyric.TrackMetadata, text string) lyric.Document {
	var (
		lines   []lyric.Line
		tags    []string
		section tagSection
		offset  float64
	)
	for _, physical := range splitPhysicalLines(text) {
		line := strings.TrimPrefix(physical, byteOrderMark)

		frag := splitTimestamps(line)
		if len(frag.timestamps) > 0 {
			section.EnterContent()
			lines = append(lines, frag.toLines()...)
			continue
		}

		if section.InTags() {
			if IsTagLine(line) {
				tags = append(tags, line)
				if v, ok := ParseOffsetTag(line); ok {
					offset = v
				}
				continue
			}
			// 标签区与正文之间的空行只是分隔符
			if line == "" && len(tags) > 0 {
				continue
			}
		}

		if line != "" {
			section.EnterContent()
		}
		lines = append(lines, lyric.Line{Text: line, Timestamp: lyric.Untimed})
	}

	sortLines(lines)
	lines = collapseConcurrentLines(lines)

	return lyric.Document{
		TrackMetadata:   metadata,
		Tags:            tags,
		Lines:           lines,
		TimestampOffset: offset,
	}
}

// splitPhysicalLines 按 \n、\r\n 或单独的 \r 切分。末尾的换行不会产生额外的空行。
func splitPhysicalLines(text string) []string {
	var out []string
	for start := 0; start < len(text); {
		end := start
		for end < len(text) && text[end] != '\n' && text[end] != '\r' {
			end++
		}
		out = append(out, text[start:end])

		if end+1 < len(text) && text[end] == '\r' && text[end+1] == '\n' {
			start = end + 2
		} else {
			start = end + 1
		}
	}
	return out
}
