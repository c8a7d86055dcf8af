package lrc

import (
	"slices"

	"github.com/yleoer/lyrics/pkg/lyric"
)

// sortLines 稳定排序：按时间戳升序，无时间戳的行放在最后并保持原有顺序
func sortLines(lines []lyric.Line) {
	slices.SortStableFunc(lines, func(a, b lyric.Line) int {
		return lyric.CompareTimestamps(a.Timestamp, b.Timestamp)
	})
}

// collapseConcurrentLines 把相邻且时间戳完全相同的行合并为一行，文本以 "\n" 连接。
// 输入必须已排序。无时间戳的行从不合并。
func collapseConcurrentLines(lines []lyric.Line) []lyric.Line {
	out := make([]lyric.Line, 0, len(lines))
	for _, line := range lines {
		if n := len(out); n > 0 {
			prev := &out[n-1]
			if prev.IsTimed() && line.IsTimed() && prev.Timestamp == line.Timestamp {
				prev.Text += "\n" + line.Text
				continue
			}
		}
		out = append(out, line)
	}
	return out
}
