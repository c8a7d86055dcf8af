package lrc

import (
	"cmp"
	"slices"
	"strings"

	"github.com/yleoer/lyrics/pkg/lyric"
)

// indexedRow 在排序、分组过程中始终携带该行的原始位置
type indexedRow struct {
	index int
	line  lyric.Line
}

// mergeEquivalentLines 将文本完全相同的带时间戳行合并为一行多时间戳的行。
// 每组保留最先出现的一行，其余行的时间戳按出现顺序拼到它的文本前面，
// 最后按原始位置恢复顺序。无时间戳的行原样保留。
func mergeEquivalentLines(rows []lyric.Line) []lyric.Line {
	var timed, kept []indexedRow
	for i, row := range rows {
		if row.IsTimed() {
			timed = append(timed, indexedRow{index: i, line: row})
		} else {
			kept = append(kept, indexedRow{index: i, line: row})
		}
	}

	// 稳定排序保证同一组内仍按原始位置排列，组内第一行即最先出现的行
	slices.SortStableFunc(timed, func(a, b indexedRow) int {
		return strings.Compare(a.line.Text, b.line.Text)
	})
	for start := 0; start < len(timed); {
		end := start + 1
		for end < len(timed) && timed[end].line.Text == timed[start].line.Text {
			end++
		}

		representative := timed[start]
		var prefix strings.Builder
		for _, member := range timed[start+1 : end] {
			prefix.WriteString(PrintTimestamp(member.line.Timestamp))
		}
		representative.line.Text = prefix.String() + representative.line.Text
		kept = append(kept, representative)
		start = end
	}

	slices.SortFunc(kept, func(a, b indexedRow) int {
		return cmp.Compare(a.index, b.index)
	})
	out := make([]lyric.Line, len(kept))
	for i, row := range kept {
		out[i] = row.line
	}
	return out
}
