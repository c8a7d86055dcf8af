package lrc

import (
	"strings"

	"github.com/yleoer/lyrics/pkg/lyric"
)

// fragment 是去掉行首时间戳后的结果
type fragment struct {
	timestamps []float64
	remainder  string
}

// splitTimestamps 从行首开始连续解析 [..] 时间戳，遇到第一个无法解析的标签
// 或不以 '[' 开头的位置即停止，剩余部分作为歌词文本。
func splitTimestamps(line string) fragment {
	var frag fragment
	cursor := 0
	for cursor < len(line) && line[cursor] == '[' {
		end := strings.IndexByte(line[cursor:], ']')
		if end < 0 {
			break
		}
		ts, err := ParseTimestamp(line[cursor : cursor+end+1])
		if err != nil {
			break
		}
		frag.timestamps = append(frag.timestamps, ts)
		cursor += end + 1
	}
	frag.remainder = line[cursor:]
	return frag
}

// toLines 每个时间戳生成一行，文本相同，顺序与解析顺序一致
func (f fragment) toLines() []lyric.Line {
	lines := make([]lyric.Line, 0, len(f.timestamps))
	for _, ts := range f.timestamps {
		lines = append(lines, lyric.Line{Text: f.remainder, Timestamp: ts})
	}
	return lines
}

// splitRows 将合并过的行按内嵌换行重新拆开，时间戳不变。空文本也保留为一行。
func splitRows(lines []lyric.Line) []lyric.Line {
	rows := make([]lyric.Line, 0, len(lines))
	for _, line := range lines {
		for _, part := range strings.Split(line.Text, "\n") {
			rows = append(rows, lyric.Line{Text: part, Timestamp: line.Timestamp})
		}
	}
	return rows
}
