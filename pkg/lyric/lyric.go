package lyric

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Untimed 表示“没有时间戳”的哨兵值，位于合法时间戳（有限且 >= 0）之外
const Untimed float64 = -1

// TrackMetadata 代表歌词所属音轨的信息（由外部来源提供，只读）
type TrackMetadata struct {
	SourceID   uuid.UUID     // 歌词来源标识
	SourcePath string        // 歌词在来源上的路径
	Artist     string        // 来源报告的艺术家
	Album      string        // 来源报告的专辑
	Title      string        // 来源报告的标题
	Duration   time.Duration // 音轨时长，0 表示来源未提供
}

// Line 代表一行歌词
type Line struct {
	Text      string
	Timestamp float64 // 秒，或 Untimed
}

// Document 代表解析后的歌词文档
type Document struct {
	TrackMetadata

	Tags            []string // 原始标签行，例如 "[ti:title]"
	Lines           []Line   // 按时间戳排序，无时间戳的行排在最后
	TimestampOffset float64  // 秒
}

// IsTimed 判断时间戳是否合法（非哨兵、有限、非负）
func IsTimed(ts float64) bool {
	return ts >= 0 && !math.IsInf(ts, 0) && !math.IsNaN(ts)
}

// CompareTimestamps 比较两个时间戳，无时间戳的一方总是排在后面。
// 两个无时间戳的值视为相等，以便稳定排序保持原有顺序。
func CompareTimestamps(a, b float64) int {
	aTimed, bTimed := IsTimed(a), IsTimed(b)
	switch {
	case aTimed && bTimed:
		if a < b {
			return -1
		}
		if a > b {
			return 1
		}
		return 0
	case aTimed:
		return -1
	case bTimed:
		return 1
	default:
		return 0
	}
}

// IsTimed 判断该行是否带有时间戳
func (l Line) IsTimed() bool {
	return IsTimed(l.Timestamp)
}

// IsTimestamped 只要有一行带时间戳，就认为是同步歌词
func (d Document) IsTimestamped() bool {
	for _, line := range d.Lines {
		if line.IsTimed() {
			return true
		}
	}
	return false
}

// IsEmpty 判断文档是否没有任何歌词行
func (d Document) IsEmpty() bool {
	return len(d.Lines) == 0
}

// Clone 返回文档的深拷贝，修改副本不会影响原文档
func (d Document) Clone() Document {
	out := d
	out.Tags = append([]string(nil), d.Tags...)
	out.Lines = append([]Line(nil), d.Lines...)
	return out
}

// WithoutTimestamps 返回去掉所有时间戳的副本。
// 合并过的同时间戳行会被重新拆开，保证每一行仍然是单独的一行。
func (d Document) WithoutTimestamps() Document {
	out := d.Clone()
	out.Lines = out.Lines[:0:0]
	for _, line := range d.Lines {
		for _, part := range strings.Split(line.Text, "\n") {
			out.Lines = append(out.Lines, Line{Text: part, Timestamp: Untimed})
		}
	}
	out.TimestampOffset = 0
	return out
}
