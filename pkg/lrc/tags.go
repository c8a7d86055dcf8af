package lrc

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/yleoer/lyrics/pkg/lyric"
)

// 可识别的标签键（不区分大小写）
const (
	TagArtist          = "ar"
	TagAlbum           = "al"
	TagTitle           = "ti"
	TagAuthor          = "by"     // 制作该 LRC 文件的人
	TagFileID          = "id"     // LRC 文件 ID
	TagOffset          = "offset" // 所有时间戳的整体偏移（毫秒）
	TagLength          = "length" // 音轨时长，例如 03:40
	TagAlternateLength = "t_time" // 音轨时长，例如 (2:57)
	TagEncoding        = "encoding"
)

var tagKeys = []string{
	TagArtist, TagAlbum, TagTitle, TagAuthor, TagFileID,
	TagOffset, TagLength, TagAlternateLength, TagEncoding,
}

// splitTag 拆分 [key:value] 形式的行，以第一个 ':' 为界，key 不能为空
func splitTag(line string) (key, value string, ok bool) {
	if len(line) < 2 || line[0] != '[' || line[len(line)-1] != ']' {
		return "", "", false
	}
	key, value, ok = strings.Cut(line[1:len(line)-1], ":")
	if !ok || key == "" {
		return "", "", false
	}
	return key, value, true
}

func isTagKey(key string) bool {
	for _, k := range tagKeys {
		if strings.EqualFold(key, k) {
			return true
		}
	}
	return false
}

// IsTagLine 判断一行是否为元数据标签行，例如 "[ti:title]" 或 "[Encoding:utf-8]"
func IsTagLine(line string) bool {
	key, _, ok := splitTag(line)
	return ok && isTagKey(key)
}

// LookupTag 返回第一个匹配 key 的标签值（去掉首尾空白）
func LookupTag(tags []string, key string) (string, bool) {
	for _, tag := range tags {
		k, v, ok := splitTag(tag)
		if ok && strings.EqualFold(k, key) {
			return strings.TrimSpace(v), true
		}
	}
	return "", false
}

// MetadataFromTags 用 ar/al/ti 标签的非空值覆盖 meta 中对应的字段
func MetadataFromTags(meta lyric.TrackMetadata, tags []string) lyric.TrackMetadata {
	if v, ok := LookupTag(tags, TagArtist); ok && v != "" {
		meta.Artist = v
	}
	if v, ok := LookupTag(tags, TagAlbum); ok && v != "" {
		meta.Album = v
	}
	if v, ok := LookupTag(tags, TagTitle); ok && v != "" {
		meta.Title = v
	}
	return meta
}

// ParseOffsetTag 解析 [offset:<毫秒>] 标签，返回秒数。其他标签或非整数值返回 false。
func ParseOffsetTag(line string) (float64, bool) {
	key, value, ok := splitTag(line)
	if !ok || !strings.EqualFold(key, TagOffset) {
		return 0, false
	}
	ms, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, false
	}
	return float64(ms) / 1000.0, true
}

// SetOffsetTag 返回设置了偏移标签的新文档。
// 已有的第一个偏移标签原位替换，多余的偏移标签被删除；没有则追加到末尾。
// 毫秒值向零截断。
func SetOffsetTag(doc lyric.Document, seconds float64) lyric.Document {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		panic(fmt.Sprintf("lrc: cannot set offset %v", seconds))
	}
	ms := truncateMillis(seconds)
	newTag := "[" + TagOffset + ":" + strconv.FormatInt(ms, 10) + "]"

	out := doc.Clone()
	out.Tags = out.Tags[:0]
	replaced := false
	for _, tag := range doc.Tags {
		if _, isOffset := ParseOffsetTag(tag); isOffset {
			if replaced {
				continue
			}
			tag = newTag
			replaced = true
		}
		out.Tags = append(out.Tags, tag)
	}
	if !replaced {
		out.Tags = append(out.Tags, newTag)
	}
	out.TimestampOffset = float64(ms) / 1000.0
	return out
}

// truncateMillis 向零截断到毫秒，先消除 ms/1000*1000 这类浮点误差
func truncateMillis(seconds float64) int64 {
	scaled := seconds * 1000.0
	if r := math.Round(scaled); math.Abs(scaled-r) < 1e-6 {
		scaled = r
	}
	return int64(scaled)
}

// RemoveOffsetTag 返回删除了所有偏移标签的新文档
func RemoveOffsetTag(doc lyric.Document) lyric.Document {
	out := doc.Clone()
	out.Tags = out.Tags[:0]
	for _, tag := range doc.Tags {
		if _, isOffset := ParseOffsetTag(tag); !isOffset {
			out.Tags = append(out.Tags, tag)
		}
	}
	out.TimestampOffset = 0
	return out
}

// tagSection 是解析时的两态状态机：文件开头处于标签区，
// 一旦遇到非空的正文行就进入正文区，且不会再回到标签区。
type tagSection struct {
	inContent bool
}

// InTags 当前是否仍在标签区
func (s *tagSection) InTags() bool {
	return !s.inContent
}

// EnterContent 切换到正文区
func (s *tagSection) EnterContent() {
	s.inContent = true
}
