package database

import (
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/zeebo/blake3"

	"github.com/yleoer/lyrics/pkg/lyric"
)

const describeTimeLayout = "2006-01-02 15:04:05"

// TrackKey 由艺术家、专辑、标题（忽略大小写与首尾空白）计算音轨的索引键
func TrackKey(meta lyric.TrackMetadata) string {
	normalized := strings.Join([]string{
		strings.ToLower(strings.TrimSpace(meta.Artist)),
		strings.ToLower(strings.TrimSpace(meta.Album)),
		strings.ToLower(strings.TrimSpace(meta.Title)),
	}, "\x00")
	sum := blake3.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}

// Describe 生成歌词来源与编辑历史的摘要
func Describe(doc lyric.Document, rec Record) string {
	var b strings.Builder
	if doc.IsTimestamped() {
		b.WriteString("Synced lyrics\n")
	} else {
		b.WriteString("Unsynced lyrics\n")
	}

	if doc.SourceID != uuid.Nil {
		fmt.Fprintf(&b, "Retrieved from %s @ %s\n", doc.SourceID, doc.SourcePath)
	}

	if rec.FirstRetrievalSource != uuid.Nil && !rec.FirstRetrievedAt.IsZero() {
		fmt.Fprintf(&b, "First retrieved from %s at %s @ %s\n",
			rec.FirstRetrievalSource, formatTime(rec.FirstRetrievedAt), rec.FirstRetrievalPath)
	} else {
		b.WriteString("First retrieved from an unknown source\n")
	}

	switch rec.EditCount {
	case 0:
		b.WriteString("Never edited\n")
	case 1:
		fmt.Fprintf(&b, "Edited 1 time, at %s\n", formatTime(rec.LastEditedAt))
	default:
		fmt.Fprintf(&b, "Edited %d times, last edited at %s\n", rec.EditCount, formatTime(rec.LastEditedAt))
	}
	return b.String()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(describeTimeLayout)
}
