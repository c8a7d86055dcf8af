package util

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/yleoer/lyrics/pkg/lyric"
)

// LyricFileExt 歌词文件扩展名
const LyricFileExt = ".lrc"

// SanitizeFileName 清理文件名，移除或替换不适用于文件路径的字符
func SanitizeFileName(name string) string {
	// 替换所有斜杠为下划线
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")

	// 移除其他不安全的文件名字符 (Windows/Linux通用不推荐的字符)
	invalidChars := []string{":", "*", "?", "\"", "<", ">", "|"}
	for _, char := range invalidChars {
		name = strings.ReplaceAll(name, char, "")
	}
	// 移除文件名首尾空格和连续空格
	name = strings.TrimSpace(name)
	name = strings.Join(strings.Fields(name), " ")
	return name
}

// LyricFileName 生成 "艺术家 - 标题.lrc" 形式的文件名，缺少艺术家时只用标题
func LyricFileName(meta lyric.TrackMetadata) string {
	title := SanitizeFileName(meta.Title)
	if title == "" {
		title = "Unknown Title"
	}
	if artist := SanitizeFileName(meta.Artist); artist != "" {
		return artist + " - " + title + LyricFileExt
	}
	return title + LyricFileExt
}

// TrackFromFileName 从 "艺术家 - 标题.lrc" 形式的文件名推断音轨信息
func TrackFromFileName(path string) lyric.TrackMetadata {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if artist, title, ok := strings.Cut(base, " - "); ok {
		return lyric.TrackMetadata{
			Artist:     strings.TrimSpace(artist),
			Title:      strings.TrimSpace(title),
			SourcePath: path,
		}
	}
	return lyric.TrackMetadata{Title: strings.TrimSpace(base), SourcePath: path}
}

// IsLyricFile 判断是否为我们关心的歌词文件
func IsLyricFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), LyricFileExt)
}

// IsDirectory 辅助函数，检查路径是否为目录
func IsDirectory(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
