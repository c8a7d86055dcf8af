package textenc

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Decode 将歌词原始字节解码为 UTF-8 字符串。
// 依次识别 UTF-8 BOM、UTF-16 BOM、合法的 UTF-8，其余情况按 GBK 解码。
func Decode(data []byte) (string, error) {
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		return string(bytes.TrimPrefix(data, bomUTF8)), nil
	case bytes.HasPrefix(data, bomUTF16LE), bytes.HasPrefix(data, bomUTF16BE):
		return decodeWith(data, unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM), "UTF-16")
	case utf8.Valid(data):
		return string(data), nil
	default:
		return decodeWith(data, simplifiedchinese.GBK, "GBK")
	}
}

// ReadTextFile 读取歌词文件并解码为 UTF-8
func ReadTextFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	text, err := Decode(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
	}
	return text, nil
}

func decodeWith(data []byte, enc encoding.Encoding, name string) (string, error) {
	out, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return "", fmt.Errorf("failed to decode as %s: %w", name, err)
	}
	return string(out), nil
}
