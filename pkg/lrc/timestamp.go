package lrc

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/yleoer/lyrics/pkg/lyric"
)

// maxTimestampSeconds 超过该值的秒数无法用 float64 精确表示整数部分
const maxTimestampSeconds = 1 << 53

// ParseTimestamp 将 [MM:SS.CC] 或 [H:MM:SS.CC] 格式的标签转换为秒数。
// 每个字段都必须是纯数字，分隔符只能是 ':' 和 '.'，小数部分位数不限。
func ParseTimestamp(tag string) (float64, error) {
	if len(tag) < 2 || tag[0] != '[' || tag[len(tag)-1] != ']' {
		return 0, &TimestampError{Tag: tag}
	}
	fields := strings.Split(tag[1:len(tag)-1], ":")
	if len(fields) != 2 && len(fields) != 3 {
		return 0, &TimestampError{Tag: tag}
	}
	secStr, fracStr, ok := strings.Cut(fields[len(fields)-1], ".")
	if !ok || !isDigits(fracStr) {
		return 0, &TimestampError{Tag: tag}
	}

	var hours uint64
	if len(fields) == 3 {
		if hours, ok = parseField(fields[0]); !ok {
			return 0, &TimestampError{Tag: tag}
		}
	}
	minutes, okMin := parseField(fields[len(fields)-2])
	seconds, okSec := parseField(secStr)
	if !okMin || !okSec {
		return 0, &TimestampError{Tag: tag}
	}
	if hours > maxTimestampSeconds/3600 || minutes > maxTimestampSeconds/60 || seconds > maxTimestampSeconds {
		return 0, &TimestampError{Tag: tag}
	}
	whole := hours*3600 + minutes*60 + seconds
	if whole > maxTimestampSeconds {
		return 0, &TimestampError{Tag: tag}
	}

	// 整数与小数拼成十进制字符串后一次性转换，结果是离真实值最近的 float64
	value, err := strconv.ParseFloat(strconv.FormatUint(whole, 10)+"."+fracStr, 64)
	if err != nil {
		return 0, &TimestampError{Tag: tag}
	}
	return value, nil
}

// PrintTimestamp 将秒数格式化为 [MM:SS.CC]，小时数大于 0 时为 [HH:MM:SS.CC]。
// 百分秒四舍五入，进位到 100 时向秒、分、时依次进位。小时字段按需加宽，不会截断。
// 负数、非有限值或 Untimed 属于调用方错误，直接 panic。
func PrintTimestamp(seconds float64) string {
	if !lyric.IsTimed(seconds) || seconds >= maxTimestampSeconds {
		panic(fmt.Sprintf("lrc: cannot print timestamp %v", seconds))
	}
	whole := math.Floor(seconds)
	total := int64(whole)
	centisec := int64(math.Round((seconds - whole) * 100))
	if centisec == 100 {
		centisec = 0
		total++
	}

	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60
	if hours == 0 {
		return fmt.Sprintf("[%02d:%02d.%02d]", minutes, secs, centisec)
	}
	return fmt.Sprintf("[%02d:%02d:%02d.%02d]", hours, minutes, secs, centisec)
}

func parseField(s string) (uint64, bool) {
	if !isDigits(s) {
		return 0, false
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// isDigits 非空且只包含 ASCII 数字
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
