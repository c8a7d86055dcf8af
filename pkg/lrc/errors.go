package lrc

import (
	"errors"
	"fmt"
)

// ErrMalformedTimestamp 时间戳标签格式不合法
var ErrMalformedTimestamp = errors.New("malformed timestamp")

// TimestampError 携带解析失败的原始标签，可用 errors.Is(err, ErrMalformedTimestamp) 判断
type TimestampError struct {
	Tag string
}

func (e *TimestampError) Error() string {
	return fmt.Sprintf("%s: %q", ErrMalformedTimestamp, e.Tag)
}

func (e *TimestampError) Unwrap() error {
	return ErrMalformedTimestamp
}
