package database

import (
	"time"

	"github.com/google/uuid"
)

// Record 记录一首歌歌词的获取与编辑历史
type Record struct {
	FirstRetrievalSource uuid.UUID // 首次获取歌词的来源
	FirstRetrievalPath   string    // 首次获取时在来源上的路径
	FirstRetrievedAt     time.Time // 零值表示从未记录
	LastEditedAt         time.Time
	EditCount            int
}

// LyricStore 定义歌词历史存储接口
type LyricStore interface {
	RecordRetrieval(key string, sourceID uuid.UUID, sourcePath string, at time.Time) error // 只记录第一次获取
	RecordEdit(key string, at time.Time) error                                              // 编辑次数加一
	Load(key string) (Record, error)                                                        // 不存在时返回零值
	Close() error                                                                           // 关闭数据库连接
}
