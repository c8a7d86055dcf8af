package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// sqliteStore 是 LyricStore 接口的 SQLite 实现
type sqliteStore struct {
	db     *sql.DB
	logger *log.Logger
}

const createTableSQL = `
	CREATE TABLE IF NOT EXISTS lyric_history (
		track_key TEXT PRIMARY KEY,
		first_source TEXT NOT NULL DEFAULT '',
		first_path TEXT NOT NULL DEFAULT '',
		first_retrieved_at DATETIME,
		last_edited_at DATETIME,
		edit_count INTEGER NOT NULL DEFAULT 0
	);
	`

// NewSQLiteStore 初始化 SQLite 数据库并返回 LyricStore 接口实例
func NewSQLiteStore(dataSourceName string, logger *log.Logger) (LyricStore, error) {
	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	// :memory: 数据库每个连接都是独立的
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create lyric_history table: %w", err)
	}
	logger.Printf("SQLite database initialized at: %s", dataSourceName)
	return &sqliteStore{db: db, logger: logger}, nil
}

// Close 关闭数据库连接
func (s *sqliteStore) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.logger.Println("SQLite database connection closed.")
		return err
	}
	return nil
}

// RecordRetrieval 记录首次获取歌词的来源，已有记录时不覆盖
func (s *sqliteStore) RecordRetrieval(key string, sourceID uuid.UUID, sourcePath string, at time.Time) error {
	_, err := s.db.Exec(`
		INSERT INTO lyric_history (track_key, first_source, first_path, first_retrieved_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(track_key) DO UPDATE SET
			first_source = excluded.first_source,
			first_path = excluded.first_path,
			first_retrieved_at = excluded.first_retrieved_at
		WHERE lyric_history.first_retrieved_at IS NULL`,
		key, sourceID.String(), sourcePath, at.UTC())
	if err != nil {
		s.logger.Printf("ERROR: Failed to record retrieval for %s: %v", key, err)
		return fmt.Errorf("failed to record retrieval for %s: %w", key, err)
	}
	return nil
}

// RecordEdit 编辑次数加一并更新最后编辑时间
func (s *sqliteStore) RecordEdit(key string, at time.Time) error {
	_, err := s.db.Exec(`
		INSERT INTO lyric_history (track_key, last_edited_at, edit_count)
		VALUES (?, ?, 1)
		ON CONFLICT(track_key) DO UPDATE SET
			last_edited_at = excluded.last_edited_at,
			edit_count = lyric_history.edit_count + 1`,
		key, at.UTC())
	if err != nil {
		s.logger.Printf("ERROR: Failed to record edit for %s: %v", key, err)
		return fmt.Errorf("failed to record edit for %s: %w", key, err)
	}
	s.logger.Printf("Lyric edit recorded for %s.", key)
	return nil
}

// Load 读取歌词历史，不存在时返回零值
func (s *sqliteStore) Load(key string) (Record, error) {
	var (
		rec       Record
		source    string
		retrieved sql.NullTime
		edited    sql.NullTime
	)
	err := s.db.QueryRow(`
		SELECT first_source, first_path, first_retrieved_at, last_edited_at, edit_count
		FROM lyric_history WHERE track_key = ?`, key).
		Scan(&source, &rec.FirstRetrievalPath, &retrieved, &edited, &rec.EditCount)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, nil
	}
	if err != nil {
		s.logger.Printf("ERROR: Failed to load lyric history for %s: %v", key, err)
		return Record{}, fmt.Errorf("failed to load lyric history for %s: %w", key, err)
	}
	if source != "" {
		if rec.FirstRetrievalSource, err = uuid.Parse(source); err != nil {
			s.logger.Printf("WARN: Invalid source id %q stored for %s: %v", source, key, err)
		}
	}
	if retrieved.Valid {
		rec.FirstRetrievedAt = retrieved.Time
	}
	if edited.Valid {
		rec.LastEditedAt = edited.Time
	}
	return rec, nil
}
