package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	LyricsDir              string        `json:"lyrics_dir"`               // 监听的歌词目录
	DataDir                string        `json:"data_dir"`                 // SQLite数据库文件存放目录
	DBFileName             string        `json:"db_file_name"`             // SQLite数据库文件名
	DBPath                 string        `json:"-"`                        // 完整的数据库文件路径
	MergeEquivalentLines   bool          `json:"merge_equivalent_lines"`   // 输出时合并文本相同的行
	TradToSim              bool          `json:"trad_to_sim"`              // 保存前繁体转简体
	StabilityCheckInterval time.Duration `json:"stability_check_interval"` // 文件变化后等待多久再处理
}

const (
	lyricsDir  = "/app/lyrics"
	dataDir    = "/app/data"
	dbFileName = "lyrics.db"

	stabilityCheckInterval = 2 * time.Second
)

// LoadConfig 从环境变量或默认值加载配置，不会创建任何目录
func LoadConfig() (*Config, error) {
	// 尝试加载 .env 文件
	_ = godotenv.Load()

	cfg := &Config{
		LyricsDir:              os.Getenv("LYRICS_DIR"),
		DataDir:                os.Getenv("DATA_DIR"),
		DBFileName:             os.Getenv("DB_FILE_NAME"),
		MergeEquivalentLines:   parseBoolOrDefault(os.Getenv("LRC_MERGE_EQUIVALENT_LINES"), false),
		TradToSim:              parseBoolOrDefault(os.Getenv("LRC_TRAD_TO_SIM"), false),
		StabilityCheckInterval: parseDurationOrDefault(os.Getenv("STABILITY_CHECK_INTERVAL"), stabilityCheckInterval),
	}

	// 设置默认值
	if cfg.LyricsDir == "" {
		cfg.LyricsDir = lyricsDir
	}
	if cfg.DataDir == "" {
		cfg.DataDir = dataDir
	}
	if cfg.DBFileName == "" {
		cfg.DBFileName = dbFileName
	}
	cfg.DBPath = filepath.Join(cfg.DataDir, cfg.DBFileName)
	return cfg, nil
}

// EnsureDirs 确认歌词目录和数据目录存在
func (cfg *Config) EnsureDirs() error {
	if err := os.MkdirAll(cfg.LyricsDir, 0755); err != nil {
		return fmt.Errorf("failed to create lyrics directory %s: %w", cfg.LyricsDir, err)
	}
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return fmt.Errorf("failed to create database directory %s: %w", cfg.DataDir, err)
	}
	return nil
}

func parseDurationOrDefault(s string, defaultValue time.Duration) time.Duration {
	if s == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		log.Printf("Warning: Could not parse duration '%s', using default '%v'. Error: %v", s, defaultValue, err)
		return defaultValue
	}
	return d
}

func parseBoolOrDefault(s string, defaultValue bool) bool {
	if s == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		log.Printf("Warning: Could not parse bool '%s', using default '%v'. Error: %v", s, defaultValue, err)
		return defaultValue
	}
	return b
}
