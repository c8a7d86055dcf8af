package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/yleoer/lyrics/pkg/autoedit"
	"github.com/yleoer/lyrics/pkg/config"
	"github.com/yleoer/lyrics/pkg/converter"
	"github.com/yleoer/lyrics/pkg/database"
	"github.com/yleoer/lyrics/pkg/lrc"
	"github.com/yleoer/lyrics/pkg/lyric"
	"github.com/yleoer/lyrics/pkg/textenc"
	"github.com/yleoer/lyrics/pkg/util"
)

// editInstrumental 把整份歌词替换为纯音乐标记
const editInstrumental = "instrumental"

// fmtOptions 控制 fmt 子命令如何重写歌词
type fmtOptions struct {
	Merge        bool
	Shrink       bool
	SetOffset    bool
	OffsetMs     int64
	RemoveOffset bool
	Edits        []string
}

// needsConverter 只有请求了繁简转换时才加载 OpenCC 词典
func (o fmtOptions) needsConverter() bool {
	for _, name := range o.Edits {
		if name == autoedit.EditTradToSim {
			return true
		}
	}
	return false
}

// formatLyrics 解析文本，依次执行自动编辑和偏移调整，再渲染为文本
func formatLyrics(editor *autoedit.Editor, meta lyric.TrackMetadata, text string, opts fmtOptions) (string, error) {
	doc := lrc.Parse(meta, text)
	for _, name := range opts.Edits {
		if name == editInstrumental {
			doc = editor.CreateInstrumental(doc.TrackMetadata).Document
			continue
		}
		res, err := editor.Apply(name, doc)
		if err != nil {
			return "", err
		}
		doc = res.Document
	}
	if opts.RemoveOffset {
		doc = lrc.RemoveOffsetTag(doc)
	}
	if opts.SetOffset {
		doc = lrc.SetOffsetTag(doc, float64(opts.OffsetMs)/1000.0)
	}
	if opts.Shrink {
		return lrc.Shrink(doc, opts.Merge), nil
	}
	return lrc.Expand(doc, opts.Merge), nil
}

// parseLyricFile 解析歌词文本，音轨信息由文件名和文件中的标签推断
func parseLyricFile(path, text string) lyric.Document {
	doc := lrc.Parse(util.TrackFromFileName(path), text)
	doc.TrackMetadata = lrc.MetadataFromTags(doc.TrackMetadata, doc.Tags)
	return doc
}

// localSourceID 同一目录导入的歌词共享同一个来源 ID
func localSourceID(dir string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("file://"+filepath.ToSlash(dir)))
}

// importLyrics 把外部歌词文件整理后复制到歌词目录，并记录首次获取来源
func importLyrics(cfg *config.Config, store database.LyricStore, src string, now time.Time, logger *log.Logger) (string, error) {
	abs, err := filepath.Abs(src)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", src, err)
	}
	text, err := textenc.ReadTextFile(abs)
	if err != nil {
		return "", err
	}

	doc := parseLyricFile(abs, text)
	doc.SourceID = localSourceID(filepath.Dir(abs))

	dest := filepath.Join(cfg.LyricsDir, util.LyricFileName(doc.TrackMetadata))
	if err := os.WriteFile(dest, []byte(lrc.Shrink(doc, cfg.MergeEquivalentLines)), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", dest, err)
	}
	logger.Printf("  -> Imported %s to %s", abs, dest)

	if err := store.RecordRetrieval(database.TrackKey(doc.TrackMetadata), doc.SourceID, abs, now); err != nil {
		return dest, err
	}
	return dest, nil
}

// describeFile 读取歌词文件并生成其历史摘要
func describeFile(store database.LyricStore, path string) (string, error) {
	text, err := textenc.ReadTextFile(path)
	if err != nil {
		return "", err
	}
	doc := parseLyricFile(path, text)
	rec, err := store.Load(database.TrackKey(doc.TrackMetadata))
	if err != nil {
		return "", err
	}
	return database.Describe(doc, rec), nil
}

// newEditor 按需创建带 OpenCC 转换器的编辑器
func newEditor(withConverter, merge bool, logger *log.Logger) (*autoedit.Editor, error) {
	var tc converter.TextConverter
	if withConverter {
		var err error
		tc, err = converter.NewOpenCCConverter(logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize OpenCC converter: %w", err)
		}
	}
	return autoedit.NewEditor(tc, merge, logger), nil
}

// openStore 确认数据目录存在后打开 SQLite 存储
func openStore(cfg *config.Config, logger *log.Logger) (database.LyricStore, error) {
	if err := cfg.EnsureDirs(); err != nil {
		return nil, err
	}
	store, err := database.NewSQLiteStore(cfg.DBPath, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return store, nil
}
