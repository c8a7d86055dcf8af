package scheduler

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/yleoer/lyrics/pkg/autoedit"
	"github.com/yleoer/lyrics/pkg/config"
	"github.com/yleoer/lyrics/pkg/database"
	"github.com/yleoer/lyrics/pkg/lrc"
	"github.com/yleoer/lyrics/pkg/textenc"
	"github.com/yleoer/lyrics/pkg/util"
)

// Scheduler 监听歌词目录，文件稳定后将其整理为规范的 LRC 文本
type Scheduler struct {
	cfg            *config.Config
	store          database.LyricStore
	editor         *autoedit.Editor
	logger         *log.Logger
	normalizeMutex sync.Mutex // 同一时间只整理一个文件
	pending        map[string]*time.Timer
	pendingMutex   sync.Mutex // 保护 pending map
	now            func() time.Time
}

// NewScheduler 创建一个新的 Scheduler 实例
func NewScheduler(cfg *config.Config, store database.LyricStore, editor *autoedit.Editor, logger *log.Logger) *Scheduler {
	return &Scheduler{
		cfg:     cfg,
		store:   store,
		editor:  editor,
		logger:  logger,
		pending: make(map[string]*time.Timer),
		now:     time.Now,
	}
}

// InitialScan 整理目录中已有的所有歌词文件
func (s *Scheduler) InitialScan(dir string) {
	s.logger.Printf("Performing initial scan for lyric files in %s...", dir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		s.logger.Printf("ERROR: Error reading lyrics directory %s for initial scan: %v", dir, err)
		return
	}
	for _, entry := range entries {
		if entry.IsDir() || !util.IsLyricFile(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if _, err := s.NormalizeFile(path); err != nil {
			s.logger.Printf("ERROR: Error normalizing %s: %v", path, err)
		}
	}
	s.logger.Println("Initial scan completed.")
}

// TriggerNormalize 将一个文件添加到延迟整理队列，重复触发会重置计时器
func (s *Scheduler) TriggerNormalize(path string) {
	s.pendingMutex.Lock()
	defer s.pendingMutex.Unlock()
	if timer, ok := s.pending[path]; ok {
		timer.Stop()
	}
	s.pending[path] = time.AfterFunc(s.cfg.StabilityCheckInterval, func() {
		s.pendingMutex.Lock()
		delete(s.pending, path)
		s.pendingMutex.Unlock()

		if _, err := s.NormalizeFile(path); err != nil {
			s.logger.Printf("ERROR: Error normalizing %s: %v", path, err)
		}
	})
	s.logger.Printf("Scheduled normalize for %s in %v", path, s.cfg.StabilityCheckInterval)
}

// Stop 取消所有尚未执行的整理任务
func (s *Scheduler) Stop() {
	s.pendingMutex.Lock()
	defer s.pendingMutex.Unlock()
	for path, timer := range s.pending {
		timer.Stop()
		delete(s.pending, path)
	}
}

// NormalizeFile 读取、解析并重新生成歌词文件，内容有变化时才写回并记录一次编辑
func (s *Scheduler) NormalizeFile(path string) (bool, error) {
	s.normalizeMutex.Lock()
	defer s.normalizeMutex.Unlock()

	info, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	text, err := textenc.ReadTextFile(path)
	if err != nil {
		return false, err
	}

	doc := lrc.Parse(util.TrackFromFileName(path), text)
	doc.TrackMetadata = lrc.MetadataFromTags(doc.TrackMetadata, doc.Tags)
	if s.cfg.TradToSim {
		doc = s.editor.ConvertToSimplified(doc).Document
	}

	out := lrc.Shrink(doc, s.cfg.MergeEquivalentLines)
	if out == text {
		s.logger.Printf("  -> %s is already normalized.", path)
		return false, nil
	}
	if err := os.WriteFile(path, []byte(out), info.Mode().Perm()); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", path, err)
	}
	s.logger.Printf("  -> Normalized %s (%d lines).", path, len(doc.Lines))

	if s.store != nil {
		if err := s.store.RecordEdit(database.TrackKey(doc.TrackMetadata), s.now()); err != nil {
			return true, err
		}
	}
	return true, nil
}

// Watch 监听歌词目录直到 ctx 结束
func (s *Scheduler) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("error creating file watcher: %w", err)
	}
	defer watcher.Close()
	defer s.Stop()

	if err := watcher.Add(s.cfg.LyricsDir); err != nil {
		return fmt.Errorf("error adding lyrics directory %s to watcher: %w", s.cfg.LyricsDir, err)
	}
	s.logger.Printf("Monitoring lyrics directory %s for changes...", s.cfg.LyricsDir)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			s.handleEvent(event)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Printf("ERROR: Watcher error: %v", err)
		}
	}
}

func (s *Scheduler) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}
	if !util.IsLyricFile(event.Name) || util.IsDirectory(event.Name) {
		return
	}
	s.logger.Printf("Watcher event: %s, on %s", event.Op.String(), event.Name)
	s.TriggerNormalize(event.Name)
}
