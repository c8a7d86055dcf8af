package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/yleoer/lyrics/pkg/config"
	"github.com/yleoer/lyrics/pkg/database"
	"github.com/yleoer/lyrics/pkg/lyric"
	"github.com/yleoer/lyrics/pkg/scheduler"
	"github.com/yleoer/lyrics/pkg/textenc"
)

var (
	logger = log.New(os.Stderr, "[Lyrics] ", log.LstdFlags|log.Lshortfile)

	mergeLines   bool
	shrinkOutput bool
	writeBack    bool
	offsetMs     int64
	removeOffset bool
	edits        []string
)

var rootCmd = &cobra.Command{
	Use:   "lyrics",
	Short: "Lyrics - LRC lyric formatter and library watcher",
	Long:  `Lyrics parses, normalizes and edits LRC lyric files, and keeps a lyrics directory tidy.`,
}

var fmtCmd = &cobra.Command{
	Use:   "fmt [file]",
	Short: "Reformat an LRC file (reads stdin when no file is given)",
	Long: `Parse an LRC file and print it in canonical form.

Auto-edits given with --edit run in order. Available edits:
  spaces                 collapse repeated spaces
  repeated-blank-lines   drop blank lines that follow another blank line
  blank-lines            drop every blank line
  t2s                    convert Traditional Chinese to Simplified
  instrumental           replace the lyrics with [Instrumental]`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		opts := fmtOptions{
			Merge:        cfg.MergeEquivalentLines,
			Shrink:       shrinkOutput || writeBack,
			SetOffset:    cmd.Flags().Changed("offset-ms"),
			OffsetMs:     offsetMs,
			RemoveOffset: removeOffset,
			Edits:        edits,
		}
		if cmd.Flags().Changed("merge") {
			opts.Merge = mergeLines
		}

		var text string
		var meta lyric.TrackMetadata
		if len(args) == 0 {
			if writeBack {
				return fmt.Errorf("--write needs a file argument")
			}
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
			if text, err = textenc.Decode(data); err != nil {
				return err
			}
		} else {
			if text, err = textenc.ReadTextFile(args[0]); err != nil {
				return err
			}
			meta = parseLyricFile(args[0], text).TrackMetadata
		}

		editor, err := newEditor(opts.needsConverter(), opts.Merge, logger)
		if err != nil {
			return err
		}
		out, err := formatLyrics(editor, meta, text, opts)
		if err != nil {
			return err
		}

		if !writeBack {
			_, err = io.WriteString(cmd.OutOrStdout(), out)
			return err
		}
		if out == text {
			logger.Printf("%s is already formatted.", args[0])
			return nil
		}
		if err := os.WriteFile(args[0], []byte(out), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", args[0], err)
		}
		store, err := openStore(cfg, logger)
		if err != nil {
			return err
		}
		defer store.Close()
		return store.RecordEdit(database.TrackKey(meta), time.Now())
	},
}

var infoCmd = &cobra.Command{
	Use:           "info <file>",
	Short:         "Show where an LRC file came from and how often it was edited",
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		store, err := openStore(cfg, logger)
		if err != nil {
			return err
		}
		defer store.Close()

		summary, err := describeFile(store, args[0])
		if err != nil {
			return err
		}
		_, err = io.WriteString(cmd.OutOrStdout(), summary)
		return err
	},
}

var importCmd = &cobra.Command{
	Use:           "import <file>...",
	Short:         "Copy LRC files into the lyrics directory and record their source",
	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		store, err := openStore(cfg, logger)
		if err != nil {
			return err
		}
		defer store.Close()

		for _, src := range args {
			dest, err := importLyrics(cfg, store, src, time.Now(), logger)
			if err != nil {
				return fmt.Errorf("import %s failed: %w", src, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dest)
		}
		return nil
	},
}

var watchCmd = &cobra.Command{
	Use:           "watch",
	Short:         "Normalize LRC files in LYRICS_DIR whenever they change",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		logger.Printf("Configuration loaded: LyricsDir=%s, DBPath=%s, Merge=%v, TradToSim=%v",
			cfg.LyricsDir, cfg.DBPath, cfg.MergeEquivalentLines, cfg.TradToSim)

		store, err := openStore(cfg, logger)
		if err != nil {
			return err
		}
		defer store.Close()
		editor, err := newEditor(cfg.TradToSim, cfg.MergeEquivalentLines, logger)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		lyricScheduler := scheduler.NewScheduler(cfg, store, editor, logger)
		lyricScheduler.InitialScan(cfg.LyricsDir)
		logger.Println("Application is running. Press Ctrl+C to exit.")
		return lyricScheduler.Watch(ctx)
	},
}

func init() {
	fmtCmd.Flags().BoolVar(&mergeLines, "merge", false, "Merge lines with identical text into one multi-timestamp line (default: $LRC_MERGE_EQUIVALENT_LINES)")
	fmtCmd.Flags().BoolVar(&shrinkOutput, "shrink", false, "Print the persistable form without editing padding")
	fmtCmd.Flags().BoolVarP(&writeBack, "write", "w", false, "Rewrite the file in place instead of printing it")
	fmtCmd.Flags().Int64Var(&offsetMs, "offset-ms", 0, "Set the [offset:] tag to this many milliseconds")
	fmtCmd.Flags().BoolVar(&removeOffset, "remove-offset", false, "Remove every [offset:] tag")
	fmtCmd.Flags().StringArrayVarP(&edits, "edit", "e", nil, "Auto-edit to apply, may be repeated")

	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(watchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
