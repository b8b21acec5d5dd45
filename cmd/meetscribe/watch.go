package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/meetscribe/internal/acquire"
	"github.com/nguyentantai21042004/meetscribe/internal/config"
	"github.com/nguyentantai21042004/meetscribe/internal/metrics"
	"github.com/nguyentantai21042004/meetscribe/internal/processor"
	"github.com/nguyentantai21042004/meetscribe/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Process every video dropped into paths.input",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		// progress bars from concurrent runs would interleave
		quiet = true

		a, err := newApp(ctx, nil)
		if err != nil {
			return err
		}
		defer a.close(context.Background())
		cfg, log := a.cfg, a.log

		log.Info(ctx, "========================================")
		log.Info(ctx, "meetscribe watch")
		log.Info(ctx, "========================================")
		log.Info(ctx, "System: %s/%s", runtime.GOOS, runtime.GOARCH)
		log.Info(ctx, "CPU Cores: %d", runtime.NumCPU())
		log.Info(ctx, "Max Concurrent Processing: %d", cfg.Performance.MaxConcurrent)

		if err := ensureDirectories(cfg); err != nil {
			return err
		}

		proc := a.processor(ctx)
		handle := func(ctx context.Context, path string) error {
			_, err := proc.Process(ctx, processor.Request{
				Source:  acquire.Request{Source: path, Kind: acquire.KindLocal},
				Archive: true,
			})
			return err
		}

		w, err := watcher.New(cfg.Paths.Input, handle, log, cfg.Performance.MaxConcurrent)
		if err != nil {
			return fmt.Errorf("create watcher: %w", err)
		}
		defer w.Stop()

		if cfg.Metrics.Enabled {
			srv := metrics.StartMetricsServer(ctx, cfg.Metrics.Port, log)
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				srv.Shutdown(shutdownCtx)
			}()
		}

		log.Info(ctx, "========================================")
		log.Info(ctx, "Monitoring: %s", cfg.Paths.Input)
		log.Info(ctx, "Output: %s", cfg.Paths.Output)
		log.Info(ctx, "  - Scene threshold: %.2f, min interval %.1fs", cfg.Scene.Threshold, cfg.Scene.MinInterval)
		log.Info(ctx, "  - Whisper: %d threads, language %s", cfg.Whisper.Threads, cfg.Whisper.Language)
		log.Info(ctx, "  - FFmpeg: %s encoder, %s bitrate", cfg.FFmpeg.Encoder, cfg.FFmpeg.VideoBitrate)
		log.Info(ctx, "Press Ctrl+C to stop")
		log.Info(ctx, "========================================")

		if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error(ctx, "Watcher error: %v", err)
			return err
		}

		log.Info(ctx, "Shutting down gracefully...")
		return nil
	},
}

// ensureDirectories creates the directories the watcher reads and writes
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Input,
		cfg.Paths.Output,
		cfg.Paths.Archived,
	}

	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
