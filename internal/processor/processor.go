package processor

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nguyentantai21042004/meetscribe/internal/logger"
	"github.com/nguyentantai21042004/meetscribe/internal/metrics"
	"github.com/nguyentantai21042004/meetscribe/internal/model"
	"github.com/nguyentantai21042004/meetscribe/internal/report"
	"github.com/nguyentantai21042004/meetscribe/internal/scene"
	"github.com/nguyentantai21042004/meetscribe/internal/subtitle"
	"github.com/nguyentantai21042004/meetscribe/internal/transcribe"
)

// Process orchestrates the entire pipeline for one video
func (p *implProcessor) Process(ctx context.Context, req Request) (*Result, error) {
	startTime := time.Now()
	res := &Result{RunID: uuid.NewString()}
	log := p.logger.With("run_id", res.RunID)

	metrics.ActiveRuns.Inc()
	defer metrics.ActiveRuns.Dec()

	log.Info(ctx, "========================================")
	log.Info(ctx, "Starting pipeline for %s (type=%s)", req.Source.Source, req.Source.Kind)
	log.Info(ctx, "========================================")

	if err := p.run(ctx, req, res, log); err != nil {
		metrics.RunsTotal.WithLabelValues("error").Inc()
		log.Error(ctx, "Pipeline failed after %s: %v", time.Since(startTime).Round(time.Millisecond), err)
		return nil, err
	}

	res.Duration = time.Since(startTime)
	metrics.RunsTotal.WithLabelValues("ok").Inc()

	log.Info(ctx, "========================================")
	log.Info(ctx, "Processing completed successfully!")
	log.Info(ctx, "Scene changes: %d, transcript segments: %d", len(res.Events), len(res.Segments))
	log.Info(ctx, "Captioned video: %s", res.Captioned)
	log.Info(ctx, "Report: %s", res.Report)
	log.Info(ctx, "Processing time: %s", res.Duration.Round(time.Millisecond))
	log.Info(ctx, "========================================")
	return res, nil
}

func (p *implProcessor) run(ctx context.Context, req Request, res *Result, log logger.Logger) error {
	// Step 1: fetch and validate
	log.Info(ctx, "Step 1/7: Fetching video...")
	err := p.stage(ctx, "acquire", func(ctx context.Context) error {
		path, err := p.deps.Acquirer.Acquire(ctx, req.Source)
		if err != nil {
			return err
		}
		if _, err := p.deps.Acquirer.Validate(ctx, path); err != nil {
			return err
		}
		res.Video = path
		return nil
	})
	if err != nil {
		return fmt.Errorf("acquire: %w", err)
	}

	// Step 2: scene changes
	log.Info(ctx, "Step 2/7: Detecting scene changes...")
	err = p.stage(ctx, "scan", func(ctx context.Context) error {
		events, err := p.detectScenes(ctx, res.Video, log)
		res.Events = events
		return err
	})
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}

	// Step 3: speech
	log.Info(ctx, "Step 3/7: Transcribing audio...")
	err = p.stage(ctx, "transcribe", func(ctx context.Context) error {
		segs, err := p.deps.Transcriber.Transcribe(ctx, res.Video)
		if errors.Is(err, transcribe.ErrModelUnavailable) {
			log.Warn(ctx, "Transcription skipped, continuing without speech: %v", err)
			segs, err = []model.Segment{}, nil
		}
		res.Segments = segs
		return err
	})
	if err != nil {
		return fmt.Errorf("transcribe: %w", err)
	}
	if len(res.Segments) == 0 {
		log.Info(ctx, "No speech detected, captions will carry a placeholder")
	}

	// Step 4: SRT
	log.Info(ctx, "Step 4/7: Writing subtitles...")
	res.SRT = filepath.Join(p.cfg.Paths.Transcripts, stem(res.Video)+".srt")
	err = p.stage(ctx, "subtitle", func(ctx context.Context) error {
		return subtitle.WriteFile(res.SRT, res.Segments)
	})
	if err != nil {
		return fmt.Errorf("write subtitles: %w", err)
	}

	// Step 5: captions
	log.Info(ctx, "Step 5/7: Burning captions...")
	err = p.stage(ctx, "caption", func(ctx context.Context) error {
		out, err := p.deps.Burner.Burn(ctx, res.Video, res.SRT)
		res.Captioned = out
		return err
	})
	if err != nil {
		return fmt.Errorf("burn captions: %w", err)
	}

	// Step 6: optional summary, never fatal
	if p.deps.Summarizer != nil && len(res.Segments) > 0 {
		log.Info(ctx, "Step 6/7: Summarizing transcript...")
		_ = p.stage(ctx, "summarize", func(ctx context.Context) error {
			summary, err := p.deps.Summarizer.Summarize(ctx, subtitle.PlainText(res.Segments))
			if err != nil {
				log.Warn(ctx, "Summary failed, report will not include one: %v", err)
				return err
			}
			res.Summary = summary
			return nil
		})
	} else {
		log.Info(ctx, "Step 6/7: Summary disabled or no speech, skipping")
	}

	// Step 7: report
	log.Info(ctx, "Step 7/7: Building report...")
	err = p.stage(ctx, "report", func(ctx context.Context) error {
		path, err := p.deps.Reporter.Build(ctx, report.Input{
			VideoPath: res.Video,
			Events:    res.Events,
			Segments:  res.Segments,
			Summary:   res.Summary,
		})
		res.Report = path
		return err
	})
	if err != nil {
		return fmt.Errorf("build report: %w", err)
	}

	if p.deps.Publisher != nil {
		_ = p.stage(ctx, "publish", func(ctx context.Context) error {
			keys, err := p.publish(ctx, res, log)
			res.Published = keys
			return err
		})
	}

	if req.Archive {
		if err := p.moveToArchived(ctx, res.Video, log); err != nil {
			log.Warn(ctx, "Failed to move original to archived folder: %v", err)
		}
	}
	return nil
}

// publish uploads every artifact; failures are logged and returned joined
func (p *implProcessor) publish(ctx context.Context, res *Result, log logger.Logger) ([]string, error) {
	_, eventsPath := report.Paths(p.cfg.Paths.Reports, res.Video)

	var keys []string
	var errs []error
	for _, path := range []string{res.Captioned, res.SRT, res.Report, eventsPath} {
		key, err := p.deps.Publisher.Upload(ctx, res.RunID, path)
		if err != nil {
			log.Warn(ctx, "Publish %s failed: %v", filepath.Base(path), err)
			errs = append(errs, err)
			continue
		}
		keys = append(keys, key)
	}
	log.Info(ctx, "Published %d artifacts", len(keys))
	return keys, errors.Join(errs...)
}

func (p *implProcessor) DetectScenes(ctx context.Context, videoPath string) ([]scene.Event, error) {
	return p.detectScenes(ctx, videoPath, p.logger)
}

// detectScenes scans once and, when nothing is found, once more with the
// threshold scaled by scene.retry_factor
func (p *implProcessor) detectScenes(ctx context.Context, videoPath string, log logger.Logger) ([]scene.Event, error) {
	opts := scene.Options{
		Threshold:   p.cfg.Scene.Threshold,
		MinInterval: p.cfg.Scene.MinInterval,
		OutputDir:   p.framesDir(videoPath),
		JPEGQuality: p.cfg.Scene.JPEGQuality,
		NewProgress: p.deps.NewProgress,
	}

	events, err := p.scan(ctx, opts, videoPath)
	if err != nil {
		return nil, err
	}
	if len(events) > 0 {
		return events, nil
	}

	retry := opts.Threshold * p.cfg.Scene.RetryFactor
	log.Info(ctx, "No scene changes at threshold %.3f, retrying at %.3f", opts.Threshold, retry)
	metrics.ScanRetriesTotal.Inc()
	opts.Threshold = retry
	return p.scan(ctx, opts, videoPath)
}

func (p *implProcessor) scan(ctx context.Context, opts scene.Options, videoPath string) ([]scene.Event, error) {
	scanner := scene.New(opts, p.logger)
	return scanner.Scan(ctx, p.deps.Sources(ctx, videoPath))
}

func (p *implProcessor) DetectSpikes(ctx context.Context, videoPath string) ([]scene.Event, error) {
	return scene.DetectSpikes(ctx, p.deps.Sources(ctx, videoPath), p.cfg.Scene.SpikeThreshold, p.framesDir(videoPath))
}

// framesDir keeps each video's frames apart so concurrent runs never share one
func (p *implProcessor) framesDir(videoPath string) string {
	return filepath.Join(p.cfg.Paths.Frames, stem(videoPath))
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
