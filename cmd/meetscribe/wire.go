package main

import (
	"context"
	"fmt"
	"io"
	"os"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/nguyentantai21042004/meetscribe/internal/acquire"
	"github.com/nguyentantai21042004/meetscribe/internal/caption"
	"github.com/nguyentantai21042004/meetscribe/internal/config"
	"github.com/nguyentantai21042004/meetscribe/internal/logger"
	"github.com/nguyentantai21042004/meetscribe/internal/processor"
	"github.com/nguyentantai21042004/meetscribe/internal/report"
	"github.com/nguyentantai21042004/meetscribe/internal/storage"
	"github.com/nguyentantai21042004/meetscribe/internal/summarizer"
	"github.com/nguyentantai21042004/meetscribe/internal/tracing"
	"github.com/nguyentantai21042004/meetscribe/internal/transcribe"
	"github.com/nguyentantai21042004/meetscribe/internal/ui"
	"github.com/nguyentantai21042004/meetscribe/pkg/executor"
)

// app holds the shared dependencies of every command
type app struct {
	cfg    *config.Config
	log    logger.Logger
	exec   executor.Executor
	store  *storage.Storage
	tracer *sdktrace.TracerProvider
}

// newApp loads configuration and builds the logger. logOut is where log lines
// go; nil means stdout.
func newApp(ctx context.Context, logOut io.Writer) (*app, error) {
	cfg, path, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	config.ApplyOverrides(cfg, v)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if logOut == nil {
		logOut = os.Stdout
	}
	log := logger.NewWithWriter(cfg.Logging.Level, cfg.Logging.Format, logOut)
	if path != "" {
		log.Debug(ctx, "Loaded config from %s", path)
	} else {
		log.Debug(ctx, "No config file found, using defaults")
	}

	a := &app{cfg: cfg, log: log, exec: executor.New()}

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(ctx, cfg.Tracing.Endpoint, cfg.Tracing.ServiceName)
		if err != nil {
			log.Warn(ctx, "Tracing disabled: %v", err)
		} else {
			a.tracer = tp
		}
	}

	if cfg.Storage.Enabled {
		store, err := storage.New(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("init storage: %w", err)
		}
		if err := store.EnsureBucket(ctx); err != nil {
			return nil, fmt.Errorf("init storage: %w", err)
		}
		a.store = store
	}

	return a, nil
}

func (a *app) close(ctx context.Context) {
	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			a.log.Warn(ctx, "Tracer shutdown: %v", err)
		}
	}
	_ = a.log.Sync()
}

func (a *app) summarizer(ctx context.Context) summarizer.Summarizer {
	s, err := summarizer.New(a.cfg.Summary, a.log)
	if err != nil {
		a.log.Warn(ctx, "Summaries disabled: %v", err)
		return nil
	}
	return s
}

// processor wires every stage. Storage, when enabled, serves both s3://
// sources and artifact publishing.
func (a *app) processor(ctx context.Context) processor.Processor {
	var fetcher acquire.Fetcher
	deps := processor.Deps{
		Sources:     processor.FFmpegSources(a.cfg, a.exec),
		Transcriber: transcribe.New(a.cfg, a.exec, a.log),
		Burner:      caption.New(a.cfg, a.exec, a.log),
		Reporter:    report.New(a.cfg, a.log),
		NewProgress: ui.ScanProgress("Scanning frames", quiet),
	}
	if s := a.summarizer(ctx); s != nil {
		deps.Summarizer = s
	}
	if a.store != nil {
		fetcher = a.store
		deps.Publisher = a.store
	}
	deps.Acquirer = acquire.New(a.cfg, a.exec, fetcher, a.log)

	return processor.New(a.cfg, deps, a.log)
}
