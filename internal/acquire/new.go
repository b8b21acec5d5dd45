package acquire

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nguyentantai21042004/meetscribe/internal/config"
	"github.com/nguyentantai21042004/meetscribe/internal/logger"
	"github.com/nguyentantai21042004/meetscribe/internal/metrics"
	"github.com/nguyentantai21042004/meetscribe/pkg/executor"
)

type implAcquirer struct {
	cfg       *config.Config
	executor  executor.Executor
	logger    logger.Logger
	resolvers map[Kind]Resolver
}

// New wires every resolver. store may be nil, in which case s3 sources fail.
func New(cfg *config.Config, exec executor.Executor, store Fetcher, log logger.Logger) Acquirer {
	timeout := time.Duration(cfg.Acquire.TimeoutSeconds) * time.Second
	web := newHTTPResolver(cfg.Acquire, timeout, log)

	return &implAcquirer{
		cfg:      cfg,
		executor: exec,
		logger:   log,
		resolvers: map[Kind]Resolver{
			KindLocal:   &localResolver{logger: log},
			KindYouTube: newYouTubeResolver(cfg.Acquire, log),
			KindHTTP:    web,
			KindGDrive:  &gdriveResolver{http: web},
			KindPrivate: newPrivateResolver(cfg.Acquire, web, log),
			KindS3:      &s3Resolver{store: store, dir: cfg.Acquire.DownloadDir},
		},
	}
}

func (a *implAcquirer) Acquire(ctx context.Context, req Request) (string, error) {
	source := strings.TrimSpace(req.Source)
	if source == "" {
		return "", fmt.Errorf("%w: input source cannot be empty", ErrSourceUnavailable)
	}
	req.Source = source

	kind := resolveKind(source, req.Kind)
	if kind != req.Kind && req.Kind != "" && req.Kind != KindAuto {
		a.logger.Info(ctx, "Auto-detected %s source (requested %s)", kind, req.Kind)
	}

	r, ok := a.resolvers[kind]
	if !ok {
		return "", fmt.Errorf("%w: unknown source kind %q", ErrSourceUnavailable, req.Kind)
	}

	a.logger.Info(ctx, "Fetching %s video: %s", r.Name(), source)
	path, err := r.Resolve(ctx, req)
	if err != nil {
		metrics.AcquisitionsTotal.WithLabelValues(string(kind), "error").Inc()
		return "", fmt.Errorf("%w: %s: %w", ErrSourceUnavailable, r.Name(), err)
	}

	metrics.AcquisitionsTotal.WithLabelValues(string(kind), "ok").Inc()
	a.logger.Info(ctx, "Video acquired: %s", path)
	return path, nil
}
