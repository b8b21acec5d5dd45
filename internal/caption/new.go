package caption

import (
	"sync"

	"github.com/nguyentantai21042004/meetscribe/internal/config"
	"github.com/nguyentantai21042004/meetscribe/internal/logger"
	"github.com/nguyentantai21042004/meetscribe/pkg/executor"
)

type implBurner struct {
	cfg      *config.Config
	executor executor.Executor
	logger   logger.Logger
	sem      semaphore

	resolveOnce sync.Once
	ffmpegBin   string
	resolveErr  error
}

// New creates a Burner; at most performance.max_encoders burns run at once
func New(cfg *config.Config, exec executor.Executor, log logger.Logger) Burner {
	capacity := cfg.Performance.MaxEncoders
	if capacity <= 0 {
		capacity = 1
	}

	return &implBurner{
		cfg:      cfg,
		executor: exec,
		logger:   log,
		sem:      newSemaphore(capacity),
	}
}
