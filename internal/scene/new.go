package scene

import (
	"github.com/nguyentantai21042004/meetscribe/internal/logger"
)

type implScanner struct {
	opts   Options
	logger logger.Logger
}

// New creates a Scanner. A negative MinInterval is treated as zero and a
// JPEGQuality outside 1..100 falls back to 90.
func New(opts Options, log logger.Logger) Scanner {
	if opts.MinInterval < 0 {
		opts.MinInterval = 0
	}
	if opts.JPEGQuality <= 0 || opts.JPEGQuality > 100 {
		opts.JPEGQuality = 90
	}
	if log == nil {
		log = logger.NewNop()
	}

	return &implScanner{
		opts:   opts,
		logger: log,
	}
}
