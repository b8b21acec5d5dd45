package report

import (
	"github.com/nguyentantai21042004/meetscribe/internal/config"
	"github.com/nguyentantai21042004/meetscribe/internal/logger"
)

type implBuilder struct {
	cfg    config.ReportConfig
	dir    string
	logger logger.Logger
}

func New(cfg *config.Config, log logger.Logger) Builder {
	return &implBuilder{
		cfg:    cfg.Report,
		dir:    cfg.Paths.Reports,
		logger: log,
	}
}
