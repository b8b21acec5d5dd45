package processor

import (
	"github.com/nguyentantai21042004/meetscribe/internal/acquire"
	"github.com/nguyentantai21042004/meetscribe/internal/caption"
	"github.com/nguyentantai21042004/meetscribe/internal/config"
	"github.com/nguyentantai21042004/meetscribe/internal/logger"
	"github.com/nguyentantai21042004/meetscribe/internal/report"
	"github.com/nguyentantai21042004/meetscribe/internal/scene"
	"github.com/nguyentantai21042004/meetscribe/internal/summarizer"
	"github.com/nguyentantai21042004/meetscribe/internal/transcribe"
)

// Deps are the stage implementations. Summarizer and Publisher are optional.
type Deps struct {
	Acquirer    acquire.Acquirer
	Sources     SourceFactory
	Transcriber transcribe.Transcriber
	Burner      caption.Burner
	Reporter    report.Builder
	Summarizer  summarizer.Summarizer
	Publisher   Publisher
	// NewProgress, when set, draws scan progress
	NewProgress func(total int) scene.ProgressBar
}

type implProcessor struct {
	cfg    *config.Config
	deps   Deps
	logger logger.Logger
}

func New(cfg *config.Config, deps Deps, log logger.Logger) Processor {
	return &implProcessor{
		cfg:    cfg,
		deps:   deps,
		logger: log,
	}
}
