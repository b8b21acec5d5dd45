package summarizer

import (
	"fmt"

	"github.com/nguyentantai21042004/meetscribe/internal/config"
	"github.com/nguyentantai21042004/meetscribe/internal/logger"
)

type implSummarizer struct {
	backend backend
	prompt  string
	logger  logger.Logger
}

// New picks the backend for cfg.Provider. An empty provider means summaries
// are disabled and New returns nil, nil.
func New(cfg config.SummaryConfig, log logger.Logger) (Summarizer, error) {
	var b backend
	switch cfg.Provider {
	case "":
		return nil, nil
	case "gemini":
		if len(cfg.APIKeys) == 0 {
			return nil, fmt.Errorf("gemini: %w", ErrNoAPIKey)
		}
		b = newGemini(cfg.APIKeys, cfg.Model, log)
	case "openai":
		if len(cfg.APIKeys) == 0 {
			return nil, fmt.Errorf("openai: %w", ErrNoAPIKey)
		}
		b = newOpenAI(cfg.APIKeys[0], cfg.Model)
	default:
		return nil, fmt.Errorf("unsupported summary provider %q", cfg.Provider)
	}

	prompt := cfg.Prompt
	if prompt == "" {
		prompt = defaultPrompt
	}
	return &implSummarizer{backend: b, prompt: prompt, logger: log}, nil
}
