package summarizer

import (
	"context"
	"errors"
)

// ErrNoAPIKey means the configured provider has no key to call it with
var ErrNoAPIKey = errors.New("no summary API key configured")

// Summarizer produces markdown meeting summaries with an LLM
type Summarizer interface {
	// Summarize returns a markdown summary of a plain-text transcript
	Summarize(ctx context.Context, transcript string) (string, error)
	// SummarizeAll writes <name>.md into destDir for every SRT in srtDir that
	// has no summary yet
	SummarizeAll(ctx context.Context, srtDir, destDir string) error
}

// backend sends one prompt to a model
type backend interface {
	name() string
	generate(ctx context.Context, prompt string) (string, error)
}
