package transcribe

import (
	"context"
	"errors"

	"github.com/nguyentantai21042004/meetscribe/internal/model"
)

// ErrModelUnavailable means neither the configured nor the fallback model file exists
var ErrModelUnavailable = errors.New("whisper model unavailable")

// Transcriber defines the interface for speech-to-text
type Transcriber interface {
	// Transcribe returns timed segments for the video's speech. A video
	// without an audio stream yields an empty slice and no error.
	Transcribe(ctx context.Context, videoPath string) ([]model.Segment, error)
}
