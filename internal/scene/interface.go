package scene

import (
	"context"
	"errors"
	"image"
)

var (
	// ErrSourceUnavailable means the video could not be opened; no frame was read
	ErrSourceUnavailable = errors.New("video source unavailable")
	// ErrDecode means the stream broke mid-scan (corrupt data, size change, decoder exit)
	ErrDecode = errors.New("video decode failed")
)

// DefaultFPS is assumed when the source reports no usable frame rate
const DefaultFPS = 25.0

// Scanner detects visual scene changes in a frame stream
type Scanner interface {
	Scan(ctx context.Context, src FrameSource) ([]Event, error)
}

// FrameSource yields decoded frames in order. Next returns io.EOF after the
// last frame. Close must be safe to call more than once.
type FrameSource interface {
	Open(ctx context.Context) (StreamInfo, error)
	Next(ctx context.Context) (*Frame, error)
	Close() error
}

// StreamInfo describes an opened source. Zero values mean unknown.
type StreamInfo struct {
	FPS         float64
	TotalFrames int
	Width       int
	Height      int
	Duration    float64
}

// Frame is one decoded picture. Gray is the row-major 8-bit intensity raster
// of Width*Height bytes. Color, when present, is what gets persisted.
type Frame struct {
	Index  int
	Width  int
	Height int
	Gray   []byte
	Color  image.Image
}

// Event is an emitted scene change
type Event struct {
	Timestamp  float64 `json:"timestamp"`
	FramePath  string  `json:"frame_path"`
	Score      float64 `json:"score"`
	FrameIndex int     `json:"frame_index"`
}

// ProgressBar receives per-frame progress. *progressbar.ProgressBar satisfies it.
type ProgressBar interface {
	Add(n int) error
	Finish() error
}

// Options configures a scan
type Options struct {
	// Threshold is the minimum dissimilarity (1 - SSIM) for an event
	Threshold float64
	// MinInterval is the minimum number of seconds between two events
	MinInterval float64
	// OutputDir receives frame_%06d.jpg artifacts
	OutputDir   string
	JPEGQuality int
	// NewProgress is called once the total frame count is known (0 if unknown)
	NewProgress func(total int) ProgressBar
}

// DefaultOptions returns the standard threshold and interval
func DefaultOptions(outputDir string) Options {
	return Options{
		Threshold:   0.35,
		MinInterval: 0.5,
		OutputDir:   outputDir,
		JPEGQuality: 90,
	}
}
