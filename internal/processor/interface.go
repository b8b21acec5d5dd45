package processor

import (
	"context"
	"time"

	"github.com/nguyentantai21042004/meetscribe/internal/acquire"
	"github.com/nguyentantai21042004/meetscribe/internal/model"
	"github.com/nguyentantai21042004/meetscribe/internal/scene"
)

// Processor runs the meeting-video pipeline
type Processor interface {
	// Process acquires, scans, transcribes, captions and reports one video
	Process(ctx context.Context, req Request) (*Result, error)
	// DetectScenes runs only the scene scan, including the lowered-threshold
	// retry, on a local video
	DetectScenes(ctx context.Context, videoPath string) ([]scene.Event, error)
	// DetectSpikes runs the click-spike detector on a local video
	DetectSpikes(ctx context.Context, videoPath string) ([]scene.Event, error)
}

// Request is one pipeline run
type Request struct {
	Source acquire.Request
	// Archive moves a local input into paths.archived once the run succeeds
	Archive bool
}

// Result lists everything a run produced
type Result struct {
	RunID     string
	Video     string
	Captioned string
	Report    string
	SRT       string
	Summary   string
	Events    []scene.Event
	Segments  []model.Segment
	// Published holds the object keys uploaded to storage, if enabled
	Published []string
	Duration  time.Duration
}

// SourceFactory opens a frame source for a video file
type SourceFactory func(ctx context.Context, videoPath string) scene.FrameSource

// Publisher uploads a finished artifact and returns its object key
type Publisher interface {
	Upload(ctx context.Context, runID, localPath string) (string, error)
}
