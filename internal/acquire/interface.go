package acquire

import (
	"context"

	"github.com/nguyentantai21042004/meetscribe/internal/scene"
)

// Kind names where a video comes from
type Kind string

const (
	KindAuto    Kind = "auto"
	KindLocal   Kind = "local"
	KindYouTube Kind = "youtube"
	KindHTTP    Kind = "http"
	KindPrivate Kind = "private"
	KindGDrive  Kind = "gdrive"
	KindS3      Kind = "s3"
)

// ErrSourceUnavailable is shared with the scanner so one errors.Is check
// covers both acquisition and decode-open failures
var ErrSourceUnavailable = scene.ErrSourceUnavailable

// MinVideoSize is the smallest file accepted as a video
const MinVideoSize = 1024

// Request describes one video to fetch
type Request struct {
	Source   string
	Kind     Kind
	Username string
	Password string
}

// Acquirer turns a Request into a readable local video file
type Acquirer interface {
	Acquire(ctx context.Context, req Request) (string, error)
	// Validate checks that path is large enough, probes, and has frames
	Validate(ctx context.Context, path string) (scene.StreamInfo, error)
}

// Resolver handles a single Kind
type Resolver interface {
	Name() string
	Resolve(ctx context.Context, req Request) (string, error)
}

// Fetcher downloads an object from bucket storage
type Fetcher interface {
	Fetch(ctx context.Context, bucket, key, destPath string) error
}
