package caption

import (
	"context"
	"errors"
)

// ErrFFmpegNotFound means none of the configured ffmpeg candidates ran
var ErrFFmpegNotFound = errors.New("ffmpeg not found")

// Burner renders subtitles into the picture of a video
type Burner interface {
	// Burn writes <captioned dir>/<stem>_captioned.mp4 and returns its path.
	// When ffmpeg is unavailable the input is copied there unchanged.
	Burn(ctx context.Context, videoPath, srtPath string) (string, error)
}
