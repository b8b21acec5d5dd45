package acquire

import (
	"context"
	"fmt"
	"os"

	"github.com/nguyentantai21042004/meetscribe/internal/scene"
)

func (a *implAcquirer) Validate(ctx context.Context, path string) (scene.StreamInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return scene.StreamInfo{}, fmt.Errorf("%w: video file not found: %v", ErrSourceUnavailable, err)
	}
	if info.Size() < MinVideoSize {
		return scene.StreamInfo{}, fmt.Errorf("%w: video file is too small (%d bytes), it may be corrupted", ErrSourceUnavailable, info.Size())
	}

	stream, err := scene.Probe(ctx, a.executor, a.cfg.FFmpeg.ProbePath, path)
	if err != nil {
		return scene.StreamInfo{}, fmt.Errorf("invalid video format or corrupted file: %w", err)
	}
	if stream.TotalFrames <= 0 && stream.Duration <= 0 {
		return scene.StreamInfo{}, fmt.Errorf("%w: video has no frames", ErrSourceUnavailable)
	}

	a.logger.Info(ctx, "Video validated: %dx%d, %.2f fps, %d frames", stream.Width, stream.Height, stream.FPS, stream.TotalFrames)
	return stream, nil
}
