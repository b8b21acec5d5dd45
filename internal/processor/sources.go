package processor

import (
	"context"
	"sync"

	"github.com/nguyentantai21042004/meetscribe/internal/config"
	"github.com/nguyentantai21042004/meetscribe/internal/scene"
	"github.com/nguyentantai21042004/meetscribe/pkg/executor"
)

// FFmpegSources decodes with the first ffmpeg candidate that answers
// -version. With none available the first candidate is used and Open fails
// with scene.ErrSourceUnavailable.
func FFmpegSources(cfg *config.Config, exec executor.Executor) SourceFactory {
	var (
		once sync.Once
		bin  string
	)
	return func(ctx context.Context, videoPath string) scene.FrameSource {
		once.Do(func() {
			found, err := executor.FirstAvailable(ctx, exec, "-version", cfg.FFmpeg.BinaryPaths...)
			if err != nil && len(cfg.FFmpeg.BinaryPaths) > 0 {
				found = cfg.FFmpeg.BinaryPaths[0]
			}
			bin = found
		})
		return scene.NewFFmpegSource(exec, bin, cfg.FFmpeg.ProbePath, videoPath)
	}
}
