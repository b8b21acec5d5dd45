package transcribe

import (
	"context"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/meetscribe/pkg/executor"
)

func (t *implTranscriber) ffmpeg(ctx context.Context) (string, error) {
	t.ffmpegOnce.Do(func() {
		t.ffmpegBin, t.ffmpegErr = executor.FirstAvailable(ctx, t.executor, "-version", t.cfg.FFmpeg.BinaryPaths...)
	})
	return t.ffmpegBin, t.ffmpegErr
}

// hasAudio reports whether the video carries at least one audio stream.
// If ffprobe itself fails the answer is "yes" and extraction decides.
func (t *implTranscriber) hasAudio(ctx context.Context, videoPath string) bool {
	out, err := t.executor.Execute(ctx, t.cfg.FFmpeg.ProbePath,
		"-v", "error",
		"-select_streams", "a",
		"-show_entries", "stream=index",
		"-of", "csv=p=0",
		videoPath,
	)
	if err != nil {
		t.logger.Warn(ctx, "ffprobe audio check failed, assuming audio present: %v", err)
		return true
	}
	return strings.TrimSpace(out) != ""
}

// extractAudio extracts audio from video file and converts to 16kHz mono WAV
func (t *implTranscriber) extractAudio(ctx context.Context, videoPath, audioPath string) error {
	bin, err := t.ffmpeg(ctx)
	if err != nil {
		return fmt.Errorf("ffmpeg not available: %w", err)
	}

	t.logger.Info(ctx, "Extracting audio: %s", videoPath)

	// -vn drops video, 16 kHz mono 16-bit PCM is what whisper.cpp expects
	args := []string{
		"-i", videoPath,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-threads", "0",
		"-y",
		audioPath,
	}

	if _, err := t.executor.Execute(ctx, bin, args...); err != nil {
		return fmt.Errorf("ffmpeg extract audio: %w", err)
	}

	t.logger.Debug(ctx, "Audio extracted: %s", audioPath)
	return nil
}
