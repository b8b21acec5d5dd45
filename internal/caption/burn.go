package caption

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/meetscribe/pkg/executor"
)

// OutputPath returns where Burn writes the captioned copy of videoPath
func OutputPath(captionedDir, videoPath string) string {
	stem := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))
	return filepath.Join(captionedDir, stem+"_captioned.mp4")
}

// Burn burns the SRT into the video. Uses a relative subtitle path inside an
// isolated working directory so the subtitles filter needs no escaping.
func (b *implBurner) Burn(ctx context.Context, videoPath, srtPath string) (string, error) {
	if err := os.MkdirAll(b.cfg.Paths.Captioned, 0755); err != nil {
		return "", fmt.Errorf("create captioned dir: %w", err)
	}
	outputPath := OutputPath(b.cfg.Paths.Captioned, videoPath)

	bin, err := b.resolve(ctx)
	if err != nil {
		b.logger.Warn(ctx, "%v, copying original video without captions", err)
		if err := copyFile(videoPath, outputPath); err != nil {
			return "", fmt.Errorf("copy original video: %w", err)
		}
		b.logger.Info(ctx, "Copied original video (no captions): %s", outputPath)
		return outputPath, nil
	}

	release, err := b.sem.acquire(ctx)
	if err != nil {
		return "", err
	}
	defer release()
	b.logger.Debug(ctx, "Encoder slots in use: %d/%d", b.sem.busy(), cap(b.sem))

	if err := os.MkdirAll(b.cfg.Paths.Temp, 0755); err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	tempDir, err := os.MkdirTemp(b.cfg.Paths.Temp, "burn-*")
	if err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	subFilename := b.prepareSubtitle(ctx, bin, srtPath, tempDir)

	absVideoPath, err := filepath.Abs(videoPath)
	if err != nil {
		return "", fmt.Errorf("resolve video path: %w", err)
	}
	tempOutput := filepath.Join(tempDir, "output.mp4")

	b.logger.Info(ctx, "Burning captions into %s (encoder %s)", filepath.Base(videoPath), b.cfg.FFmpeg.Encoder)

	if err := b.encode(ctx, bin, tempDir, absVideoPath, subFilename, tempOutput); err != nil {
		b.logger.Warn(ctx, "Encoder %s failed, trying libx264: %v", b.cfg.FFmpeg.Encoder, err)
		if err := b.encodeSoftware(ctx, bin, tempDir, absVideoPath, subFilename, tempOutput); err != nil {
			return "", fmt.Errorf("both %s and libx264 encoders failed: %w", b.cfg.FFmpeg.Encoder, err)
		}
	}

	if err := os.Rename(tempOutput, outputPath); err != nil {
		// cross-device temp dir
		if err := copyFile(tempOutput, outputPath); err != nil {
			return "", fmt.Errorf("move output to final location: %w", err)
		}
	}

	b.logger.Info(ctx, "Captioned video saved to %s", outputPath)
	return outputPath, nil
}

func (b *implBurner) resolve(ctx context.Context) (string, error) {
	b.resolveOnce.Do(func() {
		b.ffmpegBin, b.resolveErr = executor.FirstAvailable(ctx, b.executor, "-version", b.cfg.FFmpeg.BinaryPaths...)
		if b.resolveErr != nil {
			b.resolveErr = fmt.Errorf("%w: %w", ErrFFmpegNotFound, b.resolveErr)
		}
	})
	return b.ffmpegBin, b.resolveErr
}

// prepareSubtitle places the subtitle inside workDir, converted to ASS when
// ffmpeg can, and returns its file name relative to workDir
func (b *implBurner) prepareSubtitle(ctx context.Context, bin, srtPath, workDir string) string {
	srtCopy := filepath.Join(workDir, "subtitle.srt")
	if err := copyFile(srtPath, srtCopy); err != nil {
		b.logger.Warn(ctx, "Failed to stage subtitle, using it in place: %v", err)
		abs, _ := filepath.Abs(srtPath)
		return abs
	}

	if _, err := b.executor.ExecuteInDir(ctx, workDir, bin, "-y", "-i", "subtitle.srt", "subtitle.ass"); err != nil {
		b.logger.Warn(ctx, "Failed to convert SRT to ASS, using SRT: %v", err)
		return "subtitle.srt"
	}
	return "subtitle.ass"
}

func (b *implBurner) encode(ctx context.Context, bin, workDir, videoPath, subFilename, outputPath string) error {
	args := []string{
		"-y",
		"-i", videoPath,
		"-vf", "subtitles=" + subFilename,
		"-c:v", b.cfg.FFmpeg.Encoder,
		"-b:v", b.cfg.FFmpeg.VideoBitrate,
		"-c:a", b.cfg.FFmpeg.AudioCodec,
		outputPath,
	}

	b.logger.Debug(ctx, "ffmpeg in %s: -vf subtitles=%s -c:v %s", workDir, subFilename, b.cfg.FFmpeg.Encoder)
	_, err := b.executor.ExecuteInDir(ctx, workDir, bin, args...)
	return err
}

// encodeSoftware is the libx264 fallback used when the configured encoder fails
func (b *implBurner) encodeSoftware(ctx context.Context, bin, workDir, videoPath, subFilename, outputPath string) error {
	args := []string{
		"-y",
		"-i", videoPath,
		"-vf", "subtitles=" + subFilename,
		"-c:v", "libx264",
		"-preset", b.cfg.FFmpeg.Preset,
		"-crf", "23",
		"-c:a", "copy",
		outputPath,
	}

	if _, err := b.executor.ExecuteInDir(ctx, workDir, bin, args...); err != nil {
		return fmt.Errorf("software encoder failed: %w", err)
	}
	return nil
}

// copyFile streams src to dst
func copyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create destination: %w", err)
	}
	defer func() {
		err = errors.Join(err, out.Close())
	}()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy: %w", err)
	}
	return nil
}
