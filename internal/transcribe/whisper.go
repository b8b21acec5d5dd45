package transcribe

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/nguyentantai21042004/meetscribe/internal/model"
	"github.com/nguyentantai21042004/meetscribe/internal/subtitle"
)

// Transcribe extracts the audio track and runs whisper.cpp over it
func (t *implTranscriber) Transcribe(ctx context.Context, videoPath string) ([]model.Segment, error) {
	modelPath, err := t.resolveModel(ctx)
	if err != nil {
		return nil, err
	}

	if !t.hasAudio(ctx, videoPath) {
		t.logger.Warn(ctx, "No audio stream in %s, skipping transcription", videoPath)
		return []model.Segment{}, nil
	}

	if err := os.MkdirAll(t.cfg.Paths.Temp, 0755); err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	workDir, err := os.MkdirTemp(t.cfg.Paths.Temp, "transcribe-*")
	if err != nil {
		return nil, fmt.Errorf("create work dir: %w", err)
	}
	defer t.cleanup(ctx, workDir)

	audioPath := filepath.Join(workDir, "audio.wav")
	if err := t.extractAudio(ctx, videoPath, audioPath); err != nil {
		return nil, err
	}

	srtPath, err := t.runWhisper(ctx, modelPath, audioPath, filepath.Join(workDir, "transcript"))
	if err != nil {
		return nil, err
	}

	segments, err := subtitle.ParseFile(srtPath)
	if err != nil {
		return nil, fmt.Errorf("parse whisper output: %w", err)
	}
	if segments == nil {
		segments = []model.Segment{}
	}

	if len(segments) == 0 {
		t.logger.Warn(ctx, "No speech segments detected in the audio")
	} else {
		t.logger.Info(ctx, "Transcribed %d segments, total duration: %.1fs", len(segments), segments[len(segments)-1].End)
	}
	return segments, nil
}

// resolveModel picks the configured model, or the fallback model when the
// configured file is missing
func (t *implTranscriber) resolveModel(ctx context.Context) (string, error) {
	primary := t.cfg.Whisper.ModelPath
	if _, err := os.Stat(primary); err == nil {
		return primary, nil
	}

	fallback := t.cfg.Whisper.FallbackModelPath
	if fallback != "" {
		if _, err := os.Stat(fallback); err == nil {
			t.logger.Warn(ctx, "Whisper model %s not found, falling back to %s", primary, fallback)
			return fallback, nil
		}
		return "", fmt.Errorf("%w: neither %s nor fallback %s exists", ErrModelUnavailable, primary, fallback)
	}

	return "", fmt.Errorf("%w: %s does not exist", ErrModelUnavailable, primary)
}

// runWhisper invokes whisper.cpp and returns the path of the SRT it wrote
func (t *implTranscriber) runWhisper(ctx context.Context, modelPath, audioPath, outputPrefix string) (string, error) {
	t.logger.Info(ctx, "Starting transcription with %d threads (model %s)", t.cfg.Whisper.Threads, filepath.Base(modelPath))

	// -ml 0 / -mc 0 lift segment-length and context limits, -bo 5 is best-of-5 sampling
	args := []string{
		"-m", modelPath,
		"-f", audioPath,
		"-osrt",
		"-l", t.cfg.Whisper.Language,
		"-t", strconv.Itoa(t.cfg.Whisper.Threads),
		"-ml", "0",
		"-mc", "0",
		"-bo", "5",
	}
	if t.cfg.Whisper.Prompt != "" {
		args = append(args, "--prompt", t.cfg.Whisper.Prompt)
	}
	if !t.cfg.Whisper.UseGPU {
		args = append(args, "-ng")
	}
	args = append(args, "--output-file", outputPrefix)

	if _, err := t.executor.Execute(ctx, t.cfg.Whisper.BinaryPath, args...); err != nil {
		return "", fmt.Errorf("whisper transcribe: %w", err)
	}

	srtPath := outputPrefix + ".srt"
	if _, err := os.Stat(srtPath); err != nil {
		return "", fmt.Errorf("whisper produced no srt: %w", err)
	}
	return srtPath, nil
}

func (t *implTranscriber) cleanup(ctx context.Context, dir string) {
	if err := os.RemoveAll(dir); err != nil {
		t.logger.Warn(ctx, "Failed to cleanup temp dir %s: %v", dir, err)
	} else {
		t.logger.Debug(ctx, "Cleaned up temp dir: %s", dir)
	}
}
