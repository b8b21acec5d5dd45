package scene

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
)

// DetectSpikes flags frames whose mean absolute difference from the previous
// frame exceeds threshold (on a 0..1 scale). It catches small transient
// changes such as clicks and cursor jumps that SSIM averages away. There is
// no interval gate; artifacts are written as click_%06d.jpg.
func DetectSpikes(ctx context.Context, src FrameSource, threshold float64, outputDir string) ([]Event, error) {
	info, err := src.Open(ctx)
	if err != nil {
		src.Close()
		if errors.Is(err, ErrSourceUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer src.Close()

	fps := info.FPS
	if fps <= 0 || math.IsNaN(fps) || math.IsInf(fps, 0) {
		fps = DefaultFPS
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("create frames dir: %w", err)
	}

	events := []Event{}
	var prev *Frame
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		frame, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if errors.Is(err, ErrDecode) || ctx.Err() != nil {
				return nil, err
			}
			return nil, fmt.Errorf("%w: %v", ErrDecode, err)
		}
		if err := checkFrame(frame, prev); err != nil {
			return nil, err
		}

		if prev != nil {
			mag := meanAbsDiff(prev.Gray, frame.Gray)
			if mag > threshold {
				path, err := writeFrame(outputDir, clickPrefix, frame, 90)
				if err != nil {
					return nil, fmt.Errorf("persist frame %d: %w", frame.Index, err)
				}
				events = append(events, Event{
					Timestamp:  float64(frame.Index) / fps,
					FramePath:  path,
					Score:      mag,
					FrameIndex: frame.Index,
				})
			}
		}
		prev = frame
	}

	return events, nil
}
