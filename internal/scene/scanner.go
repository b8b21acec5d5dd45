package scene

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/nguyentantai21042004/meetscribe/internal/metrics"
)

// Scan walks the source once and returns scene-change events in timestamp
// order. The source is always closed before Scan returns.
func (s *implScanner) Scan(ctx context.Context, src FrameSource) ([]Event, error) {
	start := time.Now()
	defer func() {
		metrics.ScanDuration.Observe(time.Since(start).Seconds())
	}()

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
		s.logger.Warn(ctx, "Unknown frame rate, assuming %.1f fps", DefaultFPS)
		fps = DefaultFPS
	}

	if err := os.MkdirAll(s.opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("create frames dir: %w", err)
	}

	s.logger.Info(ctx, "Scanning for scene changes: %.2f fps, %d frames, threshold %.3f, min interval %.2fs",
		fps, info.TotalFrames, s.opts.Threshold, s.opts.MinInterval)

	var bar ProgressBar
	if s.opts.NewProgress != nil {
		bar = s.opts.NewProgress(info.TotalFrames)
		defer bar.Finish()
	}

	events := []Event{}
	lastEventTime := math.Inf(-1)
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
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			if errors.Is(err, ErrDecode) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: %v", ErrDecode, err)
		}

		if err := checkFrame(frame, prev); err != nil {
			return nil, err
		}

		metrics.FramesScannedTotal.Inc()
		if bar != nil {
			bar.Add(1)
		}

		if prev == nil {
			prev = frame
			continue
		}

		score := Dissimilarity(prev.Gray, frame.Gray, frame.Width, frame.Height)
		ts := float64(frame.Index) / fps

		if score >= s.opts.Threshold && ts-lastEventTime >= s.opts.MinInterval {
			path, err := writeFrame(s.opts.OutputDir, framePrefix, frame, s.opts.JPEGQuality)
			if err != nil {
				return nil, fmt.Errorf("persist frame %d: %w", frame.Index, err)
			}

			events = append(events, Event{
				Timestamp:  ts,
				FramePath:  path,
				Score:      score,
				FrameIndex: frame.Index,
			})
			lastEventTime = ts
			metrics.SceneEventsTotal.Inc()

			s.logger.Debug(ctx, "Scene change at %.2fs (frame %d, score %.3f)", ts, frame.Index, score)
		}

		prev = frame
	}

	s.logger.Info(ctx, "Found %d scene events", len(events))
	return events, nil
}

// checkFrame rejects malformed rasters and mid-stream size changes
func checkFrame(cur, prev *Frame) error {
	if cur == nil || cur.Width <= 0 || cur.Height <= 0 || len(cur.Gray) != cur.Width*cur.Height {
		return fmt.Errorf("%w: malformed frame", ErrDecode)
	}
	if prev != nil && (prev.Width != cur.Width || prev.Height != cur.Height) {
		return fmt.Errorf("%w: frame %d is %dx%d, previous was %dx%d",
			ErrDecode, cur.Index, cur.Width, cur.Height, prev.Width, prev.Height)
	}
	return nil
}
