package scene

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/meetscribe/pkg/executor"
)

type probeOutput struct {
	Streams []struct {
		Width        int    `json:"width"`
		Height       int    `json:"height"`
		RFrameRate   string `json:"r_frame_rate"`
		AvgFrameRate string `json:"avg_frame_rate"`
		NbFrames     string `json:"nb_frames"`
		Duration     string `json:"duration"`
	} `json:"streams"`
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Probe reads the first video stream's geometry, frame rate and length with
// ffprobe. Any failure is reported as ErrSourceUnavailable.
func Probe(ctx context.Context, exec executor.Executor, ffprobe, path string) (StreamInfo, error) {
	if _, err := os.Stat(path); err != nil {
		return StreamInfo{}, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	out, err := exec.Execute(ctx, ffprobe,
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height,r_frame_rate,avg_frame_rate,nb_frames,duration:format=duration",
		"-of", "json",
		path,
	)
	if err != nil {
		return StreamInfo{}, fmt.Errorf("%w: ffprobe %s: %v", ErrSourceUnavailable, path, err)
	}

	return parseProbe(out)
}

func parseProbe(raw string) (StreamInfo, error) {
	var po probeOutput
	if err := json.Unmarshal([]byte(raw), &po); err != nil {
		return StreamInfo{}, fmt.Errorf("%w: parse ffprobe output: %v", ErrSourceUnavailable, err)
	}
	if len(po.Streams) == 0 {
		return StreamInfo{}, fmt.Errorf("%w: no video stream", ErrSourceUnavailable)
	}

	st := po.Streams[0]
	if st.Width <= 0 || st.Height <= 0 {
		return StreamInfo{}, fmt.Errorf("%w: invalid dimensions %dx%d", ErrSourceUnavailable, st.Width, st.Height)
	}

	info := StreamInfo{
		Width:  st.Width,
		Height: st.Height,
		FPS:    parseRate(st.AvgFrameRate),
	}
	if info.FPS <= 0 {
		info.FPS = parseRate(st.RFrameRate)
	}

	info.Duration = parseFloat(st.Duration)
	if info.Duration <= 0 {
		info.Duration = parseFloat(po.Format.Duration)
	}

	if n, err := strconv.Atoi(strings.TrimSpace(st.NbFrames)); err == nil && n > 0 {
		info.TotalFrames = n
	} else if info.Duration > 0 && info.FPS > 0 {
		info.TotalFrames = int(math.Round(info.Duration * info.FPS))
	}

	return info, nil
}

// parseRate parses ffprobe rationals such as "30000/1001"
func parseRate(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	num, den, found := strings.Cut(s, "/")
	if !found {
		return parseFloat(s)
	}

	n := parseFloat(num)
	d := parseFloat(den)
	if d == 0 {
		return 0
	}
	return n / d
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
