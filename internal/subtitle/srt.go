package subtitle

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/meetscribe/internal/model"
)

// PlaceholderText is the single cue written for a video without speech
const PlaceholderText = "[No speech detected in video]"

var timingRe = regexp.MustCompile(`^(\d+):(\d{2}):(\d{2})[,.](\d{1,3})\s*-->\s*(\d+):(\d{2}):(\d{2})[,.](\d{1,3})`)

// Format renders seconds as an SRT timestamp, HH:MM:SS,mmm
func Format(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	ms := int64(math.Round(seconds * 1000))
	h := ms / 3_600_000
	m := (ms % 3_600_000) / 60_000
	s := (ms % 60_000) / 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms%1000)
}

// Write encodes segments as SRT. With no segments a single placeholder cue
// covering the first five seconds is written so players still load the file.
func Write(w io.Writer, segments []model.Segment) error {
	bw := bufio.NewWriter(w)

	if len(segments) == 0 {
		segments = []model.Segment{{Start: 0, End: 5, Text: PlaceholderText}}
	}

	for i, seg := range segments {
		if _, err := fmt.Fprintf(bw, "%d\n%s --> %s\n%s\n\n", i+1, Format(seg.Start), Format(seg.End), CleanText(seg.Text)); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// WriteFile writes segments to path, creating parent directories
func WriteFile(path string, segments []model.Segment) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create transcript dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create srt: %w", err)
	}

	if err := Write(f, segments); err != nil {
		f.Close()
		return fmt.Errorf("write srt: %w", err)
	}
	return f.Close()
}

// CleanText trims a cue and folds embedded newlines into spaces
func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.TrimSpace(strings.ReplaceAll(s, "\n", " "))
}

// PlainText joins cue texts into one line per cue, dropping the placeholder
func PlainText(segments []model.Segment) string {
	lines := make([]string, 0, len(segments))
	for _, seg := range segments {
		text := CleanText(seg.Text)
		if text == "" || text == PlaceholderText {
			continue
		}
		lines = append(lines, text)
	}
	return strings.Join(lines, "\n")
}

// Parse decodes SRT cues. Blocks without a timing line are skipped and
// multi-line cue text is joined with spaces.
func Parse(r io.Reader) ([]model.Segment, error) {
	var (
		segments []model.Segment
		current  *model.Segment
		text     []string
	)

	flush := func() {
		if current != nil {
			current.Text = strings.Join(text, " ")
			if current.Text != "" {
				segments = append(segments, *current)
			}
		}
		current = nil
		text = text[:0]
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(strings.TrimPrefix(sc.Text(), "\ufeff"))

		if line == "" {
			flush()
			continue
		}

		if m := timingRe.FindStringSubmatch(line); m != nil {
			flush()
			current = &model.Segment{
				Start: clock(m[1], m[2], m[3], m[4]),
				End:   clock(m[5], m[6], m[7], m[8]),
			}
			continue
		}

		if current == nil {
			// cue number or stray text before a timing line
			continue
		}
		text = append(text, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read srt: %w", err)
	}
	flush()

	return segments, nil
}

// ParseFile decodes the SRT file at path
func ParseFile(path string) ([]model.Segment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open srt: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

func clock(h, m, s, frac string) float64 {
	hh, _ := strconv.Atoi(h)
	mm, _ := strconv.Atoi(m)
	ss, _ := strconv.Atoi(s)
	for len(frac) < 3 {
		frac += "0"
	}
	ms, _ := strconv.Atoi(frac)
	return float64(hh*3600+mm*60+ss) + float64(ms)/1000
}
