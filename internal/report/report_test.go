package report

import (
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/meetscribe/internal/config"
	"github.com/nguyentantai21042004/meetscribe/internal/logger"
	"github.com/nguyentantai21042004/meetscribe/internal/model"
	"github.com/nguyentantai21042004/meetscribe/internal/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyPoints(t *testing.T) {
	long := strings.Repeat("word ", 55) + ". second sentence. third"
	segs := []model.Segment{
		{Start: 0, End: 1, Text: "ok"},
		{Start: 1, End: 4, Text: "we need to ship the release on friday"},
		{Start: 4, End: 9, Text: long},
		{Start: 9, End: 10, Text: "exactly twenty chars"},
	}

	points := KeyPoints(segs, 5)
	require.Len(t, points, 2)
	assert.Equal(t, 1.0, points[0].Timestamp)
	assert.Equal(t, "we need to ship the release on friday", points[0].Summary)
	assert.True(t, strings.HasSuffix(points[1].Summary, "..."))
	assert.NotContains(t, points[1].Summary, "second sentence")
}

func TestKeyPointsLimit(t *testing.T) {
	var segs []model.Segment
	for i := 0; i < 8; i++ {
		segs = append(segs, model.Segment{Start: float64(i), End: float64(i + 1), Text: "a sufficiently long sentence here"})
	}

	points := KeyPoints(segs, 5)
	require.Len(t, points, 5)
	assert.Equal(t, 4.0, points[4].Timestamp)
}

func TestKeyPointsCountsCharacters(t *testing.T) {
	segs := []model.Segment{
		// 18 characters, 30 bytes
		{Start: 1, End: 2, Text: "Được rồi, đồng ý ạ"},
		{Start: 3, End: 5, Text: "Chúng ta sẽ ra mắt vào thứ hai"},
	}

	points := KeyPoints(segs, 5)
	require.Len(t, points, 1)
	assert.Equal(t, 3.0, points[0].Timestamp)
}

func TestTranscriptNear(t *testing.T) {
	segs := []model.Segment{
		{Start: 1, End: 2, Text: " hello "},
		{Start: 4, End: 5, Text: "team"},
		{Start: 8.5, End: 9, Text: "later"},
	}

	assert.Equal(t, "hello team", TranscriptNear(segs, 3, 3, 40))
	assert.Equal(t, "team later", TranscriptNear(segs, 7, 3, 40))
	assert.Equal(t, noSpeechAt, TranscriptNear(segs, 30, 3, 40))
	assert.Equal(t, "hello...", TranscriptNear(segs, 3, 3, 1))
}

func writeJPEG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, jpeg.Encode(f, img, nil))
}

func TestBuild(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Paths.Reports = filepath.Join(dir, "reports")

	frame := filepath.Join(dir, "frame_000090.jpg")
	writeJPEG(t, frame, 64, 36)

	in := Input{
		VideoPath: "/videos/weekly sync.mp4",
		Events: []scene.Event{
			{Timestamp: 3, FramePath: frame, Score: 0.8, FrameIndex: 90},
			{Timestamp: 6, FramePath: filepath.Join(dir, "missing.jpg"), Score: 0.6, FrameIndex: 180},
		},
		Segments: []model.Segment{{Start: 2, End: 4, Text: "let us review the roadmap for next quarter"}},
		Summary:  "## Decisions\n- ship **v2**",
	}

	path, err := New(cfg, logger.NewNop()).Build(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cfg.Paths.Reports, "weekly sync_report.docx"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "PK"), "docx is a zip archive")

	_, eventsPath := Paths(cfg.Paths.Reports, in.VideoPath)
	events, err := ReadEvents(eventsPath)
	require.NoError(t, err)
	assert.Equal(t, in.Events, events)
}

func TestBuildNoEvents(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.Reports = t.TempDir()

	path, err := New(cfg, logger.NewNop()).Build(context.Background(), Input{VideoPath: "silent.mp4"})
	require.NoError(t, err)
	assert.FileExists(t, path)

	raw, err := os.ReadFile(filepath.Join(cfg.Paths.Reports, "silent_events.json"))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}

func TestCleanMarkdownInline(t *testing.T) {
	assert.Equal(t, "bold code under", cleanMarkdownInline("**bold** `code` __under__"))
}
