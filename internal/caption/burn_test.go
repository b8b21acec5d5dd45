package caption

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/nguyentantai21042004/meetscribe/internal/config"
	"github.com/nguyentantai21042004/meetscribe/internal/logger"
	"github.com/nguyentantai21042004/meetscribe/pkg/executor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	dir  string
	name string
	args []string
}

type fakeExecutor struct {
	mu          sync.Mutex
	available   map[string]bool
	failEncoder string
	calls       []call
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	return f.ExecuteInDir(ctx, "", name, args...)
}

func (f *fakeExecutor) ExecuteInDir(ctx context.Context, dir, name string, args ...string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, call{dir: dir, name: name, args: args})
	f.mu.Unlock()

	if !f.available[name] {
		return "", errors.New("executable file not found")
	}
	if len(args) == 1 && args[0] == "-version" {
		return "ffmpeg version 7.1", nil
	}

	for i, a := range args {
		if a == "-c:v" && args[i+1] == f.failEncoder {
			return "", errors.New("encoder init failed")
		}
	}

	// write the last argument as the produced file
	out := args[len(args)-1]
	if !filepath.IsAbs(out) {
		out = filepath.Join(dir, out)
	}
	return "", os.WriteFile(out, []byte("encoded"), 0o644)
}

func (f *fakeExecutor) Stream(ctx context.Context, name string, args ...string) (executor.Process, error) {
	return nil, errors.New("not supported")
}

func setup(t *testing.T) (*config.Config, string, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Paths.Captioned = filepath.Join(dir, "captioned")
	cfg.Paths.Temp = filepath.Join(dir, "temp")
	cfg.FFmpeg.Encoder = "h264_videotoolbox"

	video := filepath.Join(dir, "standup.mp4")
	srt := filepath.Join(dir, "standup.srt")
	require.NoError(t, os.WriteFile(video, []byte("original"), 0o644))
	require.NoError(t, os.WriteFile(srt, []byte("1\n00:00:00,000 --> 00:00:01,000\nhi\n\n"), 0o644))
	return cfg, video, srt
}

func TestBurnHardwareEncoder(t *testing.T) {
	cfg, video, srt := setup(t)
	cfg.FFmpeg.BinaryPaths = []string{"ffmpeg"}
	exec := &fakeExecutor{available: map[string]bool{"ffmpeg": true}}

	out, err := New(cfg, exec, logger.NewNop()).Burn(context.Background(), video, srt)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cfg.Paths.Captioned, "standup_captioned.mp4"), out)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "encoded", string(data))

	last := exec.calls[len(exec.calls)-1]
	assert.Contains(t, last.args, "subtitles=subtitle.ass")
	assert.Contains(t, last.args, "h264_videotoolbox")
	assert.NotEmpty(t, last.dir)

	entries, _ := os.ReadDir(cfg.Paths.Temp)
	assert.Empty(t, entries)
}

func TestBurnSoftwareFallback(t *testing.T) {
	cfg, video, srt := setup(t)
	cfg.FFmpeg.BinaryPaths = []string{"ffmpeg"}
	exec := &fakeExecutor{available: map[string]bool{"ffmpeg": true}, failEncoder: "h264_videotoolbox"}

	out, err := New(cfg, exec, logger.NewNop()).Burn(context.Background(), video, srt)
	require.NoError(t, err)

	last := exec.calls[len(exec.calls)-1]
	assert.Contains(t, last.args, "libx264")
	_, err = os.Stat(out)
	assert.NoError(t, err)
}

func TestBurnCandidateChain(t *testing.T) {
	cfg, video, srt := setup(t)
	cfg.FFmpeg.BinaryPaths = []string{"/opt/missing/ffmpeg", "/usr/local/bin/ffmpeg"}
	exec := &fakeExecutor{available: map[string]bool{"/usr/local/bin/ffmpeg": true}}

	_, err := New(cfg, exec, logger.NewNop()).Burn(context.Background(), video, srt)
	require.NoError(t, err)

	assert.Equal(t, "/usr/local/bin/ffmpeg", exec.calls[len(exec.calls)-1].name)
}

func TestBurnCopiesWhenFFmpegMissing(t *testing.T) {
	cfg, video, srt := setup(t)
	cfg.FFmpeg.BinaryPaths = []string{"ffmpeg", "/usr/bin/ffmpeg"}
	exec := &fakeExecutor{available: map[string]bool{}}

	out, err := New(cfg, exec, logger.NewNop()).Burn(context.Background(), video, srt)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "original", string(data))
}

func TestSemaphore(t *testing.T) {
	sem := newSemaphore(1)
	release, err := sem.acquire(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sem.busy())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = sem.acquire(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	release()
	assert.Equal(t, 0, sem.busy())
}
