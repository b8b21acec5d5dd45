package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/nguyentantai21042004/meetscribe/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsVideoFile(t *testing.T) {
	assert.True(t, isVideoFile("/in/standup.MP4"))
	assert.True(t, isVideoFile("talk.webm"))
	assert.False(t, isVideoFile("notes.txt"))
	assert.False(t, isVideoFile("noext"))
}

func TestWaitStable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.mp4")
	require.NoError(t, os.WriteFile(path, []byte("data"), 0o644))
	require.NoError(t, waitStable(context.Background(), path, 5*time.Millisecond))

	assert.Error(t, waitStable(context.Background(), filepath.Join(t.TempDir(), "gone.mp4"), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, waitStable(ctx, path, time.Second), context.Canceled)
}

func TestWatcherHandlesNewVideos(t *testing.T) {
	dir := t.TempDir()

	var mu sync.Mutex
	var handled []string
	done := make(chan struct{}, 4)
	handler := func(ctx context.Context, path string) error {
		mu.Lock()
		handled = append(handled, filepath.Base(path))
		mu.Unlock()
		done <- struct{}{}
		return nil
	}

	w, err := New(dir, handler, logger.NewNop(), 1)
	require.NoError(t, err)
	defer w.Stop()
	w.(*implWatcher).settle = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- w.Start(ctx) }()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "standup.mp4"), []byte("video"), 0o644))

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("handler was not called")
	}

	cancel()
	assert.ErrorIs(t, <-errCh, context.Canceled)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"standup.mp4"}, handled)
}

func TestNewMissingDir(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing"), nil, logger.NewNop(), 0)
	assert.Error(t, err)
}
