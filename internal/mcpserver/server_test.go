package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/nguyentantai21042004/meetscribe/internal/logger"
	"github.com/nguyentantai21042004/meetscribe/internal/processor"
	"github.com/nguyentantai21042004/meetscribe/internal/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProcessor struct {
	req    processor.Request
	events []scene.Event
	spikes []scene.Event
	err    error
}

func (f *fakeProcessor) Process(ctx context.Context, req processor.Request) (*processor.Result, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return &processor.Result{
		RunID:    "run-1",
		Video:    "/v/standup.mp4",
		Report:   "/r/standup_report.docx",
		Events:   f.events,
		Duration: 2 * time.Second,
	}, nil
}

func (f *fakeProcessor) DetectScenes(ctx context.Context, videoPath string) ([]scene.Event, error) {
	return f.events, f.err
}

func (f *fakeProcessor) DetectSpikes(ctx context.Context, videoPath string) ([]scene.Event, error) {
	return f.spikes, f.err
}

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestDetectScenes(t *testing.T) {
	proc := &fakeProcessor{
		events: []scene.Event{{Timestamp: 2, FramePath: "/f/frame_000060.jpg", Score: 0.9, FrameIndex: 60}},
		spikes: []scene.Event{},
	}
	s := New(proc, "test", logger.NewNop())

	res, err := s.handleDetectScenes(context.Background(), callRequest("detect_scenes", map[string]any{"path": "/v/a.mp4"}))
	require.NoError(t, err)
	assert.False(t, res.IsError)

	var events []scene.Event
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &events))
	assert.Equal(t, proc.events, events)

	res, err = s.handleDetectScenes(context.Background(), callRequest("detect_scenes", map[string]any{"path": "/v/a.mp4", "spikes": true}))
	require.NoError(t, err)
	assert.Equal(t, "[]", resultText(t, res))
}

func TestDetectScenesMissingPath(t *testing.T) {
	s := New(&fakeProcessor{}, "test", logger.NewNop())

	res, err := s.handleDetectScenes(context.Background(), callRequest("detect_scenes", map[string]any{}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestDetectScenesFailure(t *testing.T) {
	s := New(&fakeProcessor{err: scene.ErrSourceUnavailable}, "test", logger.NewNop())

	res, err := s.handleDetectScenes(context.Background(), callRequest("detect_scenes", map[string]any{"path": "/nope.mp4"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestProcessVideo(t *testing.T) {
	proc := &fakeProcessor{events: []scene.Event{{Timestamp: 1}}}
	s := New(proc, "test", logger.NewNop())

	res, err := s.handleProcessVideo(context.Background(), callRequest("process_video", map[string]any{
		"source":   "https://lms.example.com/1",
		"type":     "private",
		"username": "ana",
		"password": "pw",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	assert.Equal(t, "private", string(proc.req.Source.Kind))
	assert.Equal(t, "ana", proc.req.Source.Username)

	var out processOutput
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &out))
	assert.Equal(t, "run-1", out.RunID)
	assert.Equal(t, 1, out.SceneEvents)
	assert.Equal(t, 2.0, out.Seconds)
}

func TestProcessVideoDefaultsToAuto(t *testing.T) {
	proc := &fakeProcessor{}
	s := New(proc, "test", logger.NewNop())

	_, err := s.handleProcessVideo(context.Background(), callRequest("process_video", map[string]any{"source": "a.mp4"}))
	require.NoError(t, err)
	assert.Equal(t, "auto", string(proc.req.Source.Kind))
}

func TestProcessVideoFailure(t *testing.T) {
	s := New(&fakeProcessor{err: errors.New("boom")}, "test", logger.NewNop())

	res, err := s.handleProcessVideo(context.Background(), callRequest("process_video", map[string]any{"source": "a.mp4"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}
