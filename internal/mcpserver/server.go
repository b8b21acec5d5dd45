package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/nguyentantai21042004/meetscribe/internal/acquire"
	"github.com/nguyentantai21042004/meetscribe/internal/logger"
	"github.com/nguyentantai21042004/meetscribe/internal/processor"
)

// Server exposes the pipeline as MCP tools
type Server struct {
	proc      processor.Processor
	logger    logger.Logger
	mcpServer *server.MCPServer
}

func New(proc processor.Processor, version string, log logger.Logger) *Server {
	mcpServer := server.NewMCPServer(
		"meetscribe",
		version,
		server.WithToolCapabilities(true),
	)

	s := &Server{
		proc:      proc,
		logger:    log,
		mcpServer: mcpServer,
	}
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("detect_scenes",
		mcp.WithDescription("Detect visual scene changes (slide switches, screen-share changes) in a local video file. Returns a JSON list of events with timestamp in seconds, the saved frame path and the dissimilarity score."),
		mcp.WithString("path",
			mcp.Description("Path of a local video file"),
			mcp.Required(),
		),
		mcp.WithBoolean("spikes",
			mcp.Description("Detect short click/cursor spikes instead of scene changes"),
		),
	), s.handleDetectScenes)

	s.mcpServer.AddTool(mcp.NewTool("process_video",
		mcp.WithDescription("Run the full meeting pipeline on a video: fetch it, detect scene changes, transcribe speech, burn captions and write a DOCX report. Long running. Returns the output paths as JSON."),
		mcp.WithString("source",
			mcp.Description("Local path, YouTube/HTTP/Google Drive URL or s3://bucket/key"),
			mcp.Required(),
		),
		mcp.WithString("type",
			mcp.Description("Source type: auto, local, youtube, http, private, gdrive or s3"),
			mcp.Enum("auto", "local", "youtube", "http", "private", "gdrive", "s3"),
		),
		mcp.WithString("username",
			mcp.Description("Username for private platforms"),
		),
		mcp.WithString("password",
			mcp.Description("Password for private platforms"),
		),
	), s.handleProcessVideo)
}

func (s *Server) handleDetectScenes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path parameter is required and must be a string"), nil
	}

	detect := s.proc.DetectScenes
	if request.GetBool("spikes", false) {
		detect = s.proc.DetectSpikes
	}

	events, err := detect(ctx, path)
	if err != nil {
		return mcp.NewToolResultErrorFromErr("scene detection failed", err), nil
	}
	return jsonResult(events)
}

// processOutput is the process_video payload; the transcript is left out
type processOutput struct {
	RunID       string   `json:"run_id"`
	Video       string   `json:"video"`
	Captioned   string   `json:"captioned"`
	Subtitles   string   `json:"subtitles"`
	Report      string   `json:"report"`
	SceneEvents int      `json:"scene_events"`
	Segments    int      `json:"segments"`
	Summary     string   `json:"summary,omitempty"`
	Published   []string `json:"published,omitempty"`
	Seconds     float64  `json:"seconds"`
}

func (s *Server) handleProcessVideo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	source, err := request.RequireString("source")
	if err != nil {
		return mcp.NewToolResultError("source parameter is required and must be a string"), nil
	}

	res, err := s.proc.Process(ctx, processor.Request{Source: acquire.Request{
		Source:   source,
		Kind:     acquire.Kind(request.GetString("type", string(acquire.KindAuto))),
		Username: request.GetString("username", ""),
		Password: request.GetString("password", ""),
	}})
	if err != nil {
		return mcp.NewToolResultErrorFromErr("pipeline failed", err), nil
	}

	return jsonResult(processOutput{
		RunID:       res.RunID,
		Video:       res.Video,
		Captioned:   res.Captioned,
		Subtitles:   res.SRT,
		Report:      res.Report,
		SceneEvents: len(res.Events),
		Segments:    len(res.Segments),
		Summary:     res.Summary,
		Published:   res.Published,
		Seconds:     res.Duration.Seconds(),
	})
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

// Start serves over stdio, or streamable HTTP on port when transport is "http"
func (s *Server) Start(ctx context.Context, transport string, port int) error {
	if transport == "http" {
		httpServer := server.NewStreamableHTTPServer(s.mcpServer)
		s.logger.Info(ctx, "MCP server listening on :%d", port)
		go func() {
			<-ctx.Done()
			httpServer.Shutdown(context.Background())
		}()
		return httpServer.Start(fmt.Sprintf(":%d", port))
	}

	return server.ServeStdio(s.mcpServer)
}
