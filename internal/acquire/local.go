package acquire

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/nguyentantai21042004/meetscribe/internal/logger"
)

var videoExtensions = []string{".mp4", ".mov", ".avi", ".mkv", ".wmv", ".flv", ".webm"}

type localResolver struct {
	logger logger.Logger
}

func (r *localResolver) Name() string { return "local" }

func (r *localResolver) Resolve(ctx context.Context, req Request) (string, error) {
	info, err := os.Stat(req.Source)
	if err != nil {
		return "", fmt.Errorf("video file not found: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory", req.Source)
	}

	ext := strings.ToLower(filepath.Ext(req.Source))
	if !slices.Contains(videoExtensions, ext) {
		r.logger.Warn(ctx, "File format %q may not be supported, expected one of %v", ext, videoExtensions)
	}
	r.logger.Info(ctx, "Video file size: %.1f MB", float64(info.Size())/(1024*1024))

	abs, err := filepath.Abs(req.Source)
	if err != nil {
		return "", fmt.Errorf("resolve path: %w", err)
	}
	return abs, nil
}
