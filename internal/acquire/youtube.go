package acquire

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/lrstanley/go-ytdlp"
	"github.com/nguyentantai21042004/meetscribe/internal/config"
	"github.com/nguyentantai21042004/meetscribe/internal/logger"
)

var youtubeExtensions = []string{".mp4", ".webm", ".mkv"}

// downloadFunc runs one yt-dlp download of url with the given format into the
// output template
type downloadFunc func(ctx context.Context, format, output, url string) error

type youtubeResolver struct {
	formats  []string
	dir      string
	logger   logger.Logger
	download downloadFunc
}

func newYouTubeResolver(cfg config.AcquireConfig, log logger.Logger) *youtubeResolver {
	return &youtubeResolver{
		formats:  cfg.YouTubeFormats,
		dir:      cfg.DownloadDir,
		logger:   log,
		download: runYtdlp,
	}
}

func (r *youtubeResolver) Name() string { return "youtube" }

// Resolve tries each configured format in order and returns the first file
// yt-dlp produces
func (r *youtubeResolver) Resolve(ctx context.Context, req Request) (string, error) {
	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return "", fmt.Errorf("create download dir: %w", err)
	}

	id := videoID(req.Source)
	output := filepath.Join(r.dir, id+".%(ext)s")

	var errs []error
	for _, format := range r.formats {
		r.logger.Info(ctx, "Downloading with yt-dlp (format %s)", format)
		if err := r.download(ctx, format, output, req.Source); err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			r.logger.Warn(ctx, "yt-dlp format %s failed: %v", format, err)
			errs = append(errs, fmt.Errorf("format %s: %w", format, err))
			continue
		}

		if file, ok := findDownload(r.dir, id); ok {
			return file, nil
		}
		errs = append(errs, fmt.Errorf("format %s: no video file for %s in %s", format, id, r.dir))
	}

	return "", fmt.Errorf("all youtube formats failed: %w", errors.Join(errs...))
}

// videoID takes the v= query parameter, else the last path segment
func videoID(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "video"
	}
	if v := u.Query().Get("v"); v != "" {
		return v
	}
	if base := path.Base(u.Path); base != "" && base != "/" && base != "." {
		return base
	}
	return "video"
}

func findDownload(dir, id string) (string, bool) {
	matches, _ := filepath.Glob(filepath.Join(dir, id+".*"))
	for _, m := range matches {
		if slices.Contains(youtubeExtensions, strings.ToLower(filepath.Ext(m))) {
			return m, true
		}
	}
	return "", false
}

var (
	installOnce sync.Once
	installErr  error
)

func runYtdlp(ctx context.Context, format, output, url string) error {
	installOnce.Do(func() {
		_, installErr = ytdlp.Install(ctx, nil)
	})
	if installErr != nil {
		return fmt.Errorf("install yt-dlp: %w", installErr)
	}

	result, err := ytdlp.New().
		Format(format).
		NoPlaylist().
		Output(output).
		Run(ctx, url)
	if err != nil {
		if result != nil {
			return fmt.Errorf("yt-dlp failed: %w\nOutput: %s", err, result.Stderr)
		}
		return fmt.Errorf("yt-dlp failed: %w", err)
	}
	return nil
}
