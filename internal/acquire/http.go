package acquire

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/nguyentantai21042004/meetscribe/internal/config"
	"github.com/nguyentantai21042004/meetscribe/internal/logger"
)

const defaultFilename = "downloaded_video.mp4"

var downloadExtensions = []string{".mp4", ".mov", ".avi", ".mkv"}

// StatusError is a non-2xx download response
type StatusError struct {
	StatusCode int
	retryAfter string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

type httpResolver struct {
	client     *http.Client
	userAgent  string
	dir        string
	maxRetries int
	baseDelay  time.Duration
	logger     logger.Logger
}

func newHTTPResolver(cfg config.AcquireConfig, timeout time.Duration, log logger.Logger) *httpResolver {
	return &httpResolver{
		client:     &http.Client{Timeout: timeout},
		userAgent:  cfg.UserAgent,
		dir:        cfg.DownloadDir,
		maxRetries: cfg.MaxRetries,
		baseDelay:  time.Second,
		logger:     log,
	}
}

func (r *httpResolver) Name() string { return "http" }

func (r *httpResolver) Resolve(ctx context.Context, req Request) (string, error) {
	return r.download(ctx, req.Source, "", nil)
}

// download fetches rawURL into the download dir. An empty filename is derived
// from the URL path.
func (r *httpResolver) download(ctx context.Context, rawURL, filename string, cookies []*http.Cookie) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}
	if filename == "" {
		filename = filenameFromURL(u)
	}

	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return "", fmt.Errorf("create download dir: %w", err)
	}
	dest := filepath.Join(r.dir, filename)

	var lastErr *StatusError
	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		if attempt > 0 {
			wait := r.backoffDelay(attempt, lastErr)
			r.logger.Warn(ctx, "Download attempt %d failed (%v), retrying in %s", attempt, lastErr, wait)
			t := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				t.Stop()
				return "", ctx.Err()
			case <-t.C:
			}
		}

		err := r.fetch(ctx, u.String(), dest, cookies)
		if err == nil {
			r.logger.Info(ctx, "Saved to %s", dest)
			return dest, nil
		}

		var statusErr *StatusError
		if !errors.As(err, &statusErr) {
			return "", err
		}
		if statusErr.StatusCode != http.StatusTooManyRequests && statusErr.StatusCode < 500 {
			return "", err
		}
		lastErr = statusErr
	}

	return "", fmt.Errorf("download failed after %d retries: %w", r.maxRetries, lastErr)
}

// fetch performs one GET, streaming the body into dest via a .part file
func (r *httpResolver) fetch(ctx context.Context, rawURL, dest string, cookies []*http.Cookie) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", r.userAgent)
	for _, c := range cookies {
		req.AddCookie(c)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 512))
		return &StatusError{StatusCode: resp.StatusCode, retryAfter: resp.Header.Get("Retry-After")}
	}

	part := dest + ".part"
	f, err := os.Create(part)
	if err != nil {
		return fmt.Errorf("create %s: %w", part, err)
	}

	n, err := io.Copy(f, resp.Body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(part)
		return fmt.Errorf("write %s: %w", dest, err)
	}
	if err := os.Rename(part, dest); err != nil {
		os.Remove(part)
		return fmt.Errorf("rename %s: %w", part, err)
	}

	r.logger.Debug(ctx, "Downloaded %.1f MB", float64(n)/(1024*1024))
	return nil
}

// backoffDelay honours Retry-After on 429, otherwise doubles from baseDelay
func (r *httpResolver) backoffDelay(attempt int, lastErr *StatusError) time.Duration {
	if lastErr != nil && lastErr.StatusCode == http.StatusTooManyRequests && lastErr.retryAfter != "" {
		if secs, err := strconv.Atoi(lastErr.retryAfter); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return r.baseDelay * time.Duration(1<<(attempt-1))
}

func filenameFromURL(u *url.URL) string {
	name := path.Base(u.Path)
	if name == "" || name == "." || name == "/" {
		return defaultFilename
	}
	if !slices.Contains(downloadExtensions, strings.ToLower(path.Ext(name))) {
		name += ".mp4"
	}
	return name
}
