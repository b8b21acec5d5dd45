package acquire

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/nguyentantai21042004/meetscribe/internal/config"
	"github.com/nguyentantai21042004/meetscribe/internal/logger"
)

// findVideoJS returns the first <video> source, else the first link to a
// video file, else ""
const findVideoJS = `(() => {
	const v = document.querySelector('video');
	if (v) {
		const src = v.currentSrc || v.src || (v.querySelector('source[src]') || {}).src;
		if (src) return src;
	}
	const a = Array.from(document.querySelectorAll('a[href]'))
		.find(a => /\.(mp4|mov|avi)(\?|#|$)/i.test(a.href));
	return a ? a.href : '';
})()`

// pageSession logs into the page and reports the video URL it found together
// with the session cookies
type pageSession func(ctx context.Context, req Request) (string, []*http.Cookie, error)

type privateResolver struct {
	http    *httpResolver
	logger  logger.Logger
	session pageSession
}

func newPrivateResolver(cfg config.AcquireConfig, web *httpResolver, log logger.Logger) *privateResolver {
	b := &browser{cfg: cfg.Private, logger: log}
	return &privateResolver{http: web, logger: log, session: b.session}
}

func (r *privateResolver) Name() string { return "private" }

func (r *privateResolver) Resolve(ctx context.Context, req Request) (string, error) {
	if req.Username == "" || req.Password == "" {
		return "", errors.New("username and password required for private platform access")
	}

	src, cookies, err := r.session(ctx, req)
	if err != nil {
		return "", err
	}
	if src == "" {
		return "", errors.New("could not locate video source on the page")
	}
	if strings.HasPrefix(src, "blob:") {
		return "", fmt.Errorf("video is served from a blob url (%s) and cannot be downloaded directly", src)
	}

	r.logger.Info(ctx, "Found video source: %s", src)
	return r.http.download(ctx, src, "", cookies)
}

type browser struct {
	cfg    config.PrivateSiteConfig
	logger logger.Logger
}

func (b *browser) session(ctx context.Context, req Request) (string, []*http.Cookie, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", b.cfg.Headless),
		chromedp.NoSandbox,
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	if err := chromedp.Run(browserCtx, chromedp.Navigate(req.Source)); err != nil {
		return "", nil, fmt.Errorf("open %s: %w", req.Source, err)
	}

	if err := b.login(browserCtx, req); err != nil {
		// the page may already be usable without a login form
		b.logger.Warn(ctx, "Automated login failed: %v", err)
	}

	var src string
	var cookies []*network.Cookie
	err := chromedp.Run(browserCtx,
		chromedp.Evaluate(findVideoJS, &src),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			cookies, err = network.GetCookies().Do(ctx)
			return err
		}),
	)
	if err != nil {
		return "", nil, fmt.Errorf("inspect page: %w", err)
	}
	return src, toHTTPCookies(cookies), nil
}

func (b *browser) login(ctx context.Context, req Request) error {
	wait := time.Duration(b.cfg.LoginWaitSeconds) * time.Second
	loginCtx, cancel := context.WithTimeout(ctx, wait)
	defer cancel()

	return chromedp.Run(loginCtx,
		chromedp.WaitVisible(b.cfg.UsernameSelector, chromedp.ByQuery),
		chromedp.SendKeys(b.cfg.UsernameSelector, req.Username, chromedp.ByQuery),
		chromedp.SendKeys(b.cfg.PasswordSelector, req.Password, chromedp.ByQuery),
		chromedp.Click(b.cfg.SubmitSelector, chromedp.ByQuery),
		chromedp.Sleep(3*time.Second),
	)
}

func toHTTPCookies(in []*network.Cookie) []*http.Cookie {
	out := make([]*http.Cookie, 0, len(in))
	for _, c := range in {
		out = append(out, &http.Cookie{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   c.Domain,
			Path:     c.Path,
			Secure:   c.Secure,
			HttpOnly: c.HTTPOnly,
		})
	}
	return out
}
