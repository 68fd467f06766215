package locator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"

	"github.com/WanderingWalnut/Grantly/internal/domain"
)

const (
	DefaultLinkHint  = "Sample"
	DefaultUserAgent = "grantly-locator/1.0"
	DefaultTimeout   = 20 * time.Second

	opLocate = "locator.locate"
)

// ErrLinkNotFound is returned when a grant page has no application PDF link.
var ErrLinkNotFound = errors.New("application pdf link not found")

// Locator finds the application PDF linked from a grant page.
type Locator interface {
	Locate(ctx context.Context, grantURL string) (string, error)
}

type Config struct {
	UserAgent string
	// LinkHint is matched case-insensitively against anchor text.
	LinkHint string
	Timeout  time.Duration
	// Transport overrides the collector's HTTP transport; used by tests.
	Transport http.RoundTripper
}

type pageLocator struct {
	cfg Config
}

func New(cfg Config) Locator {
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.LinkHint == "" {
		cfg.LinkHint = DefaultLinkHint
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &pageLocator{cfg: cfg}
}

type anchor struct {
	href string
	text string
}

// Locate fetches grantURL and returns the first anchor whose text contains the
// link hint, else the first link to a .pdf path. Hrefs are resolved against
// the page URL.
func (l *pageLocator) Locate(ctx context.Context, grantURL string) (string, error) {
	c := colly.NewCollector(
		colly.UserAgent(l.cfg.UserAgent),
		colly.StdlibContext(ctx),
	)
	c.SetRequestTimeout(l.cfg.Timeout)
	if l.cfg.Transport != nil {
		c.WithTransport(l.cfg.Transport)
	}

	var (
		anchors  []anchor
		fetchErr error
	)

	c.OnHTML("a[href]", func(e *colly.HTMLElement) {
		href := e.Request.AbsoluteURL(e.Attr("href"))
		if href == "" {
			return
		}
		anchors = append(anchors, anchor{href: href, text: strings.TrimSpace(e.Text)})
	})

	c.OnError(func(r *colly.Response, err error) {
		if r != nil && r.StatusCode >= 400 {
			fetchErr = domain.UpstreamHTTPError(opLocate, r.StatusCode, "")
			return
		}
		fetchErr = domain.UpstreamTransportError(opLocate, isTimeout(ctx, err), err)
	})

	start := time.Now()
	if err := c.Visit(grantURL); err != nil && fetchErr == nil {
		fetchErr = domain.UpstreamTransportError(opLocate, isTimeout(ctx, err), err)
	}
	if fetchErr != nil {
		slog.WarnContext(ctx, "grant page fetch failed",
			"error", fetchErr,
			"duration_ms", time.Since(start).Milliseconds())
		return "", fetchErr
	}

	link, ok := pickLink(anchors, l.cfg.LinkHint)
	if !ok {
		return "", fmt.Errorf("%s: %w", grantURL, ErrLinkNotFound)
	}

	slog.DebugContext(ctx, "application link located",
		"pdf_link", link,
		"anchors", len(anchors),
		"duration_ms", time.Since(start).Milliseconds())

	return link, nil
}

func pickLink(anchors []anchor, hint string) (string, bool) {
	hint = strings.ToLower(hint)
	for _, a := range anchors {
		if hint != "" && strings.Contains(strings.ToLower(a.text), hint) {
			return a.href, true
		}
	}
	for _, a := range anchors {
		if isPDF(a.href) {
			return a.href, true
		}
	}
	return "", false
}

func isPDF(href string) bool {
	u, err := url.Parse(href)
	if err != nil {
		return false
	}
	return strings.EqualFold(path.Ext(u.Path), ".pdf")
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var te interface{ Timeout() bool }
	return errors.As(err, &te) && te.Timeout()
}
