// Package screenshot builds image-service URLs for three viewports. It never
// requests the images itself.
package screenshot

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/url"
	"strconv"
	"strings"

	"github.com/use-agent/sitelens/config"
	"github.com/use-agent/sitelens/models"
)

// Viewport is a capture size.
type Viewport struct {
	Width    int
	Height   int
	FullPage bool
}

var (
	FullPageViewport = Viewport{Width: 1920, Height: 1080, FullPage: true}
	DesktopViewport  = Viewport{Width: 1920, Height: 1080}
	MobileViewport   = Viewport{Width: 390, Height: 844}
)

// Provider produces screenshot references for a target URL.
type Provider struct {
	cfg    config.ScreenshotConfig
	randIn func(n int) int
}

// Option configures a Provider.
type Option func(*Provider)

// WithRand replaces the random source used for placeholder images.
func WithRand(fn func(n int) int) Option {
	return func(p *Provider) { p.randIn = fn }
}

// New creates a Provider.
func New(cfg config.ScreenshotConfig, opts ...Option) *Provider {
	p := &Provider{cfg: cfg, randIn: rand.IntN}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// URLs returns full-page, desktop and mobile screenshot URLs for targetURL.
// If they cannot be built, random placeholder images are returned instead,
// so all three fields are always populated.
func (p *Provider) URLs(targetURL string) models.Screenshots {
	shots, err := p.build(targetURL)
	if err != nil {
		slog.Warn("screenshot url construction failed, using placeholders",
			"code", models.ErrCodeScreenshotFailed,
			"url", targetURL,
			"error", err,
		)
		return p.placeholders()
	}
	return shots
}

func (p *Provider) build(targetURL string) (models.Screenshots, error) {
	if targetURL == "" {
		return models.Screenshots{}, errors.New("empty target url")
	}
	endpoint, err := url.Parse(p.cfg.Endpoint)
	if err != nil {
		return models.Screenshots{}, fmt.Errorf("parse endpoint: %w", err)
	}
	if endpoint.Scheme == "" || endpoint.Host == "" {
		return models.Screenshots{}, fmt.Errorf("endpoint %q is not absolute", p.cfg.Endpoint)
	}

	return models.Screenshots{
		FullPage: p.buildOne(*endpoint, targetURL, FullPageViewport),
		Desktop:  p.buildOne(*endpoint, targetURL, DesktopViewport),
		Mobile:   p.buildOne(*endpoint, targetURL, MobileViewport),
	}, nil
}

func (p *Provider) buildOne(endpoint url.URL, targetURL string, vp Viewport) string {
	q := url.Values{}
	q.Set("access_key", p.cfg.AccessKey)
	q.Set("url", targetURL)
	if vp.FullPage {
		q.Set("full_page", "true")
	}
	q.Set("viewport_width", strconv.Itoa(vp.Width))
	q.Set("viewport_height", strconv.Itoa(vp.Height))
	q.Set("format", "png")
	q.Set("image_quality", strconv.Itoa(p.cfg.Quality))
	endpoint.RawQuery = q.Encode()
	return endpoint.String()
}

func (p *Provider) placeholders() models.Screenshots {
	base := strings.TrimRight(p.cfg.PlaceholderEndpoint, "/")
	if base == "" {
		base = "https://picsum.photos"
	}
	return models.Screenshots{
		FullPage: fmt.Sprintf("%s/1200/2400?random=%d", base, p.randIn(1000)),
		Desktop:  fmt.Sprintf("%s/1200/800?random=%d", base, p.randIn(1000)),
		Mobile:   fmt.Sprintf("%s/375/800?random=%d", base, p.randIn(1000)),
	}
}
