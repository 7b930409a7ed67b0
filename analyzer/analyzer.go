// Package analyzer runs the website analysis pipeline: normalize the URL,
// retrieve HTML, extract structure, discover pages and attach screenshot
// references.
package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/use-agent/sitelens/engine"
	"github.com/use-agent/sitelens/models"
	"github.com/use-agent/sitelens/structure"
	"golang.org/x/sync/errgroup"
)

// Fetcher retrieves HTML for a URL and never fails.
type Fetcher interface {
	Dispatch(ctx context.Context, targetURL string) *engine.FetchResult
}

// ScreenshotProvider builds screenshot references for a URL.
type ScreenshotProvider interface {
	URLs(targetURL string) models.Screenshots
}

// Analyzer wires the pipeline stages together. It holds no per-analysis
// state and is safe for concurrent use.
type Analyzer struct {
	fetcher  Fetcher
	shots    ScreenshotProvider
	maxPages int
	now      func() time.Time
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithMaxPages caps the number of discovered pages.
func WithMaxPages(n int) Option {
	return func(a *Analyzer) { a.maxPages = n }
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) { a.now = now }
}

// New creates an Analyzer.
func New(fetcher Fetcher, shots ScreenshotProvider, opts ...Option) *Analyzer {
	a := &Analyzer{
		fetcher:  fetcher,
		shots:    shots,
		maxPages: structure.DefaultMaxPages,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze runs the pipeline for rawURL. The only errors returned are
// INVALID_URL, when rawURL cannot be normalized, and INTERNAL_ERROR, when a
// stage panics. Fetch, parse and screenshot failures are absorbed into
// fallback values.
func (a *Analyzer) Analyze(ctx context.Context, rawURL string) (*models.AnalysisResult, error) {
	start := time.Now()

	target, err := Normalize(rawURL)
	if err != nil {
		return nil, err
	}

	var (
		shots   models.Screenshots
		fetched *engine.FetchResult
		info    structure.Structure
		pages   []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		defer recoverStage("screenshot", &err)
		shots = a.shots.URLs(target)
		return nil
	})
	g.Go(func() (err error) {
		defer recoverStage("fetch", &err)
		fetched = a.fetcher.Dispatch(gctx, target)
		info = structure.Extract(fetched.HTML)
		pages = structure.DiscoverPages(target, fetched.HTML, a.maxPages)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	host := hostname(target)
	title := info.Title
	if title == "" {
		title = fallbackTitle(host)
	}
	description := info.Description
	if description == "" {
		description = fallbackDescription(host)
	}

	result := &models.AnalysisResult{
		URL:         target,
		Title:       title,
		Description: description,
		Elements: models.Elements{
			Headings: info.Headings,
			Links:    info.Links,
			Images:   info.Images,
			Forms:    info.Forms,
		},
		Screenshots:     shots,
		HTMLContent:     fetched.HTML,
		AdditionalPages: pages,
		Source:          fetched.EngineName,
		Timestamp:       a.now().UTC(),
	}

	slog.Info("analysis complete",
		"url", target,
		"source", result.Source,
		"headings", len(result.Elements.Headings),
		"links", result.Elements.Links,
		"images", result.Elements.Images,
		"forms", result.Elements.Forms,
		"pages", len(result.AdditionalPages),
		"duration", time.Since(start).String(),
	)
	return result, nil
}

func recoverStage(stage string, err *error) {
	if r := recover(); r != nil {
		slog.Error("analysis stage panicked", "stage", stage, "panic", r)
		*err = models.NewAnalyzeError(models.ErrCodeInternal, "analysis failed", fmt.Errorf("%s stage: %v", stage, r))
	}
}

func hostname(target string) string {
	u, err := url.Parse(target)
	if err != nil {
		return target
	}
	return u.Hostname()
}

func fallbackTitle(host string) string {
	return host + " - Official Website"
}

func fallbackDescription(host string) string {
	return "Comprehensive analysis of " + host + " website structure and content organization."
}
