package engine

import (
	"context"
	"log/slog"
	"net/url"
	"time"
	"unicode/utf8"

	"github.com/use-agent/sitelens/models"
)

// PlaceholderEngineName identifies results synthesized by Placeholder.
const PlaceholderEngineName = "placeholder"

// Dispatcher walks a fixed, ordered list of engines and returns the first
// result with enough content. Each engine is tried at most once.
type Dispatcher struct {
	engines   []Engine
	minLength int
}

// NewDispatcher creates a Dispatcher. A result is accepted only when its
// HTML holds more than minLength characters.
func NewDispatcher(engines []Engine, minLength int) *Dispatcher {
	return &Dispatcher{engines: engines, minLength: minLength}
}

// Dispatch never fails: when every engine errors or returns too little
// content, it returns the synthetic placeholder document for targetURL.
func (d *Dispatcher) Dispatch(ctx context.Context, targetURL string) *FetchResult {
	for _, eng := range d.engines {
		start := time.Now()
		result, err := eng.Fetch(ctx, targetURL)
		if err != nil {
			slog.Warn("fetch strategy failed",
				"code", models.ErrCodeFetchFailed,
				"engine", eng.Name(),
				"url", targetURL,
				"error", err,
			)
			continue
		}
		if n := utf8.RuneCountInString(result.HTML); n <= d.minLength {
			slog.Warn("fetch strategy returned too little content",
				"code", models.ErrCodeFetchFailed,
				"engine", eng.Name(),
				"url", targetURL,
				"length", n,
			)
			continue
		}
		if result.EngineName == "" {
			result.EngineName = eng.Name()
		}
		slog.Debug("fetch strategy succeeded",
			"engine", result.EngineName,
			"url", targetURL,
			"duration", time.Since(start).String(),
		)
		return result
	}

	slog.Warn("all fetch strategies failed, using placeholder document", "url", targetURL)
	return &FetchResult{
		HTML:       Placeholder(targetURL),
		EngineName: PlaceholderEngineName,
	}
}

// extractDomain parses the hostname from a URL string.
func extractDomain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return rawURL
	}
	return u.Hostname()
}
