package engine

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/use-agent/sitelens/config"
)

// Engine is one HTML retrieval strategy.
type Engine interface {
	// Name returns the engine identifier (e.g. "allorigins", "corsproxy", "direct").
	Name() string

	// Fetch retrieves the raw HTML for targetURL.
	Fetch(ctx context.Context, targetURL string) (*FetchResult, error)
}

// FetchResult is the output of a successful engine fetch.
type FetchResult struct {
	HTML       string
	StatusCode int
	EngineName string
}

// maxBody caps every response body at 10 MB.
const maxBody = 10 << 20

// NewDefaultEngines builds the retrieval chain in its fixed order:
// JSON proxy, raw proxy, then a direct request.
func NewDefaultEngines(cfg config.FetchConfig) []Engine {
	return []Engine{
		NewAllOriginsEngine(cfg.AllOriginsEndpoint, cfg.Timeout),
		NewCORSProxyEngine(cfg.CORSProxyEndpoint, cfg.CORSProxyKey, cfg.Timeout),
		NewDirectEngine(cfg.UserAgent, cfg.Timeout),
	}
}

// readBody reads a successful response body, rejecting non-2xx statuses.
func readBody(name string, resp *http.Response) ([]byte, error) {
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%s: unexpected status %d", name, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("%s: read body: %w", name, err)
	}
	return body, nil
}

func newClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}
