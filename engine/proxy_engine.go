package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// AllOriginsEngine fetches through a proxy that wraps the page in a JSON
// envelope: {"contents": "<html>..."}.
type AllOriginsEngine struct {
	endpoint string
	client   *http.Client
}

// NewAllOriginsEngine creates an AllOriginsEngine. The target URL is passed
// as the percent-encoded "url" query parameter of endpoint.
func NewAllOriginsEngine(endpoint string, timeout time.Duration) *AllOriginsEngine {
	return &AllOriginsEngine{endpoint: endpoint, client: newClient(timeout)}
}

func (e *AllOriginsEngine) Name() string { return "allorigins" }

func (e *AllOriginsEngine) Fetch(ctx context.Context, targetURL string) (*FetchResult, error) {
	u, err := url.Parse(e.endpoint)
	if err != nil {
		return nil, fmt.Errorf("allorigins: parse endpoint: %w", err)
	}
	q := u.Query()
	q.Set("url", targetURL)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("allorigins: build request: %w", err)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("allorigins: do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := readBody(e.Name(), resp)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Contents string `json:"contents"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("allorigins: decode envelope: %w", err)
	}

	return &FetchResult{
		HTML:       envelope.Contents,
		StatusCode: resp.StatusCode,
		EngineName: e.Name(),
	}, nil
}

// CORSProxyEngine fetches through a proxy that returns the page body
// verbatim. The target URL is appended to the endpoint path.
type CORSProxyEngine struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewCORSProxyEngine creates a CORSProxyEngine that authenticates with the
// x-cors-api-key header.
func NewCORSProxyEngine(endpoint, apiKey string, timeout time.Duration) *CORSProxyEngine {
	return &CORSProxyEngine{
		endpoint: strings.TrimRight(endpoint, "/"),
		apiKey:   apiKey,
		client:   newClient(timeout),
	}
}

func (e *CORSProxyEngine) Name() string { return "corsproxy" }

func (e *CORSProxyEngine) Fetch(ctx context.Context, targetURL string) (*FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.endpoint+"/"+targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("corsproxy: build request: %w", err)
	}
	if e.apiKey != "" {
		req.Header.Set("x-cors-api-key", e.apiKey)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("corsproxy: do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := readBody(e.Name(), resp)
	if err != nil {
		return nil, err
	}

	return &FetchResult{
		HTML:       string(body),
		StatusCode: resp.StatusCode,
		EngineName: e.Name(),
	}, nil
}
