package models

import "time"

// AnalysisResult is the outcome of one analysis run. It is assembled once
// and never mutated afterwards.
type AnalysisResult struct {
	// URL is the normalized absolute URL that was analyzed.
	URL string `json:"url"`

	Title       string `json:"title"`
	Description string `json:"description"`

	Elements    Elements    `json:"elements"`
	Screenshots Screenshots `json:"screenshots"`

	// HTMLContent is the document exactly as retrieved or synthesized.
	HTMLContent string `json:"htmlContent,omitempty"`

	// AdditionalPages lists distinct same-host URLs linked from the page.
	AdditionalPages []string `json:"additionalPages,omitempty"`

	// Source names the retrieval strategy that produced HTMLContent
	// (e.g. "allorigins", "corsproxy", "direct", "placeholder").
	Source string `json:"source"`

	Timestamp time.Time `json:"timestamp"`
}

// Elements summarises the page structure.
type Elements struct {
	// Headings holds h1-h6 text in document order. Never nil.
	Headings []string `json:"headings"`
	Links    int      `json:"links"`
	Images   int      `json:"images"`
	Forms    int      `json:"forms"`
}

// Screenshots holds image references for three viewports. The URLs are
// never fetched by the service.
type Screenshots struct {
	FullPage string `json:"fullPage"`
	Desktop  string `json:"desktop"`
	Mobile   string `json:"mobile"`
}

// AnalyzeResponse is the response for POST /api/v1/analyze.
type AnalyzeResponse struct {
	Success bool            `json:"success"`
	Data    *AnalysisResult `json:"data,omitempty"`
	Timing  TimingInfo      `json:"timing"`

	// Error is populated only when Success is false.
	Error *ErrorDetail `json:"error,omitempty"`
}

// TimingInfo reports how long the request took.
type TimingInfo struct {
	TotalMs int64 `json:"total_ms"`
}

// HealthResponse is the response for GET /api/v1/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	Version string `json:"version"`
}
