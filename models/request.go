package models

// AnalyzeRequest is the payload for POST /api/v1/analyze.
type AnalyzeRequest struct {
	// URL is the site to analyze. Required; a missing scheme is allowed
	// and normalized to https.
	URL string `json:"url" binding:"required"`

	// IncludeHTML controls whether the retrieved document is returned
	// in htmlContent. Default: true.
	IncludeHTML *bool `json:"include_html,omitempty"`
}

// Defaults applies default values to unset fields.
func (r *AnalyzeRequest) Defaults() {
	if r.IncludeHTML == nil {
		t := true
		r.IncludeHTML = &t
	}
}

// SourceRequest is the payload for POST /api/v1/analyze/source.
type SourceRequest struct {
	URL string `json:"url" binding:"required"`

	// Format of the downloaded document.
	// Allowed: "html" (default), "markdown".
	Format string `json:"format,omitempty" binding:"omitempty,oneof=html markdown"`
}

// Defaults applies default values to unset fields.
func (r *SourceRequest) Defaults() {
	if r.Format == "" {
		r.Format = "html"
	}
}
