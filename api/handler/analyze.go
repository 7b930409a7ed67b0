package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/sitelens/models"
)

// Analyzer runs one website analysis.
type Analyzer interface {
	Analyze(ctx context.Context, rawURL string) (*models.AnalysisResult, error)
}

// Analyze returns a handler for POST /api/v1/analyze.
//
// Flow:
//  1. Parse & validate request, apply defaults.
//  2. Analyzer.Analyze → AnalysisResult (INVALID_URL is the only expected error).
//  3. Drop htmlContent unless requested, fill Timing, return 200.
func Analyze(an Analyzer) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		// ── 1. Parse request ────────────────────────────────────────
		var req models.AnalyzeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.AnalyzeResponse{
				Success: false,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: err.Error(),
				},
			})
			return
		}
		req.Defaults()

		// ── 2. Analyze ──────────────────────────────────────────────
		result, err := an.Analyze(c.Request.Context(), req.URL)
		if err != nil {
			respondError(c, err, models.TimingInfo{TotalMs: time.Since(start).Milliseconds()})
			return
		}

		// ── 3. Respond ──────────────────────────────────────────────
		if !*req.IncludeHTML {
			trimmed := *result
			trimmed.HTMLContent = ""
			result = &trimmed
		}

		c.JSON(http.StatusOK, models.AnalyzeResponse{
			Success: true,
			Data:    result,
			Timing:  models.TimingInfo{TotalMs: time.Since(start).Milliseconds()},
		})
	}
}
