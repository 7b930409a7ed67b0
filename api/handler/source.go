package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/sitelens/export"
	"github.com/use-agent/sitelens/models"
)

// Source returns a handler for POST /api/v1/analyze/source.
//
// It analyzes the URL and returns the retrieved (or synthesized) document
// as an attachment, either verbatim or rendered as Markdown.
func Source(an Analyzer) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		var req models.SourceRequest
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

		result, err := an.Analyze(c.Request.Context(), req.URL)
		if err != nil {
			respondError(c, err, models.TimingInfo{TotalMs: time.Since(start).Milliseconds()})
			return
		}

		body := result.HTMLContent
		contentType := "text/html; charset=utf-8"
		filename := export.SourceFilename(result.Title, ".html")

		if req.Format == "markdown" {
			md, err := export.Markdown(result.HTMLContent, result.URL)
			if err != nil {
				respondError(c, models.NewAnalyzeError(models.ErrCodeInternal, "markdown conversion failed", err),
					models.TimingInfo{TotalMs: time.Since(start).Milliseconds()})
				return
			}
			body = md
			contentType = "text/markdown; charset=utf-8"
			filename = export.SourceFilename(result.Title, ".md")
		}

		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		c.Header("X-Sitelens-Source", result.Source)
		c.Data(http.StatusOK, contentType, []byte(body))
	}
}
