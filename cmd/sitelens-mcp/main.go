package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// analyzeRequest mirrors the sitelens API request model.
type analyzeRequest struct {
	URL         string `json:"url"`
	IncludeHTML *bool  `json:"include_html,omitempty"`
}

// sourceRequest mirrors the sitelens source download request.
type sourceRequest struct {
	URL    string `json:"url"`
	Format string `json:"format,omitempty"`
}

// analyzeResponse mirrors the sitelens API response model.
type analyzeResponse struct {
	Success bool `json:"success"`
	Data    *struct {
		URL         string `json:"url"`
		Title       string `json:"title"`
		Description string `json:"description"`
		Elements    struct {
			Headings []string `json:"headings"`
			Links    int      `json:"links"`
			Images   int      `json:"images"`
			Forms    int      `json:"forms"`
		} `json:"elements"`
		Screenshots struct {
			FullPage string `json:"fullPage"`
			Desktop  string `json:"desktop"`
			Mobile   string `json:"mobile"`
		} `json:"screenshots"`
		AdditionalPages []string `json:"additionalPages"`
		Source          string   `json:"source"`
	} `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func main() {
	apiURL := os.Getenv("SITELENS_API_URL")
	if apiURL == "" {
		apiURL = "http://127.0.0.1:8080"
	}

	s := server.NewMCPServer(
		"sitelens",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	analyzeTool := mcp.NewTool("analyze_website",
		mcp.WithDescription("Analyze a website's structure: title, meta description, headings, link/image/form counts, same-domain pages and screenshot URLs for full page, desktop and mobile viewports."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The website URL to analyze; https:// is assumed when no scheme is given"),
		),
	)
	s.AddTool(analyzeTool, handleAnalyze(apiURL))

	sourceTool := mcp.NewTool("website_source",
		mcp.WithDescription("Retrieve the HTML source of a website, or its Markdown rendering."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The website URL"),
		),
		mcp.WithString("format",
			mcp.Description("Output format: 'html' (default) or 'markdown'"),
			mcp.Enum("html", "markdown"),
		),
	)
	s.AddTool(sourceTool, handleSource(apiURL))

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

// apiPost sends a POST request to the sitelens API and returns the status
// code and response body.
func apiPost(ctx context.Context, client *http.Client, apiURL, path string, payload any) (int, []byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL+path, bytes.NewReader(body))
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp.StatusCode, respBody, err
}

func handleAnalyze(apiURL string) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 120 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url, err := request.RequireString("url")
		if err != nil {
			return mcp.NewToolResultError("url is required"), nil
		}

		noHTML := false
		_, respBody, err := apiPost(ctx, client, apiURL, "/api/v1/analyze", analyzeRequest{URL: url, IncludeHTML: &noHTML})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		var resp analyzeResponse
		if err := json.Unmarshal(respBody, &resp); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to parse response: %v", err)), nil
		}
		if !resp.Success || resp.Data == nil {
			errMsg := "analysis failed"
			if resp.Error != nil {
				errMsg = fmt.Sprintf("[%s] %s", resp.Error.Code, resp.Error.Message)
			}
			return mcp.NewToolResultError(errMsg), nil
		}

		d := resp.Data
		var b strings.Builder
		fmt.Fprintf(&b, "URL: %s\nTitle: %s\nDescription: %s\nSource: %s\n\n", d.URL, d.Title, d.Description, d.Source)
		fmt.Fprintf(&b, "Links: %d  Images: %d  Forms: %d\n", d.Elements.Links, d.Elements.Images, d.Elements.Forms)
		fmt.Fprintf(&b, "\nHeadings (%d):\n", len(d.Elements.Headings))
		for _, h := range d.Elements.Headings {
			fmt.Fprintf(&b, "- %s\n", h)
		}
		if len(d.AdditionalPages) > 0 {
			fmt.Fprintf(&b, "\nSame-domain pages (%d):\n", len(d.AdditionalPages))
			for _, p := range d.AdditionalPages {
				fmt.Fprintf(&b, "- %s\n", p)
			}
		}
		fmt.Fprintf(&b, "\nScreenshots:\n- full page: %s\n- desktop: %s\n- mobile: %s\n",
			d.Screenshots.FullPage, d.Screenshots.Desktop, d.Screenshots.Mobile)

		return mcp.NewToolResultText(b.String()), nil
	}
}

func handleSource(apiURL string) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 120 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url, err := request.RequireString("url")
		if err != nil {
			return mcp.NewToolResultError("url is required"), nil
		}
		format := request.GetString("format", "html")

		status, respBody, err := apiPost(ctx, client, apiURL, "/api/v1/analyze/source", sourceRequest{URL: url, Format: format})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if status != http.StatusOK {
			var resp analyzeResponse
			if err := json.Unmarshal(respBody, &resp); err == nil && resp.Error != nil {
				return mcp.NewToolResultError(fmt.Sprintf("[%s] %s", resp.Error.Code, resp.Error.Message)), nil
			}
			return mcp.NewToolResultError(fmt.Sprintf("API returned status %d", status)), nil
		}

		return mcp.NewToolResultText(string(respBody)), nil
	}
}
