package export

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/use-agent/sitelens/models"
)

func TestSourceFilename(t *testing.T) {
	tests := []struct {
		title, ext, want string
	}{
		{"Example Domain", ".html", "example_domain_source.html"},
		{"Café & Bar!", ".md", "caf____bar__source.md"},
		{"", ".html", "page_source.html"},
	}
	for _, tt := range tests {
		if got := SourceFilename(tt.title, tt.ext); got != tt.want {
			t.Errorf("SourceFilename(%q, %q) = %q, want %q", tt.title, tt.ext, got, tt.want)
		}
	}
}

func TestScreenshotFilename(t *testing.T) {
	ts := time.Date(2024, 3, 1, 23, 59, 0, 0, time.UTC)
	got := ScreenshotFilename("My Site", "fullpage", ts)
	if got != "my_site_fullpage_2024-03-01.png" {
		t.Errorf("ScreenshotFilename = %q", got)
	}
}

func TestMarkdown_ResolvesRelativeLinks(t *testing.T) {
	md, err := Markdown(`<h1>Hello</h1><p>See <a href="/docs">docs</a>.</p>`, "https://example.com")
	if err != nil {
		t.Fatalf("Markdown: %v", err)
	}
	if !strings.Contains(md, "# Hello") {
		t.Errorf("missing heading in:\n%s", md)
	}
	if !strings.Contains(md, "https://example.com/docs") {
		t.Errorf("relative link not resolved in:\n%s", md)
	}
}

func TestWriter_WriteBundle(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	w, err := NewWriter(dir)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}

	result := &models.AnalysisResult{
		URL:         "https://example.com",
		Title:       "Example Domain",
		HTMLContent: "<html><body><h1>Example</h1></body></html>",
		Elements:    models.Elements{Headings: []string{"Example"}},
	}
	paths, err := w.WriteBundle(result)
	if err != nil {
		t.Fatalf("WriteBundle: %v", err)
	}
	if len(paths) != 3 {
		t.Fatalf("wrote %d files, want 3: %v", len(paths), paths)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "result.json"))
	if err != nil {
		t.Fatalf("reading result.json: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("result.json is not valid JSON: %v", err)
	}
	if _, ok := decoded["htmlContent"]; ok {
		t.Error("result.json should not embed htmlContent")
	}

	src, err := os.ReadFile(filepath.Join(dir, "example_domain_source.html"))
	if err != nil {
		t.Fatalf("reading source: %v", err)
	}
	if string(src) != result.HTMLContent {
		t.Error("source file differs from HTMLContent")
	}
	if _, err := os.Stat(filepath.Join(dir, "example_domain_source.md")); err != nil {
		t.Errorf("markdown file missing: %v", err)
	}
	if result.HTMLContent == "" {
		t.Error("WriteBundle must not modify its input")
	}
}

func TestWriter_NoHTMLWritesOnlyJSON(t *testing.T) {
	w, err := NewWriter(t.TempDir())
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	paths, err := w.WriteBundle(&models.AnalysisResult{URL: "https://example.com"})
	if err != nil {
		t.Fatalf("WriteBundle: %v", err)
	}
	if len(paths) != 1 {
		t.Errorf("paths = %v, want only result.json", paths)
	}
}

func TestWriter_DownloadScreenshots(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("png:" + r.URL.Path))
	}))
	defer srv.Close()

	dir := t.TempDir()
	w, err := NewWriter(dir)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	result := &models.AnalysisResult{
		Title:     "Example",
		Timestamp: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Screenshots: models.Screenshots{
			FullPage: srv.URL + "/full",
			Desktop:  srv.URL + "/desktop",
			Mobile:   srv.URL + "/mobile",
		},
	}

	paths, err := w.DownloadScreenshots(context.Background(), srv.Client(), result)
	if err != nil {
		t.Fatalf("DownloadScreenshots: %v", err)
	}
	if len(paths) != 3 {
		t.Fatalf("paths = %v", paths)
	}
	data, err := os.ReadFile(filepath.Join(dir, "example_mobile_2024-03-01.png"))
	if err != nil {
		t.Fatalf("reading mobile screenshot: %v", err)
	}
	if string(data) != "png:/mobile" {
		t.Errorf("mobile screenshot = %q", data)
	}

	result.Screenshots.Desktop = srv.URL + "/missing"
	if _, err := w.DownloadScreenshots(context.Background(), srv.Client(), result); err == nil {
		t.Error("expected error for 404 screenshot")
	}
}
