package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/use-agent/sitelens/models"
)

// Writer writes analysis bundles to disk.
type Writer struct {
	OutputDir string
}

// NewWriter creates a Writer targeting dir, creating it if needed.
// An empty dir means the current working directory.
func NewWriter(dir string) (*Writer, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		dir = wd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	return &Writer{OutputDir: dir}, nil
}

// WriteBundle writes result.json (without the HTML body), the source
// document and its Markdown rendering. It returns the written paths.
func (w *Writer) WriteBundle(result *models.AnalysisResult) ([]string, error) {
	var paths []string

	summary := *result
	summary.HTMLContent = ""
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return paths, fmt.Errorf("encoding result: %w", err)
	}
	p, err := w.write("result.json", data)
	if err != nil {
		return paths, err
	}
	paths = append(paths, p)

	if result.HTMLContent == "" {
		return paths, nil
	}

	p, err = w.write(SourceFilename(result.Title, ".html"), []byte(result.HTMLContent))
	if err != nil {
		return paths, err
	}
	paths = append(paths, p)

	md, err := Markdown(result.HTMLContent, result.URL)
	if err != nil {
		return paths, err
	}
	p, err = w.write(SourceFilename(result.Title, ".md"), []byte(md))
	if err != nil {
		return paths, err
	}
	paths = append(paths, p)

	return paths, nil
}

// DownloadScreenshots fetches the three screenshot images referenced by
// result and stores them as <title>_<kind>_<date>.png. The date comes from
// result.Timestamp.
func (w *Writer) DownloadScreenshots(ctx context.Context, client *http.Client, result *models.AnalysisResult) ([]string, error) {
	shots := []struct {
		kind string
		url  string
	}{
		{"fullpage", result.Screenshots.FullPage},
		{"desktop", result.Screenshots.Desktop},
		{"mobile", result.Screenshots.Mobile},
	}

	var paths []string
	for _, s := range shots {
		if s.url == "" {
			continue
		}
		data, err := download(ctx, client, s.url)
		if err != nil {
			return paths, fmt.Errorf("downloading %s screenshot: %w", s.kind, err)
		}
		p, err := w.write(ScreenshotFilename(result.Title, s.kind, result.Timestamp), data)
		if err != nil {
			return paths, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

func download(ctx context.Context, client *http.Client, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, 50<<20))
}

func (w *Writer) write(name string, data []byte) (string, error) {
	path := filepath.Join(w.OutputDir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}
