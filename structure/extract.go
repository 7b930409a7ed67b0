// Package structure derives page metadata and same-host links from raw HTML.
package structure

import (
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/use-agent/sitelens/models"
	"golang.org/x/net/html"
)

// Structure is the metadata extracted from one HTML document.
type Structure struct {
	Title       string
	Description string
	Headings    []string
	Links       int
	Images      int
	Forms       int
}

var (
	headingSelector = cascadia.MustCompile("h1, h2, h3, h4, h5, h6")
	anchorSelector  = cascadia.MustCompile("a[href]")
)

// parseDocument is the only place that knows which HTML parser is in use.
func parseDocument(rawHTML string) (*goquery.Document, error) {
	root, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil, err
	}
	return goquery.NewDocumentFromNode(root), nil
}

// Extract returns the title, meta description, non-empty headings in
// document order, and counts of links, images and forms. Empty or
// unparseable input yields the zero Structure with an empty heading list.
func Extract(rawHTML string) Structure {
	s := Structure{Headings: []string{}}
	if rawHTML == "" {
		return s
	}

	doc, err := parseDocument(rawHTML)
	if err != nil {
		slog.Warn("html parse failed", "code", models.ErrCodeParseFailed, "error", err)
		return s
	}

	s.Title = strings.TrimSpace(doc.Find("title").First().Text())
	if content, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok {
		s.Description = strings.TrimSpace(content)
	}

	doc.FindMatcher(headingSelector).Each(func(_ int, sel *goquery.Selection) {
		if text := strings.TrimSpace(sel.Text()); text != "" {
			s.Headings = append(s.Headings, text)
		}
	})

	s.Links = doc.FindMatcher(anchorSelector).Length()
	s.Images = doc.Find("img").Length()
	s.Forms = doc.Find("form").Length()
	return s
}
