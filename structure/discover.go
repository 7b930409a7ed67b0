package structure

import (
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/use-agent/sitelens/models"
)

// DefaultMaxPages caps DiscoverPages when no positive limit is given.
const DefaultMaxPages = 15

// DiscoverPages returns up to limit distinct URLs linked from rawHTML whose
// hostname equals baseURL's. Order of first appearance is kept.
func DiscoverPages(baseURL, rawHTML string, limit int) []string {
	pages := []string{}
	if rawHTML == "" {
		return pages
	}
	if limit <= 0 {
		limit = DefaultMaxPages
	}

	base, err := url.Parse(baseURL)
	if err != nil || base.Hostname() == "" {
		return pages
	}
	origin := base.Scheme + "://" + base.Host
	host := base.Hostname()

	doc, err := parseDocument(rawHTML)
	if err != nil {
		slog.Warn("html parse failed during discovery", "code", models.ErrCodeParseFailed, "error", err)
		return pages
	}

	seen := make(map[string]struct{})
	doc.FindMatcher(anchorSelector).EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		candidate, ok := resolveHref(origin, strings.TrimSpace(href))
		if !ok {
			return true
		}

		u, err := url.Parse(candidate)
		if err != nil || !strings.EqualFold(u.Hostname(), host) {
			return true
		}
		if _, dup := seen[candidate]; dup {
			return true
		}
		seen[candidate] = struct{}{}
		pages = append(pages, candidate)
		return len(pages) < limit
	})

	return pages
}

// resolveHref turns an href into an absolute candidate. Absolute hrefs are
// used as-is, root-relative ones are joined to origin, and anything else
// except fragments, mailto: and tel: is joined to origin with a slash.
func resolveHref(origin, href string) (string, bool) {
	switch {
	case href == "":
		return "", false
	case strings.HasPrefix(href, "http"):
		return href, true
	case strings.HasPrefix(href, "/"):
		return origin + href, true
	case strings.HasPrefix(href, "#"),
		strings.HasPrefix(href, "mailto:"),
		strings.HasPrefix(href, "tel:"):
		return "", false
	default:
		return origin + "/" + href, true
	}
}
