// Package export turns analysis results into downloadable artifacts.
package export

import (
	"regexp"
	"strings"
	"time"
)

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9]`)

// Sanitize replaces every non-alphanumeric ASCII character with an
// underscore and lower-cases the result. An empty result becomes "page".
func Sanitize(title string) string {
	s := strings.ToLower(unsafeChars.ReplaceAllString(title, "_"))
	if s == "" {
		return "page"
	}
	return s
}

// SourceFilename names a downloaded document, e.g. "example_domain_source.html".
func SourceFilename(title, ext string) string {
	return Sanitize(title) + "_source" + ext
}

// ScreenshotFilename names a downloaded screenshot, e.g.
// "example_domain_mobile_2024-03-01.png".
func ScreenshotFilename(title, kind string, t time.Time) string {
	return Sanitize(title) + "_" + kind + "_" + t.Format(time.DateOnly) + ".png"
}
