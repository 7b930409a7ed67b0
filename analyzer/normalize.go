package analyzer

import (
	"errors"
	"net/url"
	"strings"

	"github.com/use-agent/sitelens/models"
)

// Normalize prefixes https:// when raw has no http or https scheme and
// checks that the result parses with a hostname. Failures are
// INVALID_URL errors.
func Normalize(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", models.NewAnalyzeError(models.ErrCodeInvalidURL, "url is empty", nil)
	}

	lower := strings.ToLower(s)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		s = "https://" + s
	}

	u, err := url.Parse(s)
	if err != nil {
		return "", models.NewAnalyzeError(models.ErrCodeInvalidURL, "invalid url: "+raw, err)
	}
	if u.Hostname() == "" {
		return "", models.NewAnalyzeError(models.ErrCodeInvalidURL, "invalid url: "+raw, errors.New("missing host"))
	}
	return s, nil
}
