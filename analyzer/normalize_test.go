package analyzer

import (
	"errors"
	"testing"

	"github.com/use-agent/sitelens/models"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"example.com", "https://example.com"},
		{"  example.com/path?q=1  ", "https://example.com/path?q=1"},
		{"http://example.com", "http://example.com"},
		{"https://example.com/", "https://example.com/"},
		{"HTTPS://Example.com", "HTTPS://Example.com"},
		{"localhost:8080", "https://localhost:8080"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Normalize(tt.in)
			if err != nil {
				t.Fatalf("Normalize(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalize_Invalid(t *testing.T) {
	for _, in := range []string{"", "   ", "https://", "http://", "exa mple.com", "https://[::1"} {
		t.Run(in, func(t *testing.T) {
			_, err := Normalize(in)
			if err == nil {
				t.Fatalf("Normalize(%q) should fail", in)
			}
			var ae *models.AnalyzeError
			if !errors.As(err, &ae) || ae.Code != models.ErrCodeInvalidURL {
				t.Errorf("error = %v, want INVALID_URL", err)
			}
		})
	}
}
