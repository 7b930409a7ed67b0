package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	Fetch      FetchConfig
	Screenshot ScreenshotConfig
	Discovery  DiscoveryConfig
	RateLimit  RateLimitConfig
	CORS       CORSConfig
	Log        LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"
}

// FetchConfig controls the HTML retrieval chain.
type FetchConfig struct {
	// Timeout bounds each individual retrieval attempt.
	Timeout time.Duration // default: 15s

	// AllOriginsEndpoint is the JSON-wrapping proxy, queried as ?url=<target>.
	AllOriginsEndpoint string // default: "https://api.allorigins.win/get"

	// CORSProxyEndpoint is the raw-text proxy; the target URL is appended as a path.
	CORSProxyEndpoint string // default: "https://cors.sh"

	// CORSProxyKey is sent as the x-cors-api-key header.
	CORSProxyKey string // default: "temp_key"

	// UserAgent is the spoofed browser identity for direct fetches.
	UserAgent string

	// MinContentLength is the exclusive lower bound (in characters) for
	// accepting a strategy's result.
	MinContentLength int // default: 100
}

// ScreenshotConfig controls screenshot URL construction.
type ScreenshotConfig struct {
	Endpoint  string // default: "https://api.screenshotone.com/take"
	AccessKey string
	Quality   int // default: 80

	// PlaceholderEndpoint serves random images when construction fails.
	PlaceholderEndpoint string // default: "https://picsum.photos"
}

// DiscoveryConfig controls same-host page discovery.
type DiscoveryConfig struct {
	MaxPages int // default: 15
}

// RateLimitConfig controls per-client rate limiting of the API.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per client IP.
	RequestsPerSecond float64 // default: 2

	// Burst is the maximum burst size per client IP.
	Burst int // default: 5
}

// CORSConfig controls the Access-Control-* response headers.
type CORSConfig struct {
	AllowedOrigins []string // default: ["*"]
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// DefaultUserAgent is sent by the direct fetch strategy.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/125.0.0.0 Safari/537.36"

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host: envOr("SITELENS_HOST", "0.0.0.0"),
			Port: envIntOr("SITELENS_PORT", 8080),
			Mode: envOr("SITELENS_MODE", "release"),
		},
		Fetch: FetchConfig{
			Timeout:            envDurationOr("SITELENS_FETCH_TIMEOUT", 15*time.Second),
			AllOriginsEndpoint: envOr("SITELENS_ALLORIGINS_ENDPOINT", "https://api.allorigins.win/get"),
			CORSProxyEndpoint:  envOr("SITELENS_CORSPROXY_ENDPOINT", "https://cors.sh"),
			CORSProxyKey:       envOr("SITELENS_CORSPROXY_KEY", "temp_key"),
			UserAgent:          envOr("SITELENS_USER_AGENT", DefaultUserAgent),
			MinContentLength:   envIntOr("SITELENS_MIN_CONTENT_LENGTH", 100),
		},
		Screenshot: ScreenshotConfig{
			Endpoint:            envOr("SITELENS_SCREENSHOT_ENDPOINT", "https://api.screenshotone.com/take"),
			AccessKey:           os.Getenv("SITELENS_SCREENSHOT_ACCESS_KEY"),
			Quality:             envIntOr("SITELENS_SCREENSHOT_QUALITY", 80),
			PlaceholderEndpoint: envOr("SITELENS_PLACEHOLDER_ENDPOINT", "https://picsum.photos"),
		},
		Discovery: DiscoveryConfig{
			MaxPages: envIntOr("SITELENS_MAX_PAGES", 15),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("SITELENS_RATE_RPS", 2.0),
			Burst:             envIntOr("SITELENS_RATE_BURST", 5),
		},
		CORS: CORSConfig{
			AllowedOrigins: envSliceOr("SITELENS_CORS_ORIGINS", []string{"*"}),
		},
		Log: LogConfig{
			Level:  envOr("SITELENS_LOG_LEVEL", "info"),
			Format: envOr("SITELENS_LOG_FORMAT", "json"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
