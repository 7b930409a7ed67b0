package engine

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestAllOriginsEngine_DecodesContents(t *testing.T) {
	var gotTarget string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTarget = r.URL.Query().Get("url")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"contents": "<html><title>Hi</title></html>",
			"status":   map[string]int{"http_code": 200},
		})
	}))
	defer srv.Close()

	eng := NewAllOriginsEngine(srv.URL+"/get", time.Second)
	result, err := eng.Fetch(context.Background(), "https://example.com/a b?x=1&y=2")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if gotTarget != "https://example.com/a b?x=1&y=2" {
		t.Errorf("proxy received url=%q", gotTarget)
	}
	if result.HTML != "<html><title>Hi</title></html>" {
		t.Errorf("HTML = %q", result.HTML)
	}
	if result.EngineName != "allorigins" {
		t.Errorf("EngineName = %q", result.EngineName)
	}
}

func TestAllOriginsEngine_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"non-2xx", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusBadGateway)
		}},
		{"bad json", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>not json</html>"))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			eng := NewAllOriginsEngine(srv.URL, time.Second)
			if _, err := eng.Fetch(context.Background(), "https://example.com"); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestCORSProxyEngine_SendsKeyAndPath(t *testing.T) {
	var gotKey, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-cors-api-key")
		gotPath = r.URL.Path
		w.Write([]byte("<html>raw</html>"))
	}))
	defer srv.Close()

	eng := NewCORSProxyEngine(srv.URL+"/", "temp_key", time.Second)
	result, err := eng.Fetch(context.Background(), "https://example.com/page")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if gotKey != "temp_key" {
		t.Errorf("x-cors-api-key = %q, want temp_key", gotKey)
	}
	if !strings.HasSuffix(gotPath, "example.com/page") {
		t.Errorf("path = %q, want target appended", gotPath)
	}
	if result.HTML != "<html>raw</html>" {
		t.Errorf("HTML = %q", result.HTML)
	}
}

func TestCORSProxyEngine_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	eng := NewCORSProxyEngine(srv.URL, "k", time.Second)
	if _, err := eng.Fetch(context.Background(), "https://example.com"); err == nil {
		t.Error("expected error for 403")
	}
}

func TestDirectEngine_SendsUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.UserAgent()
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html><body>direct</body></html>"))
	}))
	defer srv.Close()

	eng := NewDirectEngine("TestBrowser/1.0", time.Second)
	result, err := eng.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if gotUA != "TestBrowser/1.0" {
		t.Errorf("User-Agent = %q", gotUA)
	}
	if result.StatusCode != http.StatusOK || result.EngineName != "direct" {
		t.Errorf("result = %+v", result)
	}
}

func TestDirectEngine_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	eng := NewDirectEngine("x", 20*time.Millisecond)
	if _, err := eng.Fetch(context.Background(), srv.URL); err == nil {
		t.Error("expected timeout error")
	}
}

func TestChain_FallsThroughToDirect(t *testing.T) {
	proxy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer proxy.Close()
	site := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><head><title>Site</title></head><body>" + strings.Repeat("x", 200) + "</body></html>"))
	}))
	defer site.Close()

	d := NewDispatcher([]Engine{
		NewAllOriginsEngine(proxy.URL, time.Second),
		NewCORSProxyEngine(proxy.URL, "k", time.Second),
		NewDirectEngine("x", time.Second),
	}, 100)

	result := d.Dispatch(context.Background(), site.URL)
	if result.EngineName != "direct" {
		t.Errorf("EngineName = %q, want direct", result.EngineName)
	}
}
