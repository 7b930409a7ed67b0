package structure

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func TestDiscoverPages_FiltersAndResolves(t *testing.T) {
	doc := `<a href="/x">x</a><a href="http://other.com/y">y</a><a href="#top">top</a>`
	got := DiscoverPages("https://example.com", doc, 15)
	want := []string{"https://example.com/x"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DiscoverPages = %q, want %q", got, want)
	}
}

func TestDiscoverPages_Rules(t *testing.T) {
	tests := []struct {
		name string
		href string
		want []string
	}{
		{"absolute same host", "https://example.com/about", []string{"https://example.com/about"}},
		{"absolute other scheme same host", "http://example.com/a", []string{"http://example.com/a"}},
		{"host compare ignores case", "https://EXAMPLE.com/a", []string{"https://EXAMPLE.com/a"}},
		{"subdomain excluded", "https://blog.example.com/a", []string{}},
		{"root relative", "/docs/intro", []string{"https://example.com/docs/intro"}},
		{"bare relative", "pricing.html", []string{"https://example.com/pricing.html"}},
		{"whitespace trimmed", "  /padded  ", []string{"https://example.com/padded"}},
		{"fragment", "#section", []string{}},
		{"mailto", "mailto:hi@example.com", []string{}},
		{"tel", "tel:+123", []string{}},
		{"empty", "", []string{}},
		{"malformed absolute", "http://[::1", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := fmt.Sprintf(`<a href="%s">link</a>`, tt.href)
			got := DiscoverPages("https://example.com/start", doc, 15)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("href %q: got %q, want %q", tt.href, got, tt.want)
			}
		})
	}
}

func TestDiscoverPages_DeduplicatesInOrder(t *testing.T) {
	doc := `<a href="/b">1</a><a href="/a">2</a><a href="/b">3</a><a href="https://example.com/a">4</a>`
	got := DiscoverPages("https://example.com", doc, 15)
	want := []string{"https://example.com/b", "https://example.com/a"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDiscoverPages_Cap(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 100; i++ {
		fmt.Fprintf(&b, `<a href="/p%d">p</a>`, i)
	}

	got := DiscoverPages("https://example.com", b.String(), 15)
	if len(got) != 15 {
		t.Fatalf("len = %d, want 15", len(got))
	}
	if got[0] != "https://example.com/p0" || got[14] != "https://example.com/p14" {
		t.Errorf("unexpected order: first=%q last=%q", got[0], got[14])
	}

	if got := DiscoverPages("https://example.com", b.String(), 0); len(got) != DefaultMaxPages {
		t.Errorf("limit 0 should default to %d, got %d", DefaultMaxPages, len(got))
	}
	if got := DiscoverPages("https://example.com", b.String(), 3); len(got) != 3 {
		t.Errorf("limit 3: got %d entries", len(got))
	}
}

func TestDiscoverPages_NoDuplicatesEver(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 50; i++ {
		fmt.Fprintf(&b, `<a href="/p%d">p</a><a href="/p%d">again</a>`, i%7, i%7)
	}
	got := DiscoverPages("https://example.com", b.String(), 15)
	seen := map[string]bool{}
	for _, u := range got {
		if seen[u] {
			t.Errorf("duplicate %q", u)
		}
		seen[u] = true
	}
	if len(got) != 7 {
		t.Errorf("len = %d, want 7", len(got))
	}
}

func TestDiscoverPages_EmptyHTML(t *testing.T) {
	got := DiscoverPages("https://example.com", "", 15)
	if got == nil || len(got) != 0 {
		t.Errorf("got %#v, want empty non-nil slice", got)
	}
}

func TestDiscoverPages_BaseURLNotExcluded(t *testing.T) {
	got := DiscoverPages("https://example.com/", `<a href="/">home</a>`, 15)
	want := []string{"https://example.com/"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDiscoverPages_KeepsPortInOrigin(t *testing.T) {
	got := DiscoverPages("http://127.0.0.1:8080/index", `<a href="/next">n</a>`, 15)
	want := []string{"http://127.0.0.1:8080/next"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}
