package hls

import (
	"net/url"
	"strings"
	"testing"
)

const sampleManifest = `#EXTM3U
#EXT-X-VERSION:3
#EXT-X-TARGETDURATION:10
#EXTINF:9.8,
segment0.ts
#EXTINF:9.8,
https://cdn.gopaws.app/videos/day1/segment1.ts?token=abc
#EXTINF:4.2,
segment2.ts
#EXT-X-ENDLIST`

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatal(err)
	}
	return u
}

func TestParseManifest(t *testing.T) {
	base := mustParse(t, "https://cdn.gopaws.app/videos/day1/manifest.m3u8?token=abc")
	segs := ParseManifest(sampleManifest, base)

	if len(segs) != 3 {
		t.Fatalf("Expected 3 segments, got %d", len(segs))
	}

	// Relative reference resolves against the base and inherits its query.
	if segs[0].URL != "https://cdn.gopaws.app/videos/day1/segment0.ts?token=abc" {
		t.Errorf("Unexpected resolved URL %q", segs[0].URL)
	}
	if segs[0].LocalName != "segment0.ts" {
		t.Errorf("Expected local name segment0.ts, got %q", segs[0].LocalName)
	}

	// Absolute reference passes through untouched.
	if segs[1].URL != "https://cdn.gopaws.app/videos/day1/segment1.ts?token=abc" {
		t.Errorf("Unexpected absolute URL %q", segs[1].URL)
	}
	if segs[1].LocalName != "segment1.ts" {
		t.Errorf("Expected local name segment1.ts, got %q", segs[1].LocalName)
	}
}

func TestLocalNameDerivation(t *testing.T) {
	testCases := []struct {
		ref      string
		expected string
	}{
		// path query parameter wins
		{"https://cdn.gopaws.app/stream?path=/videos/day1/seg3.ts", "seg3.ts"},
		{"https://cdn.gopaws.app/videos/day1/seg4.ts", "seg4.ts"},
		{"seg5.ts", "seg5.ts"},
		{"nested/dir/seg6.ts", "seg6.ts"},
	}

	for _, tc := range testCases {
		if got := localName(tc.ref); got != tc.expected {
			t.Errorf("localName(%q) = %q, want %q", tc.ref, got, tc.expected)
		}
	}
}

func TestRewriteManifest(t *testing.T) {
	out := RewriteManifest(sampleManifest)

	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.Contains(line, "://") || strings.Contains(line, "/") {
			t.Errorf("Rewritten reference is not a bare local name: %q", line)
		}
	}

	if !strings.Contains(out, "#EXT-X-TARGETDURATION:10") {
		t.Error("Expected control lines to pass through unchanged")
	}
	if !strings.Contains(out, "segment1.ts") {
		t.Error("Expected absolute reference to be rewritten to its local name")
	}
	if strings.Contains(out, "token=abc") {
		t.Error("Expected no query strings to survive the rewrite")
	}
}
