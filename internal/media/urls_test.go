package media

import "testing"

func TestVideoIDFromURL(t *testing.T) {
	testCases := []struct {
		url      string
		expected string
	}{
		{"https://cdn.gopaws.app/videos/day1-sit.m3u8", "day1-sit"},
		{"https://cdn.gopaws.app/videos/day1-sit.m3u8?token=abc", "day1-sit"},
		{"https://cdn.gopaws.app/v/a/b/recall.m3u8", "recall"},
		{"https://cdn.gopaws.app/videos/noext", "noext"},
		{"https://cdn.gopaws.app/", ""},
		{"://bad url", ""},
	}

	for _, tc := range testCases {
		result := VideoIDFromURL(tc.url)
		if result != tc.expected {
			t.Errorf("VideoIDFromURL(%q) = %q, want %q", tc.url, result, tc.expected)
		}
	}
}

func TestIsAllowedHost(t *testing.T) {
	hosts := []string{"cdn.gopaws.app", "media.gopaws.app"}

	testCases := []struct {
		url      string
		expected bool
	}{
		{"https://cdn.gopaws.app/videos/x.m3u8", true},
		{"https://eu.cdn.gopaws.app/videos/x.m3u8", true},
		{"https://media.gopaws.app/x.m3u8", true},
		{"https://www.youtube.com/watch?v=abc", false},
		{"https://evilcdn.gopaws.app.attacker.io/x", false},
		{"not a url at all", false},
		{"", false},
	}

	for _, tc := range testCases {
		result := IsAllowedHost(tc.url, hosts)
		if result != tc.expected {
			t.Errorf("IsAllowedHost(%q) = %v, want %v", tc.url, result, tc.expected)
		}
	}
}

func TestFileNameFromURL(t *testing.T) {
	testCases := []struct {
		url      string
		fallback string
		expected string
	}{
		{"https://cdn.gopaws.app/images/leash.jpg", "image_1", "leash.jpg"},
		{"https://cdn.gopaws.app/images/leash.jpg?w=300", "image_1", "leash.jpg"},
		{"https://cdn.gopaws.app/", "image_2", "image_2"},
		{"://bad", "pdf_1", "pdf_1"},
	}

	for _, tc := range testCases {
		result := FileNameFromURL(tc.url, tc.fallback)
		if result != tc.expected {
			t.Errorf("FileNameFromURL(%q, %q) = %q, want %q", tc.url, tc.fallback, result, tc.expected)
		}
	}
}
