// Package media derives stable local identifiers from remote media URLs.
// The same derivation runs at download time and at lookup time; if the two
// ever disagree, offline lookups silently miss.
package media

import (
	"net/url"
	"path"
	"strings"
)

// VideoIDFromURL derives the stable identifier used as the local directory
// name for one video. It is the last path segment of the URL without its
// extension. Returns "" when nothing usable can be derived.
func VideoIDFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	seg := lastSegment(u.Path)
	if seg == "" {
		return ""
	}
	if ext := path.Ext(seg); ext != "" {
		seg = strings.TrimSuffix(seg, ext)
	}
	return seg
}

// IsAllowedHost reports whether rawURL points at one of the recognized
// media origins. Videos hosted elsewhere (embedded third-party players)
// are not downloaded for offline use.
func IsAllowedHost(rawURL string, hosts []string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	h := strings.ToLower(u.Hostname())
	if h == "" {
		return false
	}
	for _, allowed := range hosts {
		allowed = strings.ToLower(strings.TrimSpace(allowed))
		if allowed == "" {
			continue
		}
		if h == allowed || strings.HasSuffix(h, "."+allowed) {
			return true
		}
	}
	return false
}

// FileNameFromURL returns the last path segment of rawURL, or fallback
// when the URL has no usable segment.
func FileNameFromURL(rawURL, fallback string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fallback
	}
	if seg := lastSegment(u.Path); seg != "" {
		return seg
	}
	return fallback
}

func lastSegment(p string) string {
	p = strings.Trim(p, "/")
	if p == "" {
		return ""
	}
	if i := strings.LastIndex(p, "/"); i >= 0 {
		p = p[i+1:]
	}
	return p
}
