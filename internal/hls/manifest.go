// Package hls materializes one HLS video (manifest plus segments) on local
// storage and rewrites the manifest so it references only local file names.
package hls

import (
	"net/url"
	"strings"
)

// Segment is one media reference line of a manifest.
type Segment struct {
	// Raw is the reference exactly as it appears in the manifest.
	Raw string
	// URL is the absolute URL to fetch the segment from.
	URL string
	// LocalName is the file name the rewritten manifest will reference.
	LocalName string
}

// ParseManifest extracts segment references from manifest text. Blank and
// comment lines (#EXT-X-* and friends) are not references. Relative
// references resolve against base and inherit its query string, since CDN
// segment URLs are signed with the same token as the manifest.
func ParseManifest(text string, base *url.URL) []Segment {
	var segs []Segment
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		segs = append(segs, Segment{
			Raw:       line,
			URL:       resolveRef(line, base),
			LocalName: localName(line),
		})
	}
	return segs
}

// RewriteManifest replaces every segment reference line with its local
// file name, passing control lines through unchanged. The result is the
// sole entry point for local playback.
func RewriteManifest(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		lines[i] = localName(trimmed)
	}
	return strings.Join(lines, "\n")
}

func resolveRef(ref string, base *url.URL) string {
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	if u.IsAbs() {
		return u.String()
	}
	if base == nil {
		return ref
	}
	resolved := base.ResolveReference(u)
	if resolved.RawQuery == "" && base.RawQuery != "" {
		resolved.RawQuery = base.RawQuery
	}
	return resolved.String()
}

// localName derives the file name a reference is stored under: a `path`
// query parameter's last segment wins, then the URL's own last path
// segment, then the raw reference text.
func localName(ref string) string {
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	if p := u.Query().Get("path"); p != "" {
		if seg := lastPathSegment(p); seg != "" {
			return seg
		}
	}
	if seg := lastPathSegment(u.Path); seg != "" {
		return seg
	}
	return ref
}

func lastPathSegment(p string) string {
	p = strings.Trim(p, "/")
	if i := strings.LastIndex(p, "/"); i >= 0 {
		p = p[i+1:]
	}
	return p
}
