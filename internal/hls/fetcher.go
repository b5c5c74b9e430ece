package hls

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"course-offline/internal/concurrency"
	"course-offline/internal/httpx"
	"course-offline/internal/storage"
)

const (
	segmentWorkers = 3
	// Immediate retries per segment after the first attempt. The
	// orchestrator restarts the whole course on network failure, so this
	// stays small.
	segmentRetries = 2
)

// Progress is reported once per completed or definitively failed segment.
// Current never decreases and never exceeds Total.
type Progress struct {
	Current     int
	Total       int
	SegmentFile string
}

// URLSigner exchanges a stored video reference for a short-lived signed
// manifest URL.
type URLSigner interface {
	VideoPlaybackURL(ctx context.Context, videoURL string) (string, error)
}

// Fetcher downloads HLS videos into the store's per-video directories.
type Fetcher struct {
	HTTP   *http.Client
	Signer URLSigner
	Store  *storage.Store
}

func NewFetcher(client *http.Client, signer URLSigner, store *storage.Store) *Fetcher {
	return &Fetcher{HTTP: client, Signer: signer, Store: store}
}

// DownloadVideo fetches the manifest behind remoteURL, downloads every
// distinct segment with bounded concurrency, and writes a locally
// rewritten manifest.m3u8 next to the segments. The manifest is written
// only after all segments succeed, so a partial download never yields a
// playable entry point. A restarted attempt overwrites segments in place;
// names are deterministic.
func (f *Fetcher) DownloadVideo(ctx context.Context, remoteURL, courseType, videoID string, onProgress func(Progress)) error {
	signed, err := f.Signer.VideoPlaybackURL(ctx, remoteURL)
	if err != nil {
		return fmt.Errorf("hls: sign video url: %w", err)
	}
	base, err := url.Parse(signed)
	if err != nil {
		return fmt.Errorf("hls: bad signed url: %w", err)
	}

	dir := f.Store.VideoDir(courseType, videoID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("hls: create video dir: %w", err)
	}

	manifest, err := httpx.GetBytes(ctx, f.HTTP, signed, httpx.NoRetryConfig())
	if err != nil {
		return fmt.Errorf("hls: fetch manifest: %w", err)
	}

	segs := dedupe(ParseManifest(string(manifest), base))
	total := len(segs)

	var mu sync.Mutex
	done := 0
	report := func(name string) {
		if onProgress == nil {
			return
		}
		mu.Lock()
		done++
		p := Progress{Current: done, Total: total, SegmentFile: name}
		mu.Unlock()
		onProgress(p)
	}

	errs := concurrency.ForEach(ctx, segs, concurrency.PoolOptions{MaxWorkers: segmentWorkers},
		func(ctx context.Context, _ int, seg Segment) error {
			err := f.downloadSegment(ctx, seg, dir)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				report(seg.LocalName)
				return fmt.Errorf("hls: segment %s: %w", seg.LocalName, err)
			}
			report(seg.LocalName)
			return nil
		})
	if len(errs) > 0 {
		return errs[0]
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	rewritten := RewriteManifest(string(manifest))
	if err := os.WriteFile(filepath.Join(dir, "manifest.m3u8"), []byte(rewritten), 0o644); err != nil {
		return fmt.Errorf("hls: write manifest: %w", err)
	}
	return nil
}

func (f *Fetcher) downloadSegment(ctx context.Context, seg Segment, dir string) error {
	var lastErr error
	for attempt := 0; attempt <= segmentRetries; attempt++ {
		// Cancellation is checked before every attempt; the request
		// context also aborts the fetch mid-flight.
		if err := ctx.Err(); err != nil {
			return err
		}
		body, err := httpx.GetBytes(ctx, f.HTTP, seg.URL, httpx.NoRetryConfig())
		if err != nil {
			lastErr = err
			continue
		}
		if err := os.WriteFile(filepath.Join(dir, seg.LocalName), body, 0o644); err != nil {
			return err
		}
		return nil
	}
	return lastErr
}

func dedupe(segs []Segment) []Segment {
	seen := make(map[string]bool, len(segs))
	var out []Segment
	for _, s := range segs {
		if seen[s.LocalName] {
			continue
		}
		seen[s.LocalName] = true
		out = append(out, s)
	}
	return out
}
