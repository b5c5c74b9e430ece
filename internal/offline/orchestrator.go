// Package offline drives the end-to-end download of one course for
// offline use and classifies every failure into exactly one of: retry the
// whole attempt, roll back and report, or roll back and abort. No other
// layer makes that decision.
package offline

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"course-offline/internal/api"
	"course-offline/internal/domain"
	"course-offline/internal/hls"
	"course-offline/internal/httpx"
	"course-offline/internal/media"
	"course-offline/internal/storage"
)

// Result codes surfaced to the caller alongside api-provided ones.
const (
	CodeNetworkError = "NETWORK_ERROR"
	CodeAborted      = "DOWNLOAD_ABORTED"
)

// courseAttempts bounds the whole-attempt retry loop for network-class
// failures. Attempts restart from scratch; segment names are deterministic
// so a restart overwrites partial media instead of mixing versions.
const courseAttempts = 3

// Phase of a download, in order. Transitions between the media phases are
// driven purely by how many combined media items have completed.
type Phase string

const (
	PhaseMeta   Phase = "meta"
	PhaseVideos Phase = "videos"
	PhaseImages Phase = "images"
	PhasePdfs   Phase = "pdfs"
	PhaseDone   Phase = "done"
)

// Progress is ephemeral; it is produced for the UI and never stored.
type Progress struct {
	Phase   Phase
	Current int
	Total   int
	Label   string
}

// Result is the tagged outcome of a download. No error escapes
// DownloadCourse; everything lands here.
type Result struct {
	Success bool
	Version string
	Error   string
	Code    string
}

// CourseAPI is the slice of the training API the orchestrator consumes.
type CourseAPI interface {
	DownloadCourse(ctx context.Context, courseType string) (*domain.FullCourseData, error)
}

// VideoFetcher materializes one HLS video locally.
type VideoFetcher interface {
	DownloadVideo(ctx context.Context, remoteURL, courseType, videoID string, onProgress func(hls.Progress)) error
}

type Orchestrator struct {
	API     CourseAPI
	Fetcher VideoFetcher
	Store   *storage.Store
	HTTP    *http.Client

	// MediaHosts is the allow-list of CDN origins whose videos are
	// downloaded for offline playback. Other video URLs are skipped.
	MediaHosts []string
}

func NewOrchestrator(apiClient *api.Client, store *storage.Store, mediaHosts []string) *Orchestrator {
	return &Orchestrator{
		API:        apiClient,
		Fetcher:    hls.NewFetcher(apiClient.HTTP, apiClient, store),
		Store:      store,
		HTTP:       apiClient.HTTP,
		MediaHosts: mediaHosts,
	}
}

// DownloadCourse downloads one course end to end: metadata, videos,
// images, PDFs. Network-class failures restart the whole attempt up to the
// retry budget; access errors and cancellation never retry. Every failure
// path deletes the partial course directory before returning.
//
// Concurrent downloads of the same courseType are not guarded here;
// callers serialize per course.
func (o *Orchestrator) DownloadCourse(ctx context.Context, courseType string, onProgress func(Progress)) Result {
	var lastErr error
	for attempt := 1; attempt <= courseAttempts; attempt++ {
		version, err := o.downloadOnce(ctx, courseType, onProgress)
		if err == nil {
			return Result{Success: true, Version: version}
		}
		lastErr = err

		if errors.Is(err, context.Canceled) {
			return o.failed(courseType, "download aborted", CodeAborted)
		}

		var apiErr *api.APIError
		if errors.As(err, &apiErr) {
			return o.failed(courseType, apiErr.Message, apiErr.Code)
		}

		if httpx.IsNetworkErr(err) && attempt < courseAttempts {
			continue
		}
		break
	}

	if httpx.IsNetworkErr(lastErr) {
		return o.failed(courseType, lastErr.Error(), CodeNetworkError)
	}
	return o.failed(courseType, lastErr.Error(), "")
}

// HasCourseUpdate reports whether the live course has changed since it was
// downloaded, by comparing its last-modified marker with the stored
// version. Returns false with an error when the course is not downloaded.
func (o *Orchestrator) HasCourseUpdate(ctx context.Context, courseType string) (bool, error) {
	meta, ok := o.Store.CourseMeta(courseType)
	if !ok {
		return false, fmt.Errorf("offline: course %q is not downloaded", courseType)
	}
	bundle, err := o.API.DownloadCourse(ctx, courseType)
	if err != nil {
		return false, fmt.Errorf("offline: update check: %w", err)
	}
	return bundle.Course.UpdatedAt != meta.Version, nil
}

func (o *Orchestrator) failed(courseType, msg, code string) Result {
	if err := o.Store.DeleteCourseData(courseType); err != nil {
		msg = msg + "; rollback failed: " + err.Error()
	}
	return Result{Success: false, Error: msg, Code: code}
}

func (o *Orchestrator) downloadOnce(ctx context.Context, courseType string, onProgress func(Progress)) (string, error) {
	report := func(p Progress) {
		if onProgress != nil {
			onProgress(p)
		}
	}

	report(Progress{Phase: PhaseMeta, Current: 0, Total: 1})
	bundle, err := o.API.DownloadCourse(ctx, courseType)
	if err != nil {
		return "", err
	}

	version := bundle.Course.UpdatedAt
	meta := domain.OfflineCourseMeta{
		Course:       bundle.Course,
		TrainingDays: bundle.TrainingDays,
		Version:      version,
		DownloadedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := o.Store.SaveCourseMeta(courseType, meta); err != nil {
		return "", err
	}
	report(Progress{Phase: PhaseMeta, Current: 1, Total: 1})

	var videos []string
	for _, u := range bundle.MediaFiles.Videos {
		if media.IsAllowedHost(u, o.MediaHosts) {
			videos = append(videos, u)
		}
	}
	images := bundle.MediaFiles.Images
	pdfs := bundle.MediaFiles.Pdfs

	total := len(videos) + len(images) + len(pdfs)
	completed := 0
	phase := func() Phase {
		switch {
		case completed < len(videos):
			return PhaseVideos
		case completed < len(videos)+len(images):
			return PhaseImages
		default:
			return PhasePdfs
		}
	}

	for _, videoURL := range videos {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		id := media.VideoIDFromURL(videoURL)
		if id == "" {
			// Nothing to address the download by; counted as done, not
			// an error.
			completed++
			report(Progress{Phase: phase(), Current: completed, Total: total})
			continue
		}
		err := o.Fetcher.DownloadVideo(ctx, videoURL, courseType, id, func(sp hls.Progress) {
			report(Progress{
				Phase:   PhaseVideos,
				Current: completed,
				Total:   total,
				Label:   fmt.Sprintf("%s (%d/%d)", sp.SegmentFile, sp.Current, sp.Total),
			})
		})
		if err != nil {
			return "", err
		}
		completed++
		report(Progress{Phase: phase(), Current: completed, Total: total})
	}

	if err := o.downloadFlat(ctx, o.Store.ImagesDir(courseType), images, "image", &completed, total, phase, report); err != nil {
		return "", err
	}
	if err := o.downloadFlat(ctx, o.Store.PdfsDir(courseType), pdfs, "pdf", &completed, total, phase, report); err != nil {
		return "", err
	}

	report(Progress{Phase: PhaseDone, Current: total, Total: total})
	return version, nil
}

// downloadFlat fetches auxiliary media (images, PDFs) into a flat
// directory. A single failed file is skipped, not fatal: the course stays
// usable without every auxiliary asset, unlike video.
func (o *Orchestrator) downloadFlat(
	ctx context.Context,
	dir string,
	urls []string,
	kind string,
	completed *int,
	total int,
	phase func() Phase,
	report func(Progress),
) error {
	if len(urls) > 0 {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	for i, u := range urls {
		if err := ctx.Err(); err != nil {
			return err
		}
		name := media.FileNameFromURL(u, fmt.Sprintf("%s_%d", kind, i+1))
		body, err := httpx.GetBytes(ctx, o.HTTP, u, httpx.NoRetryConfig())
		if err == nil {
			err = os.WriteFile(filepath.Join(dir, name), body, 0o644)
		}
		if err != nil && errors.Is(err, context.Canceled) {
			return err
		}
		// Other errors: best effort, skip the file.
		*completed++
		report(Progress{Phase: phase(), Current: *completed, Total: total, Label: name})
	}
	return nil
}
