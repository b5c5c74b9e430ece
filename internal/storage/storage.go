// Package storage owns the on-disk layout of downloaded courses:
//
//	{root}/{courseType}/meta.json
//	{root}/{courseType}/videos/{videoId}/manifest.m3u8 + segments
//	{root}/{courseType}/images/{fileName}
//	{root}/{courseType}/pdfs/{fileName}
//
// Reads never fail on benign absence; they report "absent" instead.
// Writes and deletes surface real I/O errors to the caller.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"course-offline/internal/domain"
	"course-offline/internal/media"
)

// SchemaVersion is stamped into every saved meta.json. A stored record
// with any other version is treated as absent: no migration, only a full
// re-download.
const SchemaVersion = 2

const (
	metaFileName = "meta.json"
	manifestName = "manifest.m3u8"

	VideosDirName = "videos"
	ImagesDirName = "images"
	PdfsDirName   = "pdfs"
)

const dirPerm = 0o755

// Store reads and writes offline course data under Root. The root is
// injectable so tests run against a temp dir, and persisted paths are kept
// relative to it (an app reinstall may move the root).
type Store struct {
	Root string

	// MinFreeBytes gates new downloads; see HasEnoughDiskSpace.
	MinFreeBytes int64
}

func NewStore(root string) *Store {
	return &Store{
		Root:         root,
		MinFreeBytes: 500 * 1024 * 1024,
	}
}

func (s *Store) CourseDir(courseType string) string {
	return filepath.Join(s.Root, courseType)
}

func (s *Store) VideoDir(courseType, videoID string) string {
	return filepath.Join(s.Root, courseType, VideosDirName, videoID)
}

func (s *Store) ImagesDir(courseType string) string {
	return filepath.Join(s.Root, courseType, ImagesDirName)
}

func (s *Store) PdfsDir(courseType string) string {
	return filepath.Join(s.Root, courseType, PdfsDirName)
}

// SaveCourseMeta writes meta as the course's meta.json, stamping the
// current schema version. Overwrites unconditionally.
func (s *Store) SaveCourseMeta(courseType string, meta domain.OfflineCourseMeta) error {
	meta.SchemaVersion = SchemaVersion

	dir := s.CourseDir(courseType)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("storage: create course dir: %w", err)
	}

	b, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("storage: encode meta: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, metaFileName), b, 0o644); err != nil {
		return fmt.Errorf("storage: write meta: %w", err)
	}
	return nil
}

// CourseMeta reads the stored metadata for courseType. The second return
// is false when the file is missing, unreadable, unparsable or declares a
// schema version other than the current one. None of those are errors;
// the remedy for all of them is a fresh download.
func (s *Store) CourseMeta(courseType string) (domain.OfflineCourseMeta, bool) {
	p := filepath.Join(s.CourseDir(courseType), metaFileName)

	fi, err := os.Stat(p)
	if err != nil || fi.IsDir() {
		return domain.OfflineCourseMeta{}, false
	}

	b, err := os.ReadFile(p)
	if err != nil {
		return domain.OfflineCourseMeta{}, false
	}

	var meta domain.OfflineCourseMeta
	if err := json.Unmarshal(b, &meta); err != nil {
		return domain.OfflineCourseMeta{}, false
	}
	if meta.SchemaVersion != SchemaVersion {
		return domain.OfflineCourseMeta{}, false
	}
	return meta, true
}

// OfflineCourseTypes lists the course types with a local directory.
// Returns nil when the root does not exist yet.
func (s *Store) OfflineCourseTypes() []string {
	entries, err := os.ReadDir(s.Root)
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			out = append(out, e.Name())
		}
	}
	return out
}

// DeleteCourseData removes the course's entire directory tree. Deleting a
// course that was never downloaded is a no-op, not an error.
func (s *Store) DeleteCourseData(courseType string) error {
	if err := os.RemoveAll(s.CourseDir(courseType)); err != nil {
		return fmt.Errorf("storage: delete course data: %w", err)
	}
	return nil
}

// LocalVideoManifestPath returns the root-relative path of the rewritten
// manifest for one video, and whether it exists as a regular file.
func (s *Store) LocalVideoManifestPath(courseType, videoID string) (string, bool) {
	abs := filepath.Join(s.VideoDir(courseType, videoID), manifestName)
	fi, err := os.Stat(abs)
	if err != nil || fi.IsDir() {
		return "", false
	}
	return filepath.Join(courseType, VideosDirName, videoID, manifestName), true
}

// FileURI resolves a root-relative path to an absolute file:// URI the
// player can open.
func (s *Store) FileURI(relPath string) string {
	abs, err := filepath.Abs(filepath.Join(s.Root, relPath))
	if err != nil {
		abs = filepath.Join(s.Root, relPath)
	}
	return "file://" + abs
}

// OfflineVideoURI maps a remote video URL to a playable local URI, or
// reports absent when the video is not downloaded. Uses the same URL→ID
// derivation as the download path.
func (s *Store) OfflineVideoURI(courseType, videoURL string) (string, bool) {
	id := media.VideoIDFromURL(videoURL)
	if id == "" {
		return "", false
	}
	rel, ok := s.LocalVideoManifestPath(courseType, id)
	if !ok {
		return "", false
	}
	return s.FileURI(rel), true
}
