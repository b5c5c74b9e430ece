package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

const courseBody = `{
	"success": true,
	"data": {
		"course": {
			"id": 7,
			"courseType": "puppy-basics",
			"name": "Puppy Basics",
			"updatedAt": "2025-06-01T10:00:00Z"
		},
		"trainingDays": [
			{"id": 1, "title": "Day 1", "dayNumber": 1, "steps": []}
		],
		"mediaFiles": {
			"videos": ["https://cdn.gopaws.app/videos/day1.m3u8"],
			"images": [],
			"pdfs": []
		}
	}
}`

func TestDownloadCourse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/offline/courses/puppy-basics" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok123" {
			t.Errorf("Expected bearer token, got %q", got)
		}
		fmt.Fprint(w, courseBody)
	}))
	defer srv.Close()

	c := New(srv.URL, "tok123")
	bundle, err := c.DownloadCourse(context.Background(), "puppy-basics")
	if err != nil {
		t.Fatalf("DownloadCourse: %v", err)
	}
	if bundle.Course.Name != "Puppy Basics" || bundle.Course.UpdatedAt != "2025-06-01T10:00:00Z" {
		t.Errorf("Unexpected course %+v", bundle.Course)
	}
	if len(bundle.TrainingDays) != 1 || len(bundle.MediaFiles.Videos) != 1 {
		t.Errorf("Unexpected bundle shape %+v", bundle)
	}
}

func TestDownloadCourseAccessDenied(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"success": false, "error": "course not licensed", "code": "COURSE_ACCESS_DENIED"}`)
	}))
	defer srv.Close()

	c := New(srv.URL, "tok123")
	_, err := c.DownloadCourse(context.Background(), "puppy-basics")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected *APIError, got %v", err)
	}
	if apiErr.Code != CodeAccessDenied {
		t.Errorf("Expected code %s, got %s", CodeAccessDenied, apiErr.Code)
	}
	if apiErr.Message != "course not licensed" {
		t.Errorf("Expected envelope message, got %q", apiErr.Message)
	}
}

func TestDownloadCourseEnvelopeError(t *testing.T) {
	// Some failures ride a 200 with success=false.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success": false, "error": "course is being rebuilt", "code": "COURSE_UNAVAILABLE"}`)
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	_, err := c.DownloadCourse(context.Background(), "puppy-basics")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected *APIError, got %v", err)
	}
	if apiErr.Code != "COURSE_UNAVAILABLE" {
		t.Errorf("Unexpected code %s", apiErr.Code)
	}
}

func TestDownloadCourseEmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success": true}`)
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	if _, err := c.DownloadCourse(context.Background(), "puppy-basics"); err == nil {
		t.Fatal("Expected an error for a success envelope with no data")
	}
}

func TestVideoPlaybackURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/videos/playback-url" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("src"); got != "https://cdn.gopaws.app/videos/day1.m3u8" {
			t.Errorf("Unexpected src %q", got)
		}
		fmt.Fprint(w, `{"url": "https://cdn.gopaws.app/videos/day1/manifest.m3u8?token=signed"}`)
	}))
	defer srv.Close()

	c := New(srv.URL, "tok123")
	signed, err := c.VideoPlaybackURL(context.Background(), "https://cdn.gopaws.app/videos/day1.m3u8")
	if err != nil {
		t.Fatalf("VideoPlaybackURL: %v", err)
	}
	if signed != "https://cdn.gopaws.app/videos/day1/manifest.m3u8?token=signed" {
		t.Errorf("Unexpected signed URL %q", signed)
	}
}

func TestVideoPlaybackURLEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	if _, err := c.VideoPlaybackURL(context.Background(), "https://cdn.gopaws.app/videos/day1.m3u8"); err == nil {
		t.Fatal("Expected an error for an empty playback response")
	}
}
