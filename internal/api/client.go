// Package api is the client for the training platform's course/media API.
// Only the two endpoints the offline engine needs are implemented here;
// everything else the platform serves stays behind the app's regular client.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"course-offline/internal/domain"
	"course-offline/internal/httpx"
)

// CodeAccessDenied is returned by the API when the course is not licensed
// to the current user. It short-circuits a download without retries.
const CodeAccessDenied = "COURSE_ACCESS_DENIED"

// APIError is a machine-readable failure from the API envelope.
type APIError struct {
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: code=%s", e.Code)
	}
	return fmt.Sprintf("api error: code=%s %s", e.Code, e.Message)
}

type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

func New(baseURL, token string) *Client {
	tr := &http.Transport{
		MaxIdleConns:        50,
		MaxIdleConnsPerHost: 50,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	return &Client{
		BaseURL: baseURL,
		Token:   token,
		HTTP: &http.Client{
			Timeout:   2 * time.Minute,
			Transport: tr,
		},
	}
}

type courseEnvelope struct {
	Success bool                   `json:"success"`
	Data    *domain.FullCourseData `json:"data"`
	Error   string                 `json:"error,omitempty"`
	Code    string                 `json:"code,omitempty"`
}

// DownloadCourse fetches the full offline bundle for one course: course
// fields, ordered days with steps, and the flat media URL list.
func (c *Client) DownloadCourse(ctx context.Context, courseType string) (*domain.FullCourseData, error) {
	var env courseEnvelope
	err := httpx.DoJSON(
		ctx,
		c.HTTP,
		func(ctx context.Context) (*http.Request, error) {
			r, err := http.NewRequestWithContext(ctx, http.MethodGet,
				c.BaseURL+"/api/offline/courses/"+url.PathEscape(courseType), nil)
			if err != nil {
				return nil, err
			}
			r.Header.Set("Accept", "application/json")
			if c.Token != "" {
				r.Header.Set("Authorization", "Bearer "+c.Token)
			}
			return r, nil
		},
		&env,
		httpx.DefaultRetryConfig(),
	)
	if err != nil {
		// The envelope code rides error statuses too (403 carries
		// COURSE_ACCESS_DENIED); surface it instead of the raw status.
		if apiErr := envelopeFromHTTPError(err); apiErr != nil {
			return nil, apiErr
		}
		return nil, fmt.Errorf("api: download course %q: %w", courseType, err)
	}
	if !env.Success || env.Data == nil {
		if env.Code != "" {
			return nil, &APIError{Code: env.Code, Message: env.Error}
		}
		return nil, fmt.Errorf("api: download course %q: empty response", courseType)
	}
	return env.Data, nil
}

type playbackEnvelope struct {
	URL string `json:"url"`
}

// VideoPlaybackURL exchanges a stored video reference for a short-lived
// signed manifest URL.
func (c *Client) VideoPlaybackURL(ctx context.Context, videoURL string) (string, error) {
	u, err := url.Parse(c.BaseURL + "/api/videos/playback-url")
	if err != nil {
		return "", fmt.Errorf("api: invalid base url: %w", err)
	}
	q := u.Query()
	q.Set("src", videoURL)
	u.RawQuery = q.Encode()

	var env playbackEnvelope
	err = httpx.DoJSON(
		ctx,
		c.HTTP,
		func(ctx context.Context) (*http.Request, error) {
			r, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
			if err != nil {
				return nil, err
			}
			r.Header.Set("Accept", "application/json")
			if c.Token != "" {
				r.Header.Set("Authorization", "Bearer "+c.Token)
			}
			return r, nil
		},
		&env,
		httpx.DefaultRetryConfig(),
	)
	if err != nil {
		return "", fmt.Errorf("api: playback url: %w", err)
	}
	if env.URL == "" {
		return "", errors.New("api: playback url: empty url in response")
	}
	return env.URL, nil
}

func envelopeFromHTTPError(err error) *APIError {
	var herr *httpx.HTTPError
	if !errors.As(err, &herr) || len(herr.Body) == 0 {
		return nil
	}
	var env courseEnvelope
	if json.Unmarshal(herr.Body, &env) != nil || env.Code == "" {
		return nil
	}
	return &APIError{Code: env.Code, Message: env.Error}
}
