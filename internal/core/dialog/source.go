package dialog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrBadStatus marks a fetch that completed with a non-2xx response.
var ErrBadStatus = errors.New("unexpected response status")

// StatusError carries the response status of a failed remote fetch.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %s", ErrBadStatus, e.Status)
}

// Is lets callers match any StatusError against ErrBadStatus.
func (e *StatusError) Is(target error) bool {
	return target == ErrBadStatus
}

// LoadError is returned for every failed transcript load.
type LoadError struct {
	Source string
	Err    error
}

// Error reads "Failed to load <file> (<status>)" for a bad response status,
// and "load <file>: <cause>" otherwise.
func (e *LoadError) Error() string {
	var statusErr *StatusError
	if errors.As(e.Err, &statusErr) {
		return fmt.Sprintf("Failed to load %s (%s)", e.Source, statusErr.Status)
	}
	return fmt.Sprintf("load %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Source locates one transcript file. Dir may be a local directory or an
// http(s) base URL; File may also be absolute or a full URL, in which case Dir
// is ignored.
type Source struct {
	Dir     string
	File    string
	Timeout time.Duration // zero means no deadline
	Client  *http.Client
}

// NewSource creates a Source using http.DefaultClient for remote fetches.
func NewSource(dir, file string) *Source {
	return &Source{Dir: dir, File: file, Client: http.DefaultClient}
}

// IsRemote reports whether the transcript is fetched over HTTP.
func (s *Source) IsRemote() bool {
	return IsURL(s.File) || (!filepath.IsAbs(s.File) && IsURL(s.Dir))
}

// Location returns the resolved path or URL of the transcript.
func (s *Source) Location() string {
	switch {
	case IsURL(s.File), filepath.IsAbs(s.File):
		return s.File
	case IsURL(s.Dir):
		loc, err := url.JoinPath(s.Dir, s.File)
		if err != nil {
			return strings.TrimSuffix(s.Dir, "/") + "/" + s.File
		}
		return loc
	default:
		return filepath.Join(s.Dir, s.File)
	}
}

// Fetch performs a single load of the transcript. Failures are returned as
// *LoadError and are never retried.
func (s *Source) Fetch(ctx context.Context) (Collection, error) {
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	var (
		c   Collection
		err error
	)
	if s.IsRemote() {
		c, err = s.fetchRemote(ctx)
	} else {
		c, err = s.fetchLocal(ctx)
	}
	if err != nil {
		return nil, &LoadError{Source: s.File, Err: err}
	}
	return c, nil
}

func (s *Source) fetchLocal(ctx context.Context) (Collection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.Location())
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return Decode(f)
}

func (s *Source) fetchRemote(ctx context.Context) (Collection, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.Location(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	return Decode(resp.Body)
}

// IsURL reports whether s is an http(s) URL rather than a local path.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
