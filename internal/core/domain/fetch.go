package domain

import (
	"net/url"
	"path/filepath"
	"strings"
	"time"
)

const (
	// DefaultChunkSize is the number of bytes read per fetch step.
	DefaultChunkSize = 16 << 10

	// DefaultTimeout bounds each blocking step of a fetch.
	DefaultTimeout = 10 * time.Second

	// UnknownSize is reported as the total of a transfer whose length is not known.
	UnknownSize = -1
)

// FetchOptions tunes a single fetch.
type FetchOptions struct {
	ChunkSize int
	Timeout   time.Duration
	// Limit aborts the transfer once more than Limit bytes arrive. Zero disables it.
	Limit int64
}

// Transfer is one step of a fetch: the bytes read so far and the total, or UnknownSize.
type Transfer struct {
	Read  int64
	Total int64
}

// FetchKind classifies fetch failures.
type FetchKind string

const (
	// KindNotFound means the resource does not exist.
	KindNotFound FetchKind = "not found"
	// KindTimeout means a blocking step exceeded the timeout.
	KindTimeout FetchKind = "timeout"
	// KindTransport covers URL, connection and protocol errors.
	KindTransport FetchKind = "transport error"
	// KindShortRead means fewer bytes arrived than were declared.
	KindShortRead FetchKind = "short read"
	// KindTooLarge means more bytes arrived than the caller allowed.
	KindTooLarge FetchKind = "too large"
	// KindCanceled means the caller's context was canceled.
	KindCanceled FetchKind = "canceled"
)

// FetchError is returned by fetchers. Err holds the underlying cause, if any.
type FetchError struct {
	Kind   FetchKind
	Source string
	Err    error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	msg := string(e.Kind) + ": " + e.Source
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsRemote reports whether loc is a URL with a scheme rather than a filesystem path.
func IsRemote(loc string) bool {
	u, err := url.Parse(loc)
	// A single letter scheme is a Windows drive.
	return err == nil && len(u.Scheme) > 1
}

// ResolveLocation resolves ref against the repository location base.
// URLs are returned unchanged. On a URL base a rooted ref replaces the path
// and "./name" is appended to it. On a path base absolute refs are kept and
// "./name" is joined onto base.
func ResolveLocation(base, ref string) string {
	if IsRemote(ref) {
		return ref
	}
	rel := strings.TrimPrefix(ref, "./")
	if IsRemote(base) {
		if u, err := url.Parse(base); err == nil {
			if strings.HasPrefix(ref, "/") {
				return u.ResolveReference(&url.URL{Path: ref}).String()
			}
			return u.JoinPath(rel).String()
		}
	}
	if filepath.IsAbs(ref) {
		return ref
	}
	return filepath.Join(base, filepath.FromSlash(rel))
}
