// Package fetch retrieves repository files from filesystem paths and HTTP(S) URLs.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"iter"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"go.trai.ch/pak/internal/core/domain"
	"go.trai.ch/pak/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Fetcher = (*Fetcher)(nil)

// errIdleTimeout is the cancellation cause set by the watchdog.
var errIdleTimeout = zerr.New("no data received within timeout")

// Fetcher implements ports.Fetcher.
type Fetcher struct {
	client *http.Client
}

// New creates a Fetcher using a default HTTP client.
// The client has no overall timeout; each fetch bounds its own blocking steps.
func New() *Fetcher {
	return &Fetcher{client: &http.Client{}}
}

// NewWithClient creates a Fetcher using the given HTTP client.
func NewWithClient(client *http.Client) *Fetcher {
	return &Fetcher{client: client}
}

// Stream copies source into w, yielding one Transfer per chunk.
func (f *Fetcher) Stream(
	ctx context.Context,
	source string,
	w io.Writer,
	opts domain.FetchOptions,
) iter.Seq2[domain.Transfer, error] {
	var used atomic.Bool
	return func(yield func(domain.Transfer, error) bool) {
		if used.Swap(true) {
			yield(domain.Transfer{}, domain.ErrSequenceConsumed)
			return
		}
		f.stream(ctx, source, w, opts, yield)
	}
}

// FetchToFile streams source into a new file at destPath.
func (f *Fetcher) FetchToFile(
	ctx context.Context,
	source, destPath string,
	opts domain.FetchOptions,
) iter.Seq2[domain.Transfer, error] {
	var used atomic.Bool
	return func(yield func(domain.Transfer, error) bool) {
		if used.Swap(true) {
			yield(domain.Transfer{}, domain.ErrSequenceConsumed)
			return
		}

		//nolint:gosec // Destination is chosen by the caller.
		out, err := os.OpenFile(destPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, domain.PrivateFilePerm)
		if err != nil {
			yield(domain.Transfer{}, zerr.With(zerr.Wrap(err, domain.ErrTempCreateFailed.Error()), "path", destPath))
			return
		}

		failed := false
		stopped := false
		f.stream(ctx, source, out, opts, func(t domain.Transfer, err error) bool {
			if err != nil {
				failed = true
			}
			if !yield(t, err) {
				stopped = true
				return false
			}
			return true
		})

		closeErr := out.Close()
		if closeErr != nil && !failed && !stopped {
			yield(domain.Transfer{}, zerr.With(zerr.Wrap(closeErr, "failed to close fetched file"), "path", destPath))
		}
	}
}

func (f *Fetcher) stream(
	parent context.Context,
	source string,
	w io.Writer,
	opts domain.FetchOptions,
	yield func(domain.Transfer, error) bool,
) {
	chunkSize := opts.ChunkSize
	if chunkSize <= 0 {
		chunkSize = domain.DefaultChunkSize
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = domain.DefaultTimeout
	}

	// The watchdog only runs while waiting on the source, never while the
	// consumer handles a chunk.
	ctx, cancel := context.WithCancelCause(parent)
	defer cancel(nil)
	watchdog := time.AfterFunc(timeout, func() { cancel(errIdleTimeout) })
	defer watchdog.Stop()

	body, total, err := f.open(ctx, source)
	watchdog.Stop()
	if err != nil {
		yield(domain.Transfer{}, classify(ctx, source, err))
		return
	}
	defer body.Close() //nolint:errcheck // Read-only body.

	buf := make([]byte, chunkSize)
	var read int64
	for {
		if ctx.Err() != nil {
			yield(domain.Transfer{}, classify(ctx, source, ctx.Err()))
			return
		}

		watchdog.Reset(timeout)
		n, rerr := body.Read(buf)
		watchdog.Stop()

		if n > 0 {
			if opts.Limit > 0 && read+int64(n) > opts.Limit {
				yield(domain.Transfer{}, &domain.FetchError{
					Kind:   domain.KindTooLarge,
					Source: source,
					Err:    fmt.Errorf("more than %d bytes received", opts.Limit),
				})
				return
			}
			if _, werr := w.Write(buf[:n]); werr != nil {
				yield(domain.Transfer{}, zerr.With(zerr.Wrap(werr, "failed to write fetched data"), "source", source))
				return
			}
			read += int64(n)
			if !yield(domain.Transfer{Read: read, Total: total}, nil) {
				return
			}
		}

		if errors.Is(rerr, io.EOF) {
			break
		}
		if rerr != nil {
			yield(domain.Transfer{}, classify(ctx, source, rerr))
			return
		}
	}

	if total >= 0 && read < total {
		yield(domain.Transfer{}, &domain.FetchError{
			Kind:   domain.KindShortRead,
			Source: source,
			Err:    fmt.Errorf("received %d of %d bytes", read, total),
		})
	}
}

// open returns the body of source and its size, or domain.UnknownSize.
func (f *Fetcher) open(ctx context.Context, source string) (io.ReadCloser, int64, error) {
	if !domain.IsRemote(source) {
		return openFile(source)
	}

	u, err := url.Parse(source)
	if err != nil {
		return nil, 0, &domain.FetchError{Kind: domain.KindTransport, Source: source, Err: err}
	}

	switch strings.ToLower(u.Scheme) {
	case "file":
		return openFile(u.Path)
	case "http", "https":
	default:
		return nil, 0, &domain.FetchError{
			Kind:   domain.KindTransport,
			Source: source,
			Err:    fmt.Errorf("unsupported scheme %q", u.Scheme),
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, http.NoBody)
	if err != nil {
		return nil, 0, &domain.FetchError{Kind: domain.KindTransport, Source: source, Err: err}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, 0, err
	}

	if resp.StatusCode == http.StatusNotFound {
		_ = resp.Body.Close()
		return nil, 0, &domain.FetchError{Kind: domain.KindNotFound, Source: source}
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, 0, &domain.FetchError{
			Kind:   domain.KindTransport,
			Source: source,
			Err:    fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	total := resp.ContentLength
	if total < 0 {
		total = domain.UnknownSize
	}
	return resp.Body, total, nil
}

func openFile(path string) (io.ReadCloser, int64, error) {
	//nolint:gosec // Reading repository files is the purpose of this adapter.
	file, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, 0, err
	}
	if info.IsDir() {
		_ = file.Close()
		return nil, 0, &domain.FetchError{
			Kind:   domain.KindTransport,
			Source: path,
			Err:    errors.New("is a directory"),
		}
	}
	return file, info.Size(), nil
}

// classify maps low level errors onto the fetch failure kinds.
func classify(ctx context.Context, source string, err error) error {
	var fe *domain.FetchError
	if errors.As(err, &fe) {
		return fe
	}

	cause := context.Cause(ctx)
	switch {
	case errors.Is(cause, errIdleTimeout):
		return &domain.FetchError{Kind: domain.KindTimeout, Source: source, Err: errIdleTimeout}
	case ctx.Err() != nil:
		return &domain.FetchError{Kind: domain.KindCanceled, Source: source, Err: ctx.Err()}
	case errors.Is(err, iofs.ErrNotExist):
		return &domain.FetchError{Kind: domain.KindNotFound, Source: source, Err: err}
	case errors.Is(err, io.ErrUnexpectedEOF):
		return &domain.FetchError{Kind: domain.KindShortRead, Source: source, Err: err}
	}

	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return &domain.FetchError{Kind: domain.KindTimeout, Source: source, Err: err}
	}
	return &domain.FetchError{Kind: domain.KindTransport, Source: source, Err: err}
}
