package ports

import (
	"context"
	"io"
	"iter"

	"go.trai.ch/pak/internal/core/domain"
)

// Fetcher retrieves bytes from a filesystem path or a URL.
//
//go:generate mockgen -source=fetcher.go -destination=mocks/mock_fetcher.go -package=mocks
type Fetcher interface {
	// Stream copies source into w chunk by chunk.
	// The sequence yields one Transfer per chunk and ends with at most one error.
	// It can be ranged over only once.
	Stream(ctx context.Context, source string, w io.Writer, opts domain.FetchOptions) iter.Seq2[domain.Transfer, error]

	// FetchToFile is Stream into a newly created file at destPath.
	// A partially written file is left for the caller to discard.
	FetchToFile(ctx context.Context, source, destPath string, opts domain.FetchOptions) iter.Seq2[domain.Transfer, error]
}
