package ports

import (
	"io"

	"go.trai.ch/pak/internal/core/domain"
)

// Reporter is the single channel through which operations report status,
// progress, warnings, errors and completion.
// Implementations must be safe for concurrent use.
//
//go:generate mockgen -source=reporter.go -destination=mocks/mock_reporter.go -package=mocks
type Reporter interface {
	// Report delivers one message.
	Report(msg domain.Message)
}

// ReporterFactory creates reporters that serialize messages to a writer.
type ReporterFactory interface {
	// New returns a reporter writing messages of the given output type to w.
	New(w io.Writer, t domain.OutputType) Reporter
}
