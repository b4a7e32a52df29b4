// Package repo implements the repository operations: sync, install, uninstall,
// package building, repository generation and listing.
package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.trai.ch/pak/internal/adapters/fs"
	"go.trai.ch/pak/internal/core/domain"
	"go.trai.ch/pak/internal/core/ports"
	"go.trai.ch/zerr"
)

// Manager runs repository operations against a local package directory.
// Every operation reports to the given reporter and returns an error
// describing the first failure, or a summary error for per-package failures.
type Manager struct {
	fetcher   ports.Fetcher
	archiver  ports.Archiver
	manifests ports.ManifestDecoder
	store     ports.PackageStore
	hasher    ports.Hasher
	walker    *fs.Walker
	tracer    ports.Tracer
	logger    ports.Logger

	// beforeSwap runs right before an extracted package replaces the installed one.
	beforeSwap func(id string) error
}

// NewManager creates a new Manager with the given dependencies.
func NewManager(
	fetcher ports.Fetcher,
	archiver ports.Archiver,
	manifests ports.ManifestDecoder,
	store ports.PackageStore,
	hasher ports.Hasher,
	walker *fs.Walker,
	tracer ports.Tracer,
	logger ports.Logger,
) *Manager {
	return &Manager{
		fetcher:   fetcher,
		archiver:  archiver,
		manifests: manifests,
		store:     store,
		hasher:    hasher,
		walker:    walker,
		tracer:    tracer,
		logger:    logger,
	}
}

// SyncRequest configures Sync.
type SyncRequest struct {
	RepoDir  string
	LocalDir string
	Timeout  time.Duration
}

// InstallRequest configures Install.
type InstallRequest struct {
	RepoDir  string
	LocalDir string
	IDs      []string
	// UseCache reuses verified archives from the private cache and keeps downloads there.
	UseCache bool
	Timeout  time.Duration
	// Jobs bounds concurrent fetches. Values below 1 mean one.
	Jobs int
}

// UninstallRequest configures Uninstall.
type UninstallRequest struct {
	LocalDir string
	IDs      []string
}

// BuildRequest configures Build. OutputDir and OutputFile are mutually exclusive.
type BuildRequest struct {
	SourceDir  string
	OutputDir  string
	OutputFile string
}

// GenerateRequest configures Generate.
type GenerateRequest struct {
	RepoDir string
}

// ListRequest configures List. LocalDir is optional.
type ListRequest struct {
	RepoDir  string
	LocalDir string
	Timeout  time.Duration
}

// startSpan opens a span for an operation and returns the function closing it.
func (m *Manager) startSpan(ctx context.Context, name string) (context.Context, func(*error)) {
	ctx, span := m.tracer.Start(ctx, name)
	return ctx, func(errp *error) {
		if errp != nil && *errp != nil {
			span.RecordError(*errp)
		}
		span.End()
	}
}

// fetchError wraps a failure from a fetch sequence.
func fetchError(err error, source string) error {
	if errors.Is(err, domain.ErrSequenceConsumed) {
		return err
	}
	return zerr.With(zerr.Wrap(err, domain.ErrFetchFailed.Error()), "source", source)
}

func requireDir(dir string, missing error) error {
	if dir == "" {
		return missing
	}
	return nil
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
