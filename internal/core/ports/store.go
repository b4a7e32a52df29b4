package ports

import "go.trai.ch/pak/internal/core/domain"

// PackageStore manages the private store of a local package directory.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type PackageStore interface {
	// Prepare creates the private store and its archive cache if needed.
	Prepare(localDir string) error

	// Index loads the cached repository index.
	// It returns domain.ErrIndexNotSynced if no index was synced yet.
	Index(localDir string) (*domain.Index, error)

	// CachedArchive returns the cached archive of entry if its size and hash match the entry.
	CachedArchive(localDir string, entry domain.ArchiveManifest) (string, bool)
}
