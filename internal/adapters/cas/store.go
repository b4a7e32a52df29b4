// Package cas implements the private store of a local package directory.
package cas

import (
	"errors"
	"io/fs"
	"os"

	"go.trai.ch/pak/internal/core/domain"
	"go.trai.ch/pak/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.PackageStore = (*Store)(nil)

// Store implements ports.PackageStore. Archives are addressed by package id and
// trusted only while their size and hash match the synced index.
type Store struct {
	hasher ports.Hasher
}

// NewStore creates a new Store verifying cached archives with hasher.
func NewStore(hasher ports.Hasher) *Store {
	return &Store{hasher: hasher}
}

// Prepare creates the private store and its archive cache.
func (s *Store) Prepare(localDir string) error {
	if localDir == "" {
		return domain.ErrMissingLocalDir
	}
	if err := os.MkdirAll(domain.ArchiveCacheDir(localDir), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create private store"), "path", domain.PrivateDir(localDir))
	}
	return nil
}

// Index loads the cached repository index.
func (s *Store) Index(localDir string) (*domain.Index, error) {
	path := domain.CachedIndexPath(localDir)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(domain.ErrIndexNotSynced, "path", path)
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrIndexReadFailed.Error()), "path", path)
	}
	return domain.ReadIndexFile(path)
}

// CachedArchive returns the cached archive of entry if it matches the entry's size and hash.
func (s *Store) CachedArchive(localDir string, entry domain.ArchiveManifest) (string, bool) {
	path := domain.CachedArchivePath(localDir, entry.ID)
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() || info.Size() != entry.ArchiveSize {
		return "", false
	}
	if err := s.hasher.Verify(path, entry); err != nil {
		return "", false
	}
	return path, true
}
