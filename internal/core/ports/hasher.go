package ports

import (
	"github.com/opencontainers/go-digest"
	"go.trai.ch/pak/internal/core/domain"
)

// Hasher computes file digests.
//
//go:generate mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// Digest returns the sha256 digest and the size of the file at path.
	Digest(path string) (digest.Digest, int64, error)

	// Fingerprint returns a fast non-cryptographic hash of the file at path, or zero if it does not exist.
	Fingerprint(path string) (uint64, error)

	// Verify checks the file at path against the size and hash advertised by entry.
	Verify(path string, entry domain.ArchiveManifest) error
}
