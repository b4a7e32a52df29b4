package fs

import (
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/opencontainers/go-digest"
	"go.trai.ch/pak/internal/core/domain"
	"go.trai.ch/pak/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher computes archive digests and file fingerprints.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// Digest computes the sha256 digest and the size of a file.
func (h *Hasher) Digest(path string) (digest.Digest, int64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return "", 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	digester := digest.SHA256.Digester()
	n, err := io.Copy(digester.Hash(), f)
	if err != nil {
		return "", 0, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	return digester.Digest(), n, nil
}

// Fingerprint computes the XXHash of a file's content.
// A missing file has fingerprint zero.
func (h *Hasher) Fingerprint(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	return hasher.Sum64(), nil
}

// Verify reports a MismatchError if the file at path does not have the advertised size and hash.
func (h *Hasher) Verify(path string, entry domain.ArchiveManifest) error {
	d, size, err := h.Digest(path)
	if err != nil {
		return err
	}
	return domain.VerifyArchive(entry, size, d)
}
