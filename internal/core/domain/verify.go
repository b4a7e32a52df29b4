package domain

import (
	"strconv"

	"github.com/opencontainers/go-digest"
)

// VerifyArchive checks a measured size and digest against what entry advertises.
func VerifyArchive(entry ArchiveManifest, size int64, d digest.Digest) error {
	if size != entry.ArchiveSize {
		return &MismatchError{
			ID:       entry.ID,
			Field:    "archive_size",
			Expected: strconv.FormatInt(entry.ArchiveSize, 10),
			Actual:   strconv.FormatInt(size, 10),
		}
	}
	if string(d) != entry.ArchiveHash {
		return &MismatchError{
			ID:       entry.ID,
			Field:    "archive_hash",
			Expected: entry.ArchiveHash,
			Actual:   string(d),
		}
	}
	return nil
}
