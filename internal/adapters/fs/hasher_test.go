package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pak/internal/adapters/fs"
	"go.trai.ch/pak/internal/core/domain"
)

// sha256 of "hello".
const helloDigest = "sha256:2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"

func TestHasher_Digest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hello")
	require.NoError(t, os.WriteFile(path, []byte("hello"), domain.PrivateFilePerm))

	d, size, err := fs.NewHasher().Digest(path)
	require.NoError(t, err)
	assert.Equal(t, helloDigest, d.String())
	assert.Equal(t, int64(5), size)
}

func TestHasher_Fingerprint(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")
	require.NoError(t, os.WriteFile(a, []byte("same"), domain.PrivateFilePerm))
	require.NoError(t, os.WriteFile(b, []byte("same"), domain.PrivateFilePerm))

	h := fs.NewHasher()
	fa, err := h.Fingerprint(a)
	require.NoError(t, err)
	fb, err := h.Fingerprint(b)
	require.NoError(t, err)
	assert.Equal(t, fa, fb)
	assert.NotZero(t, fa)

	missing, err := h.Fingerprint(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.Zero(t, missing)
}

func TestHasher_Verify(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hello")
	require.NoError(t, os.WriteFile(path, []byte("hello"), domain.PrivateFilePerm))

	entry := domain.ArchiveManifest{
		Manifest:    domain.Manifest{ID: "hello"},
		ArchiveSize: 5,
		ArchiveHash: helloDigest,
	}
	h := fs.NewHasher()
	require.NoError(t, h.Verify(path, entry))

	wrongSize := entry
	wrongSize.ArchiveSize = 6
	err := h.Verify(path, wrongSize)
	var mismatch *domain.MismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "archive_size", mismatch.Field)
	assert.Equal(t, `package "hello": archive_size mismatch (expected 6, got 5)`, err.Error())

	wrongHash := entry
	wrongHash.ArchiveHash = "sha256:" + "00000000000000000000000000000000000000000000000000000000000000ff"
	err = h.Verify(path, wrongHash)
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "archive_hash", mismatch.Field)
	assert.Equal(t, helloDigest, mismatch.Actual)
}
