package repo_test

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pak/internal/adapters/bus"
	"go.trai.ch/pak/internal/core/domain"
	"go.trai.ch/pak/internal/engine/repo"
)

func installed(t *testing.T, ids ...string) string {
	t.Helper()
	local := t.TempDir()
	for _, id := range ids {
		writeFiles(t, filepath.Join(local, id), map[string]string{domain.ManifestFileName: manifestTOML(id, "1.0.0")})
	}
	return local
}

func TestUninstall(t *testing.T) {
	m := newManager(t)
	local := installed(t, "a", "b", "c")

	rec := &bus.Recorder{}
	require.NoError(t, m.Uninstall(context.Background(), rec, repo.UninstallRequest{LocalDir: local, IDs: []string{"c", "a"}}))

	assert.Equal(t, []string{"b"}, entries(t, local))
	assert.Equal(t, []string{"Uninstalled a", "Uninstalled c"}, rec.Texts(domain.MessageStatus))
}

func TestUninstall_RejectsUnsafeIDs(t *testing.T) {
	for _, id := range []string{"../etc", "..", ".", "", ".pak", `a\b`, "a/b"} {
		t.Run(id, func(t *testing.T) {
			m := newManager(t)
			parent := t.TempDir()
			local := filepath.Join(parent, "local")
			writeFiles(t, filepath.Join(local, "a"), map[string]string{"f": "x"})
			writeFiles(t, filepath.Join(parent, "etc"), map[string]string{"passwd": "root"})

			err := m.Uninstall(context.Background(), bus.Discard, repo.UninstallRequest{LocalDir: local, IDs: []string{"a", id}})
			require.Error(t, err)
			assert.ErrorContains(t, err, domain.ErrInvalidPackageID.Error())
			assert.ErrorContains(t, err, "package "+strconv.Quote(id))

			// Nothing was removed, not even the valid id.
			assert.DirExists(t, filepath.Join(local, "a"))
			assert.DirExists(t, filepath.Join(parent, "etc"))
		})
	}
}

func TestUninstall_NotInstalledRejectsBatch(t *testing.T) {
	m := newManager(t)
	local := installed(t, "a")
	require.NoError(t, os.WriteFile(filepath.Join(local, "file"), []byte("x"), 0o600))

	for _, id := range []string{"missing", "file"} {
		err := m.Uninstall(context.Background(), bus.Discard, repo.UninstallRequest{LocalDir: local, IDs: []string{"a", id}})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrPackageNotInstalled)
		assert.EqualError(t, err, "package "+strconv.Quote(id)+": "+domain.ErrPackageNotInstalled.Error())
	}
	assert.DirExists(t, filepath.Join(local, "a"))
}

func TestUninstall_Requires(t *testing.T) {
	m := newManager(t)

	assert.ErrorIs(t, m.Uninstall(context.Background(), bus.Discard, repo.UninstallRequest{IDs: []string{"a"}}), domain.ErrMissingLocalDir)
	assert.ErrorIs(t, m.Uninstall(context.Background(), bus.Discard, repo.UninstallRequest{LocalDir: t.TempDir()}), domain.ErrNoPackagesSpecified)
}
