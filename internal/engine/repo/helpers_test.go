package repo_test

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/pak/internal/adapters/archive"
	"go.trai.ch/pak/internal/adapters/bus"
	"go.trai.ch/pak/internal/adapters/cas"
	"go.trai.ch/pak/internal/adapters/config"
	"go.trai.ch/pak/internal/adapters/fetch"
	"go.trai.ch/pak/internal/adapters/fs"
	"go.trai.ch/pak/internal/adapters/logger"
	"go.trai.ch/pak/internal/adapters/telemetry"
	"go.trai.ch/pak/internal/core/domain"
	"go.trai.ch/pak/internal/engine/repo"
)

func newManager(t *testing.T) *repo.Manager {
	t.Helper()

	lg := logger.New()
	lg.SetOutput(io.Discard)
	hasher := fs.NewHasher()

	return repo.NewManager(
		fetch.New(),
		archive.New(),
		config.NewManifestDecoder(config.NewOSFS()),
		cas.NewStore(hasher),
		hasher,
		fs.NewWalker(),
		telemetry.NewNoOpTracer(),
		lg,
	)
}

func manifestTOML(id, version string) string {
	return fmt.Sprintf("id = %q\nname = \"Package %s\"\ndescription = \"test package\"\nversion = %q\ntype = \"add-on\"\n",
		id, id, version)
}

// writeSource creates a package source directory with a manifest and the given files.
func writeSource(t *testing.T, id, version string, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{domain.ManifestFileName: manifestTOML(id, version)})
	writeFiles(t, dir, files)
	return dir
}

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
}

type pkg struct {
	id      string
	version string
	files   map[string]string
}

// buildRepo builds every package into repoDir and generates its index.
func buildRepo(t *testing.T, m *repo.Manager, repoDir string, pkgs ...pkg) {
	t.Helper()
	ctx := context.Background()

	for _, p := range pkgs {
		src := writeSource(t, p.id, p.version, p.files)
		require.NoError(t, m.Build(ctx, bus.Discard, repo.BuildRequest{SourceDir: src, OutputDir: repoDir}))
	}
	require.NoError(t, m.Generate(ctx, bus.Discard, repo.GenerateRequest{RepoDir: repoDir}))
}

// syncedLocal returns a local directory synced against repoDir.
func syncedLocal(t *testing.T, m *repo.Manager, repoDir string) string {
	t.Helper()

	local := t.TempDir()
	require.NoError(t, m.Sync(context.Background(), bus.Discard, repo.SyncRequest{RepoDir: repoDir, LocalDir: local}))
	return local
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func entries(t *testing.T, dir string) []string {
	t.Helper()
	des, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(des))
	for _, de := range des {
		names = append(names, de.Name())
	}
	return names
}
