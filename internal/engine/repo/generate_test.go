package repo_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pak/internal/adapters/bus"
	"go.trai.ch/pak/internal/adapters/fs"
	"go.trai.ch/pak/internal/core/domain"
	"go.trai.ch/pak/internal/engine/repo"
)

func TestGenerate_SkipsInvalidArchives(t *testing.T) {
	m := newManager(t)
	repoDir := t.TempDir()

	for _, id := range []string{"beta", "alpha"} {
		src := writeSource(t, id, "1.0.0", map[string]string{"f": id})
		require.NoError(t, m.Build(context.Background(), bus.Discard, repo.BuildRequest{SourceDir: src, OutputDir: repoDir}))
	}
	writeFiles(t, repoDir, map[string]string{
		"junk.txz":  "not an archive",
		"notes.txt": "ignored",
	})

	rec := &bus.Recorder{}
	require.NoError(t, m.Generate(context.Background(), rec, repo.GenerateRequest{RepoDir: repoDir}))

	warnings := rec.Texts(domain.MessageWarn)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "junk.txz")

	ix, err := domain.ReadIndexFile(filepath.Join(repoDir, domain.IndexFileName))
	require.NoError(t, err)
	require.Equal(t, 2, ix.Len())

	got := ix.Entries()
	assert.Equal(t, "alpha", got[0].ID)
	assert.Equal(t, "beta", got[1].ID)

	hasher := fs.NewHasher()
	for _, e := range got {
		assert.Equal(t, "./"+e.ID+".txz", e.ArchiveURL)
		assert.NoError(t, hasher.Verify(filepath.Join(repoDir, e.ID+".txz"), e))
	}
}

func TestGenerate_DuplicateIDFirstWins(t *testing.T) {
	m := newManager(t)
	repoDir := t.TempDir()

	src := writeSource(t, "hello", "1.0.0", nil)
	require.NoError(t, m.Build(context.Background(), bus.Discard, repo.BuildRequest{SourceDir: src, OutputFile: filepath.Join(repoDir, "a-hello.txz")}))
	src2 := writeSource(t, "hello", "2.0.0", nil)
	require.NoError(t, m.Build(context.Background(), bus.Discard, repo.BuildRequest{SourceDir: src2, OutputFile: filepath.Join(repoDir, "b-hello.txz")}))

	rec := &bus.Recorder{}
	require.NoError(t, m.Generate(context.Background(), rec, repo.GenerateRequest{RepoDir: repoDir}))
	assert.Equal(t, []string{`Skipping b-hello.txz: duplicate package id "hello"`}, rec.Texts(domain.MessageWarn))

	ix, err := domain.ReadIndexFile(filepath.Join(repoDir, domain.IndexFileName))
	require.NoError(t, err)
	entry, ok := ix.Get("hello")
	require.True(t, ok)
	assert.Equal(t, "1.0.0", entry.Version)
	assert.Equal(t, "./a-hello.txz", entry.ArchiveURL)
}

func TestGenerate_EmptyAndOverwrite(t *testing.T) {
	m := newManager(t)
	repoDir := t.TempDir()
	indexPath := filepath.Join(repoDir, domain.IndexFileName)
	require.NoError(t, os.WriteFile(indexPath, []byte("stale"), 0o600))

	require.NoError(t, m.Generate(context.Background(), bus.Discard, repo.GenerateRequest{RepoDir: repoDir}))
	assert.Equal(t, "{}\n", readFile(t, indexPath))
}

func TestGenerate_Rejects(t *testing.T) {
	m := newManager(t)

	assert.ErrorIs(t, m.Generate(context.Background(), bus.Discard, repo.GenerateRequest{}), domain.ErrMissingRepoDir)

	err := m.Generate(context.Background(), bus.Discard, repo.GenerateRequest{RepoDir: filepath.Join(t.TempDir(), "none")})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrRepoDirNotFound.Error())
}
