package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pak/internal/adapters/fs"
)

func collect(t *testing.T, w *fs.Walker, root string, skip func(string) bool) []string {
	t.Helper()
	files := make([]string, 0)
	for rel, err := range w.WalkFiles(root, skip) {
		require.NoError(t, err)
		files = append(files, rel)
	}
	return files
}

func TestWalker_WalkFiles(t *testing.T) {
	tmpDir := t.TempDir()

	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "b", "nested"), 0o750))
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "a"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "pak.toml"), []byte("m"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "a", "one.txt"), []byte("1"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "b", "nested", "two.txt"), []byte("2"), 0o600))

	files := collect(t, fs.NewWalker(), tmpDir, nil)

	assert.Equal(t, []string{"a/one.txt", "b/nested/two.txt", "pak.toml"}, files)
}

func TestWalker_WalkFiles_SkipsHidden(t *testing.T) {
	tmpDir := t.TempDir()

	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, ".git", "objects"), 0o750))
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "src"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".git", "config"), []byte("gitconfig"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "src", ".env"), []byte("secret"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "src", "main.py"), []byte("print()"), 0o600))

	files := collect(t, fs.NewWalker(), tmpDir, nil)

	assert.Equal(t, []string{"src/main.py"}, files)
}

func TestWalker_WalkFiles_WithSkip(t *testing.T) {
	tmpDir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "keep.txt"), []byte("k"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "pak-index.json"), []byte("{}"), 0o600))

	files := collect(t, fs.NewWalker(), tmpDir, func(rel string) bool {
		return rel == "pak-index.json"
	})

	assert.Equal(t, []string{"keep.txt"}, files)
}

func TestWalker_WalkFiles_SkipsSymlinks(t *testing.T) {
	tmpDir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "real.txt"), []byte("r"), 0o600))
	if err := os.Symlink(filepath.Join(tmpDir, "real.txt"), filepath.Join(tmpDir, "link.txt")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	files := collect(t, fs.NewWalker(), tmpDir, nil)

	assert.Equal(t, []string{"real.txt"}, files)
}

func TestWalker_WalkFiles_MissingRoot(t *testing.T) {
	var errs []error
	for _, err := range fs.NewWalker().WalkFiles(filepath.Join(t.TempDir(), "missing"), nil) {
		errs = append(errs, err)
	}

	require.Len(t, errs, 1)
	assert.Error(t, errs[0])
}

func TestWalker_WalkFiles_StopsEarly(t *testing.T) {
	tmpDir := t.TempDir()
	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, name), []byte(name), 0o600))
	}

	var seen []string
	for rel, err := range fs.NewWalker().WalkFiles(tmpDir, nil) {
		require.NoError(t, err)
		seen = append(seen, rel)
		break
	}

	assert.Equal(t, []string{"a"}, seen)
}
