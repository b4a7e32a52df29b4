// Package fs provides file system adapters: atomic replacement, walking and hashing.
package fs

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/pak/internal/core/domain"
	"go.trai.ch/zerr"
)

// AtomicWriter writes a file beside its target and renames it into place on Commit.
// Until Commit succeeds the target is untouched.
type AtomicWriter struct {
	f      *os.File
	target string
	perm   fs.FileMode
	closed bool
	done   bool
}

// CreateAtomic starts writing target through a hidden temporary sibling.
// Callers must defer Abort; it is a no-op after a successful Commit.
func CreateAtomic(target string, perm fs.FileMode) (*AtomicWriter, error) {
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrTempCreateFailed.Error()), "path", dir)
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(target)+"-*.tmp")
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrTempCreateFailed.Error()), "path", target)
	}

	return &AtomicWriter{f: f, target: target, perm: perm}, nil
}

// Write writes to the temporary file.
func (w *AtomicWriter) Write(p []byte) (int, error) {
	return w.f.Write(p)
}

// Name returns the path of the temporary file.
func (w *AtomicWriter) Name() string {
	return w.f.Name()
}

// Commit flushes the temporary file and renames it over the target.
func (w *AtomicWriter) Commit() error {
	if err := w.f.Sync(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrReplaceFailed.Error()), "path", w.target)
	}
	w.closed = true
	if err := w.f.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrReplaceFailed.Error()), "path", w.target)
	}
	if err := os.Chmod(w.f.Name(), w.perm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrReplaceFailed.Error()), "path", w.target)
	}
	if err := ReplaceFile(w.f.Name(), w.target); err != nil {
		return err
	}
	w.done = true
	return nil
}

// Abort discards the temporary file unless Commit succeeded.
func (w *AtomicWriter) Abort() {
	if w.done {
		return
	}
	if !w.closed {
		w.closed = true
		_ = w.f.Close()
	}
	_ = os.Remove(w.f.Name())
}

// ReplaceFile renames src over target in a single step.
// Readers of target observe either the old or the new content.
func ReplaceFile(src, target string) error {
	if err := os.Rename(src, target); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrReplaceFailed.Error()), "path", target)
	}
	return nil
}

// AtomicWriteFile writes data to path atomically by writing to a temp file and renaming it.
func AtomicWriteFile(path string, data []byte, perm fs.FileMode) error {
	w, err := CreateAtomic(path, perm)
	if err != nil {
		return err
	}
	defer w.Abort()

	if _, err := w.Write(data); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrReplaceFailed.Error()), "path", path)
	}
	return w.Commit()
}

// ReplaceDir moves the directory src to target, replacing any existing target.
// An existing target is first moved aside to target+"~" and restored if the final
// rename fails, so target is either the old or the new tree, never a mix.
func ReplaceDir(src, target string) error {
	backup := target + domain.BackupSuffix
	if err := os.RemoveAll(backup); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrReplaceFailed.Error()), "path", backup)
	}

	hadTarget := true
	if err := os.Rename(target, backup); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return zerr.With(zerr.Wrap(err, domain.ErrReplaceFailed.Error()), "path", target)
		}
		hadTarget = false
	}

	if err := os.Rename(src, target); err != nil {
		if hadTarget {
			_ = os.Rename(backup, target)
		}
		return zerr.With(zerr.Wrap(err, domain.ErrReplaceFailed.Error()), "path", target)
	}

	if hadTarget {
		_ = os.RemoveAll(backup)
	}
	return nil
}

// Exists reports whether path exists and is a directory, when dir is set, or a regular file otherwise.
func Exists(path string, dir bool) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	if dir {
		return info.IsDir()
	}
	return info.Mode().IsRegular()
}
