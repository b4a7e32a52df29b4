// Package archive reads and writes package archives: tar streams compressed with xz.
package archive

import (
	"archive/tar"
	"context"
	"errors"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/ulikunitz/xz"
	"go.trai.ch/pak/internal/core/domain"
	"go.trai.ch/pak/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Archiver = (*Archiver)(nil)

// errEntryNotFound is returned by ReadFile when the archive has no such entry.
var errEntryNotFound = zerr.New("entry not found in archive")

// Archiver implements ports.Archiver for .txz archives.
type Archiver struct{}

// New creates a new Archiver.
func New() *Archiver {
	return &Archiver{}
}

// Create writes files under root to w as a tar stream compressed with xz.
// Ownership is not recorded so archives do not depend on the building user.
func (a *Archiver) Create(ctx context.Context, w io.Writer, root string, files []string) error {
	xw, err := xz.NewWriter(w)
	if err != nil {
		return zerr.Wrap(err, domain.ErrArchiveWriteFailed.Error())
	}
	tw := tar.NewWriter(xw)

	for _, rel := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := addFile(tw, root, rel); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrArchiveWriteFailed.Error()), "file", rel)
		}
	}

	if err := tw.Close(); err != nil {
		return zerr.Wrap(err, domain.ErrArchiveWriteFailed.Error())
	}
	if err := xw.Close(); err != nil {
		return zerr.Wrap(err, domain.ErrArchiveWriteFailed.Error())
	}
	return nil
}

func addFile(tw *tar.Writer, root, rel string) error {
	p := filepath.Join(root, filepath.FromSlash(rel))
	info, err := os.Lstat(p)
	if err != nil {
		return err
	}
	hdr, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return err
	}
	hdr.Name = rel
	hdr.Uid, hdr.Gid = 0, 0
	hdr.Uname, hdr.Gname = "", ""

	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}

	f, err := os.Open(p) //nolint:gosec // Files come from walking the package source.
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck // Read-only file.

	_, err = io.Copy(tw, f)
	return err
}

// Extract unpacks the archive at archivePath into destDir.
// On failure destDir is removed, so it either holds the complete tree or does not exist.
func (a *Archiver) Extract(ctx context.Context, archivePath, destDir string) (err error) {
	if err := os.MkdirAll(destDir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrExtractFailed.Error()), "path", destDir)
	}
	defer func() {
		if err != nil {
			_ = os.RemoveAll(destDir)
		}
	}()

	f, tr, err := open(archivePath)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrExtractFailed.Error()), "archive", archivePath)
	}
	defer f.Close() //nolint:errcheck // Read-only file.

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrExtractFailed.Error()), "archive", archivePath)
		}

		if err := extractEntry(tr, hdr, destDir); err != nil {
			e := zerr.With(zerr.Wrap(err, domain.ErrExtractFailed.Error()), "archive", archivePath)
			return zerr.With(e, "entry", hdr.Name)
		}
	}
}

func extractEntry(tr *tar.Reader, hdr *tar.Header, destDir string) error {
	name := path.Clean(hdr.Name)
	if name == "." {
		return nil
	}
	local := filepath.FromSlash(name)
	if !filepath.IsLocal(local) {
		return domain.ErrUnsafeArchivePath
	}
	target := filepath.Join(destDir, local)

	switch hdr.Typeflag {
	case tar.TypeDir:
		return os.MkdirAll(target, domain.DirPerm)
	case tar.TypeReg:
		if err := os.MkdirAll(filepath.Dir(target), domain.DirPerm); err != nil {
			return err
		}
		mode := hdr.FileInfo().Mode().Perm() | 0o600
		out, err := os.OpenFile(target, os.O_CREATE|os.O_EXCL|os.O_WRONLY, mode) //nolint:gosec // target is checked to be local
		if err != nil {
			return err
		}
		if _, err := io.CopyN(out, tr, hdr.Size); err != nil {
			_ = out.Close()
			return err
		}
		return out.Close()
	default:
		// Links and special files are never written by Create.
		return nil
	}
}

// ReadFile returns the contents of the entry called name.
func (a *Archiver) ReadFile(archivePath, name string) ([]byte, error) {
	f, tr, err := open(archivePath)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrArchiveReadFailed.Error()), "archive", archivePath)
	}
	defer f.Close() //nolint:errcheck // Read-only file.

	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil, zerr.With(errEntryNotFound, "entry", name)
		}
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrArchiveReadFailed.Error()), "archive", archivePath)
		}
		if hdr.Typeflag == tar.TypeReg && path.Clean(hdr.Name) == name {
			data, err := io.ReadAll(tr)
			if err != nil {
				return nil, zerr.With(zerr.Wrap(err, domain.ErrArchiveReadFailed.Error()), "archive", archivePath)
			}
			return data, nil
		}
	}
}

func open(archivePath string) (*os.File, *tar.Reader, error) {
	f, err := os.Open(archivePath) //nolint:gosec // Archive paths are chosen by the caller.
	if err != nil {
		return nil, nil, err
	}
	xr, err := xz.NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	return f, tar.NewReader(xr), nil
}
