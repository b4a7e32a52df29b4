package repo

import (
	"context"
	"path"
	"path/filepath"

	"go.trai.ch/pak/internal/adapters/fs"
	"go.trai.ch/pak/internal/core/domain"
	"go.trai.ch/pak/internal/core/ports"
	"go.trai.ch/zerr"
)

// Build packs a package source directory into a .txz archive.
func (m *Manager) Build(ctx context.Context, rep ports.Reporter, req BuildRequest) (err error) {
	ctx, end := m.startSpan(ctx, "pkg-build")
	defer end(&err)

	src := req.SourceDir
	if src == "" {
		src = "."
	}
	if !fs.Exists(src, true) {
		return zerr.With(domain.ErrSourceDirNotFound, "path", src)
	}
	if req.OutputDir != "" && req.OutputFile != "" {
		return domain.ErrOutputConflict
	}

	man, err := m.manifests.ReadFile(filepath.Join(src, domain.ManifestFileName))
	if err != nil {
		return err
	}

	out := req.OutputFile
	if out == "" {
		dir := req.OutputDir
		if dir == "" {
			dir = src
		}
		out = filepath.Join(dir, domain.ArchiveFileName(man.ID))
	}

	files, err := m.collectFiles(src, out)
	if err != nil {
		return err
	}

	rep.Report(domain.Status("Building %s(%s)", man.ID, man.Version))
	for _, f := range files {
		rep.Report(domain.Status("Adding %s", f))
	}

	w, err := fs.CreateAtomic(out, domain.FilePerm)
	if err != nil {
		return zerr.Wrap(err, domain.ErrArchiveWriteFailed.Error())
	}
	defer w.Abort()

	if err := m.archiver.Create(ctx, w, src, files); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrArchiveWriteFailed.Error()), "path", out)
	}
	if err := w.Commit(); err != nil {
		return zerr.Wrap(err, domain.ErrArchiveWriteFailed.Error())
	}

	rep.Report(domain.Status("Wrote %s (%s)", out, plural(len(files), "file")))
	return nil
}

// collectFiles lists the files to archive, leaving out repository indexes and the output itself.
func (m *Manager) collectFiles(src, out string) ([]string, error) {
	outRel := ""
	absSrc, errSrc := filepath.Abs(src)
	absOut, errOut := filepath.Abs(out)
	if errSrc == nil && errOut == nil {
		if rel, err := filepath.Rel(absSrc, absOut); err == nil && filepath.IsLocal(rel) {
			outRel = filepath.ToSlash(rel)
		}
	}

	skip := func(rel string) bool {
		return rel == outRel || path.Base(rel) == domain.IndexFileName
	}

	var files []string
	for rel, err := range m.walker.WalkFiles(src, skip) {
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to walk package source"), "path", src)
		}
		files = append(files, rel)
	}
	return files, nil
}
