package repo

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/pak/internal/adapters/fs"
	"go.trai.ch/pak/internal/core/domain"
	"go.trai.ch/pak/internal/core/ports"
	"go.trai.ch/zerr"
)

// Generate scans a repository directory for archives and writes its index.
// Archives without a valid manifest and duplicate ids are skipped with a warning.
func (m *Manager) Generate(ctx context.Context, rep ports.Reporter, req GenerateRequest) (err error) {
	ctx, end := m.startSpan(ctx, "server-generate")
	defer end(&err)

	if err := requireDir(req.RepoDir, domain.ErrMissingRepoDir); err != nil {
		return err
	}
	if !fs.Exists(req.RepoDir, true) {
		return zerr.With(domain.ErrRepoDirNotFound, "path", req.RepoDir)
	}

	dirEntries, err := os.ReadDir(req.RepoDir)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrRepoDirNotFound.Error()), "path", req.RepoDir)
	}

	ix := domain.NewIndex()
	for _, de := range dirEntries {
		if err := ctx.Err(); err != nil {
			return zerr.Wrap(err, domain.ErrIndexWriteFailed.Error())
		}

		name := de.Name()
		if !de.Type().IsRegular() || strings.HasPrefix(name, ".") || filepath.Ext(name) != domain.ArchiveExt {
			continue
		}

		entry, err := m.describeArchive(filepath.Join(req.RepoDir, name))
		if err != nil {
			rep.Report(domain.Warn("Skipping %s: %v", name, err))
			continue
		}
		if !ix.Add(entry) {
			rep.Report(domain.Warn("Skipping %s: duplicate package id %q", name, entry.ID))
			continue
		}
		rep.Report(domain.Status("Added %s(%s) from %s", entry.ID, entry.Version, name))
	}

	data, err := json.MarshalIndent(ix, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrIndexWriteFailed.Error())
	}
	data = append(data, '\n')

	target := filepath.Join(req.RepoDir, domain.IndexFileName)
	if err := fs.AtomicWriteFile(target, data, domain.FilePerm); err != nil {
		return zerr.Wrap(err, domain.ErrIndexWriteFailed.Error())
	}
	if err := domain.ValidateRepositoryIndexFile(target); err != nil {
		return err
	}

	rep.Report(domain.Status("Wrote %s (%s)", target, plural(ix.Len(), "package")))
	return nil
}

// describeArchive reads the manifest of an archive and measures it.
func (m *Manager) describeArchive(path string) (domain.ArchiveManifest, error) {
	data, err := m.archiver.ReadFile(path, domain.ManifestFileName)
	if err != nil {
		return domain.ArchiveManifest{}, err
	}
	man, err := m.manifests.Decode(data)
	if err != nil {
		return domain.ArchiveManifest{}, err
	}
	d, size, err := m.hasher.Digest(path)
	if err != nil {
		return domain.ArchiveManifest{}, err
	}

	return domain.ArchiveManifest{
		Manifest:    man,
		ArchiveSize: size,
		ArchiveHash: d.String(),
		ArchiveURL:  "./" + filepath.Base(path),
	}, nil
}
