package repo

import (
	"context"
	"os"
	"path/filepath"

	"go.trai.ch/pak/internal/core/domain"
	"go.trai.ch/pak/internal/core/ports"
	"go.trai.ch/zerr"
)

// List reports the packages of the remote repository, marking those installed locally.
// It never touches the cached index.
func (m *Manager) List(ctx context.Context, rep ports.Reporter, req ListRequest) (err error) {
	ctx, end := m.startSpan(ctx, "list")
	defer end(&err)

	if err := requireDir(req.RepoDir, domain.ErrMissingRepoDir); err != nil {
		return err
	}

	tmpDir, err := os.MkdirTemp("", "pak-list-*")
	if err != nil {
		return zerr.Wrap(err, domain.ErrTempCreateFailed.Error())
	}
	defer os.RemoveAll(tmpDir) //nolint:errcheck // Best effort cleanup

	source := domain.ResolveLocation(req.RepoDir, "./"+domain.IndexFileName)
	tmp := filepath.Join(tmpDir, domain.IndexFileName)
	for tr, err := range m.fetcher.FetchToFile(ctx, source, tmp, domain.FetchOptions{Timeout: req.Timeout}) {
		if err != nil {
			return fetchError(err, source)
		}
		rep.Report(domain.ProgressOf(domain.IndexFileName, domain.UnitByte, tr.Read, tr.Total))
	}

	ix, err := domain.ReadIndexFile(tmp)
	if err != nil {
		return zerr.With(err, "source", source)
	}

	for _, entry := range ix.Entries() {
		rep.Report(domain.Status("%s(%s): %s%s", entry.ID, entry.Version, entry.Name, m.installedNote(req.LocalDir, entry)))
	}
	return nil
}

// installedNote describes the installed copy of entry, if any.
func (m *Manager) installedNote(localDir string, entry domain.ArchiveManifest) string {
	if localDir == "" {
		return ""
	}
	man, err := m.manifests.ReadFile(filepath.Join(domain.InstallPath(localDir, entry.ID), domain.ManifestFileName))
	if err != nil {
		return ""
	}

	switch c := domain.CompareVersions(man.Version, entry.Version); {
	case c < 0:
		return " [installed " + man.Version + ", update available]"
	case c > 0:
		return " [installed " + man.Version + ", newer than repository]"
	default:
		return " [installed]"
	}
}
