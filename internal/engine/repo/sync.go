package repo

import (
	"context"

	"go.trai.ch/pak/internal/adapters/fs"
	"go.trai.ch/pak/internal/core/domain"
	"go.trai.ch/pak/internal/core/ports"
	"go.trai.ch/zerr"
)

// Sync downloads the repository index into the private store of the local directory.
// The cached copy is replaced only by a fully downloaded and valid index.
func (m *Manager) Sync(ctx context.Context, rep ports.Reporter, req SyncRequest) (err error) {
	ctx, end := m.startSpan(ctx, "sync")
	defer end(&err)

	if err := requireDir(req.RepoDir, domain.ErrMissingRepoDir); err != nil {
		return err
	}
	if err := requireDir(req.LocalDir, domain.ErrMissingLocalDir); err != nil {
		return err
	}
	if err := m.store.Prepare(req.LocalDir); err != nil {
		return err
	}

	target := domain.CachedIndexPath(req.LocalDir)
	before, err := m.hasher.Fingerprint(target)
	if err != nil {
		return err
	}

	source := domain.ResolveLocation(req.RepoDir, "./"+domain.IndexFileName)
	rep.Report(domain.Status("Syncing repository index from %s", source))

	w, err := fs.CreateAtomic(target, domain.FilePerm)
	if err != nil {
		return err
	}
	defer w.Abort()

	for tr, err := range m.fetcher.Stream(ctx, source, w, domain.FetchOptions{Timeout: req.Timeout}) {
		if err != nil {
			return fetchError(err, source)
		}
		rep.Report(domain.ProgressOf(domain.IndexFileName, domain.UnitByte, tr.Read, tr.Total))
	}

	ix, err := domain.ReadIndexFile(w.Name())
	if err != nil {
		return zerr.With(err, "source", source)
	}

	if err := w.Commit(); err != nil {
		return zerr.Wrap(err, domain.ErrIndexWriteFailed.Error())
	}

	after, err := m.hasher.Fingerprint(target)
	if err != nil {
		return err
	}

	if before != 0 && before == after {
		rep.Report(domain.Status("Repository index is up to date (%s)", plural(ix.Len(), "package")))
	} else {
		rep.Report(domain.Status("Repository index updated (%s)", plural(ix.Len(), "package")))
	}
	m.logger.Debug("synced " + source + " into " + target)
	return nil
}
