package repo

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/opencontainers/go-digest"
	"go.trai.ch/pak/internal/adapters/fs"
	"go.trai.ch/pak/internal/core/domain"
	"go.trai.ch/pak/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// staged is a verified archive waiting to be extracted.
type staged struct {
	entry domain.ArchiveManifest
	path  string
	// temp marks archives to delete once the install finishes.
	temp bool
}

// Install fetches and verifies every requested package, then extracts and
// installs them one by one. Nothing is installed unless every fetch succeeds.
func (m *Manager) Install(ctx context.Context, rep ports.Reporter, req InstallRequest) (err error) {
	ctx, end := m.startSpan(ctx, "install")
	defer end(&err)

	if err := requireDir(req.RepoDir, domain.ErrMissingRepoDir); err != nil {
		return err
	}
	if err := requireDir(req.LocalDir, domain.ErrMissingLocalDir); err != nil {
		return err
	}

	ids := normalizeIDs(req.IDs)
	if len(ids) == 0 {
		return domain.ErrNoPackagesSpecified
	}

	ix, err := m.store.Index(req.LocalDir)
	if err != nil {
		return err
	}

	entries := make([]domain.ArchiveManifest, 0, len(ids))
	var missing []string
	for _, id := range ids {
		entry, ok := ix.Get(id)
		if !ok {
			missing = append(missing, id)
			continue
		}
		entries = append(entries, entry)
	}
	if len(missing) > 0 {
		return domain.ForPackages(domain.ErrPackageNotFound, missing...)
	}

	if err := m.store.Prepare(req.LocalDir); err != nil {
		return err
	}

	archives, err := m.fetchAll(ctx, rep, req, entries)
	defer removeTemps(archives)
	if err != nil {
		return err
	}

	failed := 0
	for i, a := range archives {
		if err := ctx.Err(); err != nil {
			return zerr.Wrap(err, domain.ErrInstallFailed.Error())
		}

		reinstall, err := m.installOne(ctx, req.LocalDir, a)
		if err != nil {
			failed++
			m.logger.Debug("install " + a.entry.ID + ": " + err.Error())
			rep.Report(domain.Failure("Failed to install %s: %v", a.entry.ID, err))
			continue
		}

		verb := "Installed"
		if reinstall {
			verb = "Re-installed"
		}
		rep.Report(domain.Status("%s %s(%s)", verb, a.entry.ID, a.entry.Version))
		rep.Report(domain.ProgressOf("Installing", domain.UnitPackage, int64(i+1), int64(len(archives))))
	}

	if failed > 0 {
		return zerr.With(domain.ErrPackagesFailed, "failed", failed)
	}
	return nil
}

// normalizeIDs returns the ids sorted without duplicates.
func normalizeIDs(ids []string) []string {
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}

// fetchAll runs phase one. On error the returned archives may still hold temp files to remove.
func (m *Manager) fetchAll(
	ctx context.Context,
	rep ports.Reporter,
	req InstallRequest,
	entries []domain.ArchiveManifest,
) ([]staged, error) {
	archives := make([]staged, len(entries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(req.Jobs, 1))

	for i, entry := range entries {
		g.Go(func() error {
			a, err := m.fetchOne(gctx, rep, req, entry)
			if err != nil {
				return domain.ForPackages(err, entry.ID)
			}
			archives[i] = a
			return nil
		})
	}

	return archives, g.Wait()
}

// fetchOne returns a verified archive for entry, from the cache if allowed.
func (m *Manager) fetchOne(
	ctx context.Context,
	rep ports.Reporter,
	req InstallRequest,
	entry domain.ArchiveManifest,
) (staged, error) {
	if req.UseCache {
		if path, ok := m.store.CachedArchive(req.LocalDir, entry); ok {
			rep.Report(domain.Status("Using cached archive for %s(%s)", entry.ID, entry.Version))
			return staged{entry: entry, path: path}, nil
		}
	}

	source := domain.ResolveLocation(req.RepoDir, entry.ArchiveURL)
	rep.Report(domain.Status("Fetching %s(%s) from %s", entry.ID, entry.Version, source))

	if req.UseCache {
		w, err := fs.CreateAtomic(domain.CachedArchivePath(req.LocalDir, entry.ID), domain.FilePerm)
		if err != nil {
			return staged{}, err
		}
		defer w.Abort()

		if err := m.download(ctx, rep, source, w, entry, req); err != nil {
			return staged{}, err
		}
		if err := w.Commit(); err != nil {
			return staged{}, err
		}
		return staged{entry: entry, path: domain.CachedArchivePath(req.LocalDir, entry.ID)}, nil
	}

	f, err := os.CreateTemp(domain.ArchiveCacheDir(req.LocalDir), "."+domain.ArchiveFileName(entry.ID)+"-*.tmp")
	if err != nil {
		return staged{}, zerr.Wrap(err, domain.ErrTempCreateFailed.Error())
	}
	path := f.Name()

	err = m.download(ctx, rep, source, f, entry, req)
	if closeErr := f.Close(); err == nil && closeErr != nil {
		err = zerr.Wrap(closeErr, domain.ErrFetchFailed.Error())
	}
	if err != nil {
		_ = os.Remove(path)
		return staged{}, err
	}
	return staged{entry: entry, path: path, temp: true}, nil
}

// download streams source into w while measuring it, then checks the result against entry.
func (m *Manager) download(
	ctx context.Context,
	rep ports.Reporter,
	source string,
	w io.Writer,
	entry domain.ArchiveManifest,
	req InstallRequest,
) error {
	digester := digest.SHA256.Digester()
	opts := domain.FetchOptions{Timeout: req.Timeout, Limit: entry.ArchiveSize}

	var read int64
	for tr, err := range m.fetcher.Stream(ctx, source, io.MultiWriter(w, digester.Hash()), opts) {
		if err != nil {
			var fe *domain.FetchError
			if errors.As(err, &fe) && fe.Kind == domain.KindTooLarge {
				return zerr.Wrap(&domain.MismatchError{
					ID:       entry.ID,
					Field:    "archive_size",
					Expected: strconv.FormatInt(entry.ArchiveSize, 10),
					Actual:   "more than " + strconv.FormatInt(entry.ArchiveSize, 10),
				}, domain.ErrArchiveVerifyFailed.Error())
			}
			return fetchError(err, source)
		}
		read = tr.Read
		rep.Report(domain.ProgressOf(entry.ID, domain.UnitByte, tr.Read, tr.Total))
	}

	if err := domain.VerifyArchive(entry, read, digester.Digest()); err != nil {
		return zerr.Wrap(err, domain.ErrArchiveVerifyFailed.Error())
	}
	return nil
}

// installOne extracts a verified archive beside the install path and swaps it in.
// It reports whether a previous copy was replaced.
func (m *Manager) installOne(ctx context.Context, localDir string, a staged) (bool, error) {
	id := a.entry.ID
	tmp := domain.ExtractPath(localDir, id)
	final := domain.InstallPath(localDir, id)

	if err := os.RemoveAll(tmp); err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrExtractFailed.Error()), "path", tmp)
	}
	if err := m.archiver.Extract(ctx, a.path, tmp); err != nil {
		return false, zerr.Wrap(err, domain.ErrExtractFailed.Error())
	}

	swapped := false
	defer func() {
		if !swapped {
			_ = os.RemoveAll(tmp)
		}
	}()

	man, err := m.manifests.ReadFile(filepath.Join(tmp, domain.ManifestFileName))
	if err != nil {
		return false, err
	}
	if man.ID != id {
		return false, &domain.MismatchError{ID: id, Field: "id", Expected: id, Actual: man.ID}
	}
	if man.Version != a.entry.Version {
		return false, &domain.MismatchError{ID: id, Field: "version", Expected: a.entry.Version, Actual: man.Version}
	}

	if m.beforeSwap != nil {
		if err := m.beforeSwap(id); err != nil {
			return false, err
		}
	}

	existed := fs.Exists(final, true)
	if err := fs.ReplaceDir(tmp, final); err != nil {
		return false, zerr.Wrap(err, domain.ErrInstallFailed.Error())
	}
	swapped = true
	return existed, nil
}

func removeTemps(archives []staged) {
	for _, a := range archives {
		if a.temp {
			_ = os.Remove(a.path)
		}
	}
}
