package repo

import (
	"context"
	"os"
	"strings"

	"go.trai.ch/pak/internal/adapters/fs"
	"go.trai.ch/pak/internal/core/domain"
	"go.trai.ch/pak/internal/core/ports"
	"go.trai.ch/zerr"
)

// Uninstall removes installed packages. Every id is checked before anything is removed.
func (m *Manager) Uninstall(ctx context.Context, rep ports.Reporter, req UninstallRequest) (err error) {
	_, end := m.startSpan(ctx, "uninstall")
	defer end(&err)

	if err := requireDir(req.LocalDir, domain.ErrMissingLocalDir); err != nil {
		return err
	}

	ids := normalizeIDs(req.IDs)
	if len(ids) == 0 {
		return domain.ErrNoPackagesSpecified
	}

	for _, id := range ids {
		if err := checkInstallName(id); err != nil {
			return domain.ForPackages(zerr.Wrap(err, domain.ErrInvalidPackageID.Error()), id)
		}
		if !fs.Exists(domain.InstallPath(req.LocalDir, id), true) {
			return domain.ForPackages(domain.ErrPackageNotInstalled, id)
		}
	}

	failed := 0
	for _, id := range ids {
		path := domain.InstallPath(req.LocalDir, id)
		if err := os.RemoveAll(path); err != nil {
			failed++
			rep.Report(domain.Failure("Failed to uninstall %s: %v", id, err))
			continue
		}
		rep.Report(domain.Status("Uninstalled %s", id))
	}

	if failed > 0 {
		return zerr.With(domain.ErrUninstallFailed, "failed", failed)
	}
	return nil
}

// checkInstallName rejects names that could resolve outside the local directory
// or into its private store.
func checkInstallName(id string) error {
	switch {
	case id == "":
		return &domain.ValidationError{Field: "id", Reason: "must not be empty"}
	case id == "." || id == "..":
		return &domain.ValidationError{Field: "id", Reason: "must not be a relative directory"}
	case strings.ContainsAny(id, `/\`):
		return &domain.ValidationError{Field: "id", Reason: "must not contain path separators"}
	case strings.HasPrefix(id, "."):
		return &domain.ValidationError{Field: "id", Reason: "must not be hidden"}
	}
	return nil
}
