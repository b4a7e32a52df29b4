// Package app implements the application layer for pak.
package app

import (
	"context"
	"io"

	"go.trai.ch/pak/internal/core/domain"
	"go.trai.ch/pak/internal/core/ports"
	"go.trai.ch/pak/internal/engine/repo"
)

type (
	// SyncOptions configures App.Sync.
	SyncOptions = repo.SyncRequest
	// InstallOptions configures App.Install.
	InstallOptions = repo.InstallRequest
	// UninstallOptions configures App.Uninstall.
	UninstallOptions = repo.UninstallRequest
	// BuildOptions configures App.Build.
	BuildOptions = repo.BuildRequest
	// GenerateOptions configures App.Generate.
	GenerateOptions = repo.GenerateRequest
	// ListOptions configures App.List.
	ListOptions = repo.ListRequest
)

// Engine runs the repository operations. *repo.Manager implements it.
type Engine interface {
	Sync(ctx context.Context, rep ports.Reporter, req repo.SyncRequest) error
	Install(ctx context.Context, rep ports.Reporter, req repo.InstallRequest) error
	Uninstall(ctx context.Context, rep ports.Reporter, req repo.UninstallRequest) error
	Build(ctx context.Context, rep ports.Reporter, req repo.BuildRequest) error
	Generate(ctx context.Context, rep ports.Reporter, req repo.GenerateRequest) error
	List(ctx context.Context, rep ports.Reporter, req repo.ListRequest) error
}

// Verbosity toggles debug diagnostics.
type Verbosity interface {
	SetVerbose(enable bool)
}

// Output selects where and how an operation reports.
type Output struct {
	Writer  io.Writer
	Type    domain.OutputType
	Verbose bool
}

// App drives one repository operation per call and owns its reporter.
type App struct {
	engine    Engine
	reporters ports.ReporterFactory
	settings  ports.SettingsLoader
	logger    ports.Logger
	verbosity Verbosity
}

// New creates a new App instance with the provided dependencies.
func New(engine Engine, reporters ports.ReporterFactory, settings ports.SettingsLoader, logger ports.Logger) *App {
	return &App{
		engine:    engine,
		reporters: reporters,
		settings:  settings,
		logger:    logger,
	}
}

// WithVerbosity sets the component switched to debug logging by Output.Verbose.
func (a *App) WithVerbosity(v Verbosity) *App {
	a.verbosity = v
	return a
}

// Settings returns the configured command defaults.
func (a *App) Settings() (domain.Settings, error) {
	return a.settings.Load()
}

// Sync downloads the repository index into the local directory.
func (a *App) Sync(ctx context.Context, out Output, opts SyncOptions) error {
	return a.run(out, "sync", func(rep ports.Reporter) error {
		return a.engine.Sync(ctx, rep, opts)
	})
}

// Install fetches, verifies and installs packages.
func (a *App) Install(ctx context.Context, out Output, opts InstallOptions) error {
	return a.run(out, "install", func(rep ports.Reporter) error {
		return a.engine.Install(ctx, rep, opts)
	})
}

// Uninstall removes installed packages.
func (a *App) Uninstall(ctx context.Context, out Output, opts UninstallOptions) error {
	return a.run(out, "uninstall", func(rep ports.Reporter) error {
		return a.engine.Uninstall(ctx, rep, opts)
	})
}

// Build packs a package source directory into an archive.
func (a *App) Build(ctx context.Context, out Output, opts BuildOptions) error {
	return a.run(out, "pkg-build", func(rep ports.Reporter) error {
		return a.engine.Build(ctx, rep, opts)
	})
}

// Generate writes the repository index for a directory of archives.
func (a *App) Generate(ctx context.Context, out Output, opts GenerateOptions) error {
	return a.run(out, "server-generate", func(rep ports.Reporter) error {
		return a.engine.Generate(ctx, rep, opts)
	})
}

// List prints the packages of a repository.
func (a *App) List(ctx context.Context, out Output, opts ListOptions) error {
	return a.run(out, "list", func(rep ports.Reporter) error {
		return a.engine.List(ctx, rep, opts)
	})
}

// run reports the outcome of op: a single ERROR carrying the failure, or DONE.
// A failure is returned as domain.ErrOperationFailed since it is already on the bus.
func (a *App) run(out Output, name string, op func(ports.Reporter) error) error {
	if out.Verbose && a.verbosity != nil {
		a.verbosity.SetVerbose(true)
	}

	w := out.Writer
	if w == nil {
		w = io.Discard
	}
	rep := a.reporters.New(w, out.Type)

	if err := op(rep); err != nil {
		a.logger.Debug(name + " failed: " + err.Error())
		rep.Report(domain.Failure("%v", err))
		return domain.ErrOperationFailed
	}

	rep.Report(domain.Done())
	return nil
}
