package app_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pak/internal/adapters/bus"
	"go.trai.ch/pak/internal/app"
	"go.trai.ch/pak/internal/core/domain"
	"go.trai.ch/pak/internal/core/ports"
	"go.trai.ch/pak/internal/core/ports/mocks"
	"go.trai.ch/pak/internal/engine/repo"
	"go.uber.org/mock/gomock"
)

// fakeEngine records requests and returns err from every operation.
type fakeEngine struct {
	err      error
	calls    []string
	install  repo.InstallRequest
	progress bool
}

func (f *fakeEngine) do(name string, rep ports.Reporter) error {
	f.calls = append(f.calls, name)
	rep.Report(domain.Status("running %s", name))
	if f.progress {
		rep.Report(domain.ProgressOf("x", domain.UnitByte, 1, 2))
	}
	return f.err
}

func (f *fakeEngine) Sync(_ context.Context, rep ports.Reporter, _ repo.SyncRequest) error {
	return f.do("sync", rep)
}

func (f *fakeEngine) Install(_ context.Context, rep ports.Reporter, req repo.InstallRequest) error {
	f.install = req
	return f.do("install", rep)
}

func (f *fakeEngine) Uninstall(_ context.Context, rep ports.Reporter, _ repo.UninstallRequest) error {
	return f.do("uninstall", rep)
}

func (f *fakeEngine) Build(_ context.Context, rep ports.Reporter, _ repo.BuildRequest) error {
	return f.do("build", rep)
}

func (f *fakeEngine) Generate(_ context.Context, rep ports.Reporter, _ repo.GenerateRequest) error {
	return f.do("generate", rep)
}

func (f *fakeEngine) List(_ context.Context, rep ports.Reporter, _ repo.ListRequest) error {
	return f.do("list", rep)
}

type verbosity struct{ enabled bool }

func (v *verbosity) SetVerbose(enable bool) { v.enabled = enable }

func newApp(t *testing.T, engine app.Engine, rec *bus.Recorder) *app.App {
	t.Helper()

	ctrl := gomock.NewController(t)
	factory := mocks.NewMockReporterFactory(ctrl)
	factory.EXPECT().New(gomock.Any(), gomock.Any()).Return(rec).AnyTimes()
	lg := mocks.NewMockLogger(ctrl)
	lg.EXPECT().Debug(gomock.Any()).AnyTimes()
	settings := mocks.NewMockSettingsLoader(ctrl)

	return app.New(engine, factory, settings, lg)
}

func TestApp_Operations_ReportDone(t *testing.T) {
	ctx := context.Background()
	out := app.Output{Type: domain.OutputText}

	ops := []struct {
		name string
		run  func(a *app.App) error
	}{
		{"sync", func(a *app.App) error { return a.Sync(ctx, out, app.SyncOptions{}) }},
		{"install", func(a *app.App) error { return a.Install(ctx, out, app.InstallOptions{}) }},
		{"uninstall", func(a *app.App) error { return a.Uninstall(ctx, out, app.UninstallOptions{}) }},
		{"build", func(a *app.App) error { return a.Build(ctx, out, app.BuildOptions{}) }},
		{"generate", func(a *app.App) error { return a.Generate(ctx, out, app.GenerateOptions{}) }},
		{"list", func(a *app.App) error { return a.List(ctx, out, app.ListOptions{}) }},
	}

	for _, op := range ops {
		t.Run(op.name, func(t *testing.T) {
			engine := &fakeEngine{}
			rec := &bus.Recorder{}
			a := newApp(t, engine, rec)

			require.NoError(t, op.run(a))
			assert.Equal(t, []string{op.name}, engine.calls)

			last, ok := rec.Last()
			require.True(t, ok)
			assert.Equal(t, domain.MessageDone, last.Type)
			assert.False(t, rec.Has(domain.MessageError))
		})
	}
}

func TestApp_Failure_ReportsSingleError(t *testing.T) {
	engine := &fakeEngine{err: errors.New("index is broken")}
	rec := &bus.Recorder{}
	a := newApp(t, engine, rec)

	err := a.Sync(context.Background(), app.Output{}, app.SyncOptions{})
	require.ErrorIs(t, err, domain.ErrOperationFailed)

	assert.Equal(t, []string{"index is broken"}, rec.Texts(domain.MessageError))
	assert.False(t, rec.Has(domain.MessageDone))
}

func TestApp_Failure_NamesPackages(t *testing.T) {
	engine := &fakeEngine{err: domain.ForPackages(domain.ErrPackageNotFound, "b", "c")}
	rec := &bus.Recorder{}
	a := newApp(t, engine, rec)

	err := a.Install(context.Background(), app.Output{}, app.InstallOptions{IDs: []string{"a", "b", "c"}})
	require.ErrorIs(t, err, domain.ErrOperationFailed)

	assert.Equal(t, []string{`packages "b", "c": package not found in repository index`}, rec.Texts(domain.MessageError))
}

func TestApp_PassesOptions(t *testing.T) {
	engine := &fakeEngine{}
	a := newApp(t, engine, &bus.Recorder{})

	opts := app.InstallOptions{RepoDir: "r", LocalDir: "l", IDs: []string{"a"}, UseCache: true, Jobs: 4}
	require.NoError(t, a.Install(context.Background(), app.Output{}, opts))
	assert.Equal(t, opts, engine.install)
}

func TestApp_Verbose(t *testing.T) {
	v := &verbosity{}
	a := newApp(t, &fakeEngine{}, &bus.Recorder{}).WithVerbosity(v)

	require.NoError(t, a.List(context.Background(), app.Output{}, app.ListOptions{}))
	assert.False(t, v.enabled)

	require.NoError(t, a.List(context.Background(), app.Output{Verbose: true}, app.ListOptions{}))
	assert.True(t, v.enabled)
}

func TestApp_WritesThroughFactory(t *testing.T) {
	ctrl := gomock.NewController(t)
	lg := mocks.NewMockLogger(ctrl)
	settings := mocks.NewMockSettingsLoader(ctrl)

	var buf bytes.Buffer
	a := app.New(&fakeEngine{progress: true}, bus.NewFactory(), settings, lg)

	require.NoError(t, a.Sync(context.Background(), app.Output{Writer: &buf, Type: domain.OutputJSON}, app.SyncOptions{}))
	assert.Equal(t,
		`["STATUS","running sync"]`+"\n"+
			`["PROGRESS",["x","BYTE",1,2]]`+"\n"+
			`["DONE",""]`+"\n",
		buf.String())
}

func TestApp_Settings(t *testing.T) {
	ctrl := gomock.NewController(t)
	settings := mocks.NewMockSettingsLoader(ctrl)
	want := domain.DefaultSettings()
	want.RepoDir = "https://example.com/repo"
	settings.EXPECT().Load().Return(want, nil)

	a := app.New(&fakeEngine{}, mocks.NewMockReporterFactory(ctrl), settings, mocks.NewMockLogger(ctrl))

	got, err := a.Settings()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
