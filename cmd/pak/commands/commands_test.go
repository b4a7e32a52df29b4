package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pak/cmd/pak/commands"
	"go.trai.ch/pak/internal/app"
	"go.trai.ch/pak/internal/build"
	"go.trai.ch/pak/internal/core/domain"
)

type mockApp struct {
	settings    domain.Settings
	settingsErr error
	err         error

	out       app.Output
	sync      app.SyncOptions
	install   app.InstallOptions
	uninstall app.UninstallOptions
	build     app.BuildOptions
	generate  app.GenerateOptions
	list      app.ListOptions
	called    string
}

func newMockApp() *mockApp {
	return &mockApp{settings: domain.DefaultSettings()}
}

func (m *mockApp) Settings() (domain.Settings, error) {
	return m.settings, m.settingsErr
}

func (m *mockApp) Sync(_ context.Context, out app.Output, opts app.SyncOptions) error {
	m.called, m.out, m.sync = "sync", out, opts
	return m.err
}

func (m *mockApp) Install(_ context.Context, out app.Output, opts app.InstallOptions) error {
	m.called, m.out, m.install = "install", out, opts
	return m.err
}

func (m *mockApp) Uninstall(_ context.Context, out app.Output, opts app.UninstallOptions) error {
	m.called, m.out, m.uninstall = "uninstall", out, opts
	return m.err
}

func (m *mockApp) Build(_ context.Context, out app.Output, opts app.BuildOptions) error {
	m.called, m.out, m.build = "pkg-build", out, opts
	return m.err
}

func (m *mockApp) Generate(_ context.Context, out app.Output, opts app.GenerateOptions) error {
	m.called, m.out, m.generate = "server-generate", out, opts
	return m.err
}

func (m *mockApp) List(_ context.Context, out app.Output, opts app.ListOptions) error {
	m.called, m.out, m.list = "list", out, opts
	return m.err
}

func execute(t *testing.T, mock *mockApp, args ...string) (string, error) {
	t.Helper()

	cli := commands.New(mock)
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs(args)
	err := cli.Execute(context.Background())
	return buf.String(), err
}

func TestCommands_Sync(t *testing.T) {
	mock := newMockApp()
	_, err := execute(t, mock, "sync", "--repo-dir", "https://example.com/repo", "--local-dir", "/tmp/local", "--timeout", "3s")
	require.NoError(t, err)

	assert.Equal(t, "sync", mock.called)
	assert.Equal(t, app.SyncOptions{
		RepoDir:  "https://example.com/repo",
		LocalDir: "/tmp/local",
		Timeout:  3 * time.Second,
	}, mock.sync)
	assert.Equal(t, domain.OutputText, mock.out.Type)
	assert.False(t, mock.out.Verbose)
}

func TestCommands_Install(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		mock := newMockApp()
		_, err := execute(t, mock, "install", "a", "b",
			"--repo-dir", "/srv/repo", "--local-dir", "/tmp/local",
			"--local-cache", "0", "--jobs", "4", "--output-type", "JSON_0", "--verbose")
		require.NoError(t, err)

		assert.Equal(t, app.InstallOptions{
			RepoDir:  "/srv/repo",
			LocalDir: "/tmp/local",
			IDs:      []string{"a", "b"},
			UseCache: false,
			Timeout:  domain.DefaultTimeout,
			Jobs:     4,
		}, mock.install)
		assert.Equal(t, domain.OutputJSON0, mock.out.Type)
		assert.True(t, mock.out.Verbose)
	})

	t.Run("requires ids", func(t *testing.T) {
		mock := newMockApp()
		_, err := execute(t, mock, "install", "--repo-dir", "/srv/repo")
		require.Error(t, err)
		assert.Empty(t, mock.called)
	})

	t.Run("rejects bad local cache", func(t *testing.T) {
		mock := newMockApp()
		_, err := execute(t, mock, "install", "a", "--local-cache", "2")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "expected 0 or 1")
		assert.Empty(t, mock.called)
	})

	t.Run("rejects bad jobs", func(t *testing.T) {
		mock := newMockApp()
		_, err := execute(t, mock, "install", "a", "--jobs", "0")
		require.Error(t, err)
		assert.Empty(t, mock.called)
	})

	t.Run("rejects non positive timeout", func(t *testing.T) {
		mock := newMockApp()
		_, err := execute(t, mock, "install", "a", "--timeout", "0s")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid timeout")
	})
}

func TestCommands_SettingsDefaults(t *testing.T) {
	mock := newMockApp()
	mock.settings = domain.Settings{
		RepoDir:    "https://example.com/repo",
		LocalDir:   "/home/user/packages",
		Timeout:    time.Minute,
		OutputType: domain.OutputJSON,
		LocalCache: false,
		Jobs:       3,
	}

	_, err := execute(t, mock, "install", "a")
	require.NoError(t, err)
	assert.Equal(t, app.InstallOptions{
		RepoDir:  "https://example.com/repo",
		LocalDir: "/home/user/packages",
		IDs:      []string{"a"},
		UseCache: false,
		Timeout:  time.Minute,
		Jobs:     3,
	}, mock.install)
	assert.Equal(t, domain.OutputJSON, mock.out.Type)

	// Explicit flags win over settings.
	_, err = execute(t, mock, "install", "a", "--local-dir", "/tmp/other", "--jobs", "1", "--output-type", "TEXT")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/other", mock.install.LocalDir)
	assert.Equal(t, "https://example.com/repo", mock.install.RepoDir)
	assert.Equal(t, 1, mock.install.Jobs)
	assert.Equal(t, domain.OutputText, mock.out.Type)
}

func TestCommands_SettingsError(t *testing.T) {
	mock := newMockApp()
	mock.settingsErr = errors.New("bad yaml")

	_, err := execute(t, mock, "list", "--repo-dir", "/srv/repo")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad yaml")
	assert.Empty(t, mock.called)
}

func TestCommands_InvalidOutputType(t *testing.T) {
	mock := newMockApp()
	_, err := execute(t, mock, "sync", "--output-type", "XML")
	require.ErrorContains(t, err, "invalid output type")
	assert.Empty(t, mock.called)
}

func TestCommands_Uninstall(t *testing.T) {
	mock := newMockApp()
	_, err := execute(t, mock, "uninstall", "a", "--local-dir", "/tmp/local")
	require.NoError(t, err)
	assert.Equal(t, app.UninstallOptions{LocalDir: "/tmp/local", IDs: []string{"a"}}, mock.uninstall)
}

func TestCommands_PkgBuild(t *testing.T) {
	t.Run("defaults source to current directory", func(t *testing.T) {
		mock := newMockApp()
		_, err := execute(t, mock, "pkg-build")
		require.NoError(t, err)
		assert.Equal(t, app.BuildOptions{SourceDir: "."}, mock.build)
	})

	t.Run("wires output file", func(t *testing.T) {
		mock := newMockApp()
		_, err := execute(t, mock, "pkg-build", "--pkg-source-dir", "src", "--pkg-output-filepath", "out/x.txz")
		require.NoError(t, err)
		assert.Equal(t, app.BuildOptions{SourceDir: "src", OutputFile: "out/x.txz"}, mock.build)
	})

	t.Run("rejects both outputs", func(t *testing.T) {
		mock := newMockApp()
		_, err := execute(t, mock, "pkg-build", "--pkg-output-dir", "out", "--pkg-output-filepath", "out/x.txz")
		require.Error(t, err)
		assert.Empty(t, mock.called)
	})
}

func TestCommands_ServerGenerate(t *testing.T) {
	mock := newMockApp()
	_, err := execute(t, mock, "server-generate", "--repo-dir", "/srv/repo")
	require.NoError(t, err)
	assert.Equal(t, app.GenerateOptions{RepoDir: "/srv/repo"}, mock.generate)
}

func TestCommands_List(t *testing.T) {
	mock := newMockApp()
	_, err := execute(t, mock, "list", "--repo-dir", "/srv/repo")
	require.NoError(t, err)
	assert.Equal(t, app.ListOptions{RepoDir: "/srv/repo", Timeout: domain.DefaultTimeout}, mock.list)
}

func TestCommands_ReturnsAppError(t *testing.T) {
	mock := newMockApp()
	mock.err = domain.ErrOperationFailed

	_, err := execute(t, mock, "sync", "--repo-dir", "/srv/repo", "--local-dir", "/tmp/local")
	require.ErrorIs(t, err, domain.ErrOperationFailed)
}

func TestCommands_Version(t *testing.T) {
	out, err := execute(t, newMockApp(), "version")
	require.NoError(t, err)
	assert.Contains(t, out, "pak version "+build.Version)

	out, err = execute(t, newMockApp(), "--version")
	require.NoError(t, err)
	assert.Contains(t, out, build.Version)
}

func TestCommands_VerboseAndVersionFlags(t *testing.T) {
	mock := newMockApp()
	_, err := execute(t, mock, "list", "--repo-dir", "/srv/repo", "--verbose")
	require.NoError(t, err)
	assert.Equal(t, "list", mock.called)
	assert.True(t, mock.out.Verbose)

	// -v stays bound to the root version flag.
	out, err := execute(t, newMockApp(), "-v")
	require.NoError(t, err)
	assert.Contains(t, out, "pak version "+build.Version)
}
