package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/pak/internal/adapters/archive"
	"go.trai.ch/pak/internal/adapters/bus"
	"go.trai.ch/pak/internal/adapters/cas"
	"go.trai.ch/pak/internal/adapters/config"
	"go.trai.ch/pak/internal/adapters/fetch"
	"go.trai.ch/pak/internal/adapters/fs"
	"go.trai.ch/pak/internal/adapters/telemetry"
	"go.trai.ch/pak/internal/app"
	"go.trai.ch/pak/internal/core/ports"
	"go.trai.ch/pak/internal/core/ports/mocks"
	"go.trai.ch/pak/internal/engine/repo"
	"go.uber.org/mock/gomock"
)

func newApplication(lg ports.Logger) *app.App {
	hasher := fs.NewHasher()
	manager := repo.NewManager(
		fetch.New(),
		archive.New(),
		config.NewManifestDecoder(config.NewOSFS()),
		cas.NewStore(hasher),
		hasher,
		fs.NewWalker(),
		telemetry.NewNoOpTracer(),
		lg,
	)
	return app.New(manager, bus.NewFactory(), config.NewSettingsLoader(config.NewOSFS(), ""), lg)
}

func providerFor(a *app.App, lg ports.Logger) ComponentProvider {
	return func(_ context.Context) (*app.Components, func(), error) {
		return app.NewComponents(a, lg), func() {}, nil
	}
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stdout, stderr, providerFor(newApplication(mockLogger), mockLogger))

	assert.Equal(t, 0, exitCode)
	assert.Contains(t, stdout.String(), "pak version")
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, io.Discard, stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_OperationFailure verifies that a failure reported on the bus is not logged again.
func TestRun_OperationFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Debug(gomock.Any()).AnyTimes()
	// No Error expectation: logging the failure a second time fails the test.

	missing := filepath.Join(t.TempDir(), "missing")
	stdout := new(bytes.Buffer)
	exitCode := run(context.Background(),
		[]string{"server-generate", "--repo-dir", missing, "--output-type", "JSON"},
		stdout, io.Discard, providerFor(newApplication(mockLogger), mockLogger))

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stdout.String(), `["ERROR","repository directory not found`)
	assert.NotContains(t, stdout.String(), `"DONE"`)
}

// TestRun_UsageError verifies that errors outside an operation are logged.
func TestRun_UsageError(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Error(gomock.Any()).Times(1)

	exitCode := run(context.Background(), []string{"install"}, io.Discard, io.Discard,
		providerFor(newApplication(mockLogger), mockLogger))

	assert.Equal(t, 1, exitCode)
}

// TestRun_Canceled verifies that a canceled context fails a fetching operation.
func TestRun_Canceled(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Debug(gomock.Any()).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dir := t.TempDir()
	exitCode := run(ctx,
		[]string{"sync", "--repo-dir", dir, "--local-dir", filepath.Join(dir, "local")},
		io.Discard, io.Discard, providerFor(newApplication(mockLogger), mockLogger))

	assert.Equal(t, 1, exitCode)
}
