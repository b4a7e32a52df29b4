package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"go.trai.ch/pak/internal/core/domain"
	"go.trai.ch/pak/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// SettingsEnv names the environment variable overriding the settings file location.
const SettingsEnv = "PAK_CONFIG"

var _ ports.SettingsLoader = (*SettingsLoader)(nil)

// SettingsLoader implements ports.SettingsLoader using a YAML file.
type SettingsLoader struct {
	fs   FileSystem
	path string
}

// NewSettingsLoader creates a loader for the settings file at path.
func NewSettingsLoader(fsys FileSystem, path string) *SettingsLoader {
	return &SettingsLoader{fs: fsys, path: path}
}

// DefaultSettingsPath returns $PAK_CONFIG if set, otherwise pak/config.yaml under the XDG config home.
func DefaultSettingsPath() string {
	if p := os.Getenv(SettingsEnv); p != "" {
		return p
	}
	return filepath.Join(xdg.ConfigHome, "pak", "config.yaml")
}

// Load reads the settings file. A missing file yields domain.DefaultSettings.
func (l *SettingsLoader) Load() (domain.Settings, error) {
	settings := domain.DefaultSettings()
	if l.path == "" {
		return settings, nil
	}

	data, err := l.fs.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return settings, nil
		}
		return settings, zerr.With(zerr.Wrap(err, domain.ErrSettingsReadFailed.Error()), "path", l.path)
	}

	var file SettingsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return settings, zerr.With(zerr.Wrap(err, domain.ErrSettingsDecodeFailed.Error()), "path", l.path)
	}

	return apply(settings, &file, l.path)
}

func apply(settings domain.Settings, file *SettingsFile, path string) (domain.Settings, error) {
	if file.RepoDir != "" {
		settings.RepoDir = file.RepoDir
	}
	if file.LocalDir != "" {
		settings.LocalDir = file.LocalDir
	}
	if file.Timeout != "" {
		d, err := time.ParseDuration(file.Timeout)
		if err != nil || d <= 0 {
			e := zerr.With(domain.ErrInvalidTimeout, "path", path)
			return settings, zerr.With(e, "timeout", file.Timeout)
		}
		settings.Timeout = d
	}
	if file.OutputType != "" {
		t, err := domain.ParseOutputType(file.OutputType)
		if err != nil {
			return settings, zerr.With(err, "path", path)
		}
		settings.OutputType = t
	}
	if file.LocalCache != nil {
		settings.LocalCache = *file.LocalCache
	}
	if file.Jobs > 0 {
		settings.Jobs = file.Jobs
	}
	return settings, nil
}
