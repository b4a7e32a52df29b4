// Package config decodes package manifests and loads user settings.
package config

import (
	"github.com/pelletier/go-toml/v2"
	"go.trai.ch/pak/internal/core/domain"
	"go.trai.ch/pak/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ManifestDecoder = (*ManifestDecoder)(nil)

// ManifestDecoder implements ports.ManifestDecoder for pak.toml files.
type ManifestDecoder struct {
	fs FileSystem
}

// NewManifestDecoder creates a ManifestDecoder reading from fsys.
func NewManifestDecoder(fsys FileSystem) *ManifestDecoder {
	return &ManifestDecoder{fs: fsys}
}

// Decode parses TOML manifest contents and validates them.
func (d *ManifestDecoder) Decode(data []byte) (domain.Manifest, error) {
	raw := make(map[string]any)
	if err := toml.Unmarshal(data, &raw); err != nil {
		return domain.Manifest{}, zerr.Wrap(err, domain.ErrManifestDecodeFailed.Error())
	}

	id, ok := raw["id"].(string)
	if !ok {
		reason := "missing"
		if _, present := raw["id"]; present {
			reason = "expected a string"
		}
		return domain.Manifest{}, zerr.Wrap(
			&domain.ValidationError{Field: "id", Reason: reason},
			domain.ErrInvalidManifest.Error(),
		)
	}

	m, err := domain.ParseManifest(id, raw)
	if err != nil {
		return domain.Manifest{}, zerr.Wrap(err, domain.ErrInvalidManifest.Error())
	}
	return m, nil
}

// ReadFile reads and decodes the manifest at path.
func (d *ManifestDecoder) ReadFile(path string) (domain.Manifest, error) {
	data, err := d.fs.ReadFile(path)
	if err != nil {
		return domain.Manifest{}, zerr.With(zerr.Wrap(err, domain.ErrManifestReadFailed.Error()), "path", path)
	}
	m, err := d.Decode(data)
	if err != nil {
		return domain.Manifest{}, zerr.With(err, "path", path)
	}
	return m, nil
}
