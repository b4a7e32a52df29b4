package ports

import "go.trai.ch/pak/internal/core/domain"

// ManifestDecoder turns manifest files into validated manifests.
//
//go:generate mockgen -source=manifest.go -destination=mocks/mock_manifest.go -package=mocks
type ManifestDecoder interface {
	// Decode parses and validates manifest file contents.
	Decode(data []byte) (domain.Manifest, error)

	// ReadFile reads and decodes the manifest file at path.
	ReadFile(path string) (domain.Manifest, error)
}
