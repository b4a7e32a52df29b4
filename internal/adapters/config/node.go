package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pak/internal/core/ports"
)

const (
	// ManifestNodeID is the unique identifier for the manifest decoder Graft node.
	ManifestNodeID graft.ID = "adapter.config.manifest"
	// SettingsNodeID is the unique identifier for the settings loader Graft node.
	SettingsNodeID graft.ID = "adapter.config.settings"
)

func init() {
	graft.Register(graft.Node[ports.ManifestDecoder]{
		ID:        ManifestNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ManifestDecoder, error) {
			return NewManifestDecoder(NewOSFS()), nil
		},
	})

	graft.Register(graft.Node[ports.SettingsLoader]{
		ID:        SettingsNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.SettingsLoader, error) {
			return NewSettingsLoader(NewOSFS(), DefaultSettingsPath()), nil
		},
	})
}
