package repo

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pak/internal/adapters/archive"
	"go.trai.ch/pak/internal/adapters/cas"
	"go.trai.ch/pak/internal/adapters/config"
	"go.trai.ch/pak/internal/adapters/fetch"
	"go.trai.ch/pak/internal/adapters/fs"
	"go.trai.ch/pak/internal/adapters/logger"
	"go.trai.ch/pak/internal/adapters/telemetry"
	"go.trai.ch/pak/internal/core/ports"
)

// NodeID is the unique identifier for the repository manager Graft node.
const NodeID graft.ID = "engine.repo"

func init() {
	graft.Register(graft.Node[*Manager]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			fetch.NodeID,
			archive.NodeID,
			config.ManifestNodeID,
			cas.NodeID,
			fs.HasherNodeID,
			fs.WalkerNodeID,
			telemetry.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Manager, error) {
			fetcher, err := graft.Dep[ports.Fetcher](ctx)
			if err != nil {
				return nil, err
			}
			archiver, err := graft.Dep[ports.Archiver](ctx)
			if err != nil {
				return nil, err
			}
			manifests, err := graft.Dep[ports.ManifestDecoder](ctx)
			if err != nil {
				return nil, err
			}
			store, err := graft.Dep[ports.PackageStore](ctx)
			if err != nil {
				return nil, err
			}
			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}
			walker, err := graft.Dep[*fs.Walker](ctx)
			if err != nil {
				return nil, err
			}
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}
			lg, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewManager(fetcher, archiver, manifests, store, hasher, walker, tracer, lg), nil
		},
	})
}
