package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pak/internal/adapters/bus"    //nolint:depguard // Wired in app layer
	"go.trai.ch/pak/internal/adapters/config" //nolint:depguard // Wired in app layer
	"go.trai.ch/pak/internal/adapters/logger" //nolint:depguard // Wired in app layer
	"go.trai.ch/pak/internal/core/ports"
	"go.trai.ch/pak/internal/engine/repo"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			repo.NodeID,
			bus.NodeID,
			config.SettingsNodeID,
			logger.NodeID,
			logger.ConcreteNodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			lg, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewComponents(a, lg), nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	manager, err := graft.Dep[*repo.Manager](ctx)
	if err != nil {
		return nil, err
	}

	reporters, err := graft.Dep[ports.ReporterFactory](ctx)
	if err != nil {
		return nil, err
	}

	settings, err := graft.Dep[ports.SettingsLoader](ctx)
	if err != nil {
		return nil, err
	}

	lg, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	concrete, err := graft.Dep[*logger.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(manager, reporters, settings, lg).WithVerbosity(concrete), nil
}
