package telemetry

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pak/internal/adapters/logger"
	"go.trai.ch/pak/internal/core/ports"
)

// NodeID is the unique identifier for the tracer Graft node.
const NodeID graft.ID = "adapter.telemetry"

func init() {
	graft.Register(graft.Node[ports.Tracer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Tracer, error) {
			lg, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			// The provider lives for the whole process.
			_ = Setup(NewBridge(lg))
			return NewOTelTracer(InstrumentationName), nil
		},
	})
}
