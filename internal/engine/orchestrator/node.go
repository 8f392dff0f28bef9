package orchestrator

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/conduit/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/conduit/internal/adapters/metrics"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/conduit/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/conduit/internal/core/ports"
)

// NodeID is the unique identifier for the orchestrator Graft node.
const NodeID graft.ID = "engine.orchestrator"

func init() {
	graft.Register(graft.Node[*Orchestrator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			logger.NodeID,
			telemetry.TracerNodeID,
			metrics.NodeID,
		},
		Run: func(ctx context.Context) (*Orchestrator, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			recorder, err := graft.Dep[ports.Metrics](ctx)
			if err != nil {
				return nil, err
			}

			return NewOrchestrator(log, tracer, recorder), nil
		},
	})
}
