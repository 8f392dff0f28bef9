package tasks

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/conduit/internal/adapters/logger"
	"go.trai.ch/conduit/internal/adapters/shell"
	"go.trai.ch/conduit/internal/core/ports"
)

// NodeID is the unique identifier for the task registry Graft node.
const NodeID graft.ID = "adapter.tasks"

func init() {
	graft.Register(graft.Node[ports.TaskResolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, shell.NodeID},
		Run: func(ctx context.Context) (ports.TaskResolver, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}
			return NewDefaultRegistry(log, executor), nil
		},
	})
}
