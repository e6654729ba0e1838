package ledger

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/gbfsync/internal/adapters/config"
	"go.trai.ch/gbfsync/internal/core/domain"
	"go.trai.ch/gbfsync/internal/core/ports"
)

// NodeID is the unique identifier for the run ledger Graft node.
const NodeID graft.ID = "adapter.ledger"

func init() {
	graft.Register(graft.Node[ports.Ledger]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.Ledger, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			return NewStore(cfg.Ledger.Path), nil
		},
	})
}
