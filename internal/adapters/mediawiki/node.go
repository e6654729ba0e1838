package mediawiki

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/gbfsync/internal/adapters/config"
	"go.trai.ch/gbfsync/internal/adapters/logger"
	"go.trai.ch/gbfsync/internal/core/domain"
	"go.trai.ch/gbfsync/internal/core/ports"
)

// NodeID is the unique identifier for the MediaWiki client Graft node.
const NodeID graft.ID = "adapter.mediawiki"

func init() {
	graft.Register(graft.Node[ports.Wiki]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.Wiki, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(cfg.Wiki, log)
		},
	})
}
