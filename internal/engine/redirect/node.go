package redirect

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/gbfsync/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/gbfsync/internal/adapters/mediawiki" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/gbfsync/internal/core/ports"
)

// NodeID is the unique identifier for the redirect maintainer Graft node.
const NodeID graft.ID = "engine.redirect"

func init() {
	graft.Register(graft.Node[*Maintainer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{mediawiki.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Maintainer, error) {
			wiki, err := graft.Dep[ports.Wiki](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(wiki, log), nil
		},
	})
}
