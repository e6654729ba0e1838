package resolver

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/gbfsync/internal/adapters/cdn"       //nolint:depguard // Wired in engine wiring
	"go.trai.ch/gbfsync/internal/adapters/config"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/gbfsync/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/gbfsync/internal/adapters/mediawiki" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/gbfsync/internal/core/domain"
	"go.trai.ch/gbfsync/internal/core/ports"
	"go.trai.ch/gbfsync/internal/engine/redirect"
)

// NodeID is the unique identifier for the duplicate resolver Graft node.
const NodeID graft.ID = "engine.resolver"

func init() {
	graft.Register(graft.Node[*Resolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			mediawiki.NodeID,
			cdn.NodeID,
			redirect.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Resolver, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}

			wiki, err := graft.Dep[ports.Wiki](ctx)
			if err != nil {
				return nil, err
			}

			fetcher, err := graft.Dep[ports.Fetcher](ctx)
			if err != nil {
				return nil, err
			}

			redirects, err := graft.Dep[*redirect.Maintainer](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(wiki, fetcher, redirects, log, cfg.CDN.Host), nil
		},
	})
}
