package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/gbfsync/internal/adapters/cdn"       //nolint:depguard // Wired in app layer
	"go.trai.ch/gbfsync/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/gbfsync/internal/adapters/ledger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/gbfsync/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/gbfsync/internal/adapters/mediawiki" //nolint:depguard // Wired in app layer
	"go.trai.ch/gbfsync/internal/core/domain"
	"go.trai.ch/gbfsync/internal/core/ports"
	"go.trai.ch/gbfsync/internal/engine/redirect"
	"go.trai.ch/gbfsync/internal/engine/resolver"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains the initialized application components the CLI layer
// needs.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			mediawiki.NodeID,
			cdn.NodeID,
			resolver.NodeID,
			redirect.NodeID,
			ledger.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{AppNodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: a, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
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
	res, err := graft.Dep[*resolver.Resolver](ctx)
	if err != nil {
		return nil, err
	}
	redirects, err := graft.Dep[*redirect.Maintainer](ctx)
	if err != nil {
		return nil, err
	}
	store, err := graft.Dep[ports.Ledger](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	return New(cfg, wiki, fetcher, res, redirects, store, log), nil
}
