// Package app implements the application layer for gbfsync.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"go.trai.ch/gbfsync/internal/adapters/detector"
	"go.trai.ch/gbfsync/internal/adapters/linear"
	"go.trai.ch/gbfsync/internal/adapters/status"
	"go.trai.ch/gbfsync/internal/adapters/telemetry"
	"go.trai.ch/gbfsync/internal/assets"
	"go.trai.ch/gbfsync/internal/core/domain"
	"go.trai.ch/gbfsync/internal/core/ports"
	"go.trai.ch/gbfsync/internal/engine/driver"
	"go.trai.ch/gbfsync/internal/engine/redirect"
	"go.trai.ch/gbfsync/internal/engine/resolver"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	cfg       *domain.Config
	wiki      ports.Wiki
	fetcher   ports.Fetcher
	resolver  *resolver.Resolver
	redirects *redirect.Maintainer
	deriver   *assets.Deriver
	ledger    ports.Ledger
	logger    ports.Logger

	stdout     io.Writer
	stderr     io.Writer
	driverOpts []driver.Option

	// running admits one synchronization at a time.
	running sync.Mutex
}

// New creates a new App instance.
func New(
	cfg *domain.Config,
	wiki ports.Wiki,
	fetcher ports.Fetcher,
	res *resolver.Resolver,
	redirects *redirect.Maintainer,
	ledger ports.Ledger,
	log ports.Logger,
) *App {
	return &App{
		cfg:       cfg,
		wiki:      wiki,
		fetcher:   fetcher,
		resolver:  res,
		redirects: redirects,
		deriver:   assets.NewDeriver(cfg.CDN.Host),
		ledger:    ledger,
		logger:    log,
		stdout:    os.Stdout,
		stderr:    os.Stderr,
	}
}

// WithOutput redirects progress output. Used for testing.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	return a
}

// WithDriverOptions adds options to every driver the App creates.
// Used for testing to replace the politeness delay.
func (a *App) WithDriverOptions(opts ...driver.Option) *App {
	a.driverOpts = append(a.driverOpts, opts...)
	return a
}

// SetJSONLogs switches the logger to JSON output when it supports it.
func (a *App) SetJSONLogs(enable bool) {
	if lg, ok := a.logger.(interface{ SetJSON(bool) }); ok {
		lg.SetJSON(enable)
	}
}

// RunOptions configures a synchronization.
type RunOptions struct {
	// OutputMode is one of auto, live or linear.
	OutputMode string
	// Kind forces the object kind of a page instead of detecting it.
	Kind string
}

// SyncPage synchronizes the assets of the wiki page title.
func (a *App) SyncPage(ctx context.Context, title string, opts RunOptions) (*domain.Report, error) {
	kind, err := parseKind(opts.Kind)
	if err != nil {
		return nil, err
	}
	return a.run(ctx, opts, func(ctx context.Context, d *driver.Driver) (*domain.Report, error) {
		return d.SyncPageAs(ctx, title, kind)
	})
}

// SyncCategory synchronizes every page of category, starting at resumeFrom
// when it is set.
func (a *App) SyncCategory(ctx context.Context, category, resumeFrom string, opts RunOptions) (*domain.Report, error) {
	return a.run(ctx, opts, func(ctx context.Context, d *driver.Driver) (*domain.Report, error) {
		return d.SyncCategory(ctx, category, resumeFrom)
	})
}

// SyncStatusIcons uploads the status icons named by identifier.
func (a *App) SyncStatusIcons(ctx context.Context, identifier string, maxIndex int, opts RunOptions) (*domain.Report, error) {
	return a.run(ctx, opts, func(ctx context.Context, d *driver.Driver) (*domain.Report, error) {
		return d.SyncStatusIcons(ctx, identifier, maxIndex)
	})
}

// SyncBanners uploads the event banners of id.
func (a *App) SyncBanners(ctx context.Context, id string, maxIndex int, opts RunOptions) (*domain.Report, error) {
	return a.run(ctx, opts, func(ctx context.Context, d *driver.Driver) (*domain.Report, error) {
		return d.SyncBanners(ctx, id, maxIndex)
	})
}

// SyncItem uploads the art of one item given its CDN type, id and display
// name.
func (a *App) SyncItem(ctx context.Context, itemType, id, name string, opts RunOptions) (*domain.Report, error) {
	return a.run(ctx, opts, func(ctx context.Context, d *driver.Driver) (*domain.Report, error) {
		return d.SyncItem(ctx, itemType, id, name)
	})
}

// Derive reads the wiki page title and returns its tasks without fetching or
// writing anything.
func (a *App) Derive(ctx context.Context, title, kind string) (*assets.Page, error) {
	text, exists, err := a.wiki.PageText(ctx, title)
	if err != nil {
		return nil, zerr.With(err, "page", title)
	}
	if !exists {
		return nil, zerr.With(domain.ErrNoTemplates, "page", title)
	}
	return a.DeriveText(title, text, kind)
}

// DeriveText returns the tasks of a page whose wikitext is already known.
func (a *App) DeriveText(title, text, kind string) (*assets.Page, error) {
	k, err := parseKind(kind)
	if err != nil {
		return nil, err
	}
	return a.deriver.ForPage(title, text, k)
}

// History returns the most recent runs from the ledger.
func (a *App) History(ctx context.Context, limit int) ([]domain.RunSummary, error) {
	return a.ledger.Recent(ctx, limit)
}

// Close releases the ledger.
func (a *App) Close() error {
	return a.ledger.Close()
}

// run executes fn with a fresh renderer and tracer. The renderer runs
// alongside the synchronization and is stopped when fn returns.
func (a *App) run(
	ctx context.Context,
	opts RunOptions,
	fn func(context.Context, *driver.Driver) (*domain.Report, error),
) (*domain.Report, error) {
	if !a.running.TryLock() {
		return nil, domain.ErrSyncInProgress
	}
	defer a.running.Unlock()

	renderer := a.newRenderer(opts.OutputMode)

	// Spans started by the tracer reach the renderer through the bridge.
	shutdown := telemetry.Install(telemetry.NewBridge(renderer))
	defer func() {
		_ = shutdown(context.WithoutCancel(ctx))
	}()
	tracer := telemetry.NewOTelTracer(telemetry.InstrumentationName)

	drv := driver.New(
		a.wiki,
		a.fetcher,
		a.resolver,
		a.redirects,
		a.deriver,
		a.ledger,
		tracer,
		a.logger,
		a.cfg.Sync,
		a.driverOpts...,
	).WithProgress(renderer)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := renderer.Start(ctx); err != nil {
			return err
		}
		return renderer.Wait()
	})

	var report *domain.Report
	g.Go(func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = zerr.With(zerr.New("synchronization panicked"), "panic", fmt.Sprint(r))
			}
			_ = renderer.Stop()
		}()
		report, err = fn(ctx, drv)
		return err
	})

	return report, g.Wait()
}

func (a *App) newRenderer(outputMode string) ports.Renderer {
	mode := detector.ResolveMode(detector.DetectEnvironment(), outputMode)
	if mode == detector.ModeLive {
		return status.NewRenderer(a.stderr)
	}
	return linear.NewRenderer(a.stdout, a.stderr)
}

func parseKind(s string) (assets.Kind, error) {
	if s == "" {
		return "", nil
	}
	kind, ok := assets.ParseKind(s)
	if !ok {
		return "", zerr.With(domain.ErrUnknownObjectType, "kind", s)
	}
	return kind, nil
}
