// Package driver runs synchronization passes: it derives the tasks of a wiki
// page, downloads them and hands every asset to the resolver and the redirect
// maintainer.
package driver

import (
	"context"
	"fmt"
	"time"

	"go.trai.ch/gbfsync/internal/assets"
	"go.trai.ch/gbfsync/internal/core/domain"
	"go.trai.ch/gbfsync/internal/core/ports"
	"go.trai.ch/gbfsync/internal/engine/redirect"
	"go.trai.ch/gbfsync/internal/engine/resolver"
	"go.trai.ch/zerr"
)

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Sleep is the default SleepFunc.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Driver orchestrates synchronization passes. A Driver holds no per-pass
// state and may be reused.
type Driver struct {
	wiki      ports.Wiki
	fetcher   ports.Fetcher
	resolver  *resolver.Resolver
	redirects *redirect.Maintainer
	deriver   *assets.Deriver
	ledger    ports.Ledger
	tracer    ports.Tracer
	logger    ports.Logger

	delay      time.Duration
	concurrent bool
	sleep      SleepFunc
	progress   ports.ProgressSink
}

// Option configures a Driver.
type Option func(*Driver)

// WithSleeper replaces the politeness delay implementation.
func WithSleeper(fn SleepFunc) Option {
	return func(d *Driver) {
		d.sleep = fn
	}
}

// New creates a Driver.
func New(
	wiki ports.Wiki,
	fetcher ports.Fetcher,
	res *resolver.Resolver,
	redirects *redirect.Maintainer,
	deriver *assets.Deriver,
	ledger ports.Ledger,
	tracer ports.Tracer,
	logger ports.Logger,
	cfg domain.SyncConfig,
	opts ...Option,
) *Driver {
	d := &Driver{
		wiki:       wiki,
		fetcher:    fetcher,
		resolver:   res,
		redirects:  redirects,
		deriver:    deriver,
		ledger:     ledger,
		tracer:     tracer,
		logger:     logger,
		delay:      cfg.Delay,
		concurrent: cfg.Concurrent,
		sleep:      Sleep,
		progress:   ports.NopProgress{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// WithProgress returns a copy of d reporting to sink.
func (d *Driver) WithProgress(sink ports.ProgressSink) *Driver {
	c := *d
	if sink == nil {
		sink = ports.NopProgress{}
	}
	c.progress = sink
	return &c
}

// SyncPage synchronizes every asset implied by the wiki page title.
func (d *Driver) SyncPage(ctx context.Context, title string) (*domain.Report, error) {
	return d.SyncPageAs(ctx, title, "")
}

// SyncPageAs is SyncPage with the object kind forced instead of detected.
func (d *Driver) SyncPageAs(ctx context.Context, title string, kind assets.Kind) (*domain.Report, error) {
	ctx, span := d.tracer.Start(ctx, title)
	defer span.End()

	p := d.newPass(title)
	report, err := p.page(ctx, title, kind)
	if err != nil {
		span.RecordError(err)
	}
	return report, err
}

// SyncTasks synchronizes an explicit task list under label.
func (d *Driver) SyncTasks(ctx context.Context, label string, tasks []domain.AssetTask) (*domain.Report, error) {
	ctx, span := d.tracer.Start(ctx, label)
	defer span.End()

	p := d.newPass(label)
	report, err := p.run(ctx, tasks)
	if err != nil {
		span.RecordError(err)
	}
	return report, err
}

// SyncStatusIcons uploads the status icons named by identifier.
func (d *Driver) SyncStatusIcons(ctx context.Context, identifier string, maxIndex int) (*domain.Report, error) {
	tasks, err := d.deriver.StatusIconTasks(identifier, maxIndex)
	if err != nil {
		return nil, err
	}
	return d.SyncTasks(ctx, "status "+identifier, tasks)
}

// SyncBanners uploads the event banners of id.
func (d *Driver) SyncBanners(ctx context.Context, id string, maxIndex int) (*domain.Report, error) {
	tasks, err := d.deriver.BannerTasks(id, maxIndex)
	if err != nil {
		return nil, err
	}
	return d.SyncTasks(ctx, "banner "+id, tasks)
}

// SyncItem uploads the square and icon art of one item.
func (d *Driver) SyncItem(ctx context.Context, itemType, id, name string) (*domain.Report, error) {
	tasks, err := d.deriver.SingleItemTasks(itemType, id, name)
	if err != nil {
		return nil, err
	}
	return d.SyncTasks(ctx, "item "+id, tasks)
}

// SyncCategory synchronizes every page of category in member order. With
// resumeFrom set, pages before it are skipped. A page that fails is logged and
// listed in the report; the remaining pages still run.
func (d *Driver) SyncCategory(ctx context.Context, category, resumeFrom string) (*domain.Report, error) {
	ctx, span := d.tracer.Start(ctx, "Category:"+category)
	defer span.End()

	members, err := d.wiki.CategoryMembers(ctx, category)
	if err != nil {
		span.RecordError(err)
		return nil, zerr.With(err, "category", category)
	}

	total := &domain.Report{Label: "Category:" + category}
	skipping := resumeFrom != ""
	for _, member := range members {
		if skipping {
			if member != resumeFrom {
				continue
			}
			skipping = false
		}

		report, err := d.SyncPage(ctx, member)
		if report != nil {
			total.Merge(report)
		}
		if err == nil {
			continue
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return total, ctxErr
		}
		d.logger.Error(zerr.With(err, "page", member))
		total.Failures = append(total.Failures, domain.TaskFailure{CanonicalName: member, Reason: err.Error()})
	}

	if skipping {
		d.logger.Warn(fmt.Sprintf("page %q is not in Category:%s, nothing was synchronized", resumeFrom, category))
	}
	return total, nil
}
