package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	cronlib "github.com/robfig/cron/v3"
	"go.trai.ch/gbfsync/internal/core/domain"
	"go.trai.ch/zerr"
)

var scheduleParser = cronlib.NewParser(
	cronlib.Minute | cronlib.Hour | cronlib.Dom | cronlib.Month | cronlib.Dow | cronlib.Descriptor,
)

// ParseSchedule parses a five-field cron expression or a descriptor such as
// "@every 6h".
func ParseSchedule(expr string) (cronlib.Schedule, error) {
	sched, err := scheduleParser.Parse(expr)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrInvalidSchedule.Error()), "schedule", expr)
	}
	return sched, nil
}

// WatchTarget names what a scheduled tick synchronizes. Exactly one of
// Category and Page is set.
type WatchTarget struct {
	Category   string
	ResumeFrom string
	Page       string
}

// Watch synchronizes target on schedule until ctx is done. A tick that fires
// while the previous synchronization still runs is skipped.
func (a *App) Watch(ctx context.Context, expr string, target WatchTarget, opts RunOptions) error {
	sched, err := ParseSchedule(expr)
	if err != nil {
		return err
	}
	if (target.Category == "") == (target.Page == "") {
		return zerr.With(domain.ErrInvalidSchedule, "reason", "exactly one of category and page is required")
	}

	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		next := sched.Next(time.Now())
		a.logger.Info(fmt.Sprintf("next synchronization at %s", next.Format(time.RFC3339)))

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			a.tick(ctx, target, opts)
		}()
	}
}

func (a *App) tick(ctx context.Context, target WatchTarget, opts RunOptions) {
	var (
		report *domain.Report
		err    error
	)
	if target.Category != "" {
		report, err = a.SyncCategory(ctx, target.Category, target.ResumeFrom, opts)
	} else {
		report, err = a.SyncPage(ctx, target.Page, opts)
	}

	switch {
	case errors.Is(err, domain.ErrSyncInProgress):
		a.logger.Warn("previous synchronization still running, skipping this tick")
	case err != nil && ctx.Err() != nil:
		// Shutting down.
	case err != nil:
		a.logger.Error(err)
	default:
		p := report.Progress
		a.logger.Info(fmt.Sprintf("%s: %d uploaded, %d duplicates, %d failed of %d",
			report.Label, p.Uploaded, p.Duplicates, p.Failed, p.Total))
	}
}
