package driver

import (
	"context"
	"fmt"
	"time"

	"go.trai.ch/gbfsync/internal/assets"
	"go.trai.ch/gbfsync/internal/core/domain"
	"go.trai.ch/gbfsync/internal/core/ports"
	"go.trai.ch/zerr"
)

// pass is the state of one synchronization.
type pass struct {
	d       *Driver
	machine domain.SyncMachine
	report  *domain.Report
}

func (d *Driver) newPass(label string) *pass {
	return &pass{
		d: d,
		report: &domain.Report{
			Label:    label,
			Progress: domain.Progress{Label: label},
		},
	}
}

func (p *pass) to(state domain.SyncState) error {
	return p.machine.Transition(state)
}

func (p *pass) emit(stage string) {
	p.report.Progress.Stage = stage
	p.d.progress.OnProgress(p.report.Progress)
}

// page reads and derives title, then runs its tasks.
func (p *pass) page(ctx context.Context, title string, kind assets.Kind) (*domain.Report, error) {
	if err := p.to(domain.StateParsingTemplates); err != nil {
		return p.report, err
	}
	p.emit(domain.StageParsing)

	text, exists, err := p.d.wiki.PageText(ctx, title)
	if err != nil {
		return p.report, zerr.With(err, "page", title)
	}
	if !exists {
		return p.report, zerr.With(domain.ErrNoTemplates, "page", title)
	}

	if err := p.to(domain.StateDerivingTasks); err != nil {
		return p.report, err
	}
	p.emit(domain.StageDeriving)

	derived, err := p.d.deriver.ForPage(title, text, kind)
	if err != nil {
		return p.report, err
	}
	return p.run(ctx, derived.Tasks)
}

// run fetches and processes tasks in order.
func (p *pass) run(ctx context.Context, tasks []domain.AssetTask) (*domain.Report, error) {
	p.report.Progress.Total = len(tasks)
	p.begin(ctx)

	if err := p.to(domain.StateFetching); err != nil {
		return p.report, err
	}

	var err error
	if p.d.concurrent && len(tasks) > 1 {
		err = p.batch(ctx, tasks)
	} else {
		err = p.sequential(ctx, tasks)
	}
	if err != nil {
		p.finish(ctx)
		return p.report, err
	}

	if err := p.to(domain.StateReporting); err != nil {
		return p.report, err
	}
	p.report.Progress.Current = ""
	p.emit(domain.StageCompleted)
	p.finish(ctx)
	return p.report, p.to(domain.StateDone)
}

// batch downloads every task at once and falls back to one-by-one fetching
// if the batch fails as a whole.
func (p *pass) batch(ctx context.Context, tasks []domain.AssetTask) error {
	urls := make([]string, len(tasks))
	for i := range tasks {
		urls[i] = tasks[i].URL
	}

	results, err := p.d.fetcher.FetchBatch(ctx, urls)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		p.d.logger.Warn(fmt.Sprintf("concurrent download failed, falling back to sequential: %v", err))
		return p.sequential(ctx, tasks)
	}

	for i := range results {
		if results[i].OK {
			p.report.Progress.Downloaded++
		}
	}
	p.emit(domain.StageDownloaded)

	for i := range tasks {
		if err := ctx.Err(); err != nil {
			return err
		}
		task, res, err := p.fallback(ctx, &tasks[i], &results[i])
		if err != nil {
			return err
		}
		if err := p.process(ctx, task, res); err != nil {
			return err
		}
	}
	return nil
}

// sequential fetches and processes one task at a time.
func (p *pass) sequential(ctx context.Context, tasks []domain.AssetTask) error {
	for i := range tasks {
		if err := ctx.Err(); err != nil {
			return err
		}
		res, err := p.d.fetcher.Fetch(ctx, tasks[i].URL)
		if err != nil {
			return err
		}
		if res.OK {
			p.report.Progress.Downloaded++
		}
		task, final, err := p.fallback(ctx, &tasks[i], &res)
		if err != nil {
			return err
		}
		if err := p.process(ctx, task, final); err != nil {
			return err
		}
	}
	return nil
}

// fallback tries the alternative candidates of a task whose URL does not exist.
func (p *pass) fallback(ctx context.Context, task *domain.AssetTask, res *domain.FetchResult) (*domain.AssetTask, *domain.FetchResult, error) {
	for res.NotFound() && task.Fallback != nil {
		task = task.Fallback
		next, err := p.d.fetcher.Fetch(ctx, task.URL)
		if err != nil {
			return nil, nil, err
		}
		if next.OK {
			p.report.Progress.Downloaded++
		}
		res = &next
	}
	return task, res, nil
}

// process resolves one downloaded asset and repairs its redirects. Task
// failures are recorded in the report; only cancellation is returned.
func (p *pass) process(ctx context.Context, task *domain.AssetTask, res *domain.FetchResult) error {
	ctx, span := p.d.tracer.Start(ctx, task.CanonicalName)
	defer span.End()
	span.SetAttribute("gbfsync.url", task.URL)

	if err := p.to(domain.StateResolving); err != nil {
		return err
	}
	p.report.Progress.Current = task.CanonicalName
	p.emit(domain.StageProcessing)

	entry := domain.LedgerEntry{
		Fingerprint:   task.Fingerprint(),
		URL:           task.URL,
		CanonicalName: task.CanonicalName,
		Digest:        res.Digest,
		Size:          res.Size,
	}

	if !res.OK {
		reason := "download failed"
		if res.NotFound() {
			reason = domain.ErrAssetNotFound.Error()
		} else if res.Err != nil {
			reason = res.Err.Error()
		}
		p.fail(ctx, span, task, entry, reason)
		return nil
	}

	outcome, err := p.d.resolver.Resolve(ctx, task, res)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		p.d.logger.Error(zerr.With(err, "file", task.CanonicalName))
		p.fail(ctx, span, task, entry, err.Error())
		return nil
	}
	if !outcome.Produced() {
		p.d.logger.Warn(fmt.Sprintf("skipping %s: %s", task.CanonicalName, outcome.Reason))
		p.fail(ctx, span, task, entry, outcome.Reason)
		return nil
	}

	progress := &p.report.Progress
	progress.Processed++
	if outcome.Duplicate() {
		progress.Duplicates++
	} else {
		progress.Uploaded++
	}
	p.report.Produced = append(p.report.Produced, outcome.Name)
	entry.Outcome = outcome.Kind.String()
	entry.FinalName = outcome.Name
	span.SetAttribute("gbfsync.outcome", entry.Outcome)

	if err := p.to(domain.StateRedirecting); err != nil {
		return err
	}
	if err := p.redirect(ctx, task, outcome.Name); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			p.record(ctx, entry)
			return ctxErr
		}
		p.d.logger.Error(zerr.With(err, "file", outcome.Name))
		span.RecordError(err)
		entry.Error = err.Error()
		p.report.Failures = append(p.report.Failures, domain.TaskFailure{
			CanonicalName: task.CanonicalName,
			URL:           task.URL,
			Reason:        err.Error(),
		})
	}

	p.record(ctx, entry)
	p.emit(domain.StageProcessing)
	return nil
}

// redirect writes categories and alias redirects for the file name, waits
// the politeness delay and collapses double redirects.
func (p *pass) redirect(ctx context.Context, task *domain.AssetTask, name string) error {
	if err := p.d.redirects.EnsureCategories(ctx, name, task.Categories); err != nil {
		return err
	}
	for _, alias := range task.AliasNames {
		if err := p.d.redirects.EnsureFileRedirect(ctx, name, alias); err != nil {
			return err
		}
	}
	if err := p.d.sleep(ctx, p.d.delay); err != nil {
		return err
	}
	return p.d.redirects.CollapseFileDoubleRedirects(ctx, name)
}

func (p *pass) fail(ctx context.Context, span ports.Span, task *domain.AssetTask, entry domain.LedgerEntry, reason string) {
	progress := &p.report.Progress
	progress.Processed++
	progress.Failed++
	p.report.Failures = append(p.report.Failures, domain.TaskFailure{
		CanonicalName: task.CanonicalName,
		URL:           task.URL,
		Reason:        reason,
	})
	span.SetAttribute("gbfsync.failure", reason)

	entry.Outcome = "failed"
	entry.Error = reason
	p.record(ctx, entry)
	p.emit(domain.StageProcessing)
}

// begin opens a ledger run. Without a ledger the pass still runs.
func (p *pass) begin(ctx context.Context) {
	id, err := p.d.ledger.BeginRun(ctx, p.report.Label)
	if err != nil {
		p.d.logger.Warn(fmt.Sprintf("run ledger unavailable: %v", err))
		return
	}
	p.report.RunID = id
}

func (p *pass) record(ctx context.Context, entry domain.LedgerEntry) {
	if p.report.RunID == "" {
		return
	}
	entry.RecordedAt = time.Now()
	if err := p.d.ledger.Record(context.WithoutCancel(ctx), p.report.RunID, entry); err != nil {
		p.d.logger.Warn(fmt.Sprintf("failed to record %s: %v", entry.CanonicalName, err))
	}
}

func (p *pass) finish(ctx context.Context) {
	if p.report.RunID == "" {
		return
	}
	if err := p.d.ledger.FinishRun(context.WithoutCancel(ctx), p.report); err != nil {
		p.d.logger.Warn(fmt.Sprintf("failed to finish run %s: %v", p.report.RunID, err))
	}
}
