package ports

import (
	"context"

	"go.trai.ch/gbfsync/internal/core/domain"
)

// Ledger persists the history of synchronization runs.
//
//go:generate mockgen -source=ledger.go -destination=mocks/mock_ledger.go -package=mocks
type Ledger interface {
	// BeginRun opens a new run and returns its identifier.
	BeginRun(ctx context.Context, label string) (string, error)

	// Record stores the result of one task within a run.
	Record(ctx context.Context, runID string, entry domain.LedgerEntry) error

	// FinishRun stores the final counters of a run.
	FinishRun(ctx context.Context, report *domain.Report) error

	// Recent returns the most recent runs, newest first.
	Recent(ctx context.Context, limit int) ([]domain.RunSummary, error)

	// Close releases the underlying storage.
	Close() error
}
