package ports

import "go.trai.ch/gbfsync/internal/core/domain"

// ProgressSink receives progress snapshots from the synchronization driver.
//
//go:generate mockgen -source=progress.go -destination=mocks/mock_progress.go -package=mocks
type ProgressSink interface {
	OnProgress(p domain.Progress)
}

// NopProgress is a ProgressSink that discards every event.
type NopProgress struct{}

// OnProgress implements ProgressSink.
func (NopProgress) OnProgress(domain.Progress) {}

// ProgressFunc adapts a function to a ProgressSink.
type ProgressFunc func(p domain.Progress)

// OnProgress implements ProgressSink.
func (f ProgressFunc) OnProgress(p domain.Progress) {
	f(p)
}
