package ports

import (
	"context"

	"go.trai.ch/gbfsync/internal/core/domain"
)

// Fetcher downloads CDN assets and computes their content identity.
//
//go:generate mockgen -source=fetcher.go -destination=mocks/mock_fetcher.go -package=mocks
type Fetcher interface {
	// Fetch downloads a single URL with bounded retries.
	// CDN failures are reported through FetchResult.OK; the error is reserved
	// for cancellation.
	Fetch(ctx context.Context, url string) (domain.FetchResult, error)

	// FetchBatch downloads all URLs concurrently under one connection pool and an
	// overall timeout. Results are returned in input order.
	FetchBatch(ctx context.Context, urls []string) ([]domain.FetchResult, error)
}
