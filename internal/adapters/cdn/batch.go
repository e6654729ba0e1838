package cdn

import (
	"context"
	"errors"
	"fmt"

	"go.trai.ch/gbfsync/internal/core/domain"
	"golang.org/x/sync/errgroup"
)

// FetchBatch downloads urls with bounded concurrency over the shared
// connection pool. Individual failures are reported per result. The batch
// as a whole fails with domain.ErrBatchFetchFailed when the batch timeout
// elapses.
func (f *Fetcher) FetchBatch(ctx context.Context, urls []string) ([]domain.FetchResult, error) {
	if len(urls) == 0 {
		return nil, nil
	}

	batchCtx := ctx
	if f.batchTimeout > 0 {
		var cancel context.CancelFunc
		batchCtx, cancel = context.WithTimeout(ctx, f.batchTimeout)
		defer cancel()
	}

	results := make([]domain.FetchResult, len(urls))
	g, gctx := errgroup.WithContext(batchCtx)
	g.SetLimit(f.concurrency)

	for i, u := range urls {
		g.Go(func() error {
			res, err := f.Fetch(gctx, u)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	err := g.Wait()
	if parentErr := ctx.Err(); parentErr != nil {
		return nil, parentErr
	}
	if err != nil {
		f.logger.Warn(fmt.Sprintf("batch download of %d assets aborted: %v", len(urls), err))
		return nil, errors.Join(domain.ErrBatchFetchFailed, err)
	}
	return results, nil
}
