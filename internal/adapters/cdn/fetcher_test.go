package cdn_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/gbfsync/internal/adapters/cdn"
	"go.trai.ch/gbfsync/internal/core/domain"
	"go.trai.ch/gbfsync/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

// MockRoundTripper is a helper to mock http.Client behavior.
type MockRoundTripper struct {
	RoundTripFunc func(req *http.Request) (*http.Response, error)
}

func (m *MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return m.RoundTripFunc(req)
}

func respond(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

func newFetcher(t *testing.T, cfg domain.CDNConfig, rt http.RoundTripper) *cdn.Fetcher {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).AnyTimes()

	f, err := cdn.New(cfg, log, cdn.WithTransport(rt))
	require.NoError(t, err)
	return f
}

func TestFetch_RetriesTransientStatus(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var calls atomic.Int32
		rt := &MockRoundTripper{RoundTripFunc: func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, domain.DefaultCDNAgent, req.Header.Get("User-Agent"))
			if calls.Add(1) <= 3 {
				return respond(http.StatusServiceUnavailable, ""), nil
			}
			return respond(http.StatusOK, "payload"), nil
		}}
		f := newFetcher(t, domain.DefaultConfig().CDN, rt)

		start := time.Now()
		res, err := f.Fetch(context.Background(), "http://cdn.local/a.png")
		require.NoError(t, err)

		assert.True(t, res.OK)
		assert.Equal(t, 4, res.Attempts)
		assert.Equal(t, []byte("payload"), res.Payload)
		digest, size := cdn.Identity([]byte("payload"))
		assert.Equal(t, digest, res.Digest)
		assert.Equal(t, size, res.Size)
		// 1s + 2s + 4s of backoff.
		assert.Equal(t, 7*time.Second, time.Since(start))
	})
}

func TestFetch_NotFoundIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	rt := &MockRoundTripper{RoundTripFunc: func(_ *http.Request) (*http.Response, error) {
		calls.Add(1)
		return respond(http.StatusNotFound, ""), nil
	}}
	f := newFetcher(t, domain.DefaultConfig().CDN, rt)

	res, err := f.Fetch(context.Background(), "http://cdn.local/missing.png")
	require.NoError(t, err)

	assert.False(t, res.OK)
	assert.True(t, res.NotFound())
	assert.Equal(t, 1, res.Attempts)
	assert.Equal(t, int32(1), calls.Load())
	require.ErrorIs(t, res.Err, domain.ErrAssetNotFound)
}

func TestFetch_UnexpectedStatusFailsImmediately(t *testing.T) {
	rt := &MockRoundTripper{RoundTripFunc: func(_ *http.Request) (*http.Response, error) {
		return respond(http.StatusForbidden, ""), nil
	}}
	f := newFetcher(t, domain.DefaultConfig().CDN, rt)

	res, err := f.Fetch(context.Background(), "http://cdn.local/forbidden.png")
	require.NoError(t, err)

	assert.False(t, res.OK)
	assert.False(t, res.NotFound())
	assert.Equal(t, 1, res.Attempts)
	assert.Equal(t, http.StatusForbidden, res.Status)
	require.ErrorContains(t, res.Err, domain.ErrUnexpectedStatus.Error())
}

func TestFetch_GivesUpAfterMaxRetries(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rt := &MockRoundTripper{RoundTripFunc: func(_ *http.Request) (*http.Response, error) {
			return nil, io.ErrUnexpectedEOF
		}}
		f := newFetcher(t, domain.DefaultConfig().CDN, rt)

		res, err := f.Fetch(context.Background(), "http://cdn.local/flaky.png")
		require.NoError(t, err)

		assert.False(t, res.OK)
		assert.Equal(t, 4, res.Attempts)
		require.ErrorContains(t, res.Err, domain.ErrTransientFetch.Error())
	})
}

func TestFetch_CancellationIsReturned(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rt := &MockRoundTripper{RoundTripFunc: func(_ *http.Request) (*http.Response, error) {
			return respond(http.StatusTooManyRequests, ""), nil
		}}
		f := newFetcher(t, domain.DefaultConfig().CDN, rt)

		ctx, cancel := context.WithTimeout(context.Background(), 1500*time.Millisecond)
		defer cancel()

		res, err := f.Fetch(ctx, "http://cdn.local/limited.png")
		require.ErrorIs(t, err, context.DeadlineExceeded)
		assert.False(t, res.OK)
	})
}

func TestNew_ParsesProxy(t *testing.T) {
	ctrl := gomock.NewController(t)
	cfg := domain.DefaultConfig().CDN
	cfg.ProxyURL = "http://proxy.local:8080"

	_, err := cdn.New(cfg, mocks.NewMockLogger(ctrl))
	require.NoError(t, err)

	cfg.ProxyURL = "://bad"
	_, err = cdn.New(cfg, mocks.NewMockLogger(ctrl))
	require.ErrorContains(t, err, domain.ErrConfigInvalid.Error())
}

func TestFetchBatch_PreservesOrder(t *testing.T) {
	rt := &MockRoundTripper{RoundTripFunc: func(req *http.Request) (*http.Response, error) {
		if strings.HasSuffix(req.URL.Path, "missing.png") {
			return respond(http.StatusNotFound, ""), nil
		}
		return respond(http.StatusOK, req.URL.Path), nil
	}}
	f := newFetcher(t, domain.DefaultConfig().CDN, rt)

	urls := []string{
		"http://cdn.local/a.png",
		"http://cdn.local/missing.png",
		"http://cdn.local/c.png",
	}
	results, err := f.FetchBatch(context.Background(), urls)
	require.NoError(t, err)
	require.Len(t, results, 3)

	for i, res := range results {
		assert.Equal(t, urls[i], res.URL)
	}
	assert.True(t, results[0].OK)
	assert.True(t, results[1].NotFound())
	assert.True(t, bytes.Equal([]byte("/c.png"), results[2].Payload))
}

func TestFetchBatch_TimeoutFailsBatch(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rt := &MockRoundTripper{RoundTripFunc: func(req *http.Request) (*http.Response, error) {
			<-req.Context().Done()
			return nil, req.Context().Err()
		}}
		cfg := domain.DefaultConfig().CDN
		cfg.BatchTimeout = 10 * time.Second
		cfg.Timeout = 0
		f := newFetcher(t, cfg, rt)

		_, err := f.FetchBatch(context.Background(), []string{"http://cdn.local/slow.png"})
		require.ErrorIs(t, err, domain.ErrBatchFetchFailed)
	})
}

func TestFetchBatch_Empty(t *testing.T) {
	f := newFetcher(t, domain.DefaultConfig().CDN, &MockRoundTripper{})

	results, err := f.FetchBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}
