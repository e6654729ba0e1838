// Package cdn downloads game assets and computes their content identity.
package cdn

import (
	"context"
	"crypto/sha1" //nolint:gosec // The wiki indexes files by SHA-1.
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.trai.ch/gbfsync/internal/core/domain"
	"go.trai.ch/gbfsync/internal/core/ports"
	"go.trai.ch/zerr"
)

// retryable lists the statuses that are retried with backoff.
var retryable = []int{
	http.StatusProxyAuthRequired,
	http.StatusTooManyRequests,
	http.StatusInternalServerError,
	http.StatusBadGateway,
	http.StatusServiceUnavailable,
	http.StatusGatewayTimeout,
}

// Fetcher implements ports.Fetcher over HTTP.
type Fetcher struct {
	client       *http.Client
	logger       ports.Logger
	userAgent    string
	maxRetries   int
	concurrency  int
	batchTimeout time.Duration
	// baseDelay is the first retry delay; each retry doubles it.
	baseDelay time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTransport replaces the HTTP transport. Used in tests.
func WithTransport(rt http.RoundTripper) Option {
	return func(f *Fetcher) {
		f.client.Transport = rt
	}
}

// WithBaseDelay overrides the first retry delay.
func WithBaseDelay(d time.Duration) Option {
	return func(f *Fetcher) {
		f.baseDelay = d
	}
}

// New creates a Fetcher from the CDN configuration.
func New(cfg domain.CDNConfig, logger ports.Logger, opts ...Option) (*Fetcher, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConnsPerHost = max(cfg.Concurrency, 2)
	if cfg.ProxyURL != "" {
		proxy, err := url.Parse(cfg.ProxyURL)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigInvalid.Error()), "proxy_url", cfg.ProxyURL)
		}
		transport.Proxy = http.ProxyURL(proxy)
	}

	f := &Fetcher{
		client:       &http.Client{Transport: transport, Timeout: cfg.Timeout},
		logger:       logger,
		userAgent:    cfg.UserAgent,
		maxRetries:   cfg.MaxRetries,
		concurrency:  cfg.Concurrency,
		batchTimeout: cfg.BatchTimeout,
		baseDelay:    time.Second,
	}
	if f.userAgent == "" {
		f.userAgent = domain.DefaultCDNAgent
	}
	if f.concurrency <= 0 {
		f.concurrency = 1
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Fetch downloads url, retrying transient failures up to the configured
// number of times with exponential backoff. A 404 is returned immediately.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (domain.FetchResult, error) {
	result := domain.FetchResult{URL: rawURL}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = f.baseDelay
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxElapsedTime = 0
	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(max(f.maxRetries, 0))), ctx)

	op := func() error {
		result.Attempts++
		payload, status, err := f.get(ctx, rawURL)
		result.Status = status
		if err != nil {
			return err
		}
		result.Payload = payload
		return nil
	}
	notify := func(err error, wait time.Duration) {
		f.logger.Warn(fmt.Sprintf("retrying %s in %s: %v", rawURL, wait, err))
	}

	err := backoff.RetryNotify(op, policy, notify)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return result, ctxErr
	}
	if err != nil {
		result.Err = err
		return result, nil
	}

	result.OK = true
	result.Digest, result.Size = Identity(result.Payload)
	return result, nil
}

func (f *Fetcher) get(ctx context.Context, rawURL string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, 0, backoff.Permanent(zerr.Wrap(err, domain.ErrUnexpectedStatus.Error()))
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, 0, backoff.Permanent(ctx.Err())
		}
		return nil, 0, errors.Join(domain.ErrTransientFetch, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusOK:
		payload, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, resp.StatusCode, errors.Join(domain.ErrTransientFetch, err)
		}
		return payload, resp.StatusCode, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, resp.StatusCode, backoff.Permanent(domain.ErrAssetNotFound)
	case slices.Contains(retryable, resp.StatusCode):
		return nil, resp.StatusCode, zerr.With(domain.ErrTransientFetch, "status", resp.StatusCode)
	default:
		return nil, resp.StatusCode, backoff.Permanent(zerr.With(domain.ErrUnexpectedStatus, "status", resp.StatusCode))
	}
}

// Identity returns the hex SHA-1 digest and size of payload.
func Identity(payload []byte) (string, int64) {
	sum := sha1.Sum(payload)
	return hex.EncodeToString(sum[:]), int64(len(payload))
}
