// Package mediawiki implements ports.Wiki against the MediaWiki Action API.
package mediawiki

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.trai.ch/gbfsync/internal/core/domain"
	"go.trai.ch/gbfsync/internal/core/ports"
	"go.trai.ch/zerr"
)

// Rate-limit waits are clamped to this range.
const (
	MinRetryWait = 5 * time.Second
	MaxRetryWait = 60 * time.Second
)

// APIError is an error object returned by the API.
type APIError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

func (e *APIError) Error() string {
	return e.Code + ": " + e.Info
}

// RateLimited reports whether the request should be retried later.
func (e *APIError) RateLimited() bool {
	return e.Code == "ratelimited" || e.Code == "maxlag"
}

// Client implements ports.Wiki. Every call hits the API; nothing is cached
// except the session and its CSRF token.
type Client struct {
	apiURL      string
	http        *http.Client
	logger      ports.Logger
	userAgent   string
	username    string
	password    string
	maxAttempts int
	retryDelay  time.Duration
	minWait     time.Duration
	maxWait     time.Duration

	mu       sync.Mutex
	loggedIn bool
	csrf     string
}

// Option configures a Client.
type Option func(*Client)

// WithTransport replaces the HTTP transport. Used in tests.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.http.Transport = rt
	}
}

// WithWaitBounds overrides the rate-limit wait clamp.
func WithWaitBounds(minWait, maxWait time.Duration) Option {
	return func(c *Client) {
		c.minWait, c.maxWait = minWait, maxWait
	}
}

// New creates a Client for the configured API endpoint.
func New(cfg domain.WikiConfig, logger ports.Logger, opts ...Option) (*Client, error) {
	if _, err := url.Parse(cfg.APIURL); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigInvalid.Error()), "api_url", cfg.APIURL)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrWikiRequestFailed.Error())
	}

	c := &Client{
		apiURL:      cfg.APIURL,
		http:        &http.Client{Jar: jar, Timeout: 2 * time.Minute},
		logger:      logger,
		userAgent:   cfg.UserAgent,
		username:    cfg.Username,
		password:    cfg.Password,
		maxAttempts: cfg.MaxAttempts,
		retryDelay:  cfg.RetryDelay,
		minWait:     MinRetryWait,
		maxWait:     MaxRetryWait,
	}
	if c.userAgent == "" {
		c.userAgent = domain.DefaultWikiAgent
	}
	if c.retryDelay <= 0 {
		c.retryDelay = domain.DefaultSyncDelay
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// linearBackOff waits delay*attempt, clamped to [minWait, maxWait], for at
// most maxAttempts retries.
type linearBackOff struct {
	delay       time.Duration
	minWait     time.Duration
	maxWait     time.Duration
	maxAttempts int
	attempt     int
}

func (b *linearBackOff) NextBackOff() time.Duration {
	if b.attempt >= b.maxAttempts {
		return backoff.Stop
	}
	b.attempt++
	return max(b.minWait, min(b.maxWait, b.delay*time.Duration(b.attempt)))
}

func (b *linearBackOff) Reset() {
	b.attempt = 0
}

// request builds a fresh request for each attempt.
type request func(ctx context.Context) (*http.Request, error)

// get issues a read request.
func (c *Client) get(ctx context.Context, params url.Values, out any) error {
	return c.call(ctx, params.Get("action"), func(ctx context.Context) (*http.Request, error) {
		q := withFormat(params)
		return http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"?"+q.Encode(), http.NoBody)
	}, out)
}

// post issues a form-encoded write request.
func (c *Client) post(ctx context.Context, params url.Values, out any) error {
	return c.call(ctx, params.Get("action"), func(ctx context.Context) (*http.Request, error) {
		body := withFormat(params).Encode()
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, strings.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return req, nil
	}, out)
}

func withFormat(params url.Values) url.Values {
	q := make(url.Values, len(params)+2)
	for k, v := range params {
		q[k] = v
	}
	q.Set("format", "json")
	q.Set("formatversion", "2")
	return q
}

// call runs build with rate-limit retries and decodes the JSON response into out.
func (c *Client) call(ctx context.Context, action string, build request, out any) error {
	policy := &linearBackOff{
		delay:       c.retryDelay,
		minWait:     c.minWait,
		maxWait:     c.maxWait,
		maxAttempts: c.maxAttempts,
	}

	op := func() error {
		err := c.roundTrip(ctx, build, out)
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.RateLimited() {
			return err
		}
		if err != nil {
			return backoff.Permanent(err)
		}
		return nil
	}
	notify := func(err error, wait time.Duration) {
		c.logger.Warn(fmt.Sprintf("API limit %q encountered on %s, retrying in %s (attempt %d/%d)",
			apiCode(err), action, wait, policy.attempt, policy.maxAttempts))
	}

	err := backoff.RetryNotify(op, backoff.WithContext(policy, ctx), notify)
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.RateLimited() {
			return errors.Join(domain.ErrWikiRateLimited, err)
		}
		return errors.Join(domain.ErrWikiAPI, err)
	}
	return zerr.With(zerr.Wrap(err, domain.ErrWikiRequestFailed.Error()), "action", action)
}

func apiCode(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return ""
}

func (c *Client) roundTrip(ctx context.Context, build request, out any) error {
	req, err := build(ctx)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return zerr.With(zerr.New("unexpected HTTP status"), "status", resp.StatusCode)
	}

	var envelope struct {
		Error *APIError `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return zerr.Wrap(err, "malformed API response")
	}
	if envelope.Error != nil {
		return envelope.Error
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(bytes.NewReader(body)).Decode(out)
}
