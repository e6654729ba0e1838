package mediawiki

import (
	"context"
	"errors"
	"net/url"

	"go.trai.ch/gbfsync/internal/core/domain"
	"go.trai.ch/zerr"
)

type tokensResponse struct {
	Query struct {
		Tokens struct {
			LoginToken string `json:"logintoken"`
			CSRFToken  string `json:"csrftoken"`
		} `json:"tokens"`
	} `json:"query"`
}

// session logs in once per client when credentials are configured.
// Without credentials the client stays anonymous.
func (c *Client) session(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loggedIn || c.username == "" {
		return nil
	}

	var tokens tokensResponse
	if err := c.get(ctx, url.Values{
		"action": {"query"},
		"meta":   {"tokens"},
		"type":   {"login"},
	}, &tokens); err != nil {
		return errors.Join(domain.ErrWikiLoginFailed, err)
	}

	var login struct {
		Login struct {
			Result string `json:"result"`
			Reason string `json:"reason"`
		} `json:"login"`
	}
	if err := c.post(ctx, url.Values{
		"action":     {"login"},
		"lgname":     {c.username},
		"lgpassword": {c.password},
		"lgtoken":    {tokens.Query.Tokens.LoginToken},
	}, &login); err != nil {
		return errors.Join(domain.ErrWikiLoginFailed, err)
	}
	if login.Login.Result != "Success" {
		err := zerr.With(domain.ErrWikiLoginFailed, "result", login.Login.Result)
		return zerr.With(err, "reason", login.Login.Reason)
	}

	c.loggedIn = true
	c.csrf = ""
	return nil
}

// csrfToken returns the cached edit token, fetching it on first use.
func (c *Client) csrfToken(ctx context.Context) (string, error) {
	if err := c.session(ctx); err != nil {
		return "", err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.csrf != "" {
		return c.csrf, nil
	}

	var tokens tokensResponse
	if err := c.get(ctx, url.Values{
		"action": {"query"},
		"meta":   {"tokens"},
	}, &tokens); err != nil {
		return "", err
	}
	c.csrf = tokens.Query.Tokens.CSRFToken
	return c.csrf, nil
}

func (c *Client) dropToken() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.csrf = ""
}

// write runs a token-authenticated request, refreshing the token once if the
// API rejects it.
func (c *Client) write(ctx context.Context, send func(token string) error) error {
	for attempt := 0; ; attempt++ {
		token, err := c.csrfToken(ctx)
		if err != nil {
			return err
		}
		err = send(token)
		var apiErr *APIError
		if attempt == 0 && errors.As(err, &apiErr) && apiErr.Code == "badtoken" {
			c.dropToken()
			continue
		}
		return err
	}
}
