package mediawiki

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"go.trai.ch/zerr"
)

type listResponse struct {
	Continue map[string]string          `json:"continue"`
	Query    map[string]json.RawMessage `json:"query"`
}

// queryAll follows API continuation and collects every item under key.
func queryAll[T any](ctx context.Context, c *Client, params url.Values, key string) ([]T, error) {
	p := make(url.Values, len(params))
	for k, v := range params {
		p[k] = append([]string(nil), v...)
	}

	var all []T
	for {
		var resp listResponse
		if err := c.get(ctx, p, &resp); err != nil {
			return nil, err
		}
		if raw, ok := resp.Query[key]; ok {
			var items []T
			if err := json.Unmarshal(raw, &items); err != nil {
				return nil, zerr.Wrap(err, "malformed API response")
			}
			all = append(all, items...)
		}
		if len(resp.Continue) == 0 {
			return all, nil
		}
		for k, v := range resp.Continue {
			p.Set(k, v)
		}
	}
}

type titled struct {
	Title string `json:"title"`
}

func titles(items []titled) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Title
	}
	return out
}

// PageText returns the current wikitext of title.
func (c *Client) PageText(ctx context.Context, title string) (string, bool, error) {
	if err := c.session(ctx); err != nil {
		return "", false, err
	}

	var resp struct {
		Query struct {
			Pages []struct {
				Missing   bool `json:"missing"`
				Invalid   bool `json:"invalid"`
				Revisions []struct {
					Slots struct {
						Main struct {
							Content string `json:"content"`
						} `json:"main"`
					} `json:"slots"`
				} `json:"revisions"`
			} `json:"pages"`
		} `json:"query"`
	}
	err := c.get(ctx, url.Values{
		"action":  {"query"},
		"prop":    {"revisions"},
		"rvprop":  {"content"},
		"rvslots": {"main"},
		"titles":  {title},
	}, &resp)
	if err != nil {
		return "", false, zerr.With(err, "title", title)
	}

	if len(resp.Query.Pages) == 0 {
		return "", false, nil
	}
	page := resp.Query.Pages[0]
	if page.Missing || page.Invalid || len(page.Revisions) == 0 {
		return "", false, nil
	}
	return page.Revisions[0].Slots.Main.Content, true, nil
}

// PageSave replaces the text of title as a bot edit.
func (c *Client) PageSave(ctx context.Context, title, text, summary string) error {
	return c.write(ctx, func(token string) error {
		return c.post(ctx, url.Values{
			"action":  {"edit"},
			"title":   {title},
			"text":    {text},
			"summary": {summary},
			"bot":     {"1"},
			"token":   {token},
		}, nil)
	})
}

// FileMove renames from to to, leaving a redirect and moving the talk page.
func (c *Client) FileMove(ctx context.Context, from, to, reason string) error {
	return c.write(ctx, func(token string) error {
		return c.post(ctx, url.Values{
			"action":   {"move"},
			"from":     {from},
			"to":       {to},
			"reason":   {reason},
			"movetalk": {"1"},
			"token":    {token},
		}, nil)
	})
}

// Backlinks lists pages linking to title.
func (c *Client) Backlinks(ctx context.Context, title string, redirectsOnly bool) ([]string, error) {
	if err := c.session(ctx); err != nil {
		return nil, err
	}

	filter := "all"
	if redirectsOnly {
		filter = "redirects"
	}
	items, err := queryAll[titled](ctx, c, url.Values{
		"action":        {"query"},
		"list":          {"backlinks"},
		"bltitle":       {title},
		"blfilterredir": {filter},
		"bllimit":       {"max"},
	}, "backlinks")
	if err != nil {
		return nil, zerr.With(err, "title", title)
	}
	return titles(items), nil
}

// CategoryMembers lists the pages in category, which may omit its namespace.
func (c *Client) CategoryMembers(ctx context.Context, category string) ([]string, error) {
	if err := c.session(ctx); err != nil {
		return nil, err
	}

	items, err := queryAll[titled](ctx, c, url.Values{
		"action":  {"query"},
		"list":    {"categorymembers"},
		"cmtitle": {categoryTitle(category)},
		"cmtype":  {"page"},
		"cmlimit": {"max"},
	}, "categorymembers")
	if err != nil {
		return nil, zerr.With(err, "category", category)
	}
	return titles(items), nil
}

func categoryTitle(category string) string {
	if strings.HasPrefix(category, "Category:") {
		return category
	}
	return "Category:" + category
}
