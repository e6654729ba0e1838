// Package redirect keeps the wiki's file redirect graph pointing at canonical files.
package redirect

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.trai.ch/gbfsync/internal/core/ports"
	"go.trai.ch/zerr"
)

// Edit summaries.
const (
	SummaryRedirect       = ""
	SummaryDoubleRedirect = "Resolving double redirects."
	SummaryCategories     = "Batch image categories"
)

const (
	filePrefix         = "File:"
	fileRedirectPrefix = "#REDIRECT [[File:"
)

// Maintainer rewrites redirect pages. Every read goes to the wiki, and a page
// is saved only when its text actually changes.
type Maintainer struct {
	wiki   ports.Wiki
	logger ports.Logger
}

// New creates a Maintainer.
func New(wiki ports.Wiki, logger ports.Logger) *Maintainer {
	return &Maintainer{wiki: wiki, logger: logger}
}

// Text returns the body of a redirect page pointing at target.
func Text(target string) string {
	return "#REDIRECT [[" + target + "]]"
}

// FileTitle turns a file name into its page title: underscores become spaces,
// the first letter is upper-cased and the File: namespace is added.
func FileTitle(name string) string {
	name = strings.TrimPrefix(normalize(name), filePrefix)
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return filePrefix + name
	}
	return filePrefix + string(unicode.ToUpper(r)) + name[size:]
}

func normalize(title string) string {
	return strings.ReplaceAll(title, "_", " ")
}

// EnsureRedirect makes source a redirect to target. Redirects already
// pointing at source are repaired first so they do not become double redirects.
func (m *Maintainer) EnsureRedirect(ctx context.Context, target, source string) error {
	target, source = normalize(target), normalize(source)
	if target == source {
		return nil
	}

	backlinks, err := m.wiki.Backlinks(ctx, source, true)
	if err != nil {
		return zerr.With(err, "source", source)
	}
	if err := m.RepairBacklinks(ctx, backlinks, target); err != nil {
		return err
	}

	text, _, err := m.wiki.PageText(ctx, source)
	if err != nil {
		return zerr.With(err, "source", source)
	}
	want := Text(target)
	if text == want {
		return nil
	}

	m.logger.Info(fmt.Sprintf("updating %q to redirect to %q", source, target))
	if err := m.wiki.PageSave(ctx, source, want, SummaryRedirect); err != nil {
		return zerr.With(zerr.With(err, "source", source), "target", target)
	}
	return nil
}

// EnsureFileRedirect is EnsureRedirect for bare file names.
func (m *Maintainer) EnsureFileRedirect(ctx context.Context, target, source string) error {
	return m.EnsureRedirect(ctx, FileTitle(target), FileTitle(source))
}

// RepairBacklinks walks backlinks and everything redirecting to them, pointing
// every file redirect found directly at target. Each page is visited once.
func (m *Maintainer) RepairBacklinks(ctx context.Context, backlinks []string, target string) error {
	target = normalize(target)
	want := Text(target)

	visited := map[string]bool{target: true}
	stack := slices.Clone(backlinks)
	slices.Reverse(stack)

	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}

		title := normalize(stack[len(stack)-1])
		stack = stack[:len(stack)-1]
		if visited[title] {
			continue
		}
		visited[title] = true

		if err := m.rewrite(ctx, title, want); err != nil {
			return err
		}

		deeper, err := m.wiki.Backlinks(ctx, title, true)
		if err != nil {
			return zerr.With(err, "title", title)
		}
		for i := len(deeper) - 1; i >= 0; i-- {
			stack = append(stack, deeper[i])
		}
	}
	return nil
}

// CollapseDoubleRedirects points every redirect two hops away from canonical
// directly at it.
func (m *Maintainer) CollapseDoubleRedirects(ctx context.Context, canonical string) error {
	canonical = normalize(canonical)
	want := Text(canonical)

	first, err := m.wiki.Backlinks(ctx, canonical, true)
	if err != nil {
		return zerr.With(err, "title", canonical)
	}

	visited := map[string]bool{canonical: true}
	for _, hop := range first {
		visited[normalize(hop)] = true
	}

	for _, hop := range first {
		second, err := m.wiki.Backlinks(ctx, hop, true)
		if err != nil {
			return zerr.With(err, "title", hop)
		}
		for _, title := range second {
			title = normalize(title)
			if visited[title] {
				continue
			}
			visited[title] = true
			if err := m.rewrite(ctx, title, want); err != nil {
				return err
			}
		}
	}
	return nil
}

// CollapseFileDoubleRedirects is CollapseDoubleRedirects for a bare file name.
func (m *Maintainer) CollapseFileDoubleRedirects(ctx context.Context, name string) error {
	return m.CollapseDoubleRedirects(ctx, FileTitle(name))
}

// rewrite points title at want if it is a file redirect elsewhere.
func (m *Maintainer) rewrite(ctx context.Context, title, want string) error {
	text, exists, err := m.wiki.PageText(ctx, title)
	if err != nil {
		return zerr.With(err, "title", title)
	}
	if !exists || !strings.HasPrefix(text, fileRedirectPrefix) || text == want {
		return nil
	}

	m.logger.Info(fmt.Sprintf("updating redirect %q to point directly at %s", title, strings.TrimPrefix(want, "#REDIRECT ")))
	if err := m.wiki.PageSave(ctx, title, want, SummaryDoubleRedirect); err != nil {
		return zerr.With(err, "title", title)
	}
	return nil
}

// EnsureCategories appends the missing category links to an existing,
// non-redirect file page.
func (m *Maintainer) EnsureCategories(ctx context.Context, name string, categories []string) error {
	if len(categories) == 0 {
		return nil
	}
	title := FileTitle(name)

	info, err := m.wiki.FileInfo(ctx, title)
	if err != nil {
		return zerr.With(err, "title", title)
	}
	if !info.Exists || info.IsRedirect() {
		return nil
	}

	text, exists, err := m.wiki.PageText(ctx, title)
	if err != nil {
		return zerr.With(err, "title", title)
	}
	if !exists {
		return nil
	}

	updated := text
	for _, category := range categories {
		link := "[[Category:" + category + "]]"
		if !strings.Contains(updated, link) {
			updated += link
		}
	}
	if updated == text {
		return nil
	}

	m.logger.Info(fmt.Sprintf("updating categories for %s", title))
	if err := m.wiki.PageSave(ctx, title, updated, SummaryCategories); err != nil {
		return zerr.With(err, "title", title)
	}
	return nil
}
