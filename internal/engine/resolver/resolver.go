// Package resolver decides what to do with a downloaded asset based on the
// files the wiki already holds with the same content.
package resolver

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.trai.ch/gbfsync/internal/assets"
	"go.trai.ch/gbfsync/internal/core/domain"
	"go.trai.ch/gbfsync/internal/core/ports"
	"go.trai.ch/gbfsync/internal/engine/redirect"
	"go.trai.ch/zerr"
)

// Move reasons.
const (
	ReasonMove      = "Batch upload file name"
	ReasonAliasMove = "Batch upload file name (sha1 not found)"
)

// numberedFile matches summon and weapon art stored under the lowest id of a
// set of identical images.
var numberedFile = regexp.MustCompile(`^File:(Summon|Weapon) ([a-z]+) (\d+)\.([a-z]+)$`)

var firstNumber = regexp.MustCompile(`\d+`)

// Resolver implements the duplicate detection and rename protocol.
type Resolver struct {
	wiki      ports.Wiki
	fetcher   ports.Fetcher
	redirects *redirect.Maintainer
	logger    ports.Logger
	host      string
}

// New creates a Resolver. host is the CDN host used to re-fetch a suspected
// lower-numbered duplicate.
func New(wiki ports.Wiki, fetcher ports.Fetcher, redirects *redirect.Maintainer, logger ports.Logger, host string) *Resolver {
	if host == "" {
		host = domain.DefaultCDNHost
	}
	return &Resolver{
		wiki:      wiki,
		fetcher:   fetcher,
		redirects: redirects,
		logger:    logger,
		host:      host,
	}
}

// Resolve matches the downloaded content of task against the wiki and uploads,
// renames or skips it. The returned outcome names the file the asset ends up
// under.
func (r *Resolver) Resolve(ctx context.Context, task *domain.AssetTask, fetched *domain.FetchResult) (domain.UploadOutcome, error) {
	title := redirect.FileTitle(task.CanonicalName)
	name := strings.TrimPrefix(title, "File:")

	found, err := r.wiki.FileSearch(ctx, fetched.Size, fetched.Digest)
	if err != nil {
		return domain.UploadOutcome{}, zerr.With(err, "file", name)
	}
	matches := slices.DeleteFunc(found, func(f domain.WikiFile) bool {
		return strings.Contains(f.URL, "/archive/")
	})

	switch len(matches) {
	case 0:
		return r.upload(ctx, task, fetched, title)
	case 1:
		return r.reuse(ctx, matches[0], fetched, task.CanonicalName, title)
	default:
		r.logger.Warn(fmt.Sprintf("too many duplicates for %s", name))
		return domain.Skipped(domain.ReasonAmbiguousDuplicates), nil
	}
}

// reuse handles a single wiki file with identical content.
func (r *Resolver) reuse(ctx context.Context, dupe domain.WikiFile, fetched *domain.FetchResult, canonical, title string) (domain.UploadOutcome, error) {
	name := strings.TrimPrefix(title, "File:")
	if sameName(dupe.Title, canonical) {
		return domain.AlreadyCorrect(name), nil
	}

	kept, err := r.lowerNumbered(ctx, dupe, fetched, title)
	if err != nil {
		return domain.UploadOutcome{}, err
	}
	if kept {
		r.logger.Info(fmt.Sprintf("%s is a duplicate of %s, keeping the lower number", dupe.Title, title))
		if err := r.redirects.EnsureRedirect(ctx, dupe.Title, title); err != nil {
			return domain.UploadOutcome{}, err
		}
		return domain.RenamedExisting(strings.TrimPrefix(dupe.Title, "File:"), ""), nil
	}

	if err := r.move(ctx, dupe.Title, title, ReasonMove); err != nil {
		return domain.UploadOutcome{}, err
	}
	return domain.RenamedExisting(name, dupe.Title), nil
}

// lowerNumbered reports whether dupe is summon or weapon art with a lower id
// than title whose CDN original is byte-identical to the fetched asset.
func (r *Resolver) lowerNumbered(ctx context.Context, dupe domain.WikiFile, fetched *domain.FetchResult, title string) (bool, error) {
	m := numberedFile.FindStringSubmatch(dupe.Title)
	if m == nil {
		return false, nil
	}
	dupeNumber, err := strconv.ParseUint(m[3], 10, 64)
	if err != nil {
		return false, nil
	}
	fileNumber, err := strconv.ParseUint(firstNumber.FindString(title), 10, 64)
	if err != nil || dupeNumber >= fileNumber {
		return false, nil
	}

	url := assets.AssetURL(r.host, strings.ToLower(m[1]), m[2], m[3]+"."+m[4])
	original, err := r.fetcher.Fetch(ctx, url)
	if err != nil {
		return false, err
	}
	return original.OK && original.Digest == fetched.Digest && original.Size == fetched.Size, nil
}

// upload stores a new asset, first moving an existing alias file into place.
func (r *Resolver) upload(ctx context.Context, task *domain.AssetTask, fetched *domain.FetchResult, title string) (domain.UploadOutcome, error) {
	for _, alias := range task.AliasNames {
		aliasTitle := redirect.FileTitle(alias)
		if aliasTitle == title {
			continue
		}
		info, err := r.wiki.FileInfo(ctx, aliasTitle)
		if err != nil {
			return domain.UploadOutcome{}, zerr.With(err, "alias", alias)
		}
		if !info.Exists || info.IsRedirect() {
			continue
		}
		if err := r.move(ctx, aliasTitle, title, ReasonAliasMove); err != nil {
			return domain.UploadOutcome{}, err
		}
		// The canonical title is taken now; later aliases are only redirected.
		break
	}

	name := strings.TrimPrefix(title, "File:")
	r.logger.Info(fmt.Sprintf("uploading %s", title))
	res, err := r.wiki.FileUpload(ctx, fetched.Payload, name, task.Description)
	if err != nil {
		return domain.UploadOutcome{}, zerr.With(zerr.Wrap(err, domain.ErrUploadRejected.Error()), "file", name)
	}
	if res.Result == "Warning" || slices.Contains(res.Warnings, "duplicate") {
		r.logger.Warn(fmt.Sprintf("upload of %s returned warnings: %s", name, strings.Join(res.Warnings, ", ")))
		return domain.Skipped(domain.ReasonUploadWarning), nil
	}
	return domain.Uploaded(name), nil
}

// move renames from to to and points redirects that targeted from at to.
func (r *Resolver) move(ctx context.Context, from, to, reason string) error {
	backlinks, err := r.wiki.Backlinks(ctx, from, true)
	if err != nil {
		return zerr.With(err, "title", from)
	}

	r.logger.Info(fmt.Sprintf("moving %s to %s", from, to))
	if err := r.wiki.FileMove(ctx, from, to, reason); err != nil {
		return zerr.With(zerr.With(err, "from", from), "to", to)
	}
	return r.redirects.RepairBacklinks(ctx, backlinks, to)
}

// sameName compares a wiki title with a canonical name the way the wiki
// normalizes titles, ignoring case.
func sameName(title, canonical string) bool {
	title = strings.TrimSpace(strings.TrimPrefix(title, "File:"))
	canonical = strings.ReplaceAll(canonical, "_", " ")
	return strings.EqualFold(title, canonical)
}
