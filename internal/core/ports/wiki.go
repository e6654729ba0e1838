package ports

import (
	"context"

	"go.trai.ch/gbfsync/internal/core/domain"
)

// Wiki is the external wiki backend. Every call reflects the backend's current
// state; implementations must not cache results across calls.
//
//go:generate mockgen -source=wiki.go -destination=mocks/mock_wiki.go -package=mocks
type Wiki interface {
	// PageText returns the current text of title and whether the page exists.
	PageText(ctx context.Context, title string) (string, bool, error)

	// PageSave replaces the text of title.
	PageSave(ctx context.Context, title, text, summary string) error

	// FileSearch lists files whose content matches size and SHA-1 digest.
	FileSearch(ctx context.Context, size int64, sha1 string) ([]domain.WikiFile, error)

	// FileInfo reports existence and redirect status of a file page.
	FileInfo(ctx context.Context, title string) (domain.WikiFile, error)

	// FileMove renames a page, leaving a redirect at the old title.
	FileMove(ctx context.Context, from, to, reason string) error

	// FileUpload uploads payload as filename, ignoring soft warnings.
	FileUpload(ctx context.Context, payload []byte, filename, description string) (domain.UploadResult, error)

	// Backlinks lists pages linking to title. With redirectsOnly, only redirects are listed.
	Backlinks(ctx context.Context, title string, redirectsOnly bool) ([]string, error)

	// CategoryMembers lists the page titles in a category.
	CategoryMembers(ctx context.Context, category string) ([]string, error)
}
