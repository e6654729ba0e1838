// Package domain holds the core types of asset synchronization: tasks,
// fetch results, wiki files, outcomes and run reports.
package domain

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// AssetTask is a single CDN asset to be synchronized to the wiki.
// It is created by the deriver and consumed once by the driver.
type AssetTask struct {
	URL           string   `json:"url" yaml:"url"`
	CanonicalName string   `json:"canonical_name" yaml:"canonical_name"`
	AliasNames    []string `json:"alias_names,omitempty" yaml:"alias_names,omitempty"`
	Categories    []string `json:"categories,omitempty" yaml:"categories,omitempty"`

	// Description is the initial file page text used on upload.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Fallback is tried when the primary URL does not exist on the CDN.
	Fallback *AssetTask `json:"fallback,omitempty" yaml:"fallback,omitempty"`
}

// Fingerprint returns a stable key for the task derived from its URL and names.
func (t *AssetTask) Fingerprint() string {
	d := xxhash.New()
	_, _ = d.WriteString(t.URL)
	_, _ = d.WriteString("\x00")
	_, _ = d.WriteString(t.CanonicalName)
	for _, alias := range t.AliasNames {
		_, _ = d.WriteString("\x00")
		_, _ = d.WriteString(alias)
	}
	return strconv.FormatUint(d.Sum64(), 16)
}

// FetchResult is the outcome of downloading a single CDN asset.
type FetchResult struct {
	OK       bool
	URL      string
	Digest   string
	Size     int64
	Payload  []byte
	Status   int
	Attempts int
	Err      error
}

// NotFound reports whether the asset legitimately does not exist.
func (r *FetchResult) NotFound() bool {
	return !r.OK && r.Status == 404
}

// WikiFile is a file page as observed on the wiki.
type WikiFile struct {
	Title          string
	URL            string
	Exists         bool
	RedirectTarget string
	Digest         string
	Size           int64
}

// IsRedirect reports whether the file page is a redirect.
func (f *WikiFile) IsRedirect() bool {
	return f.RedirectTarget != ""
}

// UploadResult is the wiki response to a file upload.
type UploadResult struct {
	Result   string
	Filename string
	Warnings []string
}
