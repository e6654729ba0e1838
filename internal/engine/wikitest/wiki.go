// Package wikitest provides an in-memory ports.Wiki for engine tests.
package wikitest

import (
	"context"
	"maps"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/gbfsync/internal/adapters/cdn"
	"go.trai.ch/gbfsync/internal/core/domain"
)

// Save is a recorded PageSave call.
type Save struct {
	Title, Text, Summary string
}

// Move is a recorded FileMove call.
type Move struct {
	From, To, Reason string
}

// Upload is a recorded FileUpload call.
type Upload struct {
	Filename, Description string
	Payload               []byte
}

// Wiki is an in-memory wiki. Pages hold wikitext by title; Files hold the
// media stored under a file page title.
type Wiki struct {
	mu sync.Mutex

	Pages      map[string]string
	Files      map[string]domain.WikiFile
	Categories map[string][]string

	// UploadResponse, when set, decides the API answer for an upload.
	UploadResponse func(filename string) domain.UploadResult

	// Err, when set, is returned by every call for the matching title.
	Err func(op, title string) error

	Saves   []Save
	Moves   []Move
	Uploads []Upload
}

// New returns an empty Wiki.
func New() *Wiki {
	return &Wiki{
		Pages:      map[string]string{},
		Files:      map[string]domain.WikiFile{},
		Categories: map[string][]string{},
	}
}

// AddFile stores payload as the file page title.
func (w *Wiki) AddFile(title string, payload []byte) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.addFile(title, payload)
}

func (w *Wiki) addFile(title string, payload []byte) {
	digest, size := cdn.Identity(payload)
	w.Files[title] = domain.WikiFile{
		Title:  title,
		URL:    "https://wiki.local/images/" + strings.ReplaceAll(strings.TrimPrefix(title, "File:"), " ", "_"),
		Exists: true,
		Digest: digest,
		Size:   size,
	}
	if _, ok := w.Pages[title]; !ok {
		w.Pages[title] = ""
	}
}

// Redirect makes from a redirect to to.
func (w *Wiki) Redirect(from, to string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.Pages[from] = "#REDIRECT [[" + to + "]]"
}

// Writes returns the number of mutating calls made so far.
func (w *Wiki) Writes() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.Saves) + len(w.Moves) + len(w.Uploads)
}

func (w *Wiki) fail(op, title string) error {
	if w.Err == nil {
		return nil
	}
	return w.Err(op, title)
}

func redirectTarget(text string) (string, bool) {
	rest, ok := strings.CutPrefix(text, "#REDIRECT [[")
	if !ok {
		return "", false
	}
	target, _, ok := strings.Cut(rest, "]]")
	return target, ok
}

// PageText implements ports.Wiki.
func (w *Wiki) PageText(_ context.Context, title string) (string, bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.fail("PageText", title); err != nil {
		return "", false, err
	}
	text, ok := w.Pages[title]
	return text, ok, nil
}

// PageSave implements ports.Wiki.
func (w *Wiki) PageSave(_ context.Context, title, text, summary string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.fail("PageSave", title); err != nil {
		return err
	}
	w.Pages[title] = text
	w.Saves = append(w.Saves, Save{Title: title, Text: text, Summary: summary})
	return nil
}

// FileSearch implements ports.Wiki.
func (w *Wiki) FileSearch(_ context.Context, size int64, sha1 string) ([]domain.WikiFile, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.fail("FileSearch", sha1); err != nil {
		return nil, err
	}
	var out []domain.WikiFile
	for _, title := range slices.Sorted(maps.Keys(w.Files)) {
		f := w.Files[title]
		if f.Digest == sha1 && f.Size == size {
			out = append(out, f)
		}
	}
	return out, nil
}

// FileInfo implements ports.Wiki.
func (w *Wiki) FileInfo(_ context.Context, title string) (domain.WikiFile, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.fail("FileInfo", title); err != nil {
		return domain.WikiFile{}, err
	}
	if target, ok := redirectTarget(w.Pages[title]); ok {
		return domain.WikiFile{Title: title, Exists: true, RedirectTarget: target}, nil
	}
	if f, ok := w.Files[title]; ok {
		return f, nil
	}
	_, exists := w.Pages[title]
	return domain.WikiFile{Title: title, Exists: exists}, nil
}

// FileMove implements ports.Wiki.
func (w *Wiki) FileMove(_ context.Context, from, to, reason string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.fail("FileMove", from); err != nil {
		return err
	}
	w.Pages[to] = w.Pages[from]
	w.Pages[from] = "#REDIRECT [[" + to + "]]"
	if f, ok := w.Files[from]; ok {
		f.Title = to
		w.Files[to] = f
		delete(w.Files, from)
	}
	w.Moves = append(w.Moves, Move{From: from, To: to, Reason: reason})
	return nil
}

// FileUpload implements ports.Wiki.
func (w *Wiki) FileUpload(_ context.Context, payload []byte, filename, description string) (domain.UploadResult, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.fail("FileUpload", filename); err != nil {
		return domain.UploadResult{}, err
	}
	w.Uploads = append(w.Uploads, Upload{Filename: filename, Description: description, Payload: payload})

	result := domain.UploadResult{Result: "Success", Filename: filename}
	if w.UploadResponse != nil {
		result = w.UploadResponse(filename)
	}
	if result.Result == "Success" {
		title := "File:" + filename
		w.Pages[title] = description
		w.addFile(title, payload)
	}
	return result, nil
}

// Backlinks implements ports.Wiki. Only redirects are tracked, so
// redirectsOnly is ignored.
func (w *Wiki) Backlinks(_ context.Context, title string, _ bool) ([]string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.fail("Backlinks", title); err != nil {
		return nil, err
	}
	var out []string
	for _, page := range slices.Sorted(maps.Keys(w.Pages)) {
		if target, ok := redirectTarget(w.Pages[page]); ok && target == title {
			out = append(out, page)
		}
	}
	return out, nil
}

// CategoryMembers implements ports.Wiki.
func (w *Wiki) CategoryMembers(_ context.Context, category string) ([]string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.fail("CategoryMembers", category); err != nil {
		return nil, err
	}
	return slices.Clone(w.Categories[category]), nil
}
