package mediawiki

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/url"
	"slices"
	"strconv"

	"go.trai.ch/gbfsync/internal/core/domain"
	"go.trai.ch/zerr"
)

type imageInfo struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Size  int64  `json:"size"`
	SHA1  string `json:"sha1"`
}

// FileSearch lists files whose content has the given size and SHA-1 digest.
func (c *Client) FileSearch(ctx context.Context, size int64, sha1 string) ([]domain.WikiFile, error) {
	if err := c.session(ctx); err != nil {
		return nil, err
	}

	sz := strconv.FormatInt(size, 10)
	items, err := queryAll[imageInfo](ctx, c, url.Values{
		"action":    {"query"},
		"list":      {"allimages"},
		"aisha1":    {sha1},
		"aiminsize": {sz},
		"aimaxsize": {sz},
		"aiprop":    {"url|size|sha1"},
		"ailimit":   {"max"},
	}, "allimages")
	if err != nil {
		return nil, zerr.With(err, "sha1", sha1)
	}

	files := make([]domain.WikiFile, 0, len(items))
	for _, item := range items {
		files = append(files, domain.WikiFile{
			Title:  item.Title,
			URL:    item.URL,
			Exists: true,
			Digest: item.SHA1,
			Size:   item.Size,
		})
	}
	return files, nil
}

// FileInfo reports whether the file page title exists and where it redirects.
func (c *Client) FileInfo(ctx context.Context, title string) (domain.WikiFile, error) {
	if err := c.session(ctx); err != nil {
		return domain.WikiFile{}, err
	}

	var resp struct {
		Query struct {
			Redirects []struct {
				From string `json:"from"`
				To   string `json:"to"`
			} `json:"redirects"`
			Pages []struct {
				Title     string      `json:"title"`
				Missing   bool        `json:"missing"`
				ImageInfo []imageInfo `json:"imageinfo"`
			} `json:"pages"`
		} `json:"query"`
	}
	err := c.get(ctx, url.Values{
		"action":    {"query"},
		"titles":    {title},
		"redirects": {"1"},
		"prop":      {"imageinfo"},
		"iiprop":    {"url|size|sha1"},
	}, &resp)
	if err != nil {
		return domain.WikiFile{}, zerr.With(err, "title", title)
	}

	file := domain.WikiFile{Title: title}
	if len(resp.Query.Redirects) > 0 {
		file.Exists = true
		file.RedirectTarget = resp.Query.Redirects[len(resp.Query.Redirects)-1].To
		return file, nil
	}
	if len(resp.Query.Pages) == 0 || resp.Query.Pages[0].Missing {
		return file, nil
	}

	page := resp.Query.Pages[0]
	file.Title = page.Title
	file.Exists = true
	if len(page.ImageInfo) > 0 {
		info := page.ImageInfo[0]
		file.URL, file.Size, file.Digest = info.URL, info.Size, info.SHA1
	}
	return file, nil
}

// FileUpload uploads payload as filename with ignorewarnings set. The
// description becomes the initial page text.
func (c *Client) FileUpload(ctx context.Context, payload []byte, filename, description string) (domain.UploadResult, error) {
	var resp struct {
		Upload struct {
			Result   string         `json:"result"`
			Filename string         `json:"filename"`
			Warnings map[string]any `json:"warnings"`
		} `json:"upload"`
	}

	err := c.write(ctx, func(token string) error {
		fields := map[string]string{
			"action":         "upload",
			"filename":       filename,
			"comment":        "Batch upload",
			"text":           description,
			"ignorewarnings": "1",
			"format":         "json",
			"formatversion":  "2",
			"token":          token,
		}
		return c.call(ctx, "upload", func(ctx context.Context) (*http.Request, error) {
			body, contentType, err := multipartBody(fields, filename, payload)
			if err != nil {
				return nil, err
			}
			req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, body)
			if err != nil {
				return nil, err
			}
			req.Header.Set("Content-Type", contentType)
			return req, nil
		}, &resp)
	})
	if err != nil {
		return domain.UploadResult{}, zerr.With(err, "filename", filename)
	}

	result := domain.UploadResult{
		Result:   resp.Upload.Result,
		Filename: resp.Upload.Filename,
	}
	for warning := range resp.Upload.Warnings {
		result.Warnings = append(result.Warnings, warning)
	}
	slices.Sort(result.Warnings)
	return result, nil
}

func multipartBody(fields map[string]string, filename string, payload []byte) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if err := w.WriteField(k, fields[k]); err != nil {
			return nil, "", err
		}
	}

	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(payload); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return body, w.FormDataContentType(), nil
}
