package upload

import (
	"context"
	"fmt"

	"cmsadmin/internal/domain"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// File is a locally chosen file that has not been uploaded yet.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Field is a single asset value of a form. It holds either a resolved
// absolute URL or a preview placeholder for a staged local file.
type Field struct {
	value  string
	staged *File
}

// NewField returns a field already holding a resolved URL (or empty).
func NewField(url string) Field {
	return Field{value: url}
}

// Stage keeps file locally and sets the value to a fresh preview
// placeholder so the form can render it before the upload finishes.
func (f *Field) Stage(file File) string {
	f.staged = &file
	f.value = domain.PreviewScheme + uuid.NewString()
	return f.value
}

// Set replaces the value with a resolved URL and drops any staged file.
func (f *Field) Set(url string) {
	f.value = url
	f.staged = nil
}

func (f Field) Value() string { return f.value }

func (f Field) Staged() bool { return f.staged != nil }

// URL returns the resolved value. A value that is still a preview
// placeholder is never returned.
func (f Field) URL() (string, error) {
	if domain.IsPreview(f.value) {
		return "", ErrUnresolved
	}
	return f.value, nil
}

// Resolve uploads the staged file, if any, and replaces the placeholder with
// the absolute URL. On failure the field keeps its placeholder.
func (f *Field) Resolve(ctx context.Context, u Uploader, route string) error {
	if f.staged == nil {
		return nil
	}
	asset, err := u.Upload(ctx, route, *f.staged)
	if err != nil {
		return err
	}
	f.Set(asset.URL)
	return nil
}

func (f Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.value)
}

func (f *Field) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("asset field: %w", err)
	}
	f.Set(s)
	return nil
}

// Gallery is a multi-file asset value. Staged items are uploaded together in
// one multipart request.
type Gallery struct {
	Items []Field
}

// NewGallery returns a gallery of already resolved URLs.
func NewGallery(urls ...string) Gallery {
	g := Gallery{Items: make([]Field, 0, len(urls))}
	for _, u := range urls {
		g.Items = append(g.Items, NewField(u))
	}
	return g
}

// Stage appends one placeholder item per file and returns the placeholders.
func (g *Gallery) Stage(files ...File) []string {
	out := make([]string, 0, len(files))
	for _, file := range files {
		var f Field
		out = append(out, f.Stage(file))
		g.Items = append(g.Items, f)
	}
	return out
}

// Resolve uploads every staged item in one request. The response order
// matches the request order.
func (g *Gallery) Resolve(ctx context.Context, u Uploader, route string) error {
	var (
		files []File
		index []int
	)
	for i := range g.Items {
		if g.Items[i].staged != nil {
			files = append(files, *g.Items[i].staged)
			index = append(index, i)
		}
	}
	if len(files) == 0 {
		return nil
	}
	assets, err := u.UploadMany(ctx, route, files)
	if err != nil {
		return err
	}
	if len(assets) != len(files) {
		return fmt.Errorf("upload %s: got %d paths for %d files", route, len(assets), len(files))
	}
	for n, i := range index {
		g.Items[i].Set(assets[n].URL)
	}
	return nil
}

// URLs returns every resolved value, failing on any placeholder.
func (g Gallery) URLs() ([]string, error) {
	out := make([]string, 0, len(g.Items))
	for _, it := range g.Items {
		u, err := it.URL()
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}

func (g Gallery) MarshalJSON() ([]byte, error) {
	vals := make([]string, 0, len(g.Items))
	for _, it := range g.Items {
		vals = append(vals, it.value)
	}
	return json.Marshal(vals)
}

func (g *Gallery) UnmarshalJSON(b []byte) error {
	var vals []string
	if err := json.Unmarshal(b, &vals); err != nil {
		return fmt.Errorf("asset gallery: %w", err)
	}
	*g = NewGallery(vals...)
	return nil
}
