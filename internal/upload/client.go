package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"cmsadmin/internal/domain"
)

// ErrUnresolved is returned when a payload would carry a local preview
// placeholder instead of an uploaded URL.
var ErrUnresolved = errors.New("asset is not uploaded yet")

// Multipart field names used by the CMS upload endpoint.
const (
	FieldSingle = "file"
	FieldMulti  = "files"
)

// Asset is one uploaded file: the path returned by the server and the
// absolute URL formed with the asset domain.
type Asset struct {
	Path string `json:"path"`
	URL  string `json:"url"`
}

// Uploader sends staged files to the CMS.
type Uploader interface {
	Upload(ctx context.Context, route string, file File) (Asset, error)
	UploadMany(ctx context.Context, route string, files []File) ([]Asset, error)
}

// Client talks to the REST upload service.
type Client struct {
	Endpoint    string
	AssetDomain string
	HTTP        *http.Client
	Token       func(ctx context.Context) string
}

func (c Client) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return http.DefaultClient
}

// ResolveURL joins the asset domain and a server-relative path with exactly
// one slash.
func ResolveURL(assetDomain, path string) string {
	return strings.TrimRight(assetDomain, "/") + "/" + strings.TrimLeft(path, "/")
}

// Upload posts a single file under the "file" field.
func (c Client) Upload(ctx context.Context, route string, file File) (Asset, error) {
	op := "upload " + route
	body, err := c.post(ctx, op, route, FieldSingle, []File{file})
	if err != nil {
		return Asset{}, err
	}
	var asset Asset
	if err := json.Unmarshal(body, &asset); err != nil {
		return Asset{}, domain.TransportError{Op: op, Err: err}
	}
	if asset.Path == "" {
		return Asset{}, domain.TransportError{Op: op, Err: errors.New("response has no path")}
	}
	asset.URL = ResolveURL(c.AssetDomain, asset.Path)
	return asset, nil
}

// UploadMany posts files under the repeated "files" field.
func (c Client) UploadMany(ctx context.Context, route string, files []File) ([]Asset, error) {
	op := "upload " + route
	body, err := c.post(ctx, op, route, FieldMulti, files)
	if err != nil {
		return nil, err
	}
	var assets []Asset
	if err := json.Unmarshal(body, &assets); err != nil {
		return nil, domain.TransportError{Op: op, Err: err}
	}
	for i := range assets {
		assets[i].URL = ResolveURL(c.AssetDomain, assets[i].Path)
	}
	return assets, nil
}

func (c Client) post(ctx context.Context, op, route, field string, files []File) ([]byte, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, f.Name))
		ct := f.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)
		part, err := mw.CreatePart(h)
		if err != nil {
			return nil, domain.TransportError{Op: op, Err: err}
		}
		if _, err := part.Write(f.Data); err != nil {
			return nil, domain.TransportError{Op: op, Err: err}
		}
	}
	if err := mw.Close(); err != nil {
		return nil, domain.TransportError{Op: op, Err: err}
	}

	url := strings.TrimRight(c.Endpoint, "/") + "/" + strings.TrimLeft(route, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return nil, domain.TransportError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if c.Token != nil {
		if tok := c.Token(ctx); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, domain.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.TransportError{Op: op, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, domain.TransportError{Op: op, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}
	return body, nil
}
