package services

import (
	"context"

	"cmsadmin/internal/domain"
	"cmsadmin/internal/metrics"
	"cmsadmin/internal/upload"
)

// Builder is an entity form: asset slots to resolve plus a typed payload
// builder that rejects unresolved placeholders.
type Builder[I any] interface {
	upload.Form
	Build() (I, error)
}

// MeteredUploader counts every upload round-trip.
type MeteredUploader struct {
	Next upload.Uploader
}

func (m MeteredUploader) Upload(ctx context.Context, route string, file upload.File) (upload.Asset, error) {
	a, err := m.Next.Upload(ctx, route, file)
	metrics.Uploads.WithLabelValues(metrics.Result(err)).Inc()
	return a, err
}

func (m MeteredUploader) UploadMany(ctx context.Context, route string, files []upload.File) ([]upload.Asset, error) {
	a, err := m.Next.UploadMany(ctx, route, files)
	metrics.Uploads.WithLabelValues(metrics.Result(err)).Inc()
	return a, err
}

// FormService runs the upload-then-submit flow shared by every form.
type FormService struct {
	Uploader upload.Uploader
}

// Resolve uploads every staged file of form, replacing placeholders with
// absolute URLs. Nothing is submitted when it fails.
func (s FormService) Resolve(ctx context.Context, form upload.Form) error {
	if !upload.Pending(form) {
		return nil
	}
	if s.Uploader == nil {
		return domain.InternalError{Msg: "uploads are not configured"}
	}
	return upload.ResolveAll(ctx, s.Uploader, form)
}

// resolveError marks a failure of the upload step of Prepare.
type resolveError struct{ err error }

func (e resolveError) Error() string { return e.err.Error() }
func (e resolveError) Unwrap() error { return e.err }

// Prepare resolves form and builds its payload. The returned payload never
// carries a preview placeholder. Upload failures unwrap to the uploader's
// error.
func Prepare[I any](ctx context.Context, s FormService, form Builder[I]) (I, error) {
	var zero I
	if err := s.Resolve(ctx, form); err != nil {
		return zero, resolveError{err}
	}
	in, err := form.Build()
	if err != nil {
		return zero, err
	}
	return in, nil
}
