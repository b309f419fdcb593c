package models

import (
	"net/mail"
	"strings"

	"cmsadmin/internal/domain"
	"cmsadmin/internal/upload"
)

// Entity is any CMS record shown in a list screen.
type Entity interface {
	EntityID() string
}

// Supported currency and billing units. The first entry is the default.
var (
	Currencies = []string{"VND", "USD"}
	TimeUnits  = []string{"month", "year"}
)

func requiredText(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return domain.ValidationError{Field: field, Msg: field + " is required"}
	}
	return nil
}

func requiredAsset(field string, f upload.Field) (string, error) {
	u, err := f.URL()
	if err != nil {
		return "", domain.ValidationError{Field: field, Msg: "upload " + field + " before submitting", Err: err}
	}
	if strings.TrimSpace(u) == "" {
		return "", domain.ValidationError{Field: field, Msg: field + " is required"}
	}
	return u, nil
}

func optionalAsset(field string, f upload.Field) (string, error) {
	u, err := f.URL()
	if err != nil {
		return "", domain.ValidationError{Field: field, Msg: "upload " + field + " before submitting", Err: err}
	}
	return u, nil
}

func galleryURLs(field string, g upload.Gallery) ([]string, error) {
	urls, err := g.URLs()
	if err != nil {
		return nil, domain.ValidationError{Field: field, Msg: "upload " + field + " before submitting", Err: err}
	}
	return urls, nil
}

func requiredList(field string, v []string) error {
	for _, s := range v {
		if strings.TrimSpace(s) != "" {
			return nil
		}
	}
	return domain.ValidationError{Field: field, Msg: field + " is required"}
}

func validEmail(field, v string) error {
	if err := requiredText(field, v); err != nil {
		return err
	}
	if _, err := mail.ParseAddress(v); err != nil {
		return domain.ValidationError{Field: field, Msg: "email must be a valid email address"}
	}
	return nil
}

func oneOf(v string, allowed []string) string {
	v = strings.TrimSpace(v)
	for _, a := range allowed {
		if a == v {
			return v
		}
	}
	return allowed[0]
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func trimAll(v []string) []string {
	out := make([]string, 0, len(v))
	for _, s := range v {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
