package upload

import (
	"context"
	"fmt"
)

// Slot is one asset position of a form, addressed by Key (the multipart
// part name a browser uses for it) and uploaded to Route.
type Slot struct {
	Key     string
	Route   string
	Field   *Field
	Gallery *Gallery
}

// Form is implemented by entity forms that carry assets.
type Form interface {
	Slots() []Slot
}

// Stage attaches files to the slot addressed by key. A single-file slot
// takes the last file.
func Stage(form Form, key string, files ...File) error {
	if len(files) == 0 {
		return nil
	}
	for _, s := range form.Slots() {
		if s.Key != key {
			continue
		}
		switch {
		case s.Gallery != nil:
			s.Gallery.Stage(files...)
		case s.Field != nil:
			s.Field.Stage(files[len(files)-1])
		}
		return nil
	}
	return fmt.Errorf("unknown asset slot %q", key)
}

// ResolveAll uploads every staged file of the form. It stops at the first
// failure; already resolved slots keep their URLs.
func ResolveAll(ctx context.Context, u Uploader, form Form) error {
	for _, s := range form.Slots() {
		var err error
		switch {
		case s.Gallery != nil:
			err = s.Gallery.Resolve(ctx, u, s.Route)
		case s.Field != nil:
			err = s.Field.Resolve(ctx, u, s.Route)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", s.Key, err)
		}
	}
	return nil
}

// Pending reports whether any slot still holds a staged file.
func Pending(form Form) bool {
	for _, s := range form.Slots() {
		if s.Field != nil && s.Field.Staged() {
			return true
		}
		if s.Gallery != nil {
			for _, it := range s.Gallery.Items {
				if it.Staged() {
					return true
				}
			}
		}
	}
	return false
}
