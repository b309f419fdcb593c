package models

import (
	"strings"

	"cmsadmin/internal/upload"
)

type Service struct {
	ID        string `json:"_id"`
	Key       string `json:"key"`
	Thumbnail string `json:"thumbnail"`
	Trademark string `json:"trademark"`
}

func (s Service) EntityID() string { return s.ID }

type ServiceInput struct {
	ID        string `json:"_id,omitempty"`
	Key       string `json:"key"`
	Thumbnail string `json:"thumbnail"`
	Trademark string `json:"trademark"`
}

type ServiceForm struct {
	ID        string       `json:"_id,omitempty"`
	Key       string       `json:"key"`
	Thumbnail upload.Field `json:"thumbnail"`
	Trademark string       `json:"trademark"`
}

func (f *ServiceForm) Slots() []upload.Slot {
	return []upload.Slot{{Key: "thumbnail", Route: "service/thumbnail", Field: &f.Thumbnail}}
}

func (f ServiceForm) Build() (ServiceInput, error) {
	if err := firstErr(requiredText("key", f.Key), requiredText("trademark", f.Trademark)); err != nil {
		return ServiceInput{}, err
	}
	thumb, err := requiredAsset("thumbnail", f.Thumbnail)
	if err != nil {
		return ServiceInput{}, err
	}
	return ServiceInput{
		ID:        f.ID,
		Key:       strings.TrimSpace(f.Key),
		Thumbnail: thumb,
		Trademark: strings.TrimSpace(f.Trademark),
	}, nil
}
