package models

import (
	"strings"
	"time"

	"cmsadmin/internal/upload"
)

type Partner struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Logo      string    `json:"logo"`
	CreatedAt time.Time `json:"createdAt"`
}

func (p Partner) EntityID() string { return p.ID }

type PartnerInput struct {
	ID   string `json:"_id,omitempty"`
	Name string `json:"name"`
	Logo string `json:"logo"`
}

type PartnerForm struct {
	ID   string       `json:"_id,omitempty"`
	Name string       `json:"name"`
	Logo upload.Field `json:"logo"`
}

func (f *PartnerForm) Slots() []upload.Slot {
	return []upload.Slot{{Key: "logo", Route: "partner/logo", Field: &f.Logo}}
}

func (f PartnerForm) Build() (PartnerInput, error) {
	if err := requiredText("name", f.Name); err != nil {
		return PartnerInput{}, err
	}
	logo, err := requiredAsset("logo", f.Logo)
	if err != nil {
		return PartnerInput{}, err
	}
	return PartnerInput{ID: f.ID, Name: strings.TrimSpace(f.Name), Logo: logo}, nil
}
