package models

import (
	"strings"

	"cmsadmin/internal/upload"
)

type Office struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Hotline string `json:"hotline"`
	Fax     string `json:"fax"`
	Address string `json:"address"`
	Email   string `json:"email"`
}

func (o Office) EntityID() string { return o.ID }

type OfficeInput struct {
	ID      string `json:"_id,omitempty"`
	Name    string `json:"name"`
	Hotline string `json:"hotline"`
	Fax     string `json:"fax"`
	Address string `json:"address"`
	Email   string `json:"email"`
}

// OfficeForm has no assets; Build is the whole contract.
type OfficeForm OfficeInput

func (f *OfficeForm) Slots() []upload.Slot { return nil }

func (f OfficeForm) Build() (OfficeInput, error) {
	if err := firstErr(
		requiredText("name", f.Name),
		requiredText("hotline", f.Hotline),
		requiredText("fax", f.Fax),
		requiredText("address", f.Address),
		validEmail("email", f.Email),
	); err != nil {
		return OfficeInput{}, err
	}
	return OfficeInput{
		ID:      f.ID,
		Name:    strings.TrimSpace(f.Name),
		Hotline: strings.TrimSpace(f.Hotline),
		Fax:     strings.TrimSpace(f.Fax),
		Address: strings.TrimSpace(f.Address),
		Email:   strings.TrimSpace(f.Email),
	}, nil
}
