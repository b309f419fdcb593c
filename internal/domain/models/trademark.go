package models

import (
	"strings"
	"time"

	"cmsadmin/internal/upload"
)

type Trademark struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Logo      string    `json:"logo"`
	CreatedAt time.Time `json:"createdAt"`
}

func (t Trademark) EntityID() string { return t.ID }

type TrademarkInput struct {
	ID   string `json:"_id,omitempty"`
	Name string `json:"name"`
	Logo string `json:"logo"`
}

type TrademarkForm struct {
	ID   string       `json:"_id,omitempty"`
	Name string       `json:"name"`
	Logo upload.Field `json:"logo"`
}

func (f *TrademarkForm) Slots() []upload.Slot {
	return []upload.Slot{{Key: "logo", Route: "trademark/logo", Field: &f.Logo}}
}

func (f TrademarkForm) Build() (TrademarkInput, error) {
	if err := requiredText("name", f.Name); err != nil {
		return TrademarkInput{}, err
	}
	logo, err := requiredAsset("logo", f.Logo)
	if err != nil {
		return TrademarkInput{}, err
	}
	return TrademarkInput{ID: f.ID, Name: strings.TrimSpace(f.Name), Logo: logo}, nil
}
