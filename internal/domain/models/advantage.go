package models

import (
	"strings"

	"cmsadmin/internal/upload"
)

type Advantage struct {
	ID      string `json:"_id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (a Advantage) EntityID() string { return a.ID }

type AdvantageInput struct {
	ID      string `json:"_id,omitempty"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type AdvantageForm AdvantageInput

func (f *AdvantageForm) Slots() []upload.Slot { return nil }

func (f AdvantageForm) Build() (AdvantageInput, error) {
	if err := firstErr(requiredText("title", f.Title), requiredText("content", f.Content)); err != nil {
		return AdvantageInput{}, err
	}
	return AdvantageInput{ID: f.ID, Title: strings.TrimSpace(f.Title), Content: f.Content}, nil
}
