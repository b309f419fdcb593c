package models

import (
	"fmt"
	"strings"

	"cmsadmin/internal/upload"
)

type Information struct {
	ID          string    `json:"_id"`
	Page        string    `json:"page"`
	Title       string    `json:"title"`
	Subtitle    string    `json:"subtitle"`
	Description string    `json:"description"`
	Variants    []Variant `json:"variants"`
	Assets      []string  `json:"assets"`
}

func (i Information) EntityID() string { return i.ID }

type Variant struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content"`
	Image   string `json:"image"`
}

type InformationInput struct {
	ID          string    `json:"_id,omitempty"`
	Page        string    `json:"page"`
	Title       string    `json:"title"`
	Subtitle    string    `json:"subtitle"`
	Description string    `json:"description"`
	Variants    []Variant `json:"variants"`
	Assets      []string  `json:"assets"`
}

type VariantForm struct {
	Title   string       `json:"title"`
	URL     string       `json:"url"`
	Content string       `json:"content"`
	Image   upload.Field `json:"image"`
}

type InformationForm struct {
	ID          string         `json:"_id,omitempty"`
	Page        string         `json:"page"`
	Title       string         `json:"title"`
	Subtitle    string         `json:"subtitle"`
	Description string         `json:"description"`
	Variants    []VariantForm  `json:"variants"`
	Assets      upload.Gallery `json:"assets"`
}

func (f *InformationForm) Slots() []upload.Slot {
	slots := []upload.Slot{{Key: "assets", Route: "information/assets", Gallery: &f.Assets}}
	for i := range f.Variants {
		slots = append(slots, upload.Slot{
			Key:   fmt.Sprintf("variants.%d.image", i),
			Route: "information/variant-image",
			Field: &f.Variants[i].Image,
		})
	}
	return slots
}

func (f InformationForm) Build() (InformationInput, error) {
	if err := firstErr(
		requiredText("page", f.Page),
		requiredText("title", f.Title),
		requiredText("subtitle", f.Subtitle),
	); err != nil {
		return InformationInput{}, err
	}
	variants := make([]Variant, 0, len(f.Variants))
	for i, v := range f.Variants {
		img, err := optionalAsset(fmt.Sprintf("variants.%d.image", i), v.Image)
		if err != nil {
			return InformationInput{}, err
		}
		variants = append(variants, Variant{Title: v.Title, URL: v.URL, Content: v.Content, Image: img})
	}
	assets, err := galleryURLs("assets", f.Assets)
	if err != nil {
		return InformationInput{}, err
	}
	return InformationInput{
		ID:          f.ID,
		Page:        strings.TrimSpace(f.Page),
		Title:       strings.TrimSpace(f.Title),
		Subtitle:    strings.TrimSpace(f.Subtitle),
		Description: f.Description,
		Variants:    variants,
		Assets:      assets,
	}, nil
}
