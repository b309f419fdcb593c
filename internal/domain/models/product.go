package models

import (
	"strings"

	"cmsadmin/internal/upload"
)

type Product struct {
	ID            string   `json:"_id"`
	Key           string   `json:"key"`
	Name          string   `json:"name"`
	Category      string   `json:"category"`
	Thumbnail     string   `json:"thumbnail"`
	Description   string   `json:"description"`
	Advantages    []string `json:"advantages"`
	QaAs          []string `json:"qaas"`
	ServicePacks  []string `json:"servicePacks"`
	BonusServices []string `json:"bonusServices"`
}

func (p Product) EntityID() string { return p.ID }

type ProductInput struct {
	ID            string   `json:"_id,omitempty"`
	Key           string   `json:"key"`
	Name          string   `json:"name"`
	Category      string   `json:"category"`
	Thumbnail     string   `json:"thumbnail"`
	Description   string   `json:"description"`
	Advantages    []string `json:"advantages"`
	QaAs          []string `json:"qaas"`
	ServicePacks  []string `json:"servicePacks"`
	BonusServices []string `json:"bonusServices"`
}

// ProductForm references categories, advantages, Q&A entries, service packs
// and bonus services by id; optional reference lists default to empty.
type ProductForm struct {
	ID            string       `json:"_id,omitempty"`
	Key           string       `json:"key"`
	Name          string       `json:"name"`
	Category      string       `json:"category"`
	Thumbnail     upload.Field `json:"thumbnail"`
	Description   string       `json:"description"`
	Advantages    []string     `json:"advantages"`
	QaAs          []string     `json:"qaas"`
	ServicePacks  []string     `json:"servicePacks"`
	BonusServices []string     `json:"bonusServices"`
}

func (f *ProductForm) Slots() []upload.Slot {
	return []upload.Slot{{Key: "thumbnail", Route: "product/thumbnail", Field: &f.Thumbnail}}
}

func (f ProductForm) Build() (ProductInput, error) {
	if err := firstErr(
		requiredText("key", f.Key),
		requiredText("name", f.Name),
		requiredText("category", f.Category),
		requiredList("servicePacks", f.ServicePacks),
	); err != nil {
		return ProductInput{}, err
	}
	thumb, err := requiredAsset("thumbnail", f.Thumbnail)
	if err != nil {
		return ProductInput{}, err
	}
	return ProductInput{
		ID:            f.ID,
		Key:           strings.TrimSpace(f.Key),
		Name:          strings.TrimSpace(f.Name),
		Category:      strings.TrimSpace(f.Category),
		Thumbnail:     thumb,
		Description:   f.Description,
		Advantages:    trimAll(f.Advantages),
		QaAs:          trimAll(f.QaAs),
		ServicePacks:  trimAll(f.ServicePacks),
		BonusServices: trimAll(f.BonusServices),
	}, nil
}
