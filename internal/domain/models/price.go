package models

import (
	"strings"

	"cmsadmin/internal/domain"
	"cmsadmin/internal/upload"
)

type Price struct {
	ID           string `json:"_id"`
	Name         string `json:"name"`
	DefaultPrice int64  `json:"defaultPrice"`
	SalePrice    int64  `json:"salePrice"`
	Currency     string `json:"currency"`
	Unit         string `json:"unit"`
}

func (p Price) EntityID() string { return p.ID }

type PriceInput struct {
	ID           string `json:"_id,omitempty"`
	Name         string `json:"name"`
	DefaultPrice int64  `json:"defaultPrice"`
	SalePrice    int64  `json:"salePrice"`
	Currency     string `json:"currency"`
	Unit         string `json:"unit"`
}

// PriceForm: currency and unit default to the first supported value when
// empty or unknown.
type PriceForm PriceInput

func (f *PriceForm) Slots() []upload.Slot { return nil }

func (f PriceForm) Build() (PriceInput, error) {
	if err := requiredText("name", f.Name); err != nil {
		return PriceInput{}, err
	}
	if f.DefaultPrice <= 0 {
		return PriceInput{}, domain.ValidationError{Field: "defaultPrice", Msg: "price must be greater than 0"}
	}
	if f.SalePrice < 0 {
		return PriceInput{}, domain.ValidationError{Field: "salePrice", Msg: "sale price must not be negative"}
	}
	return PriceInput{
		ID:           f.ID,
		Name:         strings.TrimSpace(f.Name),
		DefaultPrice: f.DefaultPrice,
		SalePrice:    f.SalePrice,
		Currency:     oneOf(f.Currency, Currencies),
		Unit:         oneOf(f.Unit, TimeUnits),
	}, nil
}
