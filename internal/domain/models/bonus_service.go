package models

import (
	"fmt"
	"strings"

	"cmsadmin/internal/domain"
	"cmsadmin/internal/upload"
)

type BonusService struct {
	ID         string      `json:"_id"`
	Key        string      `json:"key"`
	Name       string      `json:"name"`
	MinValue   string      `json:"minValue"`
	MaxValue   string      `json:"maxValue"`
	UnitPrices []UnitPrice `json:"unitPrices"`
	Currency   string      `json:"currency"`
	Unit       string      `json:"unit"`
}

func (b BonusService) EntityID() string { return b.ID }

// UnitPrice is one tier of a bonus service: Price applies from MinValue up.
type UnitPrice struct {
	MinValue string `json:"minValue"`
	Price    int64  `json:"price"`
}

type BonusServiceInput struct {
	ID         string      `json:"_id,omitempty"`
	Key        string      `json:"key"`
	Name       string      `json:"name"`
	MinValue   string      `json:"minValue"`
	MaxValue   string      `json:"maxValue"`
	UnitPrices []UnitPrice `json:"unitPrices"`
	Currency   string      `json:"currency"`
	Unit       string      `json:"unit"`
}

type BonusServiceForm BonusServiceInput

func (f *BonusServiceForm) Slots() []upload.Slot { return nil }

func (f BonusServiceForm) Build() (BonusServiceInput, error) {
	if err := firstErr(requiredText("key", f.Key), requiredText("name", f.Name)); err != nil {
		return BonusServiceInput{}, err
	}
	if len(f.UnitPrices) == 0 {
		return BonusServiceInput{}, domain.ValidationError{Field: "unitPrices", Msg: "at least one unit price is required"}
	}
	prices := make([]UnitPrice, 0, len(f.UnitPrices))
	for i, p := range f.UnitPrices {
		if err := requiredText(fmt.Sprintf("unitPrices.%d.minValue", i), p.MinValue); err != nil {
			return BonusServiceInput{}, err
		}
		if p.Price < 0 {
			return BonusServiceInput{}, domain.ValidationError{Field: fmt.Sprintf("unitPrices.%d.price", i), Msg: "price must not be negative"}
		}
		prices = append(prices, UnitPrice{MinValue: strings.TrimSpace(p.MinValue), Price: p.Price})
	}
	return BonusServiceInput{
		ID:         f.ID,
		Key:        strings.TrimSpace(f.Key),
		Name:       strings.TrimSpace(f.Name),
		MinValue:   strings.TrimSpace(f.MinValue),
		MaxValue:   strings.TrimSpace(f.MaxValue),
		UnitPrices: prices,
		Currency:   oneOf(f.Currency, Currencies),
		Unit:       oneOf(f.Unit, TimeUnits),
	}, nil
}
