package models

import (
	"strings"

	"cmsadmin/internal/upload"
)

type Solution struct {
	ID          string   `json:"_id"`
	Key         string   `json:"key"`
	Category    string   `json:"category"`
	Banner      string   `json:"banner"`
	Intro       string   `json:"intro"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Advantages  []string `json:"advantages"`
	Services    []string `json:"services"`
}

func (s Solution) EntityID() string { return s.ID }

type SolutionInput struct {
	ID          string   `json:"_id,omitempty"`
	Key         string   `json:"key"`
	Category    string   `json:"category"`
	Banner      string   `json:"banner"`
	Intro       string   `json:"intro"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Advantages  []string `json:"advantages"`
	Services    []string `json:"services"`
}

type SolutionForm struct {
	ID          string       `json:"_id,omitempty"`
	Key         string       `json:"key"`
	Category    string       `json:"category"`
	Banner      upload.Field `json:"banner"`
	Intro       string       `json:"intro"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Advantages  []string     `json:"advantages"`
	Services    []string     `json:"services"`
}

func (f *SolutionForm) Slots() []upload.Slot {
	return []upload.Slot{{Key: "banner", Route: "solution/banner-image", Field: &f.Banner}}
}

func (f SolutionForm) Build() (SolutionInput, error) {
	if err := firstErr(
		requiredText("key", f.Key),
		requiredText("category", f.Category),
		requiredText("intro", f.Intro),
		requiredText("title", f.Title),
		requiredText("description", f.Description),
		requiredList("advantages", f.Advantages),
		requiredList("services", f.Services),
	); err != nil {
		return SolutionInput{}, err
	}
	banner, err := requiredAsset("banner", f.Banner)
	if err != nil {
		return SolutionInput{}, err
	}
	return SolutionInput{
		ID:          f.ID,
		Key:         strings.TrimSpace(f.Key),
		Category:    strings.TrimSpace(f.Category),
		Banner:      banner,
		Intro:       f.Intro,
		Title:       strings.TrimSpace(f.Title),
		Description: f.Description,
		Advantages:  trimAll(f.Advantages),
		Services:    trimAll(f.Services),
	}, nil
}
