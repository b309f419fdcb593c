package models

import (
	"fmt"
	"strings"

	"cmsadmin/internal/upload"
)

// Page is identified by its unique name rather than an _id.
type Page struct {
	Name     string         `json:"name"`
	Title    string         `json:"title"`
	Banner   string         `json:"banner"`
	Carousel []CarouselItem `json:"carousel"`
}

func (p Page) EntityID() string { return p.Name }

type CarouselItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

type PageInput struct {
	Name     string         `json:"name"`
	Title    string         `json:"title"`
	Banner   string         `json:"banner"`
	Carousel []CarouselItem `json:"carousel"`
}

type CarouselSlide struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Image       upload.Field `json:"image"`
}

type PageForm struct {
	Name     string          `json:"name"`
	Title    string          `json:"title"`
	Banner   upload.Field    `json:"banner"`
	Carousel []CarouselSlide `json:"carousel"`
}

func (f *PageForm) Slots() []upload.Slot {
	slots := []upload.Slot{{Key: "banner", Route: "page/banner-image", Field: &f.Banner}}
	for i := range f.Carousel {
		slots = append(slots, upload.Slot{
			Key:   fmt.Sprintf("carousel.%d.image", i),
			Route: "page/carousel-image",
			Field: &f.Carousel[i].Image,
		})
	}
	return slots
}

func (f PageForm) Build() (PageInput, error) {
	if err := firstErr(requiredText("name", f.Name), requiredText("title", f.Title)); err != nil {
		return PageInput{}, err
	}
	banner, err := optionalAsset("banner", f.Banner)
	if err != nil {
		return PageInput{}, err
	}
	carousel := make([]CarouselItem, 0, len(f.Carousel))
	for i, s := range f.Carousel {
		img, err := optionalAsset(fmt.Sprintf("carousel.%d.image", i), s.Image)
		if err != nil {
			return PageInput{}, err
		}
		carousel = append(carousel, CarouselItem{Title: s.Title, Description: s.Description, Image: img})
	}
	return PageInput{
		Name:     strings.TrimSpace(f.Name),
		Title:    strings.TrimSpace(f.Title),
		Banner:   banner,
		Carousel: carousel,
	}, nil
}
