package models

import (
	"strings"
	"time"
	"unicode/utf8"

	"cmsadmin/internal/domain"
	"cmsadmin/internal/upload"
)

// MinPostBodyLength is the shortest accepted post body, in characters.
const MinPostBodyLength = 1000

type Post struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Cover       string    `json:"cover"`
	Body        string    `json:"body"`
	Tags        []string  `json:"tags"`
	View        int64     `json:"view"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (p Post) EntityID() string { return p.ID }

type PostInput struct {
	ID          string   `json:"_id,omitempty"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Cover       string   `json:"cover"`
	Body        string   `json:"body"`
	Tags        []string `json:"tags"`
}

type PostForm struct {
	ID          string       `json:"_id,omitempty"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Cover       upload.Field `json:"cover"`
	Body        string       `json:"body"`
	Tags        []string     `json:"tags"`
}

func (f *PostForm) Slots() []upload.Slot {
	return []upload.Slot{{Key: "cover", Route: "post/cover-image", Field: &f.Cover}}
}

func (f PostForm) Build() (PostInput, error) {
	if err := firstErr(
		requiredText("title", f.Title),
		requiredText("description", f.Description),
		requiredText("body", f.Body),
		requiredList("tags", f.Tags),
	); err != nil {
		return PostInput{}, err
	}
	if utf8.RuneCountInString(f.Body) < MinPostBodyLength {
		return PostInput{}, domain.ValidationError{Field: "body", Msg: "body must be at least 1000 characters"}
	}
	cover, err := requiredAsset("cover", f.Cover)
	if err != nil {
		return PostInput{}, err
	}
	return PostInput{
		ID:          f.ID,
		Title:       strings.TrimSpace(f.Title),
		Description: strings.TrimSpace(f.Description),
		Cover:       cover,
		Body:        f.Body,
		Tags:        trimAll(f.Tags),
	}, nil
}

// PostFeedSort is a preset ordering of the blog feed.
type PostFeedSort string

const (
	FeedLatest  PostFeedSort = "latest"
	FeedOldest  PostFeedSort = "oldest"
	FeedPopular PostFeedSort = "popular"
)

// FeedOrder maps a feed preset to a sort field and direction. Unknown
// presets fall back to latest.
func FeedOrder(s PostFeedSort) (field string, order domain.Order) {
	switch s {
	case FeedOldest:
		return "createdAt", domain.OrderAsc
	case FeedPopular:
		return "view", domain.OrderDesc
	default:
		return "createdAt", domain.OrderDesc
	}
}
