package services

import (
	"slices"
	"strings"

	"cmsadmin/internal/domain"
)

// Capabilities is the set of mutations an entity supports.
type Capabilities []domain.Operation

// AllCapabilities enables every mutation.
var AllCapabilities = Capabilities(domain.AllOperations)

func (c Capabilities) Allows(op domain.Operation) bool {
	return slices.Contains(c, op)
}

// Strings lists the enabled operations in canonical order.
func (c Capabilities) Strings() []string {
	out := []string{}
	for _, op := range domain.AllOperations {
		if c.Allows(op) {
			out = append(out, string(op))
		}
	}
	return out
}

// Messages are the notification texts of one entity.
type Messages struct {
	LoadFailed string
	// DetailFailed and NotFound cover screens opened on a single entity.
	DetailFailed string
	NotFound     string
	Created      string
	CreateFailed string
	Updated      string
	UpdateFailed string
	Deleted      string
	DeleteFailed string
	UploadFailed string
}

// DefaultMessages derives the texts from a human label such as "partner".
func DefaultMessages(label string) Messages {
	title := label
	if title != "" {
		title = strings.ToUpper(title[:1]) + title[1:]
	}
	return Messages{
		LoadFailed:   "Could not load " + label + " list",
		DetailFailed: "Could not load " + label,
		NotFound:     title + " not found",
		Created:      title + " created",
		CreateFailed: "Could not create " + label,
		Updated:      title + " updated",
		UpdateFailed: "Could not update " + label,
		Deleted:      title + " deleted",
		DeleteFailed: "Could not delete " + label,
		UploadFailed: "Could not upload " + label + " files",
	}
}
