package models

import (
	"strings"

	"cmsadmin/internal/domain"
	"cmsadmin/internal/upload"
)

type Category struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
	Key  string `json:"key"`
}

func (c Category) EntityID() string { return c.ID }

type CategoryInput struct {
	ID   string `json:"_id,omitempty"`
	Name string `json:"name"`
	Key  string `json:"key"`
}

type CategoryForm CategoryInput

func (f *CategoryForm) Slots() []upload.Slot { return nil }

func (f CategoryForm) Build() (CategoryInput, error) {
	if err := firstErr(requiredText("name", f.Name), requiredText("key", f.Key)); err != nil {
		return CategoryInput{}, err
	}
	return CategoryInput{ID: f.ID, Name: strings.TrimSpace(f.Name), Key: strings.TrimSpace(f.Key)}, nil
}

type QaA struct {
	ID       string `json:"_id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

func (q QaA) EntityID() string { return q.ID }

type QaAInput struct {
	ID       string `json:"_id,omitempty"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type QaAForm QaAInput

func (f *QaAForm) Slots() []upload.Slot { return nil }

func (f QaAForm) Build() (QaAInput, error) {
	if err := firstErr(requiredText("question", f.Question), requiredText("answer", f.Answer)); err != nil {
		return QaAInput{}, err
	}
	return QaAInput{ID: f.ID, Question: strings.TrimSpace(f.Question), Answer: strings.TrimSpace(f.Answer)}, nil
}

type ServicePack struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Key   string `json:"key"`
	Price int64  `json:"price"`
}

func (s ServicePack) EntityID() string { return s.ID }

type ServicePackInput struct {
	ID    string `json:"_id,omitempty"`
	Name  string `json:"name"`
	Key   string `json:"key"`
	Price int64  `json:"price"`
}

type ServicePackForm ServicePackInput

func (f *ServicePackForm) Slots() []upload.Slot { return nil }

func (f ServicePackForm) Build() (ServicePackInput, error) {
	if err := firstErr(requiredText("name", f.Name), requiredText("key", f.Key)); err != nil {
		return ServicePackInput{}, err
	}
	if f.Price < 0 {
		return ServicePackInput{}, domain.ValidationError{Field: "price", Msg: "price must not be negative"}
	}
	return ServicePackInput{ID: f.ID, Name: strings.TrimSpace(f.Name), Key: strings.TrimSpace(f.Key), Price: f.Price}, nil
}
