package table

import (
	"fmt"
	"slices"

	"cmsadmin/internal/domain"
)

// RowsPerPageOptions are the accepted page sizes; the first is the default.
var RowsPerPageOptions = []int{5, 10, 25}

// State is the interactive view state of one list screen. It is not safe for
// concurrent use; the owning screen serializes access.
type State struct {
	Order       domain.Order
	OrderBy     string
	Page        int
	RowsPerPage int
	Dense       bool
	Filter      string
	selected    map[string]struct{}
}

// NewState returns the defaults a screen mounts with.
func NewState() State {
	return State{
		Order:       domain.OrderAsc,
		RowsPerPage: RowsPerPageOptions[0],
		selected:    map[string]struct{}{},
	}
}

// Sort toggles the direction when field is already the sort column, else
// switches to field ascending.
func (s *State) Sort(field string) {
	if field == s.OrderBy {
		s.Order = s.Order.Toggle()
		return
	}
	s.OrderBy = field
	s.Order = domain.OrderAsc
}

// SortBy sets the sort column and direction explicitly.
func (s *State) SortBy(field string, order domain.Order) {
	if order != domain.OrderDesc {
		order = domain.OrderAsc
	}
	s.OrderBy = field
	s.Order = order
}

// SelectRow toggles id in the selection.
func (s *State) SelectRow(id string) {
	s.ensure()
	if _, ok := s.selected[id]; ok {
		delete(s.selected, id)
		return
	}
	s.selected[id] = struct{}{}
}

// SelectAllRows selects exactly ids when checked, else clears the selection.
func (s *State) SelectAllRows(checked bool, ids []string) {
	s.selected = make(map[string]struct{}, len(ids))
	if !checked {
		return
	}
	for _, id := range ids {
		s.selected[id] = struct{}{}
	}
}

// ChangePage moves to a zero-based page.
func (s *State) ChangePage(page int) error {
	if page < 0 {
		return domain.ValidationError{Field: "page", Msg: "page must not be negative"}
	}
	s.Page = page
	return nil
}

// ChangeRowsPerPage sets the page size and returns to the first page.
func (s *State) ChangeRowsPerPage(n int) error {
	if !slices.Contains(RowsPerPageOptions, n) {
		return domain.ValidationError{Field: "rowsPerPage", Msg: fmt.Sprintf("rows per page must be one of %v", RowsPerPageOptions)}
	}
	s.RowsPerPage = n
	s.Page = 0
	return nil
}

// ToggleDense flips the display density.
func (s *State) ToggleDense() { s.Dense = !s.Dense }

// SetFilter replaces the free-text filter and returns to the first page.
func (s *State) SetFilter(text string) {
	s.Filter = text
	s.Page = 0
}

// Clamp pulls the page back to the last non-empty page for total rows.
func (s *State) Clamp(total int) {
	if s.Page == 0 || s.Page*s.RowsPerPage < total {
		return
	}
	if total == 0 {
		s.Page = 0
		return
	}
	s.Page = (total - 1) / s.RowsPerPage
}

// Deselect drops ids from the selection.
func (s *State) Deselect(ids ...string) {
	for _, id := range ids {
		delete(s.selected, id)
	}
}

// ClearSelection empties the selection.
func (s *State) ClearSelection() {
	s.selected = map[string]struct{}{}
}

// Retain keeps only selected ids that are still present.
func (s *State) Retain(present []string) {
	keep := make(map[string]struct{}, len(present))
	for _, id := range present {
		keep[id] = struct{}{}
	}
	for id := range s.selected {
		if _, ok := keep[id]; !ok {
			delete(s.selected, id)
		}
	}
}

// IsSelected reports whether id is selected.
func (s *State) IsSelected(id string) bool {
	_, ok := s.selected[id]
	return ok
}

// Selected returns the selection sorted for stable output.
func (s *State) Selected() []string {
	out := make([]string, 0, len(s.selected))
	for id := range s.selected {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

func (s *State) ensure() {
	if s.selected == nil {
		s.selected = map[string]struct{}{}
	}
}

// Snapshot is the serializable form of State.
type Snapshot struct {
	Order       domain.Order `json:"order"`
	OrderBy     string       `json:"orderBy"`
	Page        int          `json:"page"`
	RowsPerPage int          `json:"rowsPerPage"`
	Dense       bool         `json:"dense"`
	Filter      string       `json:"filter"`
	Selected    []string     `json:"selected"`
}

func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Order:       s.Order,
		OrderBy:     s.OrderBy,
		Page:        s.Page,
		RowsPerPage: s.RowsPerPage,
		Dense:       s.Dense,
		Filter:      s.Filter,
		Selected:    s.Selected(),
	}
}
