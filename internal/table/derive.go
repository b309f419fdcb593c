package table

import (
	"slices"
	"strings"

	"cmsadmin/internal/domain"
)

// View is what a list screen displays for one state of the collection.
type View[T any] struct {
	Rows      []T  `json:"rows"`
	Total     int  `json:"total"`
	EmptyRows int  `json:"emptyRows"`
	NotFound  bool `json:"notFound"`
}

type indexed[T any] struct {
	row T
	idx int
}

// Sorted returns rows ordered by the state's sort column. Rows comparing
// equal keep their original relative order. An empty or unknown column
// leaves the order unchanged.
func Sorted[T any](rows []T, schema Schema[T], st State) []T {
	pairs := make([]indexed[T], len(rows))
	for i, r := range rows {
		pairs[i] = indexed[T]{row: r, idx: i}
	}
	if f, ok := schema.Field(st.OrderBy); ok {
		slices.SortFunc(pairs, func(a, b indexed[T]) int {
			c := f.Compare(a.row, b.row)
			if st.Order == domain.OrderDesc {
				c = -c
			}
			if c != 0 {
				return c
			}
			return a.idx - b.idx
		})
	}
	out := make([]T, len(pairs))
	for i, p := range pairs {
		out[i] = p.row
	}
	return out
}

// Filtered keeps rows whose filter field contains text, ignoring case.
func Filtered[T any](rows []T, schema Schema[T], text string) []T {
	if text == "" || schema.Filter == nil {
		return rows
	}
	needle := strings.ToLower(text)
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		if strings.Contains(strings.ToLower(schema.Filter(r)), needle) {
			out = append(out, r)
		}
	}
	return out
}

// Derive computes the displayed page: sort, then filter, then slice.
func Derive[T any](rows []T, schema Schema[T], st State) View[T] {
	all := Filtered(Sorted(rows, schema, st), schema, st.Filter)
	total := len(all)

	start := min(st.Page*st.RowsPerPage, total)
	end := min(start+st.RowsPerPage, total)
	page := slices.Clone(all[start:end])

	return View[T]{
		Rows:      page,
		Total:     total,
		EmptyRows: max(0, min(st.RowsPerPage, total-st.Page*st.RowsPerPage)-len(page)),
		NotFound:  (st.Filter != "" && total == 0) || len(rows) == 0,
	}
}
