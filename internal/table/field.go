// Package table derives the displayed slice of a list screen from its
// authoritative collection and the operator's view state (sort, filter,
// pagination, selection).
package table

import (
	"cmp"
	"errors"
	"strings"
	"time"
)

// ErrUnknownField is returned when sorting by a name the schema does not
// declare.
var ErrUnknownField = errors.New("unknown sort field")

// Field is a sortable column of T, backed by an explicit accessor.
type Field[T any] struct {
	Name    string
	compare func(a, b T) int
}

// Compare orders a before b in ascending natural order.
func (f Field[T]) Compare(a, b T) int { return f.compare(a, b) }

// Text declares a string column compared byte-wise.
func Text[T any](name string, get func(T) string) Field[T] {
	return Field[T]{Name: name, compare: func(a, b T) int { return strings.Compare(get(a), get(b)) }}
}

// Number declares a numeric column.
func Number[T any, N cmp.Ordered](name string, get func(T) N) Field[T] {
	return Field[T]{Name: name, compare: func(a, b T) int { return cmp.Compare(get(a), get(b)) }}
}

// Time declares a timestamp column.
func Time[T any](name string, get func(T) time.Time) Field[T] {
	return Field[T]{Name: name, compare: func(a, b T) int { return get(a).Compare(get(b)) }}
}

// Schema describes how rows of T are identified, filtered and sorted.
type Schema[T any] struct {
	ID     func(T) string
	Filter func(T) string // nil disables free-text filtering
	Fields []Field[T]
}

// Field looks up a sortable column by name.
func (s Schema[T]) Field(name string) (Field[T], bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field[T]{}, false
}

// Names lists the sortable column names in declaration order.
func (s Schema[T]) Names() []string {
	out := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		out = append(out, f.Name)
	}
	return out
}

// IDs returns the identifiers of rows, in order.
func (s Schema[T]) IDs(rows []T) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, s.ID(r))
	}
	return out
}
