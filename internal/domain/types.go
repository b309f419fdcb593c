package domain

import "strings"

// Order is a sort direction.
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// Toggle flips the direction.
func (o Order) Toggle() Order {
	if o == OrderDesc {
		return OrderAsc
	}
	return OrderDesc
}

// Operation names a mutation kind an entity may support.
type Operation string

const (
	OpCreate     Operation = "create"
	OpUpdate     Operation = "update"
	OpDelete     Operation = "delete"
	OpDeleteMany Operation = "delete_many"
)

// AllOperations lists every mutation kind in a stable order.
var AllOperations = []Operation{OpCreate, OpUpdate, OpDelete, OpDeleteMany}

// ParseOperation accepts the config spelling of an operation.
func ParseOperation(s string) (Operation, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "-", "_")
	for _, op := range AllOperations {
		if string(op) == s {
			return op, true
		}
	}
	return "", false
}

// PreviewScheme prefixes placeholder values for files that are staged
// locally but not uploaded yet.
const PreviewScheme = "blob:"

// IsPreview reports whether v is a local preview placeholder.
func IsPreview(v string) bool {
	return strings.HasPrefix(v, PreviewScheme)
}
