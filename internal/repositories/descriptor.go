package repositories

import (
	"strings"
	"unicode"
)

// Descriptor names the GraphQL operations of one entity.
type Descriptor struct {
	Entity          string // singular, lower camel: "partner"
	Collection      string // fetch-all field: "partners"
	Detail          string // fetch-one field: "partnerDetail"
	DetailArg       string // "getPartnerDetailInput"
	DetailInputType string // "GetPartnerDetailInput"
	DetailKey       string // lookup field of the detail input: "_id", "key", "name"
	IDField         string // identifier field of the entity: "_id" or "name"
	Input           string // mutation argument: "partnerInput"
	InputType       string // "PartnerInput"
	Create          string
	Update          string
	Delete          string
	DeleteMany      string
	Selection       string // selected fields: "_id name logo"
}

// NewDescriptor derives the conventional operation names from the singular
// and plural entity names.
func NewDescriptor(entity, plural, selection string) Descriptor {
	title := upperFirst(entity)
	return Descriptor{
		Entity:          entity,
		Collection:      plural,
		Detail:          entity + "Detail",
		DetailArg:       "get" + title + "DetailInput",
		DetailInputType: "Get" + title + "DetailInput",
		DetailKey:       "_id",
		IDField:         "_id",
		Input:           entity + "Input",
		InputType:       title + "Input",
		Create:          "create" + title,
		Update:          "update" + title,
		Delete:          "delete" + title,
		DeleteMany:      "deleteMany" + upperFirst(plural),
		Selection:       selection,
	}
}

// WithKeys overrides the detail lookup key and the identifier field.
func (d Descriptor) WithKeys(detailKey, idField string) Descriptor {
	d.DetailKey = detailKey
	d.IDField = idField
	return d
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func (d Descriptor) fetchAllQuery() string {
	return "query { " + d.Collection + " { " + d.Selection + " } }"
}

func (d Descriptor) detailQuery() string {
	return "query ($input: " + d.DetailInputType + "!) { " + d.Detail + "(" + d.DetailArg + ": $input) { " + d.Selection + " } }"
}

func (d Descriptor) mutation(field, selection string) string {
	var b strings.Builder
	b.WriteString("mutation ($input: ")
	b.WriteString(d.InputType)
	b.WriteString("!) { ")
	b.WriteString(field)
	b.WriteString("(")
	b.WriteString(d.Input)
	b.WriteString(": $input)")
	if selection != "" {
		b.WriteString(" { ")
		b.WriteString(selection)
		b.WriteString(" }")
	}
	b.WriteString(" }")
	return b.String()
}
