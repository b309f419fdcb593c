package services

import (
	"sort"
	"strings"

	"cmsadmin/internal/domain"
	"cmsadmin/internal/domain/models"
	"cmsadmin/internal/repositories"
	"cmsadmin/internal/table"

	"go.uber.org/zap"
)

// Deps are the process-wide collaborators every screen shares.
type Deps struct {
	GraphQL       repositories.GraphQLClient
	Forms         FormService
	Notifications int
	Logger        *zap.Logger
}

// EntityInfo describes an entity to the browser.
type EntityInfo struct {
	Name         string   `json:"name"`
	Label        string   `json:"label"`
	IDField      string   `json:"idField"`
	Columns      []string `json:"columns"`
	Filterable   bool     `json:"filterable"`
	Capabilities []string `json:"capabilities"`
	AssetSlots   []string `json:"assetSlots"`
}

// Definition opens screens of one entity.
type Definition interface {
	Info() EntityInfo
	open(id string, opts OpenOptions, deps Deps) ScreenHandle
}

// EntityDef declares an entity: its CMS operations, sortable columns,
// enabled mutations and form.
type EntityDef[T models.Entity, I any] struct {
	Name       string
	Label      string
	Descriptor repositories.Descriptor
	Schema     table.Schema[T]
	Caps       Capabilities
	NewForm    func() Builder[I]
	// Repo replaces the GraphQL repository built from Descriptor.
	Repo Repository[T, I]
}

func (d EntityDef[T, I]) Info() EntityInfo {
	info := EntityInfo{
		Name:         d.Name,
		Label:        d.Label,
		IDField:      d.Descriptor.IDField,
		Columns:      d.Schema.Names(),
		Filterable:   d.Schema.Filter != nil,
		Capabilities: d.Caps.Strings(),
		AssetSlots:   []string{},
	}
	if info.IDField == "" {
		info.IDField = "_id"
	}
	if d.NewForm != nil {
		for _, s := range d.NewForm().Slots() {
			info.AssetSlots = append(info.AssetSlots, s.Key)
		}
	}
	return info
}

func (d EntityDef[T, I]) open(id string, opts OpenOptions, deps Deps) ScreenHandle {
	repo := d.Repo
	if repo == nil {
		repo = repositories.NewEntityRepository[T, I](deps.GraphQL, d.Descriptor)
	}
	s := NewScreen(id, ScreenConfig[T, I]{
		Entity:        d.Name,
		Schema:        d.Schema,
		Repo:          repo,
		Caps:          d.Caps,
		Messages:      DefaultMessages(d.Label),
		IDField:       d.Descriptor.IDField,
		NewForm:       d.NewForm,
		Forms:         deps.Forms,
		Key:           strings.TrimSpace(opts.Key),
		Detail:        opts.Detail,
		Owner:         opts.Owner,
		Notifications: deps.Notifications,
		Logger:        deps.Logger,
	})
	_ = s.Open()
	return s
}

// Catalog is the set of entities the dashboard manages.
type Catalog struct {
	defs      map[string]Definition
	overrides map[string][]domain.Operation
}

// NewCatalog returns an empty catalog. overrides replace the built-in
// capabilities of the named entities.
func NewCatalog(overrides map[string][]domain.Operation) *Catalog {
	return &Catalog{defs: map[string]Definition{}, overrides: overrides}
}

// Register adds d to c, applying any configured capability override.
func Register[T models.Entity, I any](c *Catalog, d EntityDef[T, I]) {
	name := strings.ToLower(d.Name)
	if ops, ok := c.overrides[name]; ok {
		d.Caps = Capabilities(ops)
	}
	c.defs[name] = d
}

func (c *Catalog) Lookup(name string) (Definition, bool) {
	d, ok := c.defs[strings.ToLower(strings.TrimSpace(name))]
	return d, ok
}

// Infos lists every entity, sorted by name.
func (c *Catalog) Infos() []EntityInfo {
	out := make([]EntityInfo, 0, len(c.defs))
	for _, d := range c.defs {
		out = append(out, d.Info())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
