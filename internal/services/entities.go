package services

import (
	"time"

	"cmsadmin/internal/domain"
	m "cmsadmin/internal/domain/models"
	"cmsadmin/internal/repositories"
	"cmsadmin/internal/table"
)

func byID[T m.Entity](v T) string { return v.EntityID() }

// DefaultCatalog declares every entity the dashboard manages. Delete is
// disabled where the CMS screens never offered it.
func DefaultCatalog(overrides map[string][]domain.Operation) *Catalog {
	c := NewCatalog(overrides)
	createUpdate := Capabilities{domain.OpCreate, domain.OpUpdate}

	Register(c, EntityDef[m.Partner, m.PartnerInput]{
		Name:       "partner",
		Label:      "partner",
		Descriptor: repositories.NewDescriptor("partner", "partners", "_id name logo createdAt"),
		Schema: table.Schema[m.Partner]{
			ID:     byID[m.Partner],
			Filter: func(p m.Partner) string { return p.Name },
			Fields: []table.Field[m.Partner]{
				table.Text("name", func(p m.Partner) string { return p.Name }),
				table.Text("logo", func(p m.Partner) string { return p.Logo }),
				table.Time("createdAt", func(p m.Partner) time.Time { return p.CreatedAt }),
			},
		},
		Caps:    AllCapabilities,
		NewForm: func() Builder[m.PartnerInput] { return &m.PartnerForm{} },
	})

	Register(c, EntityDef[m.Trademark, m.TrademarkInput]{
		Name:       "trademark",
		Label:      "trademark",
		Descriptor: repositories.NewDescriptor("trademark", "trademarks", "_id name logo createdAt"),
		Schema: table.Schema[m.Trademark]{
			ID:     byID[m.Trademark],
			Filter: func(t m.Trademark) string { return t.Name },
			Fields: []table.Field[m.Trademark]{
				table.Text("name", func(t m.Trademark) string { return t.Name }),
				table.Text("logo", func(t m.Trademark) string { return t.Logo }),
				table.Time("createdAt", func(t m.Trademark) time.Time { return t.CreatedAt }),
			},
		},
		Caps:    AllCapabilities,
		NewForm: func() Builder[m.TrademarkInput] { return &m.TrademarkForm{} },
	})

	Register(c, EntityDef[m.Post, m.PostInput]{
		Name:       "post",
		Label:      "post",
		Descriptor: repositories.NewDescriptor("post", "posts", "_id title description cover body tags view createdAt"),
		Schema: table.Schema[m.Post]{
			ID:     byID[m.Post],
			Filter: func(p m.Post) string { return p.Title },
			Fields: []table.Field[m.Post]{
				table.Text("title", func(p m.Post) string { return p.Title }),
				table.Number("view", func(p m.Post) int64 { return p.View }),
				table.Time("createdAt", func(p m.Post) time.Time { return p.CreatedAt }),
			},
		},
		Caps:    createUpdate,
		NewForm: func() Builder[m.PostInput] { return &m.PostForm{} },
	})

	Register(c, EntityDef[m.Office, m.OfficeInput]{
		Name:       "office",
		Label:      "office",
		Descriptor: repositories.NewDescriptor("office", "offices", "_id name hotline fax address email"),
		Schema: table.Schema[m.Office]{
			ID:     byID[m.Office],
			Filter: func(o m.Office) string { return o.Name },
			Fields: []table.Field[m.Office]{
				table.Text("name", func(o m.Office) string { return o.Name }),
				table.Text("hotline", func(o m.Office) string { return o.Hotline }),
				table.Text("address", func(o m.Office) string { return o.Address }),
				table.Text("email", func(o m.Office) string { return o.Email }),
			},
		},
		Caps:    createUpdate,
		NewForm: func() Builder[m.OfficeInput] { return &m.OfficeForm{} },
	})

	Register(c, EntityDef[m.Price, m.PriceInput]{
		Name:       "price",
		Label:      "price",
		Descriptor: repositories.NewDescriptor("price", "prices", "_id name defaultPrice salePrice currency unit"),
		Schema: table.Schema[m.Price]{
			ID:     byID[m.Price],
			Filter: func(p m.Price) string { return p.Name },
			Fields: []table.Field[m.Price]{
				table.Text("name", func(p m.Price) string { return p.Name }),
				table.Number("defaultPrice", func(p m.Price) int64 { return p.DefaultPrice }),
				table.Number("salePrice", func(p m.Price) int64 { return p.SalePrice }),
				table.Text("currency", func(p m.Price) string { return p.Currency }),
			},
		},
		Caps:    createUpdate,
		NewForm: func() Builder[m.PriceInput] { return &m.PriceForm{} },
	})

	Register(c, EntityDef[m.Advantage, m.AdvantageInput]{
		Name:       "advantage",
		Label:      "advantage",
		Descriptor: repositories.NewDescriptor("advantage", "advantages", "_id title content"),
		Schema: table.Schema[m.Advantage]{
			ID:     byID[m.Advantage],
			Filter: func(a m.Advantage) string { return a.Title },
			Fields: []table.Field[m.Advantage]{
				table.Text("title", func(a m.Advantage) string { return a.Title }),
			},
		},
		Caps:    createUpdate,
		NewForm: func() Builder[m.AdvantageInput] { return &m.AdvantageForm{} },
	})

	Register(c, EntityDef[m.Service, m.ServiceInput]{
		Name:       "service",
		Label:      "service",
		Descriptor: repositories.NewDescriptor("service", "services", "_id key thumbnail trademark"),
		Schema: table.Schema[m.Service]{
			ID:     byID[m.Service],
			Filter: func(s m.Service) string { return s.Key },
			Fields: []table.Field[m.Service]{
				table.Text("key", func(s m.Service) string { return s.Key }),
				table.Text("trademark", func(s m.Service) string { return s.Trademark }),
			},
		},
		Caps:    createUpdate,
		NewForm: func() Builder[m.ServiceInput] { return &m.ServiceForm{} },
	})

	Register(c, EntityDef[m.Solution, m.SolutionInput]{
		Name:  "solution",
		Label: "solution",
		Descriptor: repositories.NewDescriptor("solution", "solutions",
			"_id key category banner intro title description advantages services").WithKeys("key", "_id"),
		Schema: table.Schema[m.Solution]{
			ID:     byID[m.Solution],
			Filter: func(s m.Solution) string { return s.Title },
			Fields: []table.Field[m.Solution]{
				table.Text("key", func(s m.Solution) string { return s.Key }),
				table.Text("title", func(s m.Solution) string { return s.Title }),
				table.Text("category", func(s m.Solution) string { return s.Category }),
			},
		},
		Caps:    createUpdate,
		NewForm: func() Builder[m.SolutionInput] { return &m.SolutionForm{} },
	})

	Register(c, EntityDef[m.Product, m.ProductInput]{
		Name:  "product",
		Label: "product",
		Descriptor: repositories.NewDescriptor("product", "products",
			"_id key name category thumbnail description advantages qaas servicePacks bonusServices").WithKeys("key", "_id"),
		Schema: table.Schema[m.Product]{
			ID:     byID[m.Product],
			Filter: func(p m.Product) string { return p.Name },
			Fields: []table.Field[m.Product]{
				table.Text("key", func(p m.Product) string { return p.Key }),
				table.Text("name", func(p m.Product) string { return p.Name }),
				table.Text("category", func(p m.Product) string { return p.Category }),
			},
		},
		Caps:    createUpdate,
		NewForm: func() Builder[m.ProductInput] { return &m.ProductForm{} },
	})

	Register(c, EntityDef[m.Page, m.PageInput]{
		Name:  "page",
		Label: "page",
		Descriptor: repositories.NewDescriptor("page", "pages",
			"name title banner carousel { title description image }").WithKeys("name", "name"),
		Schema: table.Schema[m.Page]{
			ID:     byID[m.Page],
			Filter: func(p m.Page) string { return p.Name },
			Fields: []table.Field[m.Page]{
				table.Text("name", func(p m.Page) string { return p.Name }),
				table.Text("title", func(p m.Page) string { return p.Title }),
			},
		},
		Caps:    Capabilities{domain.OpUpdate},
		NewForm: func() Builder[m.PageInput] { return &m.PageForm{} },
	})

	Register(c, EntityDef[m.Information, m.InformationInput]{
		Name:  "information",
		Label: "information",
		Descriptor: repositories.NewDescriptor("information", "information",
			"_id page title subtitle description variants { title url content image } assets"),
		Schema: table.Schema[m.Information]{
			ID:     byID[m.Information],
			Filter: func(i m.Information) string { return i.Title },
			Fields: []table.Field[m.Information]{
				table.Text("page", func(i m.Information) string { return i.Page }),
				table.Text("title", func(i m.Information) string { return i.Title }),
				table.Text("subtitle", func(i m.Information) string { return i.Subtitle }),
			},
		},
		Caps:    createUpdate,
		NewForm: func() Builder[m.InformationInput] { return &m.InformationForm{} },
	})

	Register(c, EntityDef[m.BonusService, m.BonusServiceInput]{
		Name:  "bonusService",
		Label: "bonus service",
		Descriptor: repositories.NewDescriptor("bonusService", "bonusServices",
			"_id key name minValue maxValue unitPrices { minValue price } currency unit"),
		Schema: table.Schema[m.BonusService]{
			ID:     byID[m.BonusService],
			Filter: func(b m.BonusService) string { return b.Name },
			Fields: []table.Field[m.BonusService]{
				table.Text("key", func(b m.BonusService) string { return b.Key }),
				table.Text("name", func(b m.BonusService) string { return b.Name }),
				table.Text("unit", func(b m.BonusService) string { return b.Unit }),
			},
		},
		Caps:    createUpdate,
		NewForm: func() Builder[m.BonusServiceInput] { return &m.BonusServiceForm{} },
	})

	Register(c, EntityDef[m.ServicePack, m.ServicePackInput]{
		Name:       "servicePack",
		Label:      "service pack",
		Descriptor: repositories.NewDescriptor("servicePack", "servicePacks", "_id name key price"),
		Schema: table.Schema[m.ServicePack]{
			ID:     byID[m.ServicePack],
			Filter: func(sp m.ServicePack) string { return sp.Name },
			Fields: []table.Field[m.ServicePack]{
				table.Text("name", func(sp m.ServicePack) string { return sp.Name }),
				table.Text("key", func(sp m.ServicePack) string { return sp.Key }),
				table.Number("price", func(sp m.ServicePack) int64 { return sp.Price }),
			},
		},
		Caps:    createUpdate,
		NewForm: func() Builder[m.ServicePackInput] { return &m.ServicePackForm{} },
	})

	Register(c, EntityDef[m.QaA, m.QaAInput]{
		Name:       "qaa",
		Label:      "question",
		Descriptor: repositories.NewDescriptor("qaa", "qaas", "_id question answer"),
		Schema: table.Schema[m.QaA]{
			ID:     byID[m.QaA],
			Filter: func(q m.QaA) string { return q.Question },
			Fields: []table.Field[m.QaA]{
				table.Text("question", func(q m.QaA) string { return q.Question }),
				table.Text("answer", func(q m.QaA) string { return q.Answer }),
			},
		},
		Caps:    createUpdate,
		NewForm: func() Builder[m.QaAInput] { return &m.QaAForm{} },
	})

	Register(c, EntityDef[m.Category, m.CategoryInput]{
		Name:       "category",
		Label:      "category",
		Descriptor: repositories.NewDescriptor("category", "categories", "_id name key"),
		Schema: table.Schema[m.Category]{
			ID:     byID[m.Category],
			Filter: func(cat m.Category) string { return cat.Name },
			Fields: []table.Field[m.Category]{
				table.Text("name", func(cat m.Category) string { return cat.Name }),
				table.Text("key", func(cat m.Category) string { return cat.Key }),
			},
		},
		Caps:    createUpdate,
		NewForm: func() Builder[m.CategoryInput] { return &m.CategoryForm{} },
	})

	return c
}
