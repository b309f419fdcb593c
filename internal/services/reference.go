package services

import (
	"context"
	"slices"
	"sync"

	m "cmsadmin/internal/domain/models"
	"cmsadmin/internal/metrics"
	"cmsadmin/internal/repositories"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// References are the shared lookup lists form screens pick from.
type References struct {
	Categories    []m.Category     `json:"categories"`
	Advantages    []m.Advantage    `json:"advantages"`
	QaAs          []m.QaA          `json:"qaas"`
	ServicePacks  []m.ServicePack  `json:"servicePacks"`
	BonusServices []m.BonusService `json:"bonusServices"`
}

func (r References) clone() References {
	return References{
		Categories:    cloneList(r.Categories),
		Advantages:    cloneList(r.Advantages),
		QaAs:          cloneList(r.QaAs),
		ServicePacks:  cloneList(r.ServicePacks),
		BonusServices: cloneList(r.BonusServices),
	}
}

func cloneList[T any](v []T) []T {
	if v == nil {
		return []T{}
	}
	return slices.Clone(v)
}

// ReferenceSources fetch each reference list.
type ReferenceSources struct {
	Categories    func(ctx context.Context) ([]m.Category, error)
	Advantages    func(ctx context.Context) ([]m.Advantage, error)
	QaAs          func(ctx context.Context) ([]m.QaA, error)
	ServicePacks  func(ctx context.Context) ([]m.ServicePack, error)
	BonusServices func(ctx context.Context) ([]m.BonusService, error)
}

// GraphQLReferenceSources reads the reference lists from the CMS.
func GraphQLReferenceSources(c repositories.GraphQLClient) ReferenceSources {
	return ReferenceSources{
		Categories: repositories.NewEntityRepository[m.Category, m.CategoryInput](c,
			repositories.NewDescriptor("category", "categories", "_id name key")).FetchAll,
		Advantages: repositories.NewEntityRepository[m.Advantage, m.AdvantageInput](c,
			repositories.NewDescriptor("advantage", "advantages", "_id title content")).FetchAll,
		QaAs: repositories.NewEntityRepository[m.QaA, m.QaAInput](c,
			repositories.NewDescriptor("qaa", "qaas", "_id question answer")).FetchAll,
		ServicePacks: repositories.NewEntityRepository[m.ServicePack, m.ServicePackInput](c,
			repositories.NewDescriptor("servicePack", "servicePacks", "_id name key price")).FetchAll,
		BonusServices: repositories.NewEntityRepository[m.BonusService, m.BonusServiceInput](c,
			repositories.NewDescriptor("bonusService", "bonusServices",
				"_id key name minValue maxValue unitPrices { minValue price } currency unit")).FetchAll,
	}
}

// ReferenceCache holds the reference lists for the whole process. It is
// filled by the first successful Ensure and never invalidated; a failed
// fill leaves it empty so a later Ensure tries again.
type ReferenceCache struct {
	src ReferenceSources
	log *zap.Logger

	mu     sync.RWMutex
	loaded bool
	data   References
}

func NewReferenceCache(src ReferenceSources, log *zap.Logger) *ReferenceCache {
	if log == nil {
		log = zap.NewNop()
	}
	return &ReferenceCache{src: src, log: log}
}

// Ensure fills the cache once, fetching all lists concurrently.
func (c *ReferenceCache) Ensure(ctx context.Context) error {
	c.mu.RLock()
	loaded := c.loaded
	c.mu.RUnlock()
	if loaded {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loaded {
		return nil
	}

	var next References
	g, gctx := errgroup.WithContext(ctx)
	fetch(g, gctx, "category", c.src.Categories, &next.Categories)
	fetch(g, gctx, "advantage", c.src.Advantages, &next.Advantages)
	fetch(g, gctx, "qaa", c.src.QaAs, &next.QaAs)
	fetch(g, gctx, "servicePack", c.src.ServicePacks, &next.ServicePacks)
	fetch(g, gctx, "bonusService", c.src.BonusServices, &next.BonusServices)
	if err := g.Wait(); err != nil {
		c.log.Warn("reference lists not loaded", zap.Error(err))
		return err
	}

	c.data = next
	c.loaded = true
	c.log.Info("reference lists loaded",
		zap.Int("categories", len(next.Categories)),
		zap.Int("advantages", len(next.Advantages)),
		zap.Int("qaas", len(next.QaAs)),
		zap.Int("service_packs", len(next.ServicePacks)),
		zap.Int("bonus_services", len(next.BonusServices)),
	)
	return nil
}

func fetch[T any](g *errgroup.Group, ctx context.Context, entity string, f func(context.Context) ([]T, error), dst *[]T) {
	if f == nil {
		*dst = []T{}
		return
	}
	g.Go(func() error {
		rows, err := f(ctx)
		metrics.Fetches.WithLabelValues(entity, metrics.Result(err)).Inc()
		if err != nil {
			return err
		}
		if rows == nil {
			rows = []T{}
		}
		*dst = rows
		return nil
	})
}

// Loaded reports whether Ensure has succeeded.
func (c *ReferenceCache) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// Get returns a copy of the lists; empty until Ensure succeeds.
func (c *ReferenceCache) Get() References {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.clone()
}
