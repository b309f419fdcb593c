package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"cmsadmin/internal/domain"
	"cmsadmin/internal/upload"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

var json = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	UseNumber:              true,
}.Froze()

// ScreenHandle is an open screen with its row type erased.
type ScreenHandle interface {
	ID() string
	Entity() string
	Owner() int64
	View() (View, error)
	Export() (Table, error)
	Sort(field string) error
	SortBy(field string, order domain.Order) error
	ChangePage(page int) error
	ChangeRowsPerPage(n int) error
	ToggleDense() error
	SetFilter(text string) error
	SelectRow(id string) error
	SelectAllRows(checked bool) error
	Submit(ctx context.Context, itemID string, payload []byte, files map[string][]upload.File) (any, error)
	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, ids []string) (string, error)
	Close()
}

// OpenOptions select what a new screen loads.
type OpenOptions struct {
	Key    string
	Detail bool
	Owner  int64
}

// Screens keeps the open screens of the process, keyed by a random id.
// Screens a client never closes are dropped by Expire once idle.
type Screens struct {
	catalog *Catalog
	deps    Deps
	now     func() time.Time

	mu   sync.Mutex
	open map[string]*openScreen
}

type openScreen struct {
	h        ScreenHandle
	lastUsed time.Time
}

func NewScreens(catalog *Catalog, deps Deps) *Screens {
	return &Screens{catalog: catalog, deps: deps, now: time.Now, open: map[string]*openScreen{}}
}

// Open creates a screen for entity and starts its load.
func (r *Screens) Open(entity string, opts OpenOptions) (ScreenHandle, error) {
	def, ok := r.catalog.Lookup(entity)
	if !ok {
		return nil, domain.NotFoundError{Resource: "entity " + entity}
	}
	h := def.open(uuid.NewString(), opts, r.deps)
	r.mu.Lock()
	r.open[h.ID()] = &openScreen{h: h, lastUsed: r.now()}
	r.mu.Unlock()
	countOpen(1)
	return h, nil
}

// Get returns the screen id opened by owner and marks it used.
func (r *Screens) Get(id string, owner int64) (ScreenHandle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.open[id]
	if !ok || e.h.Owner() != owner {
		return nil, domain.NotFoundError{Resource: "screen"}
	}
	e.lastUsed = r.now()
	return e.h, nil
}

// Close closes and forgets the screen.
func (r *Screens) Close(id string, owner int64) error {
	r.mu.Lock()
	e, ok := r.open[id]
	if !ok || e.h.Owner() != owner {
		r.mu.Unlock()
		return domain.NotFoundError{Resource: "screen"}
	}
	delete(r.open, id)
	r.mu.Unlock()
	e.h.Close()
	countOpen(-1)
	return nil
}

// Expire closes every screen unused for longer than maxIdle and returns
// how many it closed.
func (r *Screens) Expire(maxIdle time.Duration) int {
	cutoff := r.now().Add(-maxIdle)
	r.mu.Lock()
	var idle []ScreenHandle
	for id, e := range r.open {
		if e.lastUsed.Before(cutoff) {
			idle = append(idle, e.h)
			delete(r.open, id)
		}
	}
	r.mu.Unlock()
	for _, h := range idle {
		h.Close()
		countOpen(-1)
	}
	return len(idle)
}

// RunExpiry calls Expire periodically until ctx is done. A non-positive
// maxIdle disables it.
func (r *Screens) RunExpiry(ctx context.Context, maxIdle time.Duration) {
	if maxIdle <= 0 {
		return
	}
	every := maxIdle / 2
	if every < time.Second {
		every = time.Second
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Expire(maxIdle); n > 0 && r.deps.Logger != nil {
				r.deps.Logger.Info("closed idle screens", zap.Int("count", n), zap.Duration("max_idle", maxIdle))
			}
		}
	}
}

// CloseAll closes every open screen; used on shutdown.
func (r *Screens) CloseAll() {
	r.mu.Lock()
	handles := make([]ScreenHandle, 0, len(r.open))
	for id, e := range r.open {
		handles = append(handles, e.h)
		delete(r.open, id)
	}
	r.mu.Unlock()
	for _, h := range handles {
		h.Close()
		countOpen(-1)
	}
}

// Len reports how many screens are open.
func (r *Screens) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.open)
}

// IDs lists open screen ids, sorted.
func (r *Screens) IDs() []string {
	r.mu.Lock()
	out := make([]string, 0, len(r.open))
	for id := range r.open {
		out = append(out, id)
	}
	r.mu.Unlock()
	sort.Strings(out)
	return out
}
