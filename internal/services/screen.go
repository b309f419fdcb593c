package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"cmsadmin/internal/domain"
	"cmsadmin/internal/domain/models"
	"cmsadmin/internal/metrics"
	"cmsadmin/internal/notify"
	"cmsadmin/internal/table"
	"cmsadmin/internal/upload"

	"go.uber.org/zap"
)

// ScreenConfig wires one screen instance.
type ScreenConfig[T models.Entity, I any] struct {
	Entity   string
	Schema   table.Schema[T]
	Repo     Repository[T, I]
	Caps     Capabilities
	Messages Messages
	// IDField is the payload key carrying the identifier on update.
	IDField string
	NewForm func() Builder[I]
	Forms   FormService
	// Key opens the screen on a single entity (edit view). With Detail set
	// and an empty Key, nothing is loaded (create view).
	Key           string
	Detail        bool
	Owner         int64
	Notifications int
	Logger        *zap.Logger
}

// Screen is one open list or edit view. It owns the authoritative
// collection, the view state and the notification queue. After Close every
// late result is discarded.
type Screen[T models.Entity, I any] struct {
	id  string
	cfg ScreenConfig[T, I]

	mu      sync.Mutex
	closed  bool
	loading int
	state   table.State

	coll   *Collection[T]
	queue  *notify.Queue
	loader Loader[T]
	rec    *Reconciler[T, I]

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewScreen[T models.Entity, I any](id string, cfg ScreenConfig[T, I]) *Screen[T, I] {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.IDField == "" {
		cfg.IDField = "_id"
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Screen[T, I]{
		id:     id,
		cfg:    cfg,
		state:  table.NewState(),
		coll:   NewCollection[T](),
		queue:  notify.NewQueue(cfg.Notifications, cfg.Logger.With(zap.String("screen", id), zap.String("entity", cfg.Entity))),
		ctx:    ctx,
		cancel: cancel,
	}
	s.loader = s.newLoader()
	s.rec = &Reconciler[T, I]{
		Entity:   cfg.Entity,
		Repo:     cfg.Repo,
		Caps:     cfg.Caps,
		Msg:      cfg.Messages,
		coll:     s.coll,
		state:    &s.state,
		notifier: s.queue,
		commit:   s.commit,
	}
	return s
}

func (s *Screen[T, I]) newLoader() Loader[T] {
	if s.cfg.Detail {
		return Loader[T]{
			Entity:          s.cfg.Entity,
			KeyRequired:     true,
			FailMessage:     s.cfg.Messages.DetailFailed,
			NotFoundMessage: s.cfg.Messages.NotFound,
			Fetch: func(ctx context.Context, key string) ([]T, error) {
				row, err := s.cfg.Repo.FetchDetail(ctx, key)
				if err != nil {
					return nil, err
				}
				return []T{row}, nil
			},
		}
	}
	return Loader[T]{
		Entity:      s.cfg.Entity,
		FailMessage: s.cfg.Messages.LoadFailed,
		Fetch: func(ctx context.Context, _ string) ([]T, error) {
			return s.cfg.Repo.FetchAll(ctx)
		},
	}
}

func (s *Screen[T, I]) ID() string     { return s.id }
func (s *Screen[T, I]) Entity() string { return s.cfg.Entity }
func (s *Screen[T, I]) Owner() int64   { return s.cfg.Owner }

// commit runs fn under the screen lock unless the screen is closed.
func (s *Screen[T, I]) commit(fn func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return domain.ErrScreenClosed
	}
	fn()
	return nil
}

// Open starts the one-shot load. The screen is interactive immediately.
func (s *Screen[T, I]) Open() error {
	return s.commit(s.startLoad)
}

// startLoad must run with s.mu held.
func (s *Screen[T, I]) startLoad() {
	if !s.loader.Enabled(s.cfg.Key) {
		return
	}
	s.loading++
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		rows, err := s.loader.Run(s.ctx, s.cfg.Key)
		if cerr := s.commit(func() {
			s.loading--
			s.loader.Apply(s.coll, s.queue, rows, err)
			s.state.Retain(s.coll.IDs())
		}); cerr != nil {
			s.cfg.Logger.Debug("load discarded", zap.String("screen", s.id), zap.Error(err))
		}
	}()
}

// Loading reports whether a load is still in flight.
func (s *Screen[T, I]) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading > 0
}

// Close cancels pending loads and waits for them to finish. Results that
// arrive afterwards are dropped.
func (s *Screen[T, I]) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.cancel()
	s.mu.Unlock()
	s.wg.Wait()
}

// View is the JSON shape a screen renders.
type View struct {
	ID            string                `json:"id"`
	Entity        string                `json:"entity"`
	Loading       bool                  `json:"loading"`
	State         table.Snapshot        `json:"state"`
	Rows          any                   `json:"rows"`
	Total         int                   `json:"total"`
	EmptyRows     int                   `json:"emptyRows"`
	NotFound      bool                  `json:"notFound"`
	Columns       []string              `json:"columns"`
	Capabilities  []string              `json:"capabilities"`
	Notifications []notify.Notification `json:"notifications"`
}

// derive clamps the page to the filtered total and returns the displayed
// slice. Must run with s.mu held.
func (s *Screen[T, I]) derive() table.View[T] {
	rows := s.coll.Snapshot()
	s.state.Clamp(len(table.Filtered(rows, s.cfg.Schema, s.state.Filter)))
	return table.Derive(rows, s.cfg.Schema, s.state)
}

// View derives the current display and drains pending notifications.
func (s *Screen[T, I]) View() (View, error) {
	var out View
	err := s.commit(func() {
		v := s.derive()
		out = View{
			ID:            s.id,
			Entity:        s.cfg.Entity,
			Loading:       s.loading > 0,
			State:         s.state.Snapshot(),
			Rows:          v.Rows,
			Total:         v.Total,
			EmptyRows:     v.EmptyRows,
			NotFound:      v.NotFound,
			Columns:       s.cfg.Schema.Names(),
			Capabilities:  s.cfg.Caps.Strings(),
			Notifications: s.queue.Drain(),
		}
	})
	return out, err
}

// Rows returns the displayed slice without draining notifications.
func (s *Screen[T, I]) Rows() ([]T, error) {
	var out []T
	err := s.commit(func() { out = s.derive().Rows })
	return out, err
}

func (s *Screen[T, I]) Sort(field string) error {
	if _, ok := s.cfg.Schema.Field(field); !ok {
		return domain.ValidationError{Field: "orderBy", Msg: fmt.Sprintf("%s cannot be sorted by %q", s.cfg.Entity, field), Err: table.ErrUnknownField}
	}
	return s.commit(func() { s.state.Sort(field) })
}

// SortBy applies a preset ordering, such as a blog feed preset.
func (s *Screen[T, I]) SortBy(field string, order domain.Order) error {
	if _, ok := s.cfg.Schema.Field(field); !ok {
		return domain.ValidationError{Field: "orderBy", Msg: fmt.Sprintf("%s cannot be sorted by %q", s.cfg.Entity, field), Err: table.ErrUnknownField}
	}
	return s.commit(func() { s.state.SortBy(field, order) })
}

func (s *Screen[T, I]) ChangePage(page int) error {
	var err error
	if cerr := s.commit(func() { err = s.state.ChangePage(page) }); cerr != nil {
		return cerr
	}
	return err
}

func (s *Screen[T, I]) ChangeRowsPerPage(n int) error {
	var err error
	if cerr := s.commit(func() { err = s.state.ChangeRowsPerPage(n) }); cerr != nil {
		return cerr
	}
	return err
}

func (s *Screen[T, I]) ToggleDense() error {
	return s.commit(s.state.ToggleDense)
}

func (s *Screen[T, I]) SetFilter(text string) error {
	return s.commit(func() { s.state.SetFilter(text) })
}

// SelectRow toggles id in the selection. Ids outside the collection are
// rejected so a bulk delete never carries a row the screen does not show.
func (s *Screen[T, I]) SelectRow(id string) error {
	var err error
	cerr := s.commit(func() {
		if !s.state.IsSelected(id) && !slices.Contains(s.coll.IDs(), id) {
			err = domain.ValidationError{Field: "id", Msg: fmt.Sprintf("%s %q is not in the list", s.cfg.Entity, id)}
			return
		}
		s.state.SelectRow(id)
	})
	if cerr != nil {
		return cerr
	}
	return err
}

// SelectAllRows selects every id of the collection, or clears the selection.
func (s *Screen[T, I]) SelectAllRows(checked bool) error {
	return s.commit(func() { s.state.SelectAllRows(checked, s.coll.IDs()) })
}

func (s *Screen[T, I]) Delete(ctx context.Context, id string) error {
	return s.rec.Delete(ctx, id)
}

// DeleteMany deletes ids, or the current selection when ids is empty.
func (s *Screen[T, I]) DeleteMany(ctx context.Context, ids []string) (string, error) {
	if len(ids) == 0 {
		if err := s.commit(func() { ids = s.state.Selected() }); err != nil {
			return "", err
		}
	}
	return s.rec.DeleteMany(ctx, ids)
}

// Submit decodes payload into a fresh form, stages files by asset key,
// uploads them, builds the typed input and creates (empty itemID) or
// updates the entity. A successful create reloads the collection.
func (s *Screen[T, I]) Submit(ctx context.Context, itemID string, payload []byte, files map[string][]upload.File) (any, error) {
	op := domain.OpCreate
	if itemID != "" {
		op = domain.OpUpdate
	}
	if err := s.rec.allow(op); err != nil {
		return nil, err
	}
	if s.cfg.NewForm == nil {
		return nil, domain.UnsupportedError{Entity: s.cfg.Entity, Op: string(op)}
	}

	form := s.cfg.NewForm()
	if err := decodeForm(payload, s.cfg.IDField, itemID, form); err != nil {
		return nil, err
	}
	for key, fs := range files {
		if err := upload.Stage(form, key, fs...); err != nil {
			return nil, domain.ValidationError{Field: key, Msg: err.Error()}
		}
	}

	in, err := Prepare(ctx, s.cfg.Forms, form)
	var rerr resolveError
	if errors.As(err, &rerr) {
		if cerr := s.commit(func() { s.queue.Error(s.cfg.Messages.UploadFailed) }); cerr != nil {
			return nil, cerr
		}
		return nil, rerr.err
	}
	if err != nil {
		return nil, err
	}

	if op == domain.OpCreate {
		created, err := s.rec.Create(ctx, in)
		if err != nil {
			return nil, err
		}
		if err := s.Reload(); err != nil {
			return nil, err
		}
		return created, nil
	}
	updated, err := s.rec.Update(ctx, in)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func decodeForm(payload []byte, idField, itemID string, form any) error {
	fields := map[string]any{}
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &fields); err != nil {
			return domain.ValidationError{Field: "payload", Msg: "payload must be a JSON object", Err: err}
		}
	}
	if itemID != "" {
		fields[idField] = itemID
	}
	raw, err := json.Marshal(fields)
	if err != nil {
		return domain.ValidationError{Field: "payload", Msg: "invalid payload", Err: err}
	}
	if err := json.Unmarshal(raw, form); err != nil {
		return domain.ValidationError{Field: "payload", Msg: "payload does not match the form", Err: err}
	}
	return nil
}

// Reload starts another one-shot load.
func (s *Screen[T, I]) Reload() error {
	return s.commit(s.startLoad)
}

// countOpen tracks open screens in metrics.
func countOpen(delta float64) { metrics.OpenScreens.Add(delta) }
