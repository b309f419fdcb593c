package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"cmsadmin/internal/domain"
	m "cmsadmin/internal/domain/models"
	"cmsadmin/internal/notify"
	"cmsadmin/internal/table"

	"github.com/stretchr/testify/require"
)

type partnerRepo struct {
	mu sync.Mutex

	rows     []m.Partner
	fetchErr error
	// gate, when set, blocks FetchAll until closed or ctx is done.
	gate chan struct{}

	createErr     error
	updateErr     error
	deleteErr     error
	deleteManyErr error
	deleteManyMsg string

	created    []m.PartnerInput
	updated    []m.PartnerInput
	deleted    []string
	deletedIDs [][]string
	fetches    int
}

func (r *partnerRepo) FetchAll(ctx context.Context) ([]m.Partner, error) {
	r.mu.Lock()
	r.fetches++
	gate := r.gate
	r.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fetchErr != nil {
		return nil, r.fetchErr
	}
	out := make([]m.Partner, len(r.rows))
	copy(out, r.rows)
	return out, nil
}

func (r *partnerRepo) FetchDetail(_ context.Context, key string) (m.Partner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fetchErr != nil {
		return m.Partner{}, r.fetchErr
	}
	for _, p := range r.rows {
		if p.ID == key {
			return p, nil
		}
	}
	return m.Partner{}, domain.NotFoundError{Resource: "partner"}
}

func (r *partnerRepo) Create(_ context.Context, in m.PartnerInput) (m.Partner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created = append(r.created, in)
	if r.createErr != nil {
		return m.Partner{}, r.createErr
	}
	p := m.Partner{ID: "new", Name: in.Name, Logo: in.Logo}
	r.rows = append(r.rows, p)
	return p, nil
}

func (r *partnerRepo) Update(_ context.Context, in m.PartnerInput) (m.Partner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updated = append(r.updated, in)
	if r.updateErr != nil {
		return m.Partner{}, r.updateErr
	}
	return m.Partner{ID: in.ID, Name: in.Name, Logo: in.Logo}, nil
}

func (r *partnerRepo) Delete(_ context.Context, id string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleted = append(r.deleted, id)
	if r.deleteErr != nil {
		return "", r.deleteErr
	}
	return id, nil
}

func (r *partnerRepo) DeleteMany(_ context.Context, ids []string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deletedIDs = append(r.deletedIDs, ids)
	if r.deleteManyErr != nil {
		return "", r.deleteManyErr
	}
	return r.deleteManyMsg, nil
}

func partnerSchema() table.Schema[m.Partner] {
	return table.Schema[m.Partner]{
		ID:     func(p m.Partner) string { return p.ID },
		Filter: func(p m.Partner) string { return p.Name },
		Fields: []table.Field[m.Partner]{
			table.Text("name", func(p m.Partner) string { return p.Name }),
		},
	}
}

func partners(ids ...string) []m.Partner {
	out := make([]m.Partner, 0, len(ids))
	for _, id := range ids {
		out = append(out, m.Partner{ID: id, Name: "Partner " + id, Logo: "https://cdn.example.com/" + id + ".png"})
	}
	return out
}

func newPartnerScreen(t *testing.T, repo *partnerRepo, caps Capabilities, forms FormService) *Screen[m.Partner, m.PartnerInput] {
	t.Helper()
	s := NewScreen("screen-1", ScreenConfig[m.Partner, m.PartnerInput]{
		Entity:   "partner",
		Schema:   partnerSchema(),
		Repo:     repo,
		Caps:     caps,
		Messages: DefaultMessages("partner"),
		NewForm:  func() Builder[m.PartnerInput] { return &m.PartnerForm{} },
		Forms:    forms,
	})
	t.Cleanup(s.Close)
	return s
}

func openAndWait(t *testing.T, s *Screen[m.Partner, m.PartnerInput]) {
	t.Helper()
	require.NoError(t, s.Open())
	require.Eventually(t, func() bool { return !s.Loading() }, time.Second, 2*time.Millisecond)
}

func variants(ns []notify.Notification) []notify.Variant {
	out := make([]notify.Variant, 0, len(ns))
	for _, n := range ns {
		out = append(out, n.Variant)
	}
	return out
}

const (
	timeout = time.Second
	tick    = 2 * time.Millisecond
)

func (r *partnerRepo) fetchCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fetches
}
