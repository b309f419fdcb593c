package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cmsadmin/internal/domain"
	m "cmsadmin/internal/domain/models"
	"cmsadmin/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDefaultCatalogCapabilities(t *testing.T) {
	c := DefaultCatalog(nil)

	partner, ok := c.Lookup("partner")
	require.True(t, ok)
	assert.Equal(t, []string{"create", "update", "delete", "delete_many"}, partner.Info().Capabilities)
	assert.Equal(t, []string{"logo"}, partner.Info().AssetSlots)

	info, ok := c.Lookup("information")
	require.True(t, ok)
	assert.Equal(t, []string{"create", "update"}, info.Info().Capabilities)

	page, ok := c.Lookup("Page")
	require.True(t, ok)
	assert.Equal(t, "name", page.Info().IDField)
	assert.Equal(t, []string{"update"}, page.Info().Capabilities)
}

func TestDefaultCatalogManagesReferenceLists(t *testing.T) {
	c := DefaultCatalog(nil)

	sp, ok := c.Lookup("servicePack")
	require.True(t, ok)
	assert.Equal(t, "service pack", sp.Info().Label)
	assert.Equal(t, []string{"create", "update"}, sp.Info().Capabilities)
	assert.Empty(t, sp.Info().AssetSlots)

	qaa, ok := c.Lookup("qaa")
	require.True(t, ok)
	assert.Equal(t, []string{"create", "update"}, qaa.Info().Capabilities)
}

func TestServicePackScreenFiltersByName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"servicePacks":[
			{"_id":"1","name":"Gold","key":"gold","price":500},
			{"_id":"2","name":"Silver","key":"silver","price":200}]}}`))
	}))
	defer srv.Close()

	screens := NewScreens(DefaultCatalog(nil), Deps{
		Logger:  zap.NewNop(),
		GraphQL: repositories.GraphQLClient{Endpoint: srv.URL, HTTP: srv.Client()},
	})
	t.Cleanup(screens.CloseAll)

	h, err := screens.Open("servicePack", OpenOptions{Owner: 1})
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		v, err := h.View()
		return err == nil && !v.Loading
	}, timeout, tick)
	require.NoError(t, h.SetFilter("gol"))

	v, err := h.View()
	require.NoError(t, err)
	rows := v.Rows.([]m.ServicePack)
	require.Len(t, rows, 1)
	assert.Equal(t, "Gold", rows[0].Name)
	assert.Equal(t, int64(500), rows[0].Price)
}

func TestCatalogOverridesCapabilities(t *testing.T) {
	c := DefaultCatalog(map[string][]domain.Operation{
		"information": {domain.OpCreate, domain.OpUpdate, domain.OpDelete},
	})
	info, ok := c.Lookup("information")
	require.True(t, ok)
	assert.Equal(t, []string{"create", "update", "delete"}, info.Info().Capabilities)
}

func TestScreensRegistry(t *testing.T) {
	c := NewCatalog(nil)
	Register(c, EntityDef[m.Partner, m.PartnerInput]{
		Name:       "partner",
		Label:      "partner",
		Descriptor: repositories.NewDescriptor("partner", "partners", "_id name logo"),
		Schema:     partnerSchema(),
		Caps:       AllCapabilities,
		Repo:       &partnerRepo{rows: partners("a")},
	})

	screens := NewScreens(c, Deps{Logger: zap.NewNop()})
	t.Cleanup(screens.CloseAll)
	h, err := screens.Open("partner", OpenOptions{Owner: 7})
	require.NoError(t, err)
	assert.Equal(t, 1, screens.Len())

	_, err = screens.Get(h.ID(), 8)
	assert.True(t, domain.IsNotFound(err), "screens are private to their owner")
	got, err := screens.Get(h.ID(), 7)
	require.NoError(t, err)
	assert.Equal(t, "partner", got.Entity())

	require.NoError(t, screens.Close(h.ID(), 7))
	assert.Zero(t, screens.Len())
	assert.True(t, domain.IsNotFound(screens.Close(h.ID(), 7)))

	_, err = screens.Open("unknown", OpenOptions{})
	assert.True(t, domain.IsNotFound(err))
}

func TestScreensExpireIdle(t *testing.T) {
	c := NewCatalog(nil)
	Register(c, EntityDef[m.Partner, m.PartnerInput]{
		Name:   "partner",
		Label:  "partner",
		Schema: partnerSchema(),
		Caps:   AllCapabilities,
		Repo:   &partnerRepo{rows: partners("a")},
	})
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	screens := NewScreens(c, Deps{Logger: zap.NewNop()})
	screens.now = func() time.Time { return now }
	t.Cleanup(screens.CloseAll)

	stale, err := screens.Open("partner", OpenOptions{Owner: 1})
	require.NoError(t, err)
	fresh, err := screens.Open("partner", OpenOptions{Owner: 1})
	require.NoError(t, err)

	now = now.Add(20 * time.Minute)
	_, err = screens.Get(fresh.ID(), 1)
	require.NoError(t, err)

	now = now.Add(15 * time.Minute)
	assert.Equal(t, 1, screens.Expire(30*time.Minute))
	assert.Equal(t, []string{fresh.ID()}, screens.IDs())
	_, err = screens.Get(stale.ID(), 1)
	assert.True(t, domain.IsNotFound(err))
	assert.ErrorIs(t, stale.SetFilter("x"), domain.ErrScreenClosed)

	assert.Zero(t, screens.Expire(30*time.Minute))
}

func TestScreensRunExpiryStopsWithContext(t *testing.T) {
	screens := NewScreens(NewCatalog(nil), Deps{Logger: zap.NewNop()})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		screens.RunExpiry(ctx, time.Minute)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(timeout):
		t.Fatal("expiry loop did not stop")
	}

	// Disabled expiry returns at once.
	screens.RunExpiry(context.Background(), 0)
}
