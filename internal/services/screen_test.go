package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cmsadmin/internal/domain"
	m "cmsadmin/internal/domain/models"
	"cmsadmin/internal/notify"
	"cmsadmin/internal/table"
	"cmsadmin/internal/upload"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScreenLoadsOnceAndDerivesView(t *testing.T) {
	repo := &partnerRepo{rows: partners("a", "b", "c")}
	s := newPartnerScreen(t, repo, AllCapabilities, FormService{})
	openAndWait(t, s)

	v, err := s.View()
	require.NoError(t, err)
	rows := v.Rows.([]m.Partner)
	assert.Len(t, rows, 3)
	assert.Equal(t, 3, v.Total)
	assert.Equal(t, 0, v.EmptyRows)
	assert.False(t, v.NotFound)
	assert.Empty(t, v.Notifications, "a successful load is silent")
	assert.Equal(t, 1, repo.fetchCount())
}

func TestScreenFailedFetchLeavesEmptyCollection(t *testing.T) {
	repo := &partnerRepo{fetchErr: domain.TransportError{Op: "fetch partners", Err: errors.New("connection refused")}}
	s := newPartnerScreen(t, repo, AllCapabilities, FormService{})
	openAndWait(t, s)

	v, err := s.View()
	require.NoError(t, err)
	assert.Empty(t, v.Rows)
	assert.True(t, v.NotFound)
	require.Len(t, v.Notifications, 1)
	assert.Equal(t, notify.VariantError, v.Notifications[0].Variant)
	assert.Equal(t, "Could not load partner list", v.Notifications[0].Message)

	again, err := s.View()
	require.NoError(t, err)
	assert.Empty(t, again.Notifications, "notifications are returned once")
}

func TestScreenSurfacesRemoteMessageVerbatim(t *testing.T) {
	repo := &partnerRepo{fetchErr: domain.RemoteError{Op: "fetch partners", Message: "Bạn không có quyền"}}
	s := newPartnerScreen(t, repo, AllCapabilities, FormService{})
	openAndWait(t, s)

	v, err := s.View()
	require.NoError(t, err)
	require.Len(t, v.Notifications, 1)
	assert.Equal(t, "Bạn không có quyền", v.Notifications[0].Message)
}

func TestScreenBulkDeleteRemovesSelectedAndClearsSelection(t *testing.T) {
	repo := &partnerRepo{rows: partners("a", "b", "c"), deleteManyMsg: "Deleted 2 partners"}
	s := newPartnerScreen(t, repo, AllCapabilities, FormService{})
	openAndWait(t, s)
	require.NoError(t, s.SelectRow("a"))
	require.NoError(t, s.SelectRow("c"))

	msg, err := s.DeleteMany(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "Deleted 2 partners", msg)
	assert.Equal(t, [][]string{{"a", "c"}}, repo.deletedIDs)

	v, err := s.View()
	require.NoError(t, err)
	rows := v.Rows.([]m.Partner)
	require.Len(t, rows, 1)
	assert.Equal(t, "b", rows[0].ID)
	assert.Empty(t, v.State.Selected)
	require.Len(t, v.Notifications, 1)
	assert.Equal(t, notify.VariantSuccess, v.Notifications[0].Variant)
	assert.Equal(t, "Deleted 2 partners", v.Notifications[0].Message)
}

func TestScreenSelectRowRejectsUnknownID(t *testing.T) {
	repo := &partnerRepo{rows: partners("a", "b")}
	s := newPartnerScreen(t, repo, AllCapabilities, FormService{})
	openAndWait(t, s)

	err := s.SelectRow("ghost")
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	v, err := s.View()
	require.NoError(t, err)
	assert.Empty(t, v.State.Selected)

	_, err = s.DeleteMany(context.Background(), nil)
	assert.True(t, domain.IsValidation(err), "an empty selection is not sent")
	assert.Empty(t, repo.deletedIDs)

	require.NoError(t, s.SelectRow("b"))
	require.NoError(t, s.SelectRow("b"), "a selected row toggles off")
	v, err = s.View()
	require.NoError(t, err)
	assert.Empty(t, v.State.Selected)
}

func TestScreenBulkDeleteFailureChangesNothing(t *testing.T) {
	repo := &partnerRepo{rows: partners("a", "b", "c"), deleteManyErr: domain.TransportError{Op: "deleteManyPartners", Err: errors.New("timeout")}}
	s := newPartnerScreen(t, repo, AllCapabilities, FormService{})
	openAndWait(t, s)
	require.NoError(t, s.SelectAllRows(true))

	_, err := s.DeleteMany(context.Background(), nil)
	require.Error(t, err)

	v, err := s.View()
	require.NoError(t, err)
	assert.Len(t, v.Rows, 3)
	assert.Equal(t, []string{"a", "b", "c"}, v.State.Selected)
	assert.Equal(t, []notify.Variant{notify.VariantError}, variants(v.Notifications))
	assert.Equal(t, "Could not delete partner", v.Notifications[0].Message)
}

func TestScreenDeleteAfterSelectAllDropsRowAndSelection(t *testing.T) {
	repo := &partnerRepo{rows: partners("a", "b", "c")}
	s := newPartnerScreen(t, repo, AllCapabilities, FormService{})
	openAndWait(t, s)
	require.NoError(t, s.SelectAllRows(true))

	require.NoError(t, s.Delete(context.Background(), "b"))

	v, err := s.View()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, v.State.Selected)
	for _, p := range v.Rows.([]m.Partner) {
		assert.NotEqual(t, "b", p.ID)
	}
	assert.Equal(t, []notify.Variant{notify.VariantSuccess}, variants(v.Notifications))
}

func TestScreenDeleteFailureKeepsRow(t *testing.T) {
	repo := &partnerRepo{rows: partners("a", "b"), deleteErr: domain.RemoteError{Message: "Partner is used by a product"}}
	s := newPartnerScreen(t, repo, AllCapabilities, FormService{})
	openAndWait(t, s)

	err := s.Delete(context.Background(), "a")
	require.Error(t, err)
	assert.True(t, domain.IsRemote(err))

	v, err := s.View()
	require.NoError(t, err)
	assert.Len(t, v.Rows, 2)
	require.Len(t, v.Notifications, 1)
	assert.Equal(t, "Partner is used by a product", v.Notifications[0].Message)
}

func TestScreenRejectsDisabledOperations(t *testing.T) {
	repo := &partnerRepo{rows: partners("a")}
	s := newPartnerScreen(t, repo, Capabilities{domain.OpCreate, domain.OpUpdate}, FormService{})
	openAndWait(t, s)

	err := s.Delete(context.Background(), "a")
	assert.True(t, domain.IsUnsupported(err))
	_, err = s.DeleteMany(context.Background(), []string{"a"})
	assert.True(t, domain.IsUnsupported(err))
	assert.Empty(t, repo.deleted)
	assert.Empty(t, repo.deletedIDs)
}

func TestScreenSortRejectsUnknownColumn(t *testing.T) {
	s := newPartnerScreen(t, &partnerRepo{}, AllCapabilities, FormService{})
	err := s.Sort("logo")
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.ErrorIs(t, err, table.ErrUnknownField)
}

func TestScreenFilterResetsPage(t *testing.T) {
	repo := &partnerRepo{rows: partners("a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l")}
	s := newPartnerScreen(t, repo, AllCapabilities, FormService{})
	openAndWait(t, s)
	require.NoError(t, s.ChangePage(2))

	v, err := s.View()
	require.NoError(t, err)
	assert.Equal(t, 2, v.State.Page)
	assert.Len(t, v.Rows, 2)

	require.NoError(t, s.SetFilter("zzz"))
	v, err = s.View()
	require.NoError(t, err)
	assert.Equal(t, 0, v.State.Page)
	assert.Empty(t, v.Rows)
	assert.True(t, v.NotFound)
}

func TestScreenCloseDiscardsPendingLoad(t *testing.T) {
	repo := &partnerRepo{rows: partners("a"), gate: make(chan struct{})}
	s := newPartnerScreen(t, repo, AllCapabilities, FormService{})
	require.NoError(t, s.Open())
	assert.True(t, s.Loading())

	s.Close()
	close(repo.gate)

	_, err := s.View()
	assert.ErrorIs(t, err, domain.ErrScreenClosed)
	assert.ErrorIs(t, s.SetFilter("x"), domain.ErrScreenClosed)
	assert.ErrorIs(t, s.Delete(context.Background(), "a"), domain.ErrScreenClosed)
}

func TestScreenDetailViewNeedsKey(t *testing.T) {
	repo := &partnerRepo{rows: partners("a", "b")}
	s := NewScreen("detail", ScreenConfig[m.Partner, m.PartnerInput]{
		Entity:   "partner",
		Schema:   partnerSchema(),
		Repo:     repo,
		Caps:     AllCapabilities,
		Messages: DefaultMessages("partner"),
		Detail:   true,
	})
	t.Cleanup(s.Close)
	require.NoError(t, s.Open())
	assert.False(t, s.Loading(), "an empty key disables the load")
	assert.Zero(t, repo.fetchCount())

	keyed := NewScreen("detail-b", ScreenConfig[m.Partner, m.PartnerInput]{
		Entity:   "partner",
		Schema:   partnerSchema(),
		Repo:     repo,
		Caps:     AllCapabilities,
		Messages: DefaultMessages("partner"),
		Detail:   true,
		Key:      "b",
	})
	t.Cleanup(keyed.Close)
	openAndWait(t, keyed)
	rows, err := keyed.Rows()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "b", rows[0].ID)
}

func TestScreenDetailMissingEntityNotifiesNotFound(t *testing.T) {
	repo := &partnerRepo{rows: partners("a")}
	s := NewScreen("detail-ghost", ScreenConfig[m.Partner, m.PartnerInput]{
		Entity:   "partner",
		Schema:   partnerSchema(),
		Repo:     repo,
		Caps:     AllCapabilities,
		Messages: DefaultMessages("partner"),
		Detail:   true,
		Key:      "ghost",
	})
	t.Cleanup(s.Close)
	openAndWait(t, s)

	v, err := s.View()
	require.NoError(t, err)
	assert.Empty(t, v.Rows)
	require.Len(t, v.Notifications, 1)
	assert.Equal(t, "Partner not found", v.Notifications[0].Message)

	failing := NewScreen("detail-down", ScreenConfig[m.Partner, m.PartnerInput]{
		Entity:   "partner",
		Schema:   partnerSchema(),
		Repo:     &partnerRepo{fetchErr: domain.TransportError{Op: "fetch partnerDetail", Err: errors.New("timeout")}},
		Caps:     AllCapabilities,
		Messages: DefaultMessages("partner"),
		Detail:   true,
		Key:      "a",
	})
	t.Cleanup(failing.Close)
	openAndWait(t, failing)

	v, err = failing.View()
	require.NoError(t, err)
	require.Len(t, v.Notifications, 1)
	assert.Equal(t, "Could not load partner", v.Notifications[0].Message)
}

func TestScreenUploadThenSubmit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/partner/logo", r.URL.Path)
		_, _, err := r.FormFile(upload.FieldSingle)
		assert.NoError(t, err)
		_, _ = w.Write([]byte(`{"path":"img/123.png"}`))
	}))
	defer srv.Close()

	repo := &partnerRepo{}
	forms := FormService{Uploader: MeteredUploader{Next: upload.Client{Endpoint: srv.URL, AssetDomain: "https://cdn.example.com", HTTP: srv.Client()}}}
	s := newPartnerScreen(t, repo, AllCapabilities, forms)
	openAndWait(t, s)

	files := map[string][]upload.File{"logo": {{Name: "logo.png", ContentType: "image/png", Data: []byte("png")}}}
	out, err := s.Submit(context.Background(), "", []byte(`{"name":"Acme"}`), files)
	require.NoError(t, err)
	assert.Equal(t, "Acme", out.(m.Partner).Name)

	require.Len(t, repo.created, 1)
	assert.Equal(t, "https://cdn.example.com/img/123.png", repo.created[0].Logo)
	assert.False(t, strings.HasPrefix(repo.created[0].Logo, domain.PreviewScheme))

	require.Eventually(t, func() bool { return !s.Loading() && repo.fetchCount() == 2 }, timeout, tick)
	v, err := s.View()
	require.NoError(t, err)
	assert.Len(t, v.Rows, 1, "a successful create reloads the list")
	assert.Contains(t, variants(v.Notifications), notify.VariantSuccess)
}

func TestScreenSubmitRejectsPlaceholderWithoutFile(t *testing.T) {
	repo := &partnerRepo{}
	s := newPartnerScreen(t, repo, AllCapabilities, FormService{})

	_, err := s.Submit(context.Background(), "", []byte(`{"name":"Acme","logo":"blob:1234"}`), nil)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Empty(t, repo.created)
}

func TestScreenSubmitUploadFailureAborts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	repo := &partnerRepo{}
	forms := FormService{Uploader: upload.Client{Endpoint: srv.URL, AssetDomain: "https://cdn.example.com", HTTP: srv.Client()}}
	s := newPartnerScreen(t, repo, AllCapabilities, forms)

	files := map[string][]upload.File{"logo": {{Name: "logo.png", Data: []byte("png")}}}
	_, err := s.Submit(context.Background(), "", []byte(`{"name":"Acme"}`), files)
	require.Error(t, err)
	assert.True(t, domain.IsTransport(err))
	assert.Empty(t, repo.created)

	v, err := s.View()
	require.NoError(t, err)
	require.Len(t, v.Notifications, 1)
	assert.Equal(t, "Could not upload partner files", v.Notifications[0].Message)
}

func TestScreenUpdateReplacesRowByID(t *testing.T) {
	repo := &partnerRepo{rows: partners("a", "b")}
	s := newPartnerScreen(t, repo, AllCapabilities, FormService{})
	openAndWait(t, s)

	_, err := s.Submit(context.Background(), "b", []byte(`{"name":"Renamed","logo":"https://cdn.example.com/b.png"}`), nil)
	require.NoError(t, err)
	require.Len(t, repo.updated, 1)
	assert.Equal(t, "b", repo.updated[0].ID)

	rows, err := s.Rows()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Renamed", rows[1].Name)
}

func TestScreenSubmitUnknownAssetSlot(t *testing.T) {
	s := newPartnerScreen(t, &partnerRepo{}, AllCapabilities, FormService{})
	files := map[string][]upload.File{"banner": {{Name: "x.png"}}}
	_, err := s.Submit(context.Background(), "", []byte(`{"name":"Acme"}`), files)
	assert.True(t, domain.IsValidation(err))
}
