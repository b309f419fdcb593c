package services

import (
	"bytes"
	stdjson "encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportServiceRender(t *testing.T) {
	svc := ExportService{Now: func() time.Time { return time.Date(2026, 3, 4, 5, 6, 0, 0, time.UTC) }}
	pdf, name, err := svc.Render(Table{
		Title:   "partner",
		Columns: []string{"name", "createdAt"},
		Rows:    [][]string{{"Acme", "2026-01-01 10:00"}, {"Globex", "-"}},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
	assert.Equal(t, "partner_20260304_0506.pdf", name)
}

func TestScreenExportFlattensDisplayedRows(t *testing.T) {
	repo := &partnerRepo{rows: partners("a", "b")}
	s := newPartnerScreen(t, repo, AllCapabilities, FormService{})
	openAndWait(t, s)
	require.NoError(t, s.Sort("name"))
	require.NoError(t, s.Sort("name"))

	tbl, err := s.Export()
	require.NoError(t, err)
	assert.Equal(t, []string{"name"}, tbl.Columns)
	assert.Equal(t, [][]string{{"Partner b"}, {"Partner a"}}, tbl.Rows)
}

func TestCellText(t *testing.T) {
	assert.Equal(t, "-", cellText(nil))
	assert.Equal(t, "-", cellText(""))
	assert.Equal(t, "a, b", cellText([]any{"a", "b"}))
	assert.Equal(t, "2026-01-01 10:00", cellText("2026-01-01T10:00:00Z"))
	assert.Equal(t, "1.250.000", cellText(stdjson.Number("1250000")))
	assert.Equal(t, "0.5", cellText(stdjson.Number("0.5")))
}
