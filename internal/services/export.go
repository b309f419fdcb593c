package services

import (
	"bytes"
	stdjson "encoding/json"
	"fmt"
	"strings"
	"time"

	"cmsadmin/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// Table is the displayed slice of a screen flattened to text cells.
type Table struct {
	Title   string
	Columns []string
	Rows    [][]string
}

// Export flattens the currently displayed rows into the sortable columns.
func (s *Screen[T, I]) Export() (Table, error) {
	rows, err := s.Rows()
	if err != nil {
		return Table{}, err
	}
	cols := s.cfg.Schema.Names()
	out := Table{Title: s.cfg.Entity, Columns: cols, Rows: make([][]string, 0, len(rows))}
	for _, r := range rows {
		raw, err := json.Marshal(r)
		if err != nil {
			return Table{}, err
		}
		fields := map[string]any{}
		if err := json.Unmarshal(raw, &fields); err != nil {
			return Table{}, err
		}
		line := make([]string, len(cols))
		for i, c := range cols {
			line[i] = cellText(fields[c])
		}
		out.Rows = append(out.Rows, line)
	}
	return out, nil
}

func cellText(v any) string {
	switch x := v.(type) {
	case nil:
		return "-"
	case string:
		if x == "" {
			return "-"
		}
		if t, err := time.Parse(time.RFC3339Nano, x); err == nil {
			return utils.FormatStamp(t)
		}
		return x
	case stdjson.Number:
		if n, err := x.Int64(); err == nil {
			return utils.FormatThousands(n)
		}
		return x.String()
	case []any:
		parts := make([]string, 0, len(x))
		for _, it := range x {
			parts = append(parts, cellText(it))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(x)
	}
}

// ExportService renders screen tables as PDF documents.
type ExportService struct {
	RequestID string
	Now       func() time.Time
}

const (
	pdfPageWidth = 277.0 // A4 landscape minus margins
	pdfCellChars = 60
)

// Render lays t out as a landscape A4 table and returns the document with
// a download file name.
func (s ExportService) Render(t Table) ([]byte, string, error) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	utils.LogEvent(s.RequestID, "export", "render_pdf", fmt.Sprintf("entity=%s rows=%d", t.Title, len(t.Rows)))

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(t.Title, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, strings.ToUpper(t.Title))
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 9)
	pdf.Cell(0, 6, "Generated "+now().Format("2006-01-02 15:04"))
	pdf.Ln(9)

	if len(t.Columns) == 0 {
		pdf.Cell(0, 7, "No columns")
	} else {
		w := pdfPageWidth / float64(len(t.Columns))
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(230, 230, 230)
		for _, c := range t.Columns {
			pdf.CellFormat(w, 8, c, "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Helvetica", "", 9)
		if len(t.Rows) == 0 {
			pdf.CellFormat(pdfPageWidth, 7, "No rows", "1", 1, "C", false, 0, "")
		}
		for _, row := range t.Rows {
			for _, cell := range row {
				pdf.CellFormat(w, 7, utils.Truncate(cell, pdfCellChars), "1", 0, "L", false, 0, "")
			}
			pdf.Ln(-1)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("%s_%s.pdf", safeFilenamePart(t.Title), now().Format("20060102_1504"))
	return buf.Bytes(), filename, nil
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "export"
	}
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
