package services

import (
	"bytes"
	"fmt"
	"log/slog"
	"time"

	"github.com/jung-kurt/gofpdf"
)

type PDFColumn struct {
	Key   string
	Label string
}

type PDFOptions struct {
	Title       string
	GeneratedAt time.Time
	// Columns overrides the header mapping; when empty, headers are derived
	// from the first record's keys converted to Title Case.
	Columns []PDFColumn
	// Summary is an optional key/value statistics block printed above the table.
	Summary []ExportField
}

// A4 landscape: 297mm wide, 10mm margins, break rows past y=190.
const (
	pdfTableWidth = 277.0
	pdfBreakY     = 190.0
)

// ExportPDF renders a paginated gridded table with a title and generation
// timestamp. Built fully in memory; a failure never delivers a partial file.
func ExportPDF(opts PDFOptions, records []ExportRecord) ([]byte, error) {
	var buf bytes.Buffer
	if err := writePDF(&buf, opts, records); err != nil {
		slog.Error("pdf export failed", "error", err)
		return nil, fmt.Errorf("pdf export failed: %w", err)
	}
	return buf.Bytes(), nil
}

func writePDF(buf *bytes.Buffer, opts PDFOptions, records []ExportRecord) error {
	cols := opts.Columns
	if len(cols) == 0 && len(records) > 0 {
		for _, f := range records[0] {
			cols = append(cols, PDFColumn{Key: f.Key, Label: headerLabel(f.Key)})
		}
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 10)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, opts.Title, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 6, "Generated "+opts.GeneratedAt.Format("2006-01-02 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	if len(opts.Summary) > 0 {
		pdf.SetFont("Helvetica", "B", 9)
		for _, f := range opts.Summary {
			pdf.CellFormat(60, 6, headerLabel(f.Key), "", 0, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 9)
			pdf.CellFormat(0, 6, flattenValue(f.Value), "", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "B", 9)
		}
		pdf.Ln(2)
	}

	if len(cols) == 0 {
		return pdf.Output(buf)
	}
	colWidth := pdfTableWidth / float64(len(cols))

	writeHeader := func() {
		pdf.SetFont("Helvetica", "B", 8)
		pdf.SetFillColor(230, 230, 230)
		for _, c := range cols {
			pdf.CellFormat(colWidth, 7, c.Label, "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 8)
	}
	writeHeader()

	for _, rec := range records {
		if pdf.GetY() > pdfBreakY {
			pdf.AddPage()
			writeHeader()
		}
		byKey := make(map[string]any, len(rec))
		for _, f := range rec {
			byKey[f.Key] = f.Value
		}
		for _, c := range cols {
			pdf.CellFormat(colWidth, 6, flattenValue(byKey[c.Key]), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	return pdf.Output(buf)
}
