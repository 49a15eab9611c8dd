package printer

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// PDFRenderer renders sheets as a PDF page of PageSize ("A4" or "A5").
type PDFRenderer struct {
	PageSize string
}

func (PDFRenderer) ContentType() string { return ContentTypePDF }

var pdfAlign = map[int]string{AlignLeft: "L", AlignCenter: "C", AlignRight: "R"}

func (r PDFRenderer) Render(s *Sheet) ([]byte, error) {
	size := r.PageSize
	if size == "" {
		size = "A4"
	}
	// A5 gets smaller type so the same sheet fits the narrower page
	base := 10.0
	if size == "A5" {
		base = 8.0
	}
	lineH := base * 0.55

	pdf := gofpdf.New("P", "mm", size, "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(s.Title, true)
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 12)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	contentW := pageW - left - right

	for i, line := range s.Header {
		if i == 0 {
			pdf.SetFont("Arial", "B", base+6)
			pdf.CellFormat(contentW, lineH*1.8, tr(line), "", 1, "C", false, 0, "")
			continue
		}
		pdf.SetFont("Arial", "", base)
		pdf.CellFormat(contentW, lineH, tr(line), "", 1, "C", false, 0, "")
	}
	if s.Title != "" {
		pdf.Ln(lineH / 2)
		pdf.SetFont("Arial", "B", base+3)
		pdf.CellFormat(contentW, lineH*1.5, tr(s.Title), "B", 1, "C", false, 0, "")
	}
	pdf.Ln(lineH / 2)

	half := contentW / 2
	for i, m := range s.Meta {
		pdf.SetFont("Arial", "B", base)
		pdf.CellFormat(half*0.35, lineH, tr(m.Label), "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", base)
		ln := 0
		if i%2 == 1 || i == len(s.Meta)-1 {
			ln = 1
		}
		pdf.CellFormat(half*0.65, lineH, tr(m.Value), "", ln, "L", false, 0, "")
	}
	pdf.Ln(lineH)

	if len(s.Columns) > 0 {
		w := pdfWidths(s.Columns, contentW)
		pdf.SetFont("Arial", "B", base)
		pdf.SetFillColor(230, 230, 230)
		for i, c := range s.Columns {
			pdf.CellFormat(w[i], lineH*1.4, tr(c.Title), "1", 0, pdfAlign[c.Align], true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", base)
		for _, row := range s.Rows {
			for i := range s.Columns {
				cell := ""
				if i < len(row) {
					cell = row[i]
				}
				pdf.CellFormat(w[i], lineH*1.3, tr(cell), "1", 0, pdfAlign[s.Columns[i].Align], false, 0, "")
			}
			pdf.Ln(-1)
		}
		pdf.Ln(lineH / 2)
	}

	for _, t := range s.Totals {
		style := ""
		if t.Bold {
			style = "B"
		}
		pdf.SetFont("Arial", style, base)
		pdf.CellFormat(contentW*0.75, lineH*1.2, tr(t.Label), "", 0, "R", false, 0, "")
		pdf.CellFormat(contentW*0.25, lineH*1.2, tr(t.Value), "", 1, "R", false, 0, "")
	}

	if len(s.Notes) > 0 {
		pdf.Ln(lineH / 2)
		pdf.SetFont("Arial", "I", base)
		for _, n := range s.Notes {
			pdf.MultiCell(contentW, lineH, tr(n), "", "L", false)
		}
	}

	if len(s.Footer) > 0 {
		pdf.Ln(lineH * 2)
		pdf.SetFont("Arial", "", base-1)
		for _, f := range s.Footer {
			pdf.CellFormat(contentW, lineH, tr(f), "", 1, "C", false, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("printer: render %s pdf: %w", size, err)
	}
	return buf.Bytes(), nil
}

func pdfWidths(cols []Column, total float64) []float64 {
	sum := 0
	for _, c := range cols {
		sum += max(c.Weight, 1)
	}
	out := make([]float64, len(cols))
	for i, c := range cols {
		out[i] = total * float64(max(c.Weight, 1)) / float64(sum)
	}
	return out
}
