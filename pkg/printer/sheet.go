package printer

import (
	"fmt"
	"strings"
)

// Content types produced by the renderers.
const (
	ContentTypeESCPOS = "application/vnd.escpos"
	ContentTypePDF    = "application/pdf"
)

// Layout selects paper and rendering technology.
type Layout string

const (
	Layout58mm Layout = "58mm"
	Layout80mm Layout = "80mm"
	LayoutA5   Layout = "a5"
	LayoutA4   Layout = "a4"
)

// ParseLayout validates a layout name.
func ParseLayout(s string) (Layout, error) {
	switch l := Layout(strings.ToLower(s)); l {
	case Layout58mm, Layout80mm, LayoutA5, LayoutA4:
		return l, nil
	default:
		return "", fmt.Errorf("printer: unknown layout %q (use 58mm, 80mm, a5 or a4)", s)
	}
}

// Column describes one table column; Weight is relative to the other columns.
type Column struct {
	Title  string
	Weight int
	Align  int
}

// Pair is a label/value line such as "Invoice: INV-0001".
type Pair struct {
	Label string
	Value string
	Bold  bool
}

// Sheet is a rendered detail region: header, table and totals, independent of paper.
type Sheet struct {
	Title   string
	Header  []string
	Meta    []Pair
	Columns []Column
	Rows    [][]string
	Totals  []Pair
	Notes   []string
	Footer  []string
}

// Renderer turns a sheet into printable bytes for one layout.
type Renderer interface {
	Render(s *Sheet) ([]byte, error)
	ContentType() string
}

// RendererFor returns the renderer for layout.
func RendererFor(layout Layout) (Renderer, error) {
	switch layout {
	case Layout58mm:
		return ThermalRenderer{Width: Width58mm}, nil
	case Layout80mm:
		return ThermalRenderer{Width: Width80mm}, nil
	case LayoutA5:
		return PDFRenderer{PageSize: "A5"}, nil
	case LayoutA4:
		return PDFRenderer{PageSize: "A4"}, nil
	default:
		return nil, fmt.Errorf("printer: unknown layout %q", layout)
	}
}

// Render renders s for layout and wraps the bytes in a Job titled after the sheet.
func Render(layout Layout, s *Sheet) (Job, error) {
	r, err := RendererFor(layout)
	if err != nil {
		return Job{}, err
	}
	data, err := r.Render(s)
	if err != nil {
		return Job{}, err
	}
	return Job{Title: s.Title, ContentType: r.ContentType(), Data: data}, nil
}

// widths splits total character columns by weight, leaving one space between columns.
func widths(cols []Column, total int) []int {
	if len(cols) == 0 {
		return nil
	}
	avail := total - (len(cols) - 1)
	sum := 0
	for _, c := range cols {
		sum += max(c.Weight, 1)
	}
	out := make([]int, len(cols))
	used := 0
	for i, c := range cols {
		out[i] = avail * max(c.Weight, 1) / sum
		used += out[i]
	}
	out[0] += avail - used
	return out
}
