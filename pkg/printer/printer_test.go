package printer

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func sampleSheet() *Sheet {
	return &Sheet{
		Title:  "Sales Invoice",
		Header: []string{"Corner Store", "12 Market Road"},
		Meta:   []Pair{{Label: "Invoice:", Value: "INV-0042"}, {Label: "Date:", Value: "2026-10-17"}},
		Columns: []Column{
			{Title: "Item", Weight: 3},
			{Title: "Qty", Weight: 1, Align: AlignRight},
			{Title: "Total", Weight: 2, Align: AlignRight},
		},
		Rows: [][]string{
			{"Basmati Rice 5kg Premium Long Grain", "2", "900.00"},
			{"Salt", "1", "25.00"},
		},
		Totals: []Pair{{Label: "TOTAL:", Value: "925.00", Bold: true}},
		Notes:  []string{"In words: Nine Hundred Twenty Five Taka Only"},
		Footer: []string{"Thank you for your business!"},
	}
}

func TestThermalRender(t *testing.T) {
	data, err := ThermalRenderer{Width: Width58mm}.Render(sampleSheet())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(data, []byte{ESC, '@'}) {
		t.Fatalf("expected init command prefix")
	}
	if !bytes.HasSuffix(data, []byte{GS, 'V', 0x01}) {
		t.Fatalf("expected partial cut suffix")
	}
	text := string(data)
	for _, want := range []string{"INV-0042", "925.00", "Basmati Rice", "Thank you"} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in output", want)
		}
	}
	for _, line := range strings.Split(text, "\n") {
		clean := strings.Map(func(r rune) rune {
			if r < 0x20 {
				return -1
			}
			return r
		}, line)
		// strip command arguments that are printable (ESC a 1, ESC E 1, GS ! n)
		if len([]rune(clean)) > Width58mm+6 {
			t.Fatalf("line exceeds paper width: %q", clean)
		}
	}
}

func TestPDFRender(t *testing.T) {
	for _, layout := range []Layout{LayoutA4, LayoutA5} {
		job, err := Render(layout, sampleSheet())
		if err != nil {
			t.Fatalf("render %s: %v", layout, err)
		}
		if job.ContentType != ContentTypePDF || !bytes.HasPrefix(job.Data, []byte("%PDF")) {
			t.Fatalf("expected pdf output for %s", layout)
		}
		if job.Title != "Sales Invoice" {
			t.Fatalf("job must carry the sheet title, got %q", job.Title)
		}
	}
}

func TestParseLayout(t *testing.T) {
	if l, err := ParseLayout("A5"); err != nil || l != LayoutA5 {
		t.Fatalf("expected a5, got %q %v", l, err)
	}
	if _, err := ParseLayout("letter"); err == nil {
		t.Fatalf("expected error for unknown layout")
	}
}

func TestWrapAndPad(t *testing.T) {
	lines := Wrap("Thank you for shopping with us today", 10)
	for _, l := range lines {
		if len(l) > 10 {
			t.Fatalf("line too long: %q", l)
		}
	}
	if strings.Join(lines, " ") != "Thank you for shopping with us today" {
		t.Fatalf("wrap lost words: %v", lines)
	}
	if got := Pad("9.50", 6, AlignRight); got != "  9.50" {
		t.Fatalf("unexpected pad %q", got)
	}
	if got := Pad("abcdefgh", 4, AlignLeft); got != "abcd" {
		t.Fatalf("unexpected cut %q", got)
	}
}

func TestWidthsFillLine(t *testing.T) {
	w := widths([]Column{{Weight: 3}, {Weight: 1}, {Weight: 2}}, 32)
	sum := len(w) - 1
	for _, v := range w {
		sum += v
	}
	if sum != 32 {
		t.Fatalf("columns must fill the line, got %d", sum)
	}
}

func TestSpoolPrinter(t *testing.T) {
	dir := t.TempDir()
	p := NewSpoolPrinter(filepath.Join(dir, "out"))
	err := p.Print(context.Background(), Job{Title: "Sales Invoice / INV-1", ContentType: ContentTypePDF, Data: []byte("%PDF-1.3")})
	if err != nil {
		t.Fatalf("print: %v", err)
	}
	entries, err := os.ReadDir(filepath.Join(dir, "out"))
	if err != nil || len(entries) != 1 {
		t.Fatalf("expected one spooled file, got %v %v", entries, err)
	}
	if !strings.HasSuffix(entries[0].Name(), "Sales-Invoice-INV-1.pdf") {
		t.Fatalf("unexpected file name %q", entries[0].Name())
	}
	if !p.IsConnected(context.Background()) {
		t.Fatalf("spool dir should report connected")
	}
}

func TestNewPrinterFromConfig(t *testing.T) {
	if _, err := NewPrinterFromConfig("usb", ""); err == nil {
		t.Fatalf("expected error without usb path")
	}
	if _, err := NewPrinterFromConfig("fax", "x"); err == nil {
		t.Fatalf("expected error for unknown type")
	}
	p, err := NewPrinterFromConfig("none", "")
	if err != nil || p.IsConnected(context.Background()) {
		t.Fatalf("null printer must be disconnected")
	}
}
