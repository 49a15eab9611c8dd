// Package lineeditor edits the line items of a purchase, sale or damage entry
// before they are submitted in one create call.
package lineeditor

import (
	"context"
	"fmt"
	"sync"

	"github.com/sangkips/stockdesk/internal/application/listing"
	"github.com/sangkips/stockdesk/pkg/apperror"
	"github.com/sangkips/stockdesk/pkg/notify"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// State is the progress of one line.
type State int

const (
	Unselected State = iota
	ParentSelected
	SubLineSelected
	QuantityEntered
)

func (s State) String() string {
	switch s {
	case ParentSelected:
		return "parent_selected"
	case SubLineSelected:
		return "sub_line_selected"
	case QuantityEntered:
		return "quantity_entered"
	default:
		return "unselected"
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// SubLine is a selectable variant of a parent, e.g. a product batch.
type SubLine struct {
	ID        string          `json:"id"`
	Label     string          `json:"label"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Stock     int64           `json:"stock"`
}

// Parent is a selectable item with its sub-lines, e.g. a product.
type Parent struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	SubLines []SubLine `json:"sub_lines"`
}

// Line is one row of the editor.
type Line struct {
	ParentID     string          `json:"parent_id"`
	ParentName   string          `json:"parent_name"`
	SubLineID    string          `json:"sub_line_id,omitempty"`
	SubLineLabel string          `json:"sub_line_label,omitempty"`
	Options      []SubLine       `json:"options,omitempty"`
	Quantity     int64           `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Stock        int64           `json:"stock"`
	Total        decimal.Decimal `json:"total"`
	State        State           `json:"state"`
}

// Config selects the behaviour of an editor.
type Config struct {
	// Name labels notifications and logs, e.g. "sale".
	Name string
	// PriceEditable allows SetUnitPrice (purchase entry).
	PriceEditable bool
	// StockCeiling clamps quantities to the selected sub-line's stock.
	StockCeiling bool
	// Notifier receives clamp warnings and submit failures. When nil the
	// context notifier is used.
	Notifier notify.Notifier
	// Busy counts the submit call as in flight while it runs.
	Busy   *listing.Busy
	Logger *zap.Logger
}

// SubmitFunc performs the create call with the edited lines.
type SubmitFunc func(ctx context.Context, lines []Line, total decimal.Decimal) error

// Editor is a master-detail line collection. Every edit recomputes the line
// total and the grand total before returning.
type Editor struct {
	cfg Config

	mu    sync.Mutex
	lines []Line
	total decimal.Decimal
}

// New creates an empty editor.
func New(cfg Config) *Editor {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Editor{cfg: cfg, total: decimal.Zero}
}

// AddParent appends a line for p, seeded with its first sub-line that has stock
// (or the first sub-line when none has stock or no ceiling applies). The
// quantity starts at zero. It returns the index of the new line.
func (e *Editor) AddParent(p Parent) int {
	line := Line{
		ParentID:   p.ID,
		ParentName: p.Name,
		Options:    p.SubLines,
		UnitPrice:  decimal.Zero,
		Total:      decimal.Zero,
		State:      ParentSelected,
	}
	if sub, ok := e.seed(p.SubLines); ok {
		line.apply(sub)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.lines = append(e.lines, line)
	e.recompute()
	return len(e.lines) - 1
}

func (e *Editor) seed(subs []SubLine) (SubLine, bool) {
	if len(subs) == 0 {
		return SubLine{}, false
	}
	if e.cfg.StockCeiling {
		for _, s := range subs {
			if s.Stock > 0 {
				return s, true
			}
		}
	}
	return subs[0], true
}

// SelectSubLine switches line i to the sub-line with id subID, copying its
// price and stock. A quantity above the new stock is clamped.
func (e *Editor) SelectSubLine(ctx context.Context, i int, subID string) error {
	e.mu.Lock()
	line, err := e.line(i)
	if err != nil {
		e.mu.Unlock()
		return err
	}
	var (
		sub   SubLine
		found bool
	)
	for _, s := range line.Options {
		if s.ID == subID {
			sub, found = s, true
			break
		}
	}
	if !found {
		e.mu.Unlock()
		return apperror.NewFieldError("sub_line_id", fmt.Sprintf("%s has no batch %q", line.ParentName, subID))
	}
	line.apply(sub)
	clamped := e.clamp(line)
	e.recompute()
	name, stock := line.ParentName, line.Stock
	e.mu.Unlock()

	if clamped {
		e.warnClamp(ctx, name, stock)
	}
	return nil
}

// SetQuantity sets the quantity of line i. Negative values are rejected and
// leave the line unchanged; values above the stock ceiling are clamped.
func (e *Editor) SetQuantity(ctx context.Context, i int, qty int64) error {
	e.mu.Lock()
	line, err := e.line(i)
	if err != nil {
		e.mu.Unlock()
		return err
	}
	if line.State < SubLineSelected {
		e.mu.Unlock()
		return apperror.NewFieldError("sub_line_id", fmt.Sprintf("Select a batch of %s first", line.ParentName))
	}
	if qty < 0 {
		e.mu.Unlock()
		return apperror.NewFieldError("quantity", "Quantity cannot be negative")
	}
	line.Quantity = qty
	line.State = QuantityEntered
	clamped := e.clamp(line)
	e.recompute()
	name, stock := line.ParentName, line.Stock
	e.mu.Unlock()

	if clamped {
		e.warnClamp(ctx, name, stock)
	}
	return nil
}

// SetUnitPrice overrides the unit price of line i on price-editable editors.
func (e *Editor) SetUnitPrice(_ context.Context, i int, price decimal.Decimal) error {
	if !e.cfg.PriceEditable {
		return apperror.NewFieldError("unit_price", "Unit price is not editable")
	}
	if price.IsNegative() {
		return apperror.NewFieldError("unit_price", "Unit price cannot be negative")
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	line, err := e.line(i)
	if err != nil {
		return err
	}
	line.UnitPrice = price
	e.recompute()
	return nil
}

// Remove deletes line i.
func (e *Editor) Remove(i int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, err := e.line(i); err != nil {
		return err
	}
	e.lines = append(e.lines[:i], e.lines[i+1:]...)
	e.recompute()
	return nil
}

// Lines returns a copy of the current lines.
func (e *Editor) Lines() []Line {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Line, len(e.lines))
	copy(out, e.lines)
	return out
}

// GrandTotal is the sum of all line totals.
func (e *Editor) GrandTotal() decimal.Decimal {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.total
}

// Len returns the number of lines.
func (e *Editor) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.lines)
}

// Reset empties the editor.
func (e *Editor) Reset() {
	e.mu.Lock()
	e.lines = nil
	e.total = decimal.Zero
	e.mu.Unlock()
}

// Validate checks the required fields of every line.
func (e *Editor) Validate() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.validate()
}

func (e *Editor) validate() error {
	if len(e.lines) == 0 {
		return apperror.NewFieldError("lines", "Add at least one item")
	}
	var errs []apperror.FieldError
	for i, l := range e.lines {
		field := fmt.Sprintf("lines[%d]", i)
		if l.SubLineID == "" {
			errs = append(errs, apperror.FieldError{Field: field + ".sub_line_id", Message: "Batch is required for " + l.ParentName})
			continue
		}
		if l.Quantity <= 0 {
			errs = append(errs, apperror.FieldError{Field: field + ".quantity", Message: "Quantity is required for " + l.ParentName})
		}
	}
	if len(errs) > 0 {
		return apperror.NewValidationError(errs)
	}
	return nil
}

// Submit validates the lines and calls fn once with them and the grand total.
// An empty editor fails without calling fn. On success the editor is reset; on
// failure it keeps its lines so the user can retry.
func (e *Editor) Submit(ctx context.Context, fn SubmitFunc) error {
	e.mu.Lock()
	if err := e.validate(); err != nil {
		e.mu.Unlock()
		return err
	}
	lines := make([]Line, len(e.lines))
	copy(lines, e.lines)
	total := e.total
	e.mu.Unlock()

	release := e.cfg.Busy.Acquire()
	err := fn(ctx, lines, total)
	release()
	if err != nil {
		e.cfg.Logger.Warn("line editor submit failed", zap.String("editor", e.cfg.Name), zap.Error(err))
		notify.Error(ctx, e.notifier(ctx), "%s", apperror.GetAppError(err).Message)
		return err
	}
	e.Reset()
	return nil
}

func (e *Editor) line(i int) (*Line, error) {
	if i < 0 || i >= len(e.lines) {
		return nil, apperror.NewFieldError("line", fmt.Sprintf("Line %d does not exist", i+1))
	}
	return &e.lines[i], nil
}

// clamp enforces the stock ceiling on l and reports whether it changed.
func (e *Editor) clamp(l *Line) bool {
	if !e.cfg.StockCeiling || l.Quantity <= l.Stock {
		return false
	}
	l.Quantity = max(l.Stock, 0)
	return true
}

func (e *Editor) recompute() {
	total := decimal.Zero
	for i := range e.lines {
		l := &e.lines[i]
		l.Total = l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity))
		total = total.Add(l.Total)
	}
	e.total = total
}

func (e *Editor) warnClamp(ctx context.Context, name string, stock int64) {
	notify.Warn(ctx, e.notifier(ctx), "Only %d in stock for %s", stock, name)
}

func (e *Editor) notifier(ctx context.Context) notify.Notifier {
	if e.cfg.Notifier != nil {
		return e.cfg.Notifier
	}
	return notify.From(ctx)
}

func (l *Line) apply(s SubLine) {
	l.SubLineID = s.ID
	l.SubLineLabel = s.Label
	l.UnitPrice = s.UnitPrice
	l.Stock = s.Stock
	if l.State < SubLineSelected {
		l.State = SubLineSelected
	}
}
