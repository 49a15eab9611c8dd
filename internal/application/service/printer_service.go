package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sangkips/stockdesk/internal/domain/entity"
	"github.com/sangkips/stockdesk/pkg/amountwords"
	"github.com/sangkips/stockdesk/pkg/apperror"
	"github.com/sangkips/stockdesk/pkg/printer"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// FormatJSON asks for the receipt value object instead of rendered bytes.
const FormatJSON = "json"

const receiptDateLayout = "02 Jan 2006 15:04"

// StoreInfo is printed at the top of every receipt.
type StoreInfo struct {
	Name     string
	Address  string
	Phone    string
	Currency amountwords.Currency
}

// PrinterService composes receipts and reports and sends them to the printer.
type PrinterService struct {
	printer     printer.Printer
	printerType string
	layout      printer.Layout
	store       StoreInfo
	logger      *zap.Logger
}

// NewPrinterService creates a new printer service.
func NewPrinterService(p printer.Printer, printerType string, layout printer.Layout, store StoreInfo, logger *zap.Logger) *PrinterService {
	if store.Currency == (amountwords.Currency{}) {
		store.Currency = amountwords.Taka
	}
	return &PrinterService{
		printer:     p,
		printerType: printerType,
		layout:      layout,
		store:       store,
		logger:      logger,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool           `json:"configured"`
	Connected  bool           `json:"connected"`
	Type       string         `json:"type"`
	Layout     printer.Layout `json:"layout"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus(ctx context.Context) *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(ctx),
		Type:       s.printerType,
		Layout:     s.layout,
	}
}

// DefaultLayout is the layout used when a request names none.
func (s *PrinterService) DefaultLayout() printer.Layout {
	return s.layout
}

// Print sends a rendered job to the configured printer.
func (s *PrinterService) Print(ctx context.Context, job printer.Job) error {
	if err := s.printer.Print(ctx, job); err != nil {
		s.logger.Error("printer error", zap.String("job", job.Title), zap.Error(err))
		return fmt.Errorf("failed to print %s: %w", job.Title, err)
	}
	s.logger.Info("printed", zap.String("job", job.Title), zap.Int("bytes", len(job.Data)))
	return nil
}

// TestPrint sends a sample receipt to the printer and returns it.
func (s *PrinterService) TestPrint(ctx context.Context) (*entity.Receipt, error) {
	receipt := s.newReceipt("PRINTER TEST", "Receipt", "TEST-001", time.Now())
	receipt.Cashier = "System"
	receipt.Items = []entity.ReceiptItem{
		{Name: "Test Item 1", Quantity: 1, UnitPrice: decimal.NewFromInt(10), Total: decimal.NewFromInt(10)},
		{Name: "Test Item 2", Quantity: 2, UnitPrice: decimal.NewFromInt(5), Total: decimal.NewFromInt(10)},
	}
	receipt.SubTotal = decimal.NewFromInt(20)
	receipt.Total = decimal.NewFromInt(20)
	receipt.Paid = decimal.NewFromInt(20)
	receipt.InWords = amountwords.Spell(receipt.Total, s.store.Currency)

	job, err := printer.Render(s.layout, s.ReceiptSheet(receipt))
	if err != nil {
		return receipt, err
	}
	if err := s.Print(ctx, job); err != nil {
		return receipt, fmt.Errorf("test print failed: %w", err)
	}
	return receipt, nil
}

// Rendered is either a receipt value object (JSON format) or a printable job.
type Rendered struct {
	Receipt *entity.Receipt
	Job     *printer.Job
}

// ParseFormat accepts "json" or a layout name; empty selects the default layout.
func (s *PrinterService) ParseFormat(format string) (string, error) {
	switch strings.ToLower(format) {
	case "":
		return string(s.layout), nil
	case FormatJSON:
		return FormatJSON, nil
	}
	l, err := printer.ParseLayout(format)
	if err != nil {
		return "", apperror.NewFieldError("format", "Format must be json, 58mm, 80mm, a5 or a4")
	}
	return string(l), nil
}

// RenderReceipt renders r in format (see ParseFormat).
func (s *PrinterService) RenderReceipt(r *entity.Receipt, format string) (*Rendered, error) {
	format, err := s.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	if format == FormatJSON {
		return &Rendered{Receipt: r}, nil
	}
	job, err := printer.Render(printer.Layout(format), s.ReceiptSheet(r))
	if err != nil {
		return nil, err
	}
	return &Rendered{Receipt: r, Job: &job}, nil
}

func (s *PrinterService) newReceipt(title, numberLabel, number string, date time.Time) *entity.Receipt {
	return &entity.Receipt{
		Title: title,
		Header: entity.ReceiptHeader{
			StoreName: s.store.Name,
			Address:   s.store.Address,
			Phone:     s.store.Phone,
		},
		Number:      number,
		NumberLabel: numberLabel,
		Date:        date.Format(receiptDateLayout),
	}
}

func receiptItems(lines []entity.TransactionLine) []entity.ReceiptItem {
	items := make([]entity.ReceiptItem, 0, len(lines))
	for _, l := range lines {
		name := l.ProductName
		if name == "" {
			name = "Product"
		}
		items = append(items, entity.ReceiptItem{
			Name:      name,
			BatchNo:   l.BatchNo,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Total:     l.Total,
		})
	}
	return items
}

// SaleReceipt composes the customer invoice of a sale.
func (s *PrinterService) SaleReceipt(sale *entity.Sale) *entity.Receipt {
	r := s.newReceipt("Sales Invoice", "Invoice", sale.InvoiceNo, sale.Date)
	r.Cashier = sale.Cashier
	r.PaymentMethod = sale.PaymentMethod
	r.PartyLabel = "Customer"
	r.Party = "Walk-in Customer"
	if sale.Customer != nil && sale.Customer.Name != "" {
		r.Party = sale.Customer.Name
	}
	r.Items = receiptItems(sale.Lines)
	r.SubTotal, r.Discount, r.VAT = sale.SubTotal, sale.Discount, sale.VAT
	r.Total, r.Paid, r.Due = sale.Total, sale.Paid, sale.Due
	r.InWords = amountwords.Spell(sale.Total, s.store.Currency)
	return r
}

// PurchaseReceipt composes the purchase invoice.
func (s *PrinterService) PurchaseReceipt(p *entity.Purchase) *entity.Receipt {
	r := s.newReceipt("Purchase Invoice", "Purchase", p.PurchaseNo, p.Date)
	r.PartyLabel = "Supplier"
	if p.Supplier != nil {
		r.Party = p.Supplier.Name
	}
	r.Items = receiptItems(p.Lines)
	r.SubTotal, r.Discount, r.VAT = p.SubTotal, p.Discount, p.VAT
	r.Total, r.Paid, r.Due = p.Total, p.Paid, p.Due
	r.InWords = amountwords.Spell(p.Total, s.store.Currency)
	r.Note = p.Note
	return r
}

// ReturnReceipt composes the receipt of a sale return.
func (s *PrinterService) ReturnReceipt(ret *entity.SaleReturn) *entity.Receipt {
	r := s.newReceipt("Sales Return", "Return", ret.ReturnNo, ret.Date)
	r.PartyLabel = "Customer"
	if ret.Customer != nil {
		r.Party = ret.Customer.Name
	}
	r.Items = receiptItems(ret.Lines)
	r.SubTotal = ret.Total
	r.Total = ret.Total
	r.InWords = amountwords.Spell(ret.Total, s.store.Currency)
	r.Note = ret.Reason
	if ret.InvoiceNo != "" {
		r.Note = strings.TrimSpace("Against invoice " + ret.InvoiceNo + ". " + ret.Reason)
	}
	return r
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// ReceiptSheet lays a receipt out as a printable region.
func (s *PrinterService) ReceiptSheet(r *entity.Receipt) *printer.Sheet {
	sheet := &printer.Sheet{
		Title: r.Title,
		Columns: []printer.Column{
			{Title: "Item", Weight: 5, Align: printer.AlignLeft},
			{Title: "Qty", Weight: 2, Align: printer.AlignRight},
			{Title: "Price", Weight: 3, Align: printer.AlignRight},
			{Title: "Total", Weight: 3, Align: printer.AlignRight},
		},
	}
	for _, h := range []string{r.Header.StoreName, r.Header.Address, r.Header.Phone} {
		if h != "" {
			sheet.Header = append(sheet.Header, h)
		}
	}

	sheet.Meta = append(sheet.Meta, printer.Pair{Label: r.NumberLabel, Value: r.Number})
	sheet.Meta = append(sheet.Meta, printer.Pair{Label: "Date", Value: r.Date})
	if r.Cashier != "" {
		sheet.Meta = append(sheet.Meta, printer.Pair{Label: "Cashier", Value: r.Cashier})
	}
	if r.Party != "" {
		sheet.Meta = append(sheet.Meta, printer.Pair{Label: r.PartyLabel, Value: r.Party})
	}
	if r.PaymentMethod != "" {
		sheet.Meta = append(sheet.Meta, printer.Pair{Label: "Payment", Value: r.PaymentMethod})
	}

	for _, it := range r.Items {
		name := it.Name
		if it.BatchNo != "" {
			name += " (" + it.BatchNo + ")"
		}
		sheet.Rows = append(sheet.Rows, []string{name, strconv.FormatInt(it.Quantity, 10), money(it.UnitPrice), money(it.Total)})
	}

	sheet.Totals = append(sheet.Totals, printer.Pair{Label: "Sub Total", Value: money(r.SubTotal)})
	if !r.Discount.IsZero() {
		sheet.Totals = append(sheet.Totals, printer.Pair{Label: "Discount", Value: money(r.Discount)})
	}
	if !r.VAT.IsZero() {
		sheet.Totals = append(sheet.Totals, printer.Pair{Label: "VAT", Value: money(r.VAT)})
	}
	sheet.Totals = append(sheet.Totals, printer.Pair{Label: "Total", Value: money(r.Total), Bold: true})
	if !r.Paid.IsZero() || !r.Due.IsZero() {
		sheet.Totals = append(sheet.Totals,
			printer.Pair{Label: "Paid", Value: money(r.Paid)},
			printer.Pair{Label: "Due", Value: money(r.Due)},
		)
	}

	if r.InWords != "" {
		sheet.Notes = append(sheet.Notes, "In words: "+r.InWords)
	}
	if r.Note != "" {
		sheet.Notes = append(sheet.Notes, r.Note)
	}
	sheet.Footer = []string{"Thank you!", "Powered by " + s.store.Name}
	return sheet
}

// ReportSheet lays the business report out for A4/A5 printing.
func (s *PrinterService) ReportSheet(r *entity.BusinessReport) *printer.Sheet {
	row := func(label string, v decimal.Decimal) []string { return []string{label, money(v)} }
	sheet := &printer.Sheet{
		Title:  "Business Report",
		Header: []string{s.store.Name},
		Meta: []printer.Pair{
			{Label: "From", Value: r.Start.Format("02 Jan 2006")},
			{Label: "To", Value: r.End.Format("02 Jan 2006")},
		},
		Columns: []printer.Column{
			{Title: "Particulars", Weight: 3, Align: printer.AlignLeft},
			{Title: "Amount", Weight: 2, Align: printer.AlignRight},
		},
		Rows: [][]string{
			row("Sales", r.SalesTotal),
			row("Sale returns", r.SaleReturnTotal),
			row("Net sales", r.NetSales()),
			row("Cost of goods sold", r.CostOfGoodsSold),
			row("Gross profit", r.GrossProfit()),
			row("Expenses", r.ExpenseTotal),
			row("Damages", r.DamageTotal),
			row("Purchases", r.PurchaseTotal),
			row("Receivable", r.ReceivableTotal),
			row("Payable", r.PayableTotal),
		},
		Totals: []printer.Pair{{Label: "Net Profit", Value: money(r.NetProfit()), Bold: true}},
		Notes:  []string{"Net profit in words: " + amountwords.Spell(r.NetProfit(), s.store.Currency)},
	}
	return sheet
}
