package entity

import "github.com/shopspring/decimal"

// ReceiptHeader holds the store/business header printed at the top of a receipt.
type ReceiptHeader struct {
	StoreName string `json:"store_name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// ReceiptItem represents a single line item on a receipt.
type ReceiptItem struct {
	Name      string          `json:"name"`
	BatchNo   string          `json:"batch_no,omitempty"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

// Receipt is a value object representing a printable invoice, return receipt or
// damage slip. It is composed from a fetched record at print time.
type Receipt struct {
	Title         string          `json:"title"`
	Header        ReceiptHeader   `json:"header"`
	Number        string          `json:"number"`
	NumberLabel   string          `json:"number_label"`
	Date          string          `json:"date"`
	Cashier       string          `json:"cashier,omitempty"`
	PartyLabel    string          `json:"party_label,omitempty"`
	Party         string          `json:"party,omitempty"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	Items         []ReceiptItem   `json:"items"`
	SubTotal      decimal.Decimal `json:"sub_total"`
	Discount      decimal.Decimal `json:"discount"`
	VAT           decimal.Decimal `json:"vat"`
	Total         decimal.Decimal `json:"total"`
	Paid          decimal.Decimal `json:"paid"`
	Due           decimal.Decimal `json:"due"`
	InWords       string          `json:"in_words,omitempty"`
	Note          string          `json:"note,omitempty"`
}
