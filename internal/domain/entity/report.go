package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BusinessReport summarises trading for a period as reported by the backend.
type BusinessReport struct {
	Start           time.Time       `json:"start"`
	End             time.Time       `json:"end"`
	SalesTotal      decimal.Decimal `json:"sales_total"`
	SaleReturnTotal decimal.Decimal `json:"sale_return_total"`
	CostOfGoodsSold decimal.Decimal `json:"cost_of_goods_sold"`
	PurchaseTotal   decimal.Decimal `json:"purchase_total"`
	ExpenseTotal    decimal.Decimal `json:"expense_total"`
	DamageTotal     decimal.Decimal `json:"damage_total"`
	ReceivableTotal decimal.Decimal `json:"receivable_total"`
	PayableTotal    decimal.Decimal `json:"payable_total"`
}

// NetSales is sales less returns.
func (r *BusinessReport) NetSales() decimal.Decimal {
	return r.SalesTotal.Sub(r.SaleReturnTotal)
}

// GrossProfit is net sales less the cost of the goods sold.
func (r *BusinessReport) GrossProfit() decimal.Decimal {
	return r.NetSales().Sub(r.CostOfGoodsSold)
}

// NetProfit is gross profit less expenses and damaged stock.
func (r *BusinessReport) NetProfit() decimal.Decimal {
	return r.GrossProfit().Sub(r.ExpenseTotal).Sub(r.DamageTotal)
}
