package backend

import "net/http"

// Endpoint names one backend route. Method is the canonical verb; Legacy is
// the verb older backends expect and is used when legacy verbs are enabled.
type Endpoint struct {
	Name     string
	Method   string
	Legacy   string
	Resource string
}

// NoKeyword is the path placeholder for an empty search keyword.
const NoKeyword = "0"

// Keyword returns the path segment for a search term.
func Keyword(search string) string {
	if search == "" {
		return NoKeyword
	}
	return search
}

var (
	ProductList     = Endpoint{Name: "ProductList", Method: http.MethodGet, Resource: "product"}
	ProductDetails  = Endpoint{Name: "ProductDetails", Method: http.MethodGet, Resource: "product"}
	ProductDropdown = Endpoint{Name: "ProductDropdown", Method: http.MethodGet, Resource: "product"}
	LowStockReport  = Endpoint{Name: "LowStockReport", Method: http.MethodGet, Resource: "product"}

	PurchaseList    = Endpoint{Name: "PurchaseList", Method: http.MethodGet, Resource: "purchase"}
	PurchaseDetails = Endpoint{Name: "PurchaseDetails", Method: http.MethodGet, Resource: "purchase"}
	CreatePurchase  = Endpoint{Name: "CreatePurchase", Method: http.MethodPost, Resource: "purchase"}

	SaleList          = Endpoint{Name: "SaleList", Method: http.MethodGet, Resource: "sale"}
	SaleDetails       = Endpoint{Name: "SaleDetails", Method: http.MethodGet, Resource: "sale"}
	SaleReturnDetails = Endpoint{Name: "SaleReturnDetails", Method: http.MethodGet, Resource: "sale return"}
	CreateSale        = Endpoint{Name: "CreateSale", Method: http.MethodPost, Resource: "sale"}

	DamageList    = Endpoint{Name: "DamageList", Method: http.MethodGet, Resource: "damage"}
	DamageDetails = Endpoint{Name: "DamageDetails", Method: http.MethodGet, Resource: "damage"}
	CreateDamage  = Endpoint{Name: "CreateDamage", Method: http.MethodPost, Resource: "damage"}

	ExpenseList       = Endpoint{Name: "ExpenseList", Method: http.MethodGet, Resource: "expense"}
	ExpenseTypeList   = Endpoint{Name: "ExpenseTypeList", Method: http.MethodGet, Resource: "expense type"}
	CreateExpenseType = Endpoint{Name: "CreateExpenseType", Method: http.MethodPost, Resource: "expense type"}
	UpdateExpenseType = Endpoint{Name: "UpdateExpenseType", Method: http.MethodPut, Legacy: http.MethodPost, Resource: "expense type"}
	DeleteExpenseType = Endpoint{Name: "DeleteExpenseType", Method: http.MethodDelete, Legacy: http.MethodGet, Resource: "expense type"}

	BusinessReport = Endpoint{Name: "BusinessReport", Method: http.MethodGet, Resource: "report"}
	ReceivableList = Endpoint{Name: "ReceivableList", Method: http.MethodGet, Resource: "receivable"}
	PayableList    = Endpoint{Name: "PayableList", Method: http.MethodGet, Resource: "payable"}
)
