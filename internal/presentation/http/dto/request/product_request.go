package request

// ListRequest represents the query of every list page. Period, Start and End
// are ignored by lists without a date filter.
type ListRequest struct {
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,oneof=20 50 100 200"`
	Search string `form:"search" binding:"max=100"`
	Period string `form:"period"`
	Start  string `form:"start"`
	End    string `form:"end"`
}

// LowStockRequest represents the low-stock report query
type LowStockRequest struct {
	// Sort is a column name, prefixed with "-" for descending.
	Sort   string `form:"sort"`
	Format string `form:"format" binding:"omitempty,oneof=json xlsx"`
}
