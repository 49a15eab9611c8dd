package request

// SaveExpenseTypeRequest creates an expense type, or updates it when ID is set
type SaveExpenseTypeRequest struct {
	ID   string `json:"id"`
	Name string `json:"name" binding:"max=100"`
	Note string `json:"note" binding:"max=255"`
}

// DeleteExpenseTypeRequest carries the user's answer to the delete prompt
type DeleteExpenseTypeRequest struct {
	Confirm bool `form:"confirm"`
}
