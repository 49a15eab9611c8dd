package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/stockdesk/internal/application/service"
	"github.com/sangkips/stockdesk/internal/presentation/http/dto/request"
	"github.com/sangkips/stockdesk/internal/presentation/http/dto/response"
)

// ExpenseHandler handles expense and expense type HTTP requests
type ExpenseHandler struct {
	expenseService *service.ExpenseService
}

// NewExpenseHandler creates a new expense handler
func NewExpenseHandler(expenseService *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// List handles listing expenses
func (h *ExpenseHandler) List(c *gin.Context) {
	in, ok := bindList(c, true)
	if !ok {
		return
	}
	result, err := h.expenseService.ListExpenses(c.Request.Context(), in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Expenses retrieved successfully", result)
}

// ListTypes handles listing expense types, filtered by ?search
func (h *ExpenseHandler) ListTypes(c *gin.Context) {
	types, err := h.expenseService.ListTypes(c.Request.Context(), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Expense types retrieved successfully", types)
}

// SaveType creates or updates an expense type and returns the refreshed list
func (h *ExpenseHandler) SaveType(c *gin.Context) {
	var req request.SaveExpenseTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	types, err := h.expenseService.SaveType(c.Request.Context(), &service.SaveExpenseTypeInput{
		ID:   req.ID,
		Name: req.Name,
		Note: req.Note,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Expense type saved successfully", types)
}

// DeleteType handles deleting an expense type. Without ?confirm=true nothing
// is sent to the backend.
func (h *ExpenseHandler) DeleteType(c *gin.Context) {
	var req request.DeleteExpenseTypeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	deleted, err := h.expenseService.DeleteType(c.Request.Context(), c.Param("id"), req.Confirm)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !deleted {
		response.OK(c, "Delete cancelled", gin.H{"deleted": false})
		return
	}
	response.OK(c, "Expense type deleted successfully", gin.H{"deleted": true})
}
