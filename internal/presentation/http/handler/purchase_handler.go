package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/stockdesk/internal/application/service"
	"github.com/sangkips/stockdesk/internal/presentation/http/dto/request"
	"github.com/sangkips/stockdesk/internal/presentation/http/dto/response"
)

// PurchaseHandler handles purchase-related HTTP requests
type PurchaseHandler struct {
	purchaseService *service.PurchaseService
}

// NewPurchaseHandler creates a new purchase handler
func NewPurchaseHandler(purchaseService *service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseService}
}

// List handles listing purchases
func (h *PurchaseHandler) List(c *gin.Context) {
	in, ok := bindList(c, true)
	if !ok {
		return
	}
	result, err := h.purchaseService.ListPurchases(c.Request.Context(), in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Purchases retrieved successfully", result)
}

// Get handles getting a purchase by ID
func (h *PurchaseHandler) Get(c *gin.Context) {
	purchase, err := h.purchaseService.GetPurchase(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Purchase retrieved successfully", purchase)
}

// Invoice handles the purchase invoice as JSON or a printable file
func (h *PurchaseHandler) Invoice(c *gin.Context) {
	var req request.RenderRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	out, err := h.purchaseService.Invoice(c.Request.Context(), c.Param("id"), req.Format)
	if err != nil {
		response.Error(c, err)
		return
	}
	rendered(c, "purchase-"+c.Param("id"), out, req.Download)
}

// Draft handles recomputing the purchase editor lines
func (h *PurchaseHandler) Draft(c *gin.Context) {
	var req request.DraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	draft, err := h.purchaseService.Draft(c.Request.Context(), toDraftLines(req.Lines))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Draft computed", draft)
}

// Create handles purchase creation
func (h *PurchaseHandler) Create(c *gin.Context) {
	var req request.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	input := &service.CreatePurchaseInput{
		SupplierID: req.SupplierID,
		Date:       time.Now(),
		Paid:       req.Paid,
		Note:       req.Note,
		Lines:      toDraftLines(req.Lines),
	}
	if req.Date != nil {
		input.Date = *req.Date
	}

	purchase, err := h.purchaseService.CreatePurchase(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Purchase created successfully", purchase)
}
