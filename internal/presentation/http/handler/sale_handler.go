package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/stockdesk/internal/application/service"
	"github.com/sangkips/stockdesk/internal/presentation/http/dto/request"
	"github.com/sangkips/stockdesk/internal/presentation/http/dto/response"
	"github.com/sangkips/stockdesk/pkg/printer"
)

// SaleHandler handles sale-related HTTP requests
type SaleHandler struct {
	saleService *service.SaleService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService *service.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// List handles listing sales
func (h *SaleHandler) List(c *gin.Context) {
	in, ok := bindList(c, true)
	if !ok {
		return
	}
	result, err := h.saleService.ListSales(c.Request.Context(), in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Sales retrieved successfully", result)
}

// Get handles getting a sale by ID
func (h *SaleHandler) Get(c *gin.Context) {
	sale, err := h.saleService.GetSale(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Sale retrieved successfully", sale)
}

// Invoice handles the sales invoice as JSON or a printable file
func (h *SaleHandler) Invoice(c *gin.Context) {
	var req request.RenderRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	out, err := h.saleService.Invoice(c.Request.Context(), c.Param("id"), req.Format)
	if err != nil {
		response.Error(c, err)
		return
	}
	rendered(c, "invoice-"+c.Param("id"), out, req.Download)
}

// Return handles the sale return receipt
func (h *SaleHandler) Return(c *gin.Context) {
	var req request.RenderRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	out, err := h.saleService.ReturnReceipt(c.Request.Context(), c.Param("id"), req.Format)
	if err != nil {
		response.Error(c, err)
		return
	}
	rendered(c, "return-"+c.Param("id"), out, req.Download)
}

// Print sends the sales invoice to the configured printer
func (h *SaleHandler) Print(c *gin.Context) {
	var req request.PrintRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "Invalid request: "+err.Error())
			return
		}
	}

	receipt, err := h.saleService.PrintInvoice(c.Request.Context(), c.Param("id"), printer.Layout(req.Layout))
	if err != nil {
		// The receipt was built but the printer failed
		if receipt != nil {
			response.OK(c, "Receipt generated but printing failed", gin.H{
				"receipt": receipt,
				"warning": err.Error(),
			})
			return
		}
		response.Error(c, err)
		return
	}
	response.OK(c, "Invoice sent to printer", gin.H{"receipt": receipt})
}

// Draft handles recomputing the sale editor lines
func (h *SaleHandler) Draft(c *gin.Context) {
	var req request.DraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	draft, err := h.saleService.Draft(c.Request.Context(), toDraftLines(req.Lines))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Draft computed", draft)
}

// Create handles sale creation
func (h *SaleHandler) Create(c *gin.Context) {
	var req request.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	sale, err := h.saleService.CreateSale(c.Request.Context(), &service.CreateSaleInput{
		CustomerID:    req.CustomerID,
		PaymentMethod: req.PaymentMethod,
		Discount:      req.Discount,
		Paid:          req.Paid,
		Lines:         toDraftLines(req.Lines),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Sale created successfully", sale)
}
