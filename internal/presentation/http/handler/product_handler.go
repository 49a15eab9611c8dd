package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/stockdesk/internal/application/listing"
	"github.com/sangkips/stockdesk/internal/application/service"
	"github.com/sangkips/stockdesk/internal/presentation/http/dto/request"
	"github.com/sangkips/stockdesk/internal/presentation/http/dto/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// List handles listing products
func (h *ProductHandler) List(c *gin.Context) {
	in, ok := bindList(c, false)
	if !ok {
		return
	}
	result, err := h.productService.ListProducts(c.Request.Context(), in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Products retrieved successfully", result)
}

// Get handles getting a product with its batches
func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.productService.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Product retrieved successfully", product)
}

// Options handles listing every product with batches for the line editors
func (h *ProductHandler) Options(c *gin.Context) {
	products, err := h.productService.Options(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Product options retrieved successfully", products)
}

// LowStock handles the low-stock report, as JSON or an XLSX download
func (h *ProductHandler) LowStock(c *gin.Context) {
	var req request.LowStockRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	sort := listing.ParseSort(req.Sort)

	if req.Format == "xlsx" {
		data, err := h.productService.LowStockWorkbook(c.Request.Context(), sort)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.File(c, "low-stock.xlsx", xlsxContentType, data, false)
		return
	}

	items, err := h.productService.LowStock(c.Request.Context(), sort)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Low stock report retrieved successfully", gin.H{
		"items": items,
		"sort":  sort,
	})
}
