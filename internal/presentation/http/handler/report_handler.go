package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/stockdesk/internal/application/service"
	"github.com/sangkips/stockdesk/internal/presentation/http/dto/request"
	"github.com/sangkips/stockdesk/internal/presentation/http/dto/response"
	"github.com/sangkips/stockdesk/pkg/apperror"
	"github.com/sangkips/stockdesk/pkg/printer"
)

// ReportHandler handles report HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Business handles the business report of the selected period
func (h *ReportHandler) Business(c *gin.Context) {
	rng, err := rangeOf(c.Query("period"), c.Query("start"), c.Query("end"))
	if err != nil {
		response.Error(c, err)
		return
	}
	view, err := h.reportService.Business(c.Request.Context(), rng)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Business report retrieved successfully", view)
}

// BusinessPrint handles the printable business report
func (h *ReportHandler) BusinessPrint(c *gin.Context) {
	rng, err := rangeOf(c.Query("period"), c.Query("start"), c.Query("end"))
	if err != nil {
		response.Error(c, err)
		return
	}
	var req request.RenderRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	var layout printer.Layout
	if req.Format != "" {
		if layout, err = printer.ParseLayout(req.Format); err != nil {
			response.Error(c, apperror.NewFieldError("format", err.Error()))
			return
		}
	}

	j, err := h.reportService.BusinessPrint(c.Request.Context(), rng, layout)
	if err != nil {
		response.Error(c, err)
		return
	}
	job(c, "business-report", j, req.Download)
}

// Receivables handles the customer dues list
func (h *ReportHandler) Receivables(c *gin.Context) {
	in, ok := bindList(c, false)
	if !ok {
		return
	}
	result, err := h.reportService.Receivables(c.Request.Context(), in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Receivables retrieved successfully", result)
}

// Payables handles the supplier dues list
func (h *ReportHandler) Payables(c *gin.Context) {
	in, ok := bindList(c, false)
	if !ok {
		return
	}
	result, err := h.reportService.Payables(c.Request.Context(), in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Payables retrieved successfully", result)
}
