package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/stockdesk/internal/application/service"
	"github.com/sangkips/stockdesk/internal/presentation/http/dto/request"
	"github.com/sangkips/stockdesk/internal/presentation/http/dto/response"
	"github.com/sangkips/stockdesk/pkg/apperror"
	"github.com/sangkips/stockdesk/pkg/pagination"
	"github.com/sangkips/stockdesk/pkg/period"
	"github.com/sangkips/stockdesk/pkg/printer"
)

// DefaultPeriod is the date filter of a dated list opened without one.
const DefaultPeriod = period.ThisMonth

// BusinessIDKey is the gin context key holding the active business.
const BusinessIDKey = "business_id"

// GetBusinessID extracts the active business from the Gin context
func GetBusinessID(c *gin.Context) string {
	return c.GetString(BusinessIDKey)
}

// bindList reads the list query. Dated lists also resolve the period; the
// response has been written when ok is false.
func bindList(c *gin.Context, dated bool) (in service.ListInput, ok bool) {
	var req request.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return in, false
	}
	in.Query = pagination.ListQuery{Page: req.Page, Limit: req.Limit, Search: req.Search}.Normalize()
	if !dated {
		return in, true
	}
	rng, err := rangeOf(req.Period, req.Start, req.End)
	if err != nil {
		response.Error(c, err)
		return in, false
	}
	in.Range = &rng
	return in, true
}

func rangeOf(token, start, end string) (period.Range, error) {
	rng, err := period.ParseRange(token, start, end, DefaultPeriod, time.Now())
	if err != nil {
		return period.Range{}, apperror.NewFieldError("period", err.Error())
	}
	return rng, nil
}

func toDraftLines(in []request.DraftLineRequest) []service.DraftLine {
	out := make([]service.DraftLine, len(in))
	for i, l := range in {
		out[i] = service.DraftLine{
			ProductID: l.ProductID,
			BatchID:   l.BatchID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		}
	}
	return out
}

// rendered writes an invoice as JSON or as the printable file.
func rendered(c *gin.Context, name string, out *service.Rendered, download bool) {
	if out.Job == nil {
		response.OK(c, name+" retrieved successfully", out.Receipt)
		return
	}
	job(c, name, *out.Job, download)
}

// job sends a print job as a file. PDFs open inline unless download is set.
func job(c *gin.Context, name string, j printer.Job, download bool) {
	ext := ".bin"
	if j.ContentType == printer.ContentTypePDF {
		ext = ".pdf"
	}
	response.File(c, name+ext, j.ContentType, j.Data, j.ContentType == printer.ContentTypePDF && !download)
}
