package repository

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	domainRepo "github.com/sangkips/stockdesk/internal/domain/repository"
	"github.com/sangkips/stockdesk/internal/infrastructure/backend"
	"github.com/sangkips/stockdesk/pkg/apperror"
	"github.com/sangkips/stockdesk/pkg/pagination"
	"github.com/sangkips/stockdesk/pkg/period"
)

// PageScope builds the request for a paginated list endpoint:
// <Endpoint>/<page>/<limit>/<keyword>, with the date range as startDate/endDate
// query values when one is set.
func PageScope(ep backend.Endpoint, params domainRepo.ListParams) backend.Request {
	q := params.Query.Normalize()
	req := backend.Request{
		Endpoint: ep,
		Params:   []string{strconv.Itoa(q.Page), strconv.Itoa(q.Limit), backend.Keyword(q.Search)},
	}
	if params.Range != nil && !params.Range.IsZero() {
		req.Query = RangeQuery(*params.Range)
	}
	return req
}

// RangeQuery encodes a date range the way report endpoints expect it.
func RangeQuery(r period.Range) url.Values {
	return url.Values{
		"startDate": {r.StartDate()},
		"endDate":   {r.EndDate()},
	}
}

func fetchPage[T any](ctx context.Context, c *backend.Client, ep backend.Endpoint, params domainRepo.ListParams) (*pagination.PageResult[T], error) {
	items, total, err := backend.List[T](ctx, c, PageScope(ep, params))
	if err != nil {
		return nil, err
	}
	return &pagination.PageResult[T]{
		Items: pagination.Truncate(items, params.Query.Normalize().Limit),
		Total: total,
	}, nil
}

// decodeCreated reads the record echoed by a create call. Backends that answer
// with status only yield a zero record.
func decodeCreated[T any](env *backend.Envelope) (*T, error) {
	var out T
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return &out, nil
	}
	if env.Data[0] == '[' {
		var rows []T
		if err := json.Unmarshal(env.Data, &rows); err != nil {
			return nil, apperror.NewAPIError("Malformed create response")
		}
		if len(rows) > 0 {
			out = rows[0]
		}
		return &out, nil
	}
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return nil, apperror.NewAPIError("Malformed create response")
	}
	return &out, nil
}
