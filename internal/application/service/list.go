package service

import (
	"context"

	"github.com/sangkips/stockdesk/internal/application/listing"
	domainRepo "github.com/sangkips/stockdesk/internal/domain/repository"
	"github.com/sangkips/stockdesk/pkg/pagination"
	"github.com/sangkips/stockdesk/pkg/period"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ListInput is the query of a list page.
type ListInput struct {
	Query pagination.ListQuery
	// Range is nil for lists without a date filter.
	Range *period.Range
}

// ListResult is one committed page plus its derived controls.
type ListResult[T any] struct {
	Items      []T                    `json:"items"`
	Total      int64                  `json:"total"`
	Pagination *pagination.Pagination `json:"pagination"`
	Range      *period.Range          `json:"range,omitempty"`
	// PageTotal sums the money column of the loaded page only.
	PageTotal *decimal.Decimal `json:"page_total,omitempty"`
}

// loadPage runs one fetch through a list controller so every list page shares
// its pagination, truncation and failure handling.
func loadPage[T any](ctx context.Context, name string, busy *listing.Busy, logger *zap.Logger, fetch func(context.Context, domainRepo.ListParams) (*pagination.PageResult[T], error), in ListInput) (*ListResult[T], error) {
	c := listing.New(func(ctx context.Context, q pagination.ListQuery, r period.Range) (*pagination.PageResult[T], error) {
		params := domainRepo.ListParams{Query: q}
		if in.Range != nil {
			params.Range = &r
		}
		return fetch(ctx, params)
	}, listing.Options{Name: name, Busy: busy, Logger: logger})

	var rng period.Range
	if in.Range != nil {
		rng = *in.Range
	}
	if err := c.Load(ctx, in.Query, rng); err != nil {
		return nil, err
	}

	snap := c.Snapshot()
	res := &ListResult[T]{
		Items:      snap.Items,
		Total:      snap.Total,
		Pagination: snap.Pagination,
	}
	if in.Range != nil {
		res.Range = &snap.Range
	}
	return res, nil
}

func withPageTotal[T any](res *ListResult[T], amount func(T) decimal.Decimal) *ListResult[T] {
	sum := decimal.Zero
	for _, it := range res.Items {
		sum = sum.Add(amount(it))
	}
	res.PageTotal = &sum
	return res
}
