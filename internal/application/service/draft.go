package service

import (
	"context"
	"fmt"

	"github.com/sangkips/stockdesk/internal/application/lineeditor"
	"github.com/sangkips/stockdesk/internal/domain/entity"
	"github.com/sangkips/stockdesk/internal/domain/repository"
	"github.com/sangkips/stockdesk/pkg/apperror"
	"github.com/shopspring/decimal"
)

// DraftLine is one line as entered by the client. The editor state is rebuilt
// from these on every request.
type DraftLine struct {
	ProductID string           `json:"product_id"`
	BatchID   string           `json:"batch_id,omitempty"`
	Quantity  int64            `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

// Draft is the recomputed editor state returned to the client.
type Draft struct {
	Lines      []lineeditor.Line `json:"lines"`
	GrandTotal decimal.Decimal   `json:"grand_total"`
}

// batchPrice selects which batch price seeds a line.
type batchPrice func(b entity.Batch) decimal.Decimal

func salePrice(b entity.Batch) decimal.Decimal { return b.SalePrice }
func costPrice(b entity.Batch) decimal.Decimal { return b.CostPrice }

func toParent(p entity.Product, price batchPrice) lineeditor.Parent {
	parent := lineeditor.Parent{ID: p.ID, Name: p.Name}
	for _, b := range p.Batches {
		parent.SubLines = append(parent.SubLines, lineeditor.SubLine{
			ID:        b.ID,
			Label:     b.BatchNo,
			UnitPrice: price(b),
			Stock:     b.Quantity,
		})
	}
	return parent
}

// replay builds an editor from the product options and the entered lines,
// applying each edit in the order a user would: pick the product, pick the
// batch, type the quantity, then the price.
func replay(ctx context.Context, products repository.ProductRepository, cfg lineeditor.Config, price batchPrice, lines []DraftLine) (*lineeditor.Editor, error) {
	release := cfg.Busy.Acquire()
	options, err := products.Options(ctx)
	release()
	if err != nil {
		return nil, err
	}
	byID := make(map[string]entity.Product, len(options))
	for _, p := range options {
		byID[p.ID] = p
	}

	e := lineeditor.New(cfg)
	for n, in := range lines {
		p, ok := byID[in.ProductID]
		if !ok {
			return nil, apperror.NewFieldError(fmt.Sprintf("lines[%d].product_id", n), fmt.Sprintf("Unknown product %q", in.ProductID))
		}
		i := e.AddParent(toParent(p, price))
		if in.BatchID != "" {
			if err := e.SelectSubLine(ctx, i, in.BatchID); err != nil {
				return nil, err
			}
		}
		if in.Quantity != 0 {
			if err := e.SetQuantity(ctx, i, in.Quantity); err != nil {
				return nil, err
			}
		}
		if in.UnitPrice != nil {
			if err := e.SetUnitPrice(ctx, i, *in.UnitPrice); err != nil {
				return nil, err
			}
		}
	}
	return e, nil
}

func draftOf(e *lineeditor.Editor) *Draft {
	return &Draft{Lines: e.Lines(), GrandTotal: e.GrandTotal()}
}

func toTransactionLines(lines []lineeditor.Line) []entity.TransactionLine {
	out := make([]entity.TransactionLine, len(lines))
	for i, l := range lines {
		out[i] = entity.TransactionLine{
			ProductID:   l.ParentID,
			ProductName: l.ParentName,
			BatchID:     l.SubLineID,
			BatchNo:     l.SubLineLabel,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Total:       l.Total,
		}
	}
	return out
}
