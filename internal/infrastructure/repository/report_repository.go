package repository

import (
	"context"

	"github.com/sangkips/stockdesk/internal/domain/entity"
	domainRepo "github.com/sangkips/stockdesk/internal/domain/repository"
	"github.com/sangkips/stockdesk/internal/infrastructure/backend"
	"github.com/sangkips/stockdesk/pkg/pagination"
	"github.com/sangkips/stockdesk/pkg/period"
)

type reportRepository struct {
	client *backend.Client
}

// NewReportRepository creates a new report repository
func NewReportRepository(client *backend.Client) domainRepo.ReportRepository {
	return &reportRepository{client: client}
}

func (r *reportRepository) Business(ctx context.Context, rng period.Range) (*entity.BusinessReport, error) {
	report, err := backend.One[entity.BusinessReport](ctx, r.client, backend.Request{
		Endpoint: backend.BusinessReport,
		Query:    RangeQuery(rng),
	})
	if err != nil {
		return nil, err
	}
	// The backend echoes dates without time; keep the resolved bounds.
	report.Start, report.End = rng.Start, rng.End
	return report, nil
}

func (r *reportRepository) Receivables(ctx context.Context, params domainRepo.ListParams) (*pagination.PageResult[entity.PartyBalance], error) {
	return fetchPage[entity.PartyBalance](ctx, r.client, backend.ReceivableList, params)
}

func (r *reportRepository) Payables(ctx context.Context, params domainRepo.ListParams) (*pagination.PageResult[entity.PartyBalance], error) {
	return fetchPage[entity.PartyBalance](ctx, r.client, backend.PayableList, params)
}
