package service

import (
	"context"

	"github.com/sangkips/stockdesk/internal/application/detail"
	"github.com/sangkips/stockdesk/internal/application/listing"
	"github.com/sangkips/stockdesk/internal/domain/entity"
	"github.com/sangkips/stockdesk/internal/domain/repository"
	"github.com/sangkips/stockdesk/pkg/period"
	"github.com/sangkips/stockdesk/pkg/printer"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ReportService handles business and balance reports
type ReportService struct {
	reportRepo repository.ReportRepository
	printer    *PrinterService
	busy       *listing.Busy
	logger     *zap.Logger
}

// NewReportService creates a new report service
func NewReportService(reportRepo repository.ReportRepository, printer *PrinterService, busy *listing.Busy, logger *zap.Logger) *ReportService {
	return &ReportService{
		reportRepo: reportRepo,
		printer:    printer,
		busy:       busy,
		logger:     logger,
	}
}

// BusinessView is the business report plus its derived figures.
type BusinessView struct {
	*entity.BusinessReport
	Period      period.Token    `json:"period"`
	NetSales    decimal.Decimal `json:"net_sales"`
	GrossProfit decimal.Decimal `json:"gross_profit"`
	NetProfit   decimal.Decimal `json:"net_profit"`
}

// Business loads the business report for r.
func (s *ReportService) Business(ctx context.Context, r period.Range) (*BusinessView, error) {
	v := s.view(r)
	if err := v.Load(ctx, r.String()); err != nil {
		return nil, err
	}
	report, err := v.Render()
	if err != nil {
		return nil, err
	}
	return &BusinessView{
		BusinessReport: report,
		Period:         r.Token,
		NetSales:       report.NetSales(),
		GrossProfit:    report.GrossProfit(),
		NetProfit:      report.NetProfit(),
	}, nil
}

// BusinessPrint renders the business report; layout defaults to A4.
func (s *ReportService) BusinessPrint(ctx context.Context, r period.Range, layout printer.Layout) (printer.Job, error) {
	if layout == "" {
		layout = printer.LayoutA4
	}
	v := s.view(r)
	if err := v.Load(ctx, r.String()); err != nil {
		return printer.Job{}, err
	}
	return detail.Print(v, layout, s.printer.ReportSheet)
}

// Receivables returns one page of customer dues with the page due total
func (s *ReportService) Receivables(ctx context.Context, in ListInput) (*ListResult[entity.PartyBalance], error) {
	in.Range = nil
	res, err := loadPage(ctx, "receivables", s.busy, s.logger, s.reportRepo.Receivables, in)
	if err != nil {
		return nil, err
	}
	return withPageTotal(res, dueOf), nil
}

// Payables returns one page of supplier dues with the page due total
func (s *ReportService) Payables(ctx context.Context, in ListInput) (*ListResult[entity.PartyBalance], error) {
	in.Range = nil
	res, err := loadPage(ctx, "payables", s.busy, s.logger, s.reportRepo.Payables, in)
	if err != nil {
		return nil, err
	}
	return withPageTotal(res, dueOf), nil
}

func dueOf(b entity.PartyBalance) decimal.Decimal { return b.Due }

func (s *ReportService) view(r period.Range) *detail.View[entity.BusinessReport] {
	return detail.New(func(ctx context.Context, _ string) (*entity.BusinessReport, error) {
		return s.reportRepo.Business(ctx, r)
	}, detail.Options{Name: "Business report", Busy: s.busy, Logger: s.logger})
}
