package mock

import (
	"context"

	"github.com/fwojciec/storescope"
)

var _ storescope.ReportService = (*ReportService)(nil)

// ReportService is a mock implementation of storescope.ReportService.
type ReportService struct {
	CreateReportFn   func(ctx context.Context, report *storescope.Report) error
	FindReportByIDFn func(ctx context.Context, id string) (*storescope.Report, error)
	FindReportsFn    func(ctx context.Context, filter storescope.ReportFilter) ([]*storescope.Report, error)
	DeleteReportFn   func(ctx context.Context, id string) error
}

func (s *ReportService) CreateReport(ctx context.Context, report *storescope.Report) error {
	return s.CreateReportFn(ctx, report)
}

func (s *ReportService) FindReportByID(ctx context.Context, id string) (*storescope.Report, error) {
	return s.FindReportByIDFn(ctx, id)
}

func (s *ReportService) FindReports(ctx context.Context, filter storescope.ReportFilter) ([]*storescope.Report, error) {
	return s.FindReportsFn(ctx, filter)
}

func (s *ReportService) DeleteReport(ctx context.Context, id string) error {
	return s.DeleteReportFn(ctx, id)
}

var _ storescope.ReportWriter = (*ReportWriter)(nil)

// ReportWriter is a mock implementation of storescope.ReportWriter.
type ReportWriter struct {
	WriteReportFn func(ctx context.Context, insights *storescope.BrandInsights) (string, error)
}

func (w *ReportWriter) WriteReport(ctx context.Context, insights *storescope.BrandInsights) (string, error) {
	return w.WriteReportFn(ctx, insights)
}
