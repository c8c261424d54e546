package storescope

import (
	"context"
	"time"
)

// Report is a persisted extraction result.
type Report struct {
	ID            string         `json:"id"`
	WebsiteURL    string         `json:"website_url"`
	BrandName     string         `json:"brand_name"`
	TotalProducts int            `json:"total_products"`
	ContentHash   string         `json:"content_hash"`
	Insights      *BrandInsights `json:"insights"`
	CreatedAt     time.Time      `json:"created_at"`
}

// Validate returns an error if the report contains invalid fields.
func (r *Report) Validate() error {
	if r.Insights == nil {
		return Errorf(EINVALID, "report insights required")
	}
	if r.WebsiteURL == "" {
		return Errorf(EINVALID, "report website URL required")
	}
	return nil
}

// NewReport builds a report for the given insights.
func NewReport(insights *BrandInsights) *Report {
	return &Report{
		WebsiteURL:    insights.WebsiteURL,
		BrandName:     insights.BrandName,
		TotalProducts: insights.TotalProducts,
		Insights:      insights,
	}
}

// ReportService represents a service for managing saved reports.
type ReportService interface {
	// CreateReport persists a report and assigns its ID and timestamp.
	CreateReport(ctx context.Context, report *Report) error

	// FindReportByID retrieves a report by ID.
	// Returns ENOTFOUND if the report does not exist.
	FindReportByID(ctx context.Context, id string) (*Report, error)

	// FindReports retrieves reports matching the filter, newest first.
	FindReports(ctx context.Context, filter ReportFilter) ([]*Report, error)

	// DeleteReport permanently removes a report.
	// Returns ENOTFOUND if the report does not exist.
	DeleteReport(ctx context.Context, id string) error
}

// ReportFilter represents a filter for FindReports.
type ReportFilter struct {
	ID         *string `json:"id"`
	WebsiteURL *string `json:"website_url"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// ReportWriter writes reports to an external destination such as a file.
type ReportWriter interface {
	WriteReport(ctx context.Context, insights *BrandInsights) (string, error)
}
