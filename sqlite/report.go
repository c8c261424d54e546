package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/storescope"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ storescope.ReportService = (*ReportService)(nil)

// ReportService implements storescope.ReportService using SQLite. The
// insights are stored as a JSON document next to a few indexed columns.
type ReportService struct {
	db *DB
}

// NewReportService creates a new ReportService.
func NewReportService(db *DB) *ReportService {
	return &ReportService{db: db}
}

// CreateReport persists a report, assigning its ID, content hash and
// creation time.
func (s *ReportService) CreateReport(ctx context.Context, report *storescope.Report) error {
	if err := report.Validate(); err != nil {
		return err
	}

	hash, err := ContentHash(report.Insights)
	if err != nil {
		return err
	}
	data, err := json.Marshal(report.Insights)
	if err != nil {
		return fmt.Errorf("failed to encode insights: %w", err)
	}

	report.ID = uuid.New().String()
	report.ContentHash = hash
	report.CreatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO reports (id, website_url, brand_name, total_products, content_hash, insights, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, report.ID, report.WebsiteURL, report.BrandName, report.TotalProducts, report.ContentHash,
		string(data), report.CreatedAt.Format(timestampLayout))

	return err
}

// FindReportByID retrieves a report by ID.
func (s *ReportService) FindReportByID(ctx context.Context, id string) (*storescope.Report, error) {
	reports, err := s.FindReports(ctx, storescope.ReportFilter{ID: &id, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(reports) == 0 {
		return nil, storescope.Errorf(storescope.ENOTFOUND, "report not found")
	}
	return reports[0], nil
}

// FindReports retrieves reports matching the filter, newest first.
func (s *ReportService) FindReports(ctx context.Context, filter storescope.ReportFilter) ([]*storescope.Report, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, website_url, brand_name, total_products, content_hash, insights, created_at FROM reports WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.WebsiteURL != nil {
		query.WriteString(" AND website_url = ?")
		args = append(args, *filter.WebsiteURL)
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reports := []*storescope.Report{}
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}

	return reports, rows.Err()
}

// DeleteReport permanently removes a report.
func (s *ReportService) DeleteReport(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM reports WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return storescope.Errorf(storescope.ENOTFOUND, "report not found")
	}

	return nil
}

func scanReport(rows *sql.Rows) (*storescope.Report, error) {
	var report storescope.Report
	var data, createdAt string

	if err := rows.Scan(&report.ID, &report.WebsiteURL, &report.BrandName, &report.TotalProducts,
		&report.ContentHash, &data, &createdAt); err != nil {
		return nil, err
	}

	var insights storescope.BrandInsights
	if err := json.Unmarshal([]byte(data), &insights); err != nil {
		return nil, fmt.Errorf("failed to decode insights for report %s: %w", report.ID, err)
	}
	insights.ID = report.ID
	report.Insights = &insights

	var err error
	report.CreatedAt, err = parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, err
	}

	return &report, nil
}

// ContentHash returns a fingerprint of the extracted facets. The report
// ID and extraction time are excluded, so two runs against an unchanged
// store hash the same.
func ContentHash(insights *storescope.BrandInsights) (string, error) {
	if insights == nil {
		return "", storescope.Errorf(storescope.EINVALID, "report insights required")
	}
	stable := *insights
	stable.ID = ""
	stable.ExtractedAt = time.Time{}

	data, err := json.Marshal(&stable)
	if err != nil {
		return "", fmt.Errorf("failed to encode insights: %w", err)
	}
	return fmt.Sprintf("%016x", xxhash.Sum64(data)), nil
}
