package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/storescope"
	"github.com/fwojciec/storescope/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}

func newInsights(websiteURL, brand string) *storescope.BrandInsights {
	price := "19.99"
	return &storescope.BrandInsights{
		WebsiteURL:       websiteURL,
		BrandName:        brand,
		BrandDescription: storescope.StringPtr("Everyday essentials."),
		ProductCatalog: []storescope.Product{
			{Title: "Tee", Handle: "tee", Price: &price, Images: []string{"a.jpg"}, Tags: []string{}},
		},
		HeroProducts:   []storescope.Product{},
		FAQs:           []storescope.FAQ{{Question: "Do you ship abroad?", Answer: "Yes."}},
		SocialHandles:  []storescope.SocialHandle{{Platform: storescope.PlatformInstagram, URL: "https://instagram.com/acme", Handle: "acme"}},
		ContactInfo:    storescope.ContactInfo{Emails: []string{"hi@acme.test"}, Phones: []string{}},
		ImportantLinks: map[string]string{"Blog": websiteURL + "/blogs/news"},
		ExtractedAt:    time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		TotalProducts:  1,
		Status:         storescope.StatusSuccess,
	}
}

func TestReportService_CreateReport(t *testing.T) {
	t.Parallel()

	t.Run("assigns ID, hash and timestamp", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewReportService(setupTestDB(t))
		report := storescope.NewReport(newInsights("https://acme.test", "Acme"))

		require.NoError(t, svc.CreateReport(context.Background(), report))

		assert.NotEmpty(t, report.ID)
		assert.Len(t, report.ContentHash, 16)
		assert.False(t, report.CreatedAt.IsZero())
	})

	t.Run("rejects report without insights", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewReportService(setupTestDB(t))
		err := svc.CreateReport(context.Background(), &storescope.Report{WebsiteURL: "https://acme.test"})

		require.Error(t, err)
		assert.Equal(t, storescope.EINVALID, storescope.ErrorCode(err))
	})
}

func TestReportService_FindReportByID(t *testing.T) {
	t.Parallel()

	t.Run("round trips insights", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewReportService(setupTestDB(t))
		ctx := context.Background()
		insights := newInsights("https://acme.test", "Acme")
		report := storescope.NewReport(insights)
		require.NoError(t, svc.CreateReport(ctx, report))

		found, err := svc.FindReportByID(ctx, report.ID)
		require.NoError(t, err)

		assert.Equal(t, report.ID, found.ID)
		assert.Equal(t, "https://acme.test", found.WebsiteURL)
		assert.Equal(t, "Acme", found.BrandName)
		assert.Equal(t, 1, found.TotalProducts)
		assert.Equal(t, report.ContentHash, found.ContentHash)
		assert.WithinDuration(t, report.CreatedAt, found.CreatedAt, time.Millisecond)

		require.NotNil(t, found.Insights)
		assert.Equal(t, report.ID, found.Insights.ID)
		assert.Equal(t, insights.ProductCatalog, found.Insights.ProductCatalog)
		assert.Equal(t, insights.FAQs, found.Insights.FAQs)
		assert.Equal(t, insights.ImportantLinks, found.Insights.ImportantLinks)
		assert.True(t, insights.ExtractedAt.Equal(found.Insights.ExtractedAt))
	})

	t.Run("returns ENOTFOUND for missing report", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewReportService(setupTestDB(t))
		_, err := svc.FindReportByID(context.Background(), "missing")

		require.Error(t, err)
		assert.Equal(t, storescope.ENOTFOUND, storescope.ErrorCode(err))
	})
}

func TestReportService_FindReports(t *testing.T) {
	t.Parallel()

	setup := func(t *testing.T) (*sqlite.ReportService, []*storescope.Report) {
		t.Helper()
		svc := sqlite.NewReportService(setupTestDB(t))
		var reports []*storescope.Report
		for _, site := range []string{"https://a.test", "https://b.test", "https://a.test"} {
			r := storescope.NewReport(newInsights(site, "Brand"))
			require.NoError(t, svc.CreateReport(context.Background(), r))
			reports = append(reports, r)
		}
		return svc, reports
	}

	t.Run("newest first", func(t *testing.T) {
		t.Parallel()

		svc, reports := setup(t)
		found, err := svc.FindReports(context.Background(), storescope.ReportFilter{})
		require.NoError(t, err)
		require.Len(t, found, 3)
		assert.Equal(t, reports[2].ID, found[0].ID)
		assert.Equal(t, reports[0].ID, found[2].ID)
	})

	t.Run("filters by website", func(t *testing.T) {
		t.Parallel()

		svc, _ := setup(t)
		site := "https://a.test"
		found, err := svc.FindReports(context.Background(), storescope.ReportFilter{WebsiteURL: &site})
		require.NoError(t, err)
		require.Len(t, found, 2)
		for _, r := range found {
			assert.Equal(t, site, r.WebsiteURL)
		}
	})

	t.Run("paginates", func(t *testing.T) {
		t.Parallel()

		svc, reports := setup(t)
		found, err := svc.FindReports(context.Background(), storescope.ReportFilter{Limit: 1, Offset: 1})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, reports[1].ID, found[0].ID)

		found, err = svc.FindReports(context.Background(), storescope.ReportFilter{Offset: 2})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, reports[0].ID, found[0].ID)
	})

	t.Run("empty database", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewReportService(setupTestDB(t))
		found, err := svc.FindReports(context.Background(), storescope.ReportFilter{})
		require.NoError(t, err)
		assert.NotNil(t, found)
		assert.Empty(t, found)
	})
}

func TestReportService_DeleteReport(t *testing.T) {
	t.Parallel()

	t.Run("removes report", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewReportService(setupTestDB(t))
		ctx := context.Background()
		report := storescope.NewReport(newInsights("https://acme.test", "Acme"))
		require.NoError(t, svc.CreateReport(ctx, report))

		require.NoError(t, svc.DeleteReport(ctx, report.ID))

		_, err := svc.FindReportByID(ctx, report.ID)
		assert.Equal(t, storescope.ENOTFOUND, storescope.ErrorCode(err))
	})

	t.Run("returns ENOTFOUND for missing report", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewReportService(setupTestDB(t))
		err := svc.DeleteReport(context.Background(), "missing")
		assert.Equal(t, storescope.ENOTFOUND, storescope.ErrorCode(err))
	})
}

func TestContentHash(t *testing.T) {
	t.Parallel()

	a := newInsights("https://acme.test", "Acme")
	b := newInsights("https://acme.test", "Acme")
	b.ID = "other"
	b.ExtractedAt = a.ExtractedAt.Add(time.Hour)

	ha, err := sqlite.ContentHash(a)
	require.NoError(t, err)
	hb, err := sqlite.ContentHash(b)
	require.NoError(t, err)
	assert.Equal(t, ha, hb, "ID and extraction time do not affect the hash")

	b.BrandName = "Acme Co"
	hc, err := sqlite.ContentHash(b)
	require.NoError(t, err)
	assert.NotEqual(t, ha, hc)

	_, err = sqlite.ContentHash(nil)
	assert.Equal(t, storescope.EINVALID, storescope.ErrorCode(err))
}
