package gin

import (
	"net/http"
	"strconv"
	"time"

	"github.com/fwojciec/storescope"
	"github.com/gin-gonic/gin"
)

// Client-facing error details.
const (
	detailUnreachable = "Website not found or not accessible"
	detailInternal    = "Internal server error occurred"
	detailNotFound    = "Report not found"
)

// InsightsRequest is the body of POST /api/v1/fetch/insights.
type InsightsRequest struct {
	WebsiteURL string `json:"website_url" binding:"required"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Storefront Insights API",
		"version": "1.0.0",
		"endpoints": gin.H{
			"POST " + APIPrefix + "/fetch/insights": "Fetch insights from a storefront",
			"GET " + APIPrefix + "/reports":         "List saved reports",
			"GET " + APIPrefix + "/reports/{id}":    "Get a saved report",
			"GET /health":                           "Health check",
			"GET /":                                 "API information",
		},
		"usage": gin.H{
			"endpoint": APIPrefix + "/fetch/insights",
			"method":   "POST",
			"body": gin.H{
				"website_url": "https://example.myshopify.com",
			},
		},
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": s.now().Format(time.RFC3339),
	})
}

func (s *Server) handleFetchInsights(c *gin.Context) {
	var req InsightsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Detail: "website_url is required"})
		return
	}

	insights, err := s.Insights.FetchInsights(c.Request.Context(), req.WebsiteURL)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, insights)
}

func (s *Server) handleListReports(c *gin.Context) {
	if s.Reports == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Detail: "Report storage is not configured"})
		return
	}

	filter := storescope.ReportFilter{Limit: 20}
	if v := c.Query("website_url"); v != "" {
		filter.WebsiteURL = &v
	}
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		filter.Limit = v
	}
	if v, err := strconv.Atoi(c.Query("offset")); err == nil && v > 0 {
		filter.Offset = v
	}

	reports, err := s.Reports.FindReports(c.Request.Context(), filter)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

func (s *Server) handleGetReport(c *gin.Context) {
	if s.Reports == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Detail: "Report storage is not configured"})
		return
	}

	report, err := s.Reports.FindReportByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// writeError maps application error codes to HTTP responses. Internal
// error details are logged, never returned.
func (s *Server) writeError(c *gin.Context, err error) {
	switch storescope.ErrorCode(err) {
	case storescope.EUNREACHABLE, storescope.EINVALID:
		c.JSON(http.StatusUnauthorized, ErrorResponse{Detail: detailUnreachable})
	case storescope.ENOTFOUND:
		c.JSON(http.StatusNotFound, ErrorResponse{Detail: detailNotFound})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Detail: detailInternal})
	}
}

func (s *Server) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
