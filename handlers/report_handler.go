package handlers

import (
	"fmt"
	"net/http"
	"time"

	"gamelytics/services"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func sortParams(c *gin.Context) (string, services.SortDirection) {
	return c.Query("sort_by"), services.ParseSortDirection(c.Query("sort_dir"))
}

func (h *ReportHandler) GamePerformance(c *gin.Context) {
	var filter services.GameReportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rows, err := h.reportService.GamePerformance(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	sortBy, sortDir := sortParams(c)
	rows = services.SortRows(rows, sortBy, sortDir)
	c.JSON(http.StatusOK, gin.H{"rows": rows, "count": len(rows)})
}

func (h *ReportHandler) PlayerEngagement(c *gin.Context) {
	var filter services.PlayerReportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rows, err := h.reportService.PlayerEngagement(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	sortBy, sortDir := sortParams(c)
	rows = services.SortRows(rows, sortBy, sortDir)
	c.JSON(http.StatusOK, gin.H{"rows": rows, "count": len(rows)})
}

func (h *ReportHandler) DeveloperSuccess(c *gin.Context) {
	var filter services.DeveloperReportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rows, err := h.reportService.DeveloperSuccess(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	sortBy, sortDir := sortParams(c)
	rows = services.SortRows(rows, sortBy, sortDir)
	c.JSON(http.StatusOK, gin.H{"rows": rows, "count": len(rows)})
}

func (h *ReportHandler) ExportGamePerformance(c *gin.Context) {
	var filter services.GameReportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rows, err := h.reportService.GamePerformance(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	sortBy, sortDir := sortParams(c)
	rows = services.SortRows(rows, sortBy, sortDir)

	var revenue float64
	for _, r := range rows {
		revenue += r.TotalRevenue
	}
	summary := []services.ExportField{
		{Key: "total_games", Value: len(rows)},
		{Key: "total_revenue", Value: revenue},
	}

	h.deliver(c, "game-performance-report", "Game Performance Report",
		services.GamePerformanceRecords(rows), summary, sortBy, sortDir)
}

func (h *ReportHandler) ExportPlayerEngagement(c *gin.Context) {
	var filter services.PlayerReportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rows, err := h.reportService.PlayerEngagement(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	sortBy, sortDir := sortParams(c)
	rows = services.SortRows(rows, sortBy, sortDir)

	var spent float64
	for _, r := range rows {
		spent += r.TotalSpent
	}
	summary := []services.ExportField{
		{Key: "total_players", Value: len(rows)},
		{Key: "total_spent", Value: spent},
	}

	h.deliver(c, "player-engagement-report", "Player Engagement Report",
		services.PlayerEngagementRecords(rows), summary, sortBy, sortDir)
}

func (h *ReportHandler) ExportDeveloperSuccess(c *gin.Context) {
	var filter services.DeveloperReportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rows, err := h.reportService.DeveloperSuccess(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	sortBy, sortDir := sortParams(c)
	rows = services.SortRows(rows, sortBy, sortDir)

	var revenue float64
	for _, r := range rows {
		revenue += r.TotalRevenue
	}
	summary := []services.ExportField{
		{Key: "total_developers", Value: len(rows)},
		{Key: "total_revenue", Value: revenue},
	}

	h.deliver(c, "developer-success-report", "Developer Success Report",
		services.DeveloperSuccessRecords(rows), summary, sortBy, sortDir)
}

// deliver serializes the records in the requested format and sends them as an
// attachment. The artifact is fully built before a single byte is written, so
// a serialization failure produces an error response, never a partial file.
func (h *ReportHandler) deliver(c *gin.Context, slug, title string, records []services.ExportRecord, summary []services.ExportField, sortBy string, sortDir services.SortDirection) {
	now := time.Now()
	format := c.DefaultQuery("format", "csv")

	switch format {
	case "csv":
		data, err := services.ExportCSV(records)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		filename := services.ExportFilename(slug, "csv", now, sortBy, sortDir)
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		c.Data(http.StatusOK, "text/csv; charset=utf-8", data)

	case "pdf":
		opts := services.PDFOptions{
			Title:       title,
			GeneratedAt: now,
			Summary:     summary,
		}
		data, err := services.ExportPDF(opts, records)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		filename := services.ExportFilename(slug, "pdf", now, sortBy, sortDir)
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		c.Data(http.StatusOK, "application/pdf", data)

	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown export format: " + format})
	}
}
