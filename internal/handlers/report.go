package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ngenohkevin/bookstore-admin/internal/middleware"
	"github.com/ngenohkevin/bookstore-admin/internal/services"
)

// ReportHandler exposes the asynchronous sales-statistics feature.
type ReportHandler struct {
	reportService *services.ReportService
}

// NewReportHandler creates a report handler.
func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// GenerateReport starts generation; the reporting user is derived from the
// forwarded token.
func (h *ReportHandler) GenerateReport(c *gin.Context) {
	resp, err := h.reportService.Generate(c.Request.Context(), middleware.TokenFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, SuccessResponse{
		Success: true,
		Data:    resp,
		Message: "Report generation started",
	})
}

// GetReportStatus returns the current progress snapshot. The dashboard polls
// this endpoint; a short-lived cache absorbs the bursts.
func (h *ReportHandler) GetReportStatus(c *gin.Context) {
	status, err := h.reportService.Status(c.Request.Context(), middleware.TokenFromContext(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Data:    status,
	})
}

// GetReport returns the full report body.
func (h *ReportHandler) GetReport(c *gin.Context) {
	report, err := h.reportService.Get(c.Request.Context(), middleware.TokenFromContext(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Data:    report,
	})
}

// ListReports returns one page of the report history.
func (h *ReportHandler) ListReports(c *gin.Context) {
	page, limit := parsePaginationParams(c)

	result, err := h.reportService.List(c.Request.Context(), middleware.TokenFromContext(c), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Data:    result,
	})
}

// WaitReport long-polls until the report reaches a terminal state or the
// client goes away. A still-generating report keeps the request open.
func (h *ReportHandler) WaitReport(c *gin.Context) {
	report, err := h.reportService.Wait(
		c.Request.Context(), middleware.TokenFromContext(c), c.Param("id"), nil)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Data:    report,
	})
}
