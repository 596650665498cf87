package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/ledger_posting_app/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_posting_app/internal/core/ports/services"
	"github.com/SscSPs/ledger_posting_app/internal/dto"
	"github.com/SscSPs/ledger_posting_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests related to posting reports
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// RegisterReportingRoutes registers routes related to posting reports
func RegisterReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	rg.GET("/posting/report", h.getPostingReport)
}

// getPostingReport godoc
// @Summary Generate the posting report of a period
// @Description Lists the active postings of a month with period totals and a per-account trial balance over their frozen lines
// @Tags reports
// @Produce json
// @Param month query int true "Period month"
// @Param year query int true "Period year"
// @Success 200 {object} dto.PostingReportResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /posting/report [get]
func (h *reportingHandler) getPostingReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var q dto.PeriodQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, logger, err)
		return
	}

	period, err := domain.NewPeriod(q.Month, q.Year)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to generate report")
		return
	}

	logger = logger.With(slog.String("period", period.String()))
	logger.Info("Received request to generate posting report")

	report, err := h.reportingService.PostingReport(c.Request.Context(), period)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to generate report")
		return
	}

	logger.Info("Posting report generated successfully", slog.Int("posting_count", len(report.Postings)))
	c.JSON(http.StatusOK, dto.ToPostingReportResponse(report))
}
