package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/ledger_posting_app/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_posting_app/internal/core/ports/services"
	"github.com/SscSPs/ledger_posting_app/internal/dto"
	"github.com/SscSPs/ledger_posting_app/internal/middleware"
	"github.com/SscSPs/ledger_posting_app/internal/utils"
	"github.com/gin-gonic/gin"
)

const (
	eventLedgerPosted   = "ledger_posted"
	eventPeriodUnposted = "period_unposted"
)

// postingHandler handles HTTP requests of the posting engine.
type postingHandler struct {
	postingService portssvc.PostingSvcFacade
	posthogClient  *utils.PosthogClientWrapper
}

// newPostingHandler creates a new postingHandler.
func newPostingHandler(ps portssvc.PostingSvcFacade, posthogClient *utils.PosthogClientWrapper) *postingHandler {
	return &postingHandler{
		postingService: ps,
		posthogClient:  posthogClient,
	}
}

// RegisterPostingRoutes registers posting, unposting and posting lookup routes.
// posthogClient may be nil.
func RegisterPostingRoutes(rg *gin.RouterGroup, postingService portssvc.PostingSvcFacade, posthogClient *utils.PosthogClientWrapper) {
	h := newPostingHandler(postingService, posthogClient)

	posting := rg.Group("/posting")
	{
		posting.POST("/", h.post)
		posting.POST("/unpost", h.unpostPeriod)
		posting.GET("/", h.listPostings)
		posting.GET("/unposted-ledgers", h.listUnpostedLedgers)
		posting.GET("/:postingID", h.getPostingDetail)
	}
}

// post godoc
// @Summary Post a ledger
// @Description Validates a DRAFT ledger and commits it as a posting with frozen lines. The poster is the caller.
// @Tags posting
// @Accept json
// @Produce json
// @Param posting body dto.PostLedgerRequest true "Ledger to post"
// @Success 201 {object} dto.PostingDetailResponse
// @Failure 400 {object} map[string]string "Empty or unbalanced ledger"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Ledger not found"
// @Failure 409 {object} map[string]string "Ledger already posted"
// @Failure 500 {object} map[string]string "Failed to post ledger"
// @Security BearerAuth
// @Router /posting/ [post]
func (h *postingHandler) post(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.PostLedgerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}

	actor, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("ledger_id", req.LedgerID))
	posting, err := h.postingService.Post(c.Request.Context(), req.LedgerID, actor)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to post ledger")
		return
	}

	middleware.PosthogEvent(c, h.posthogClient, eventLedgerPosted, map[string]any{
		"ledger_id":        posting.LedgerID,
		"posting_id":       posting.PostingID,
		"transaction_code": posting.TransactionCode,
		"line_count":       len(posting.Lines),
	})

	c.JSON(http.StatusCreated, dto.ToPostingDetailResponse(posting))
}

// unpostPeriod godoc
// @Summary Unpost a period
// @Description Reverses every active posting of a month in one transaction and returns the affected ledgers to DRAFT
// @Tags posting
// @Accept json
// @Produce json
// @Param period body dto.UnpostRequest true "Period to unpost"
// @Success 200 {object} dto.UnpostResponse
// @Failure 400 {object} map[string]string "Invalid period"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Role may not unpost"
// @Failure 404 {object} map[string]string "No active postings for the period"
// @Failure 500 {object} map[string]string "Failed to unpost period"
// @Security BearerAuth
// @Router /posting/unpost [post]
func (h *postingHandler) unpostPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UnpostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}

	actor, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	period, err := domain.NewPeriod(req.Month, req.Year)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to unpost period")
		return
	}

	logger = logger.With(slog.String("period", period.String()))
	result, err := h.postingService.UnpostPeriod(c.Request.Context(), period, actor)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to unpost period")
		return
	}

	middleware.PosthogEvent(c, h.posthogClient, eventPeriodUnposted, map[string]any{
		"month": period.Month,
		"year":  period.Year,
		"count": result.Count,
	})

	c.JSON(http.StatusOK, dto.ToUnpostResponse(result))
}

// listPostings godoc
// @Summary List postings
// @Description Lists postings newest first, filtered by period and unposted flag
// @Tags posting
// @Produce json
// @Param month query int false "Period month"
// @Param year query int false "Period year"
// @Param is_unposted query bool false "Only unposted (true) or active (false) postings"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Token of the next page"
// @Success 200 {object} dto.ListPostingsResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list postings"
// @Security BearerAuth
// @Router /posting/ [get]
func (h *postingHandler) listPostings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListPostingsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, err)
		return
	}

	resp, err := h.postingService.ListPostings(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list postings")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// listUnpostedLedgers godoc
// @Summary List ledgers ready to post
// @Description Lists DRAFT ledgers that have at least one journal entry
// @Tags posting
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Token of the next page"
// @Success 200 {object} dto.ListLedgersResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list ledgers"
// @Security BearerAuth
// @Router /posting/unposted-ledgers [get]
func (h *postingHandler) listUnpostedLedgers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListLedgersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, err)
		return
	}

	resp, err := h.postingService.ListUnpostedLedgers(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list ledgers")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getPostingDetail godoc
// @Summary Get a posting
// @Description Retrieves a posting header with its frozen lines and running balances
// @Tags posting
// @Produce json
// @Param postingID path string true "Posting ID"
// @Success 200 {object} dto.PostingDetailResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Posting not found"
// @Failure 500 {object} map[string]string "Failed to retrieve posting"
// @Security BearerAuth
// @Router /posting/{postingID} [get]
func (h *postingHandler) getPostingDetail(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	postingID := c.Param("postingID")

	posting, err := h.postingService.GetPostingDetail(c.Request.Context(), postingID)
	if err != nil {
		respondServiceError(c, logger.With(slog.String("posting_id", postingID)), err, "Failed to retrieve posting")
		return
	}

	c.JSON(http.StatusOK, dto.ToPostingDetailResponse(posting))
}
