package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/ledger_posting_app/internal/core/ports/services"
	"github.com/SscSPs/ledger_posting_app/internal/dto"
	"github.com/SscSPs/ledger_posting_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ledgerHandler handles HTTP requests for draft ledgers and their journal entries.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// newLedgerHandler creates a new ledgerHandler.
func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{
		ledgerService: ls,
	}
}

// RegisterLedgerRoutes registers the general ledger and general journal routes.
func RegisterLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	ledgers := rg.Group("/general-ledgers")
	{
		ledgers.POST("/", h.createLedger)
		ledgers.GET("/", h.listLedgers)
		ledgers.GET("/:ledgerID", h.getLedger)
		ledgers.PUT("/:ledgerID", h.updateLedger)
		ledgers.DELETE("/:ledgerID", h.deleteLedger)
	}

	journals := rg.Group("/general-journals")
	{
		journals.GET("/:ledgerID", h.getJournal)
		journals.POST("/create-or-update", h.saveEntries)
		journals.DELETE("/:entryID", h.deleteEntry)
	}
}

// createLedger godoc
// @Summary Create a draft ledger
// @Description Opens a new DRAFT ledger. The opening balance is carried in from the latest earlier ledger.
// @Tags general-ledgers
// @Accept json
// @Produce json
// @Param ledger body dto.CreateLedgerRequest true "Ledger header"
// @Success 201 {object} dto.LedgerResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create ledger"
// @Security BearerAuth
// @Router /general-ledgers/ [post]
func (h *ledgerHandler) createLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateLedgerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}

	actor, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	ledger, err := h.ledgerService.CreateLedger(c.Request.Context(), req, actor)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create ledger")
		return
	}

	logger.Info("Ledger created", slog.String("ledger_id", ledger.LedgerID))
	c.JSON(http.StatusCreated, dto.ToLedgerResponse(ledger))
}

// listLedgers godoc
// @Summary List ledgers
// @Description Lists ledgers newest first, optionally filtered by status
// @Tags general-ledgers
// @Produce json
// @Param status query string false "DRAFT or POSTED"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Token of the next page"
// @Success 200 {object} dto.ListLedgersResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list ledgers"
// @Security BearerAuth
// @Router /general-ledgers/ [get]
func (h *ledgerHandler) listLedgers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListLedgersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, err)
		return
	}

	resp, err := h.ledgerService.ListLedgers(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list ledgers")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getLedger godoc
// @Summary Get a ledger
// @Description Retrieves a ledger with its journal entries and recomputed totals
// @Tags general-ledgers
// @Produce json
// @Param ledgerID path string true "Ledger ID"
// @Success 200 {object} dto.LedgerResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Ledger not found"
// @Failure 500 {object} map[string]string "Failed to retrieve ledger"
// @Security BearerAuth
// @Router /general-ledgers/{ledgerID} [get]
func (h *ledgerHandler) getLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledgerID := c.Param("ledgerID")

	ledger, err := h.ledgerService.GetLedger(c.Request.Context(), ledgerID)
	if err != nil {
		respondServiceError(c, logger.With(slog.String("ledger_id", ledgerID)), err, "Failed to retrieve ledger")
		return
	}

	c.JSON(http.StatusOK, dto.ToLedgerResponse(ledger))
}

// updateLedger godoc
// @Summary Update a draft ledger
// @Description Changes the description or transaction date of a DRAFT ledger
// @Tags general-ledgers
// @Accept json
// @Produce json
// @Param ledgerID path string true "Ledger ID"
// @Param ledger body dto.UpdateLedgerRequest true "Fields to change"
// @Success 200 {object} dto.LedgerResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Ledger not found"
// @Failure 409 {object} map[string]string "Ledger is posted"
// @Failure 500 {object} map[string]string "Failed to update ledger"
// @Security BearerAuth
// @Router /general-ledgers/{ledgerID} [put]
func (h *ledgerHandler) updateLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledgerID := c.Param("ledgerID")

	var req dto.UpdateLedgerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}

	actor, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	ledger, err := h.ledgerService.UpdateLedger(c.Request.Context(), ledgerID, req, actor)
	if err != nil {
		respondServiceError(c, logger.With(slog.String("ledger_id", ledgerID)), err, "Failed to update ledger")
		return
	}

	c.JSON(http.StatusOK, dto.ToLedgerResponse(ledger))
}

// deleteLedger godoc
// @Summary Delete a draft ledger
// @Description Deletes a DRAFT ledger that was never posted, with its entries
// @Tags general-ledgers
// @Param ledgerID path string true "Ledger ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Ledger not found"
// @Failure 409 {object} map[string]string "Ledger is or was posted"
// @Failure 500 {object} map[string]string "Failed to delete ledger"
// @Security BearerAuth
// @Router /general-ledgers/{ledgerID} [delete]
func (h *ledgerHandler) deleteLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledgerID := c.Param("ledgerID")

	actor, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	if err := h.ledgerService.DeleteLedger(c.Request.Context(), ledgerID, actor); err != nil {
		respondServiceError(c, logger.With(slog.String("ledger_id", ledgerID)), err, "Failed to delete ledger")
		return
	}

	logger.Info("Ledger deleted", slog.String("ledger_id", ledgerID))
	c.Status(http.StatusNoContent)
}

// getJournal godoc
// @Summary Get a ledger's journal
// @Description Retrieves a ledger with its journal entries. Same response as GET /general-ledgers/{ledgerID}
// @Tags general-journals
// @Produce json
// @Param ledgerID path string true "Ledger ID"
// @Success 200 {object} dto.LedgerResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Ledger not found"
// @Failure 500 {object} map[string]string "Failed to retrieve ledger"
// @Security BearerAuth
// @Router /general-journals/{ledgerID} [get]
func (h *ledgerHandler) getJournal(c *gin.Context) {
	h.getLedger(c)
}

// saveEntries godoc
// @Summary Create or update journal entries
// @Description Creates and updates entries of one DRAFT ledger in a single transaction and returns the recomputed ledger
// @Tags general-journals
// @Accept json
// @Produce json
// @Param entries body dto.SaveEntriesRequest true "Entries to create and update"
// @Success 200 {object} dto.LedgerResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Ledger or entry not found"
// @Failure 409 {object} map[string]string "Ledger is posted"
// @Failure 500 {object} map[string]string "Failed to save entries"
// @Security BearerAuth
// @Router /general-journals/create-or-update [post]
func (h *ledgerHandler) saveEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SaveEntriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}

	actor, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("ledger_id", req.LedgerID))
	ledger, err := h.ledgerService.SaveEntries(c.Request.Context(), req, actor)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to save entries")
		return
	}

	logger.Info("Journal entries saved",
		slog.Int("created", len(req.CreateEntries)),
		slog.Int("updated", len(req.UpdateEntries)),
	)
	c.JSON(http.StatusOK, dto.ToLedgerResponse(ledger))
}

// deleteEntry godoc
// @Summary Delete a journal entry
// @Description Removes an entry from its DRAFT ledger and returns the recomputed ledger
// @Tags general-journals
// @Produce json
// @Param entryID path string true "Entry ID"
// @Success 200 {object} dto.LedgerResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Ledger is posted"
// @Failure 500 {object} map[string]string "Failed to delete entry"
// @Security BearerAuth
// @Router /general-journals/{entryID} [delete]
func (h *ledgerHandler) deleteEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	actor, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	ledger, err := h.ledgerService.DeleteEntry(c.Request.Context(), entryID, actor)
	if err != nil {
		respondServiceError(c, logger.With(slog.String("entry_id", entryID)), err, "Failed to delete entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToLedgerResponse(ledger))
}
