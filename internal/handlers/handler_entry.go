package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/syscompta/ledger/internal/core/domain"
	portssvc "github.com/syscompta/ledger/internal/core/ports/services"
	"github.com/syscompta/ledger/internal/dto"
	"github.com/syscompta/ledger/internal/middleware"
)

// entryHandler handles HTTP requests for journal entries and their
// lifecycle.
type entryHandler struct {
	entryService portssvc.EntrySvcFacade
}

func newEntryHandler(entryService portssvc.EntrySvcFacade) *entryHandler {
	return &entryHandler{entryService: entryService}
}

// RegisterEntryRoutes registers journal entry routes under a company group.
func RegisterEntryRoutes(rg *gin.RouterGroup, entryService portssvc.EntrySvcFacade) {
	h := newEntryHandler(entryService)

	entries := rg.Group("/entries")
	{
		entries.POST("", h.createEntry)
		entries.POST("/post", h.validateAndPost)
		entries.GET("", h.listEntries)
		entries.GET("/:entry_id", h.getEntry)
		entries.PUT("/:entry_id", h.updateEntry)
		entries.DELETE("/:entry_id", h.deleteEntry)
		entries.GET("/:entry_id/check", h.checkEntry)
		entries.POST("/:entry_id/validate", h.validateEntry)
		entries.POST("/:entry_id/unvalidate", h.unvalidateEntry)
		entries.POST("/:entry_id/close", h.closeEntry)
	}
}

// createEntry records a new draft journal entry.
func (h *entryHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.entryService.CreateEntry(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// validateAndPost records an entry and validates it in one call.
func (h *entryHandler) validateAndPost(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for validateAndPost", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.entryService.ValidateAndPost(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// listEntries returns a page of the company's entries.
func (h *entryHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Error("Failed to bind query for listEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	resp, err := h.entryService.ListEntries(c.Request.Context(), companyID, params)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getEntry returns one entry with its lines.
func (h *entryHandler) getEntry(c *gin.Context) {
	companyID := c.Param("company_id")
	entryID := c.Param("entry_id")

	entry, err := h.entryService.GetEntryByID(c.Request.Context(), companyID, entryID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// updateEntry rewrites a draft entry wholesale.
func (h *entryHandler) updateEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	entryID := c.Param("entry_id")

	var req dto.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for updateEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.entryService.UpdateDraftEntry(c.Request.Context(), companyID, entryID, req, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// deleteEntry removes a draft entry.
func (h *entryHandler) deleteEntry(c *gin.Context) {
	companyID := c.Param("company_id")
	entryID := c.Param("entry_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.entryService.DeleteDraftEntry(c.Request.Context(), companyID, entryID, userID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// checkEntry runs the validator without changing the entry and returns the
// full violation report.
func (h *entryHandler) checkEntry(c *gin.Context) {
	companyID := c.Param("company_id")
	entryID := c.Param("entry_id")

	verrs, err := h.entryService.CheckEntry(c.Request.Context(), companyID, entryID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToValidationReportResponse(entryID, verrs))
}

// validateEntry moves a draft entry to Validated.
func (h *entryHandler) validateEntry(c *gin.Context) {
	h.transition(c, h.entryService.ValidateEntry)
}

// unvalidateEntry reverts a Validated entry to Draft.
func (h *entryHandler) unvalidateEntry(c *gin.Context) {
	h.transition(c, h.entryService.UnvalidateEntry)
}

// closeEntry moves a Validated entry to Closed.
func (h *entryHandler) closeEntry(c *gin.Context) {
	h.transition(c, h.entryService.CloseEntry)
}

// transition runs one of the lifecycle operations and renders the result.
func (h *entryHandler) transition(c *gin.Context, op func(ctx context.Context, companyID, entryID, userID string) (*domain.JournalEntry, error)) {
	companyID := c.Param("company_id")
	entryID := c.Param("entry_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := op(c.Request.Context(), companyID, entryID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}
