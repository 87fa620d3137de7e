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

// trialBalanceHandler handles HTTP requests for trial balances.
type trialBalanceHandler struct {
	tbService portssvc.TrialBalanceSvcFacade
}

func newTrialBalanceHandler(tbService portssvc.TrialBalanceSvcFacade) *trialBalanceHandler {
	return &trialBalanceHandler{tbService: tbService}
}

// RegisterTrialBalanceRoutes registers trial balance routes under a company
// group.
func RegisterTrialBalanceRoutes(rg *gin.RouterGroup, tbService portssvc.TrialBalanceSvcFacade) {
	h := newTrialBalanceHandler(tbService)

	tbs := rg.Group("/trial-balances")
	{
		tbs.POST("", h.generate)
		tbs.GET("", h.list)
		tbs.GET("/:trial_balance_id", h.get)
		tbs.GET("/:trial_balance_id/by-class", h.getByClass)
		tbs.POST("/:trial_balance_id/validate", h.validate)
		tbs.POST("/:trial_balance_id/publish", h.publish)
	}
}

// generate computes a trial balance over the requested period.
func (h *trialBalanceHandler) generate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	var req dto.GenerateTrialBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for generate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	tb, err := h.tbService.Generate(c.Request.Context(), companyID, req.StandardID, req.PeriodStart, req.PeriodEnd, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToTrialBalanceResponse(tb))
}

// list returns a page of the company's trial balances.
func (h *trialBalanceHandler) list(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	var params dto.ListTrialBalancesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Error("Failed to bind query for list", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	resp, err := h.tbService.List(c.Request.Context(), companyID, params)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// get returns a trial balance with its account balances.
func (h *trialBalanceHandler) get(c *gin.Context) {
	companyID := c.Param("company_id")
	trialBalanceID := c.Param("trial_balance_id")

	tb, err := h.tbService.GetByID(c.Request.Context(), companyID, trialBalanceID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(tb))
}

// getByClass returns the trial balance's account balances grouped by
// account class digit.
func (h *trialBalanceHandler) getByClass(c *gin.Context) {
	companyID := c.Param("company_id")
	trialBalanceID := c.Param("trial_balance_id")

	tb, err := h.tbService.GetByID(c.Request.Context(), companyID, trialBalanceID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"trialBalanceId": tb.TrialBalanceID,
		"classes":        dto.ToBalancesByClassResponse(tb),
	})
}

// validate promotes a Generated trial balance to Validated.
func (h *trialBalanceHandler) validate(c *gin.Context) {
	h.transition(c, h.tbService.Validate)
}

// publish promotes a Validated trial balance to Published.
func (h *trialBalanceHandler) publish(c *gin.Context) {
	h.transition(c, h.tbService.Publish)
}

func (h *trialBalanceHandler) transition(c *gin.Context, op func(ctx context.Context, companyID, trialBalanceID, userID string) (*domain.TrialBalance, error)) {
	companyID := c.Param("company_id")
	trialBalanceID := c.Param("trial_balance_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	tb, err := op(c.Request.Context(), companyID, trialBalanceID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(tb))
}
