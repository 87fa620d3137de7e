package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/syscompta/ledger/internal/core/ports/services"
)

// statementHandler handles HTTP requests for derived financial statements.
type statementHandler struct {
	statementService portssvc.StatementSvcFacade
}

func newStatementHandler(statementService portssvc.StatementSvcFacade) *statementHandler {
	return &statementHandler{statementService: statementService}
}

// RegisterStatementRoutes registers statement derivation routes under a
// company group. Balance sheet and income statement hang off a single trial
// balance; the cash flow statement needs an opening and a closing one.
func RegisterStatementRoutes(rg *gin.RouterGroup, statementService portssvc.StatementSvcFacade) {
	h := newStatementHandler(statementService)

	tbs := rg.Group("/trial-balances/:trial_balance_id/statements")
	{
		tbs.GET("/balance-sheet", h.balanceSheet)
		tbs.GET("/income-statement", h.incomeStatement)
	}
	rg.GET("/statements/cash-flow", h.cashFlowStatement)
	rg.GET("/statements", h.deriveAll)
}

// balanceSheet derives the balance sheet from a trial balance.
func (h *statementHandler) balanceSheet(c *gin.Context) {
	companyID := c.Param("company_id")
	trialBalanceID := c.Param("trial_balance_id")

	bs, err := h.statementService.BalanceSheet(c.Request.Context(), companyID, trialBalanceID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, bs)
}

// incomeStatement derives the income statement from a trial balance.
func (h *statementHandler) incomeStatement(c *gin.Context) {
	companyID := c.Param("company_id")
	trialBalanceID := c.Param("trial_balance_id")

	is, err := h.statementService.IncomeStatement(c.Request.Context(), companyID, trialBalanceID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, is)
}

// cashFlowStatement derives the cash flow statement from an opening and a
// closing trial balance, passed as query parameters.
func (h *statementHandler) cashFlowStatement(c *gin.Context) {
	companyID := c.Param("company_id")
	openingID := c.Query("openingTrialBalanceId")
	closingID := c.Query("closingTrialBalanceId")
	if openingID == "" || closingID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "openingTrialBalanceId and closingTrialBalanceId are required"})
		return
	}

	cf, err := h.statementService.CashFlowStatement(c.Request.Context(), companyID, openingID, closingID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cf)
}

// deriveAll derives the full statement set in one call, with the same query
// parameters as the cash flow statement.
func (h *statementHandler) deriveAll(c *gin.Context) {
	companyID := c.Param("company_id")
	openingID := c.Query("openingTrialBalanceId")
	closingID := c.Query("closingTrialBalanceId")
	if openingID == "" || closingID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "openingTrialBalanceId and closingTrialBalanceId are required"})
		return
	}

	all, err := h.statementService.DeriveAll(c.Request.Context(), companyID, openingID, closingID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, all)
}
