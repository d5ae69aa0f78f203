package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/qs3c/salon_go_server/internal/model/dto"
	"github.com/qs3c/salon_go_server/internal/pkg/response"
	"github.com/qs3c/salon_go_server/internal/service"
)

type FinanceHandler struct {
	financeService *service.FinanceService
}

func NewFinanceHandler(financeService *service.FinanceService) *FinanceHandler {
	return &FinanceHandler{
		financeService: financeService,
	}
}

// ListTransactions GET /api/v1/finance/transactions?from=&to=&kind=
func (h *FinanceHandler) ListTransactions(c *gin.Context) {
	companyID, ok := mustCompany(c)
	if !ok {
		return
	}

	items, err := h.financeService.ListTransactions(c.Request.Context(), companyID, c.Query("from"), c.Query("to"), c.Query("kind"))
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, items)
}

// CreateTransaction records a manual income or expense.
// POST /api/v1/finance/transactions
func (h *FinanceHandler) CreateTransaction(c *gin.Context) {
	companyID, ok := mustCompany(c)
	if !ok {
		return
	}

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	item, err := h.financeService.RecordTransaction(c.Request.Context(), companyID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.SuccessWithMessage(c, "Lançamento registrado", item)
}

// Summary GET /api/v1/finance/summary?from=&to=
func (h *FinanceHandler) Summary(c *gin.Context) {
	companyID, ok := mustCompany(c)
	if !ok {
		return
	}

	summary, err := h.financeService.Summary(c.Request.Context(), companyID, c.Query("from"), c.Query("to"))
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, summary)
}
