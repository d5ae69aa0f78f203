package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/qs3c/salon_go_server/internal/model/dto"
	"github.com/qs3c/salon_go_server/internal/pkg/response"
	"github.com/qs3c/salon_go_server/internal/service"
)

type SubscriptionHandler struct {
	subscriptionService *service.SubscriptionService
}

func NewSubscriptionHandler(subscriptionService *service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionService: subscriptionService,
	}
}

// Plans lists the plan catalog.
// GET /api/v1/plans
func (h *SubscriptionHandler) Plans(c *gin.Context) {
	response.Success(c, h.subscriptionService.Plans())
}

// GetStatus returns usage, limits and feature access for the company.
// GET /api/v1/subscription
func (h *SubscriptionHandler) GetStatus(c *gin.Context) {
	companyID, ok := mustCompany(c)
	if !ok {
		return
	}

	status, err := h.subscriptionService.GetStatus(c.Request.Context(), companyID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, status)
}

// ChangePlan moves the company to another plan.
// POST /api/v1/subscription/plan
func (h *SubscriptionHandler) ChangePlan(c *gin.Context) {
	companyID, ok := mustCompany(c)
	if !ok {
		return
	}

	var req dto.ChangePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	status, err := h.subscriptionService.ChangePlan(c.Request.Context(), companyID, req.Plan)
	if err != nil {
		respondError(c, err)
		return
	}

	response.SuccessWithMessage(c, "Plano atualizado", status)
}
