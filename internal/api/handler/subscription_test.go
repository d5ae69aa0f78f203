package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs3c/salon_go_server/internal/model/dto"
	"github.com/qs3c/salon_go_server/internal/pkg/response"
	"github.com/qs3c/salon_go_server/internal/testutil"
)

func subscriptionRouter(ctx *testContext) *gin.Engine {
	h := NewSubscriptionHandler(ctx.Subscriptions)

	router := gin.New()
	router.GET("/plans", h.Plans)
	authed := router.Group("")
	authed.Use(mockAuth(ctx.companyID()))
	authed.GET("/subscription", h.GetStatus)
	authed.POST("/subscription/plan", h.ChangePlan)
	return router
}

func TestSubscriptionHandler_Plans(t *testing.T) {
	ctx := setupHandlers(t)

	w := performRequest(subscriptionRouter(ctx), http.MethodGet, "/plans", nil)

	var plans []dto.PlanInfo
	resp := decodeData(t, w, &plans)
	assert.Equal(t, response.CodeSuccess, resp.Code)
	require.Len(t, plans, 2)
	assert.Equal(t, "Gratuito", plans[0].Name)
	assert.Equal(t, 50, plans[0].MaxAppointments)
	assert.Equal(t, -1, plans[1].MaxAppointments)
}

func TestSubscriptionHandler_GetStatus(t *testing.T) {
	ctx := setupHandlers(t, testutil.WithUsed(45))

	w := performRequest(subscriptionRouter(ctx), http.MethodGet, "/subscription", nil)

	var status dto.SubscriptionStatus
	resp := decodeData(t, w, &status)
	assert.Equal(t, response.CodeSuccess, resp.Code)
	assert.Equal(t, 45, status.UsedAppointments)
	assert.Equal(t, 5, status.Remaining)
	assert.Equal(t, 90, status.PercentUsed)
	assert.False(t, status.IsLimitReached)
	assert.True(t, status.ShouldPromptUpgrade)
	assert.False(t, status.Features["financial"])
}

func TestSubscriptionHandler_ChangePlan(t *testing.T) {
	ctx := setupHandlers(t, testutil.WithUsed(50))
	router := subscriptionRouter(ctx)

	w := performRequest(router, http.MethodPost, "/subscription/plan", dto.ChangePlanRequest{Plan: "Profissional"})
	var status dto.SubscriptionStatus
	resp := decodeData(t, w, &status)
	assert.Equal(t, response.CodeSuccess, resp.Code)
	assert.Equal(t, "Profissional", status.Plan.Name)
	assert.False(t, status.IsLimitReached)
	assert.True(t, status.Features["financial"])

	w = performRequest(router, http.MethodPost, "/subscription/plan", dto.ChangePlanRequest{Plan: "Diamante"})
	assert.Equal(t, response.CodeParamError, parseResponse(t, w).Code)

	w = performRequest(router, http.MethodPost, "/subscription/plan", map[string]string{})
	assert.Equal(t, response.CodeParamError, parseResponse(t, w).Code)
}

func TestSubscriptionHandler_NoCompany(t *testing.T) {
	ctx := setupHandlers(t)
	router := gin.New()
	router.GET("/subscription", NewSubscriptionHandler(ctx.Subscriptions).GetStatus)

	w := performRequest(router, http.MethodGet, "/subscription", nil)

	assert.Equal(t, response.CodeAuthFailed, parseResponse(t, w).Code)
}
