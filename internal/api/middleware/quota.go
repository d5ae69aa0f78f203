package middleware

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/salon_go_server/internal/pkg/response"
	"github.com/qs3c/salon_go_server/internal/plan"
	"github.com/qs3c/salon_go_server/internal/service"
)

// QuotaCheck blocks appointment creation once the cycle's limit is reached.
// The rejection carries the current status so the dashboard can render the
// upgrade prompt. The service still takes the quota atomically on create.
func QuotaCheck(subs *service.SubscriptionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		companyID, ok := GetCompanyID(c)
		if !ok {
			response.AuthError(c, "")
			c.Abort()
			return
		}

		err := subs.CheckAppointmentQuota(c.Request.Context(), companyID)
		switch {
		case err == nil:
			c.Next()
			return
		case errors.Is(err, service.ErrLimitReached):
			status, statusErr := subs.GetStatus(c.Request.Context(), companyID)
			if statusErr != nil {
				log.Printf("Failed to load subscription status for company %d: %v", companyID, statusErr)
			}
			response.QuotaError(c, "Limite de agendamentos do plano atingido", status)
		case errors.Is(err, service.ErrBackendUnavailable):
			response.UnavailableError(c, "")
		default:
			log.Printf("Quota check failed for company %d: %v", companyID, err)
			response.ServerError(c, "Falha ao verificar o limite do plano")
		}
		c.Abort()
	}
}

// RequireFeature answers 1006 when the company's plan lacks f.
func RequireFeature(subs *service.SubscriptionService, f plan.Feature) gin.HandlerFunc {
	return func(c *gin.Context) {
		companyID, ok := GetCompanyID(c)
		if !ok {
			response.AuthError(c, "")
			c.Abort()
			return
		}

		err := subs.RequireFeature(c.Request.Context(), companyID, f)
		switch {
		case err == nil:
			c.Next()
			return
		case errors.Is(err, service.ErrFeatureLocked):
			response.FeatureLockedError(c, "Faça upgrade para o plano Profissional para acessar este recurso")
		case errors.Is(err, service.ErrBackendUnavailable):
			response.UnavailableError(c, "")
		default:
			log.Printf("Feature check %s failed for company %d: %v", f, companyID, err)
			response.ServerError(c, "")
		}
		c.Abort()
	}
}
