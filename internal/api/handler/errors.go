package handler

import (
	"errors"
	"log"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/salon_go_server/internal/api/middleware"
	"github.com/qs3c/salon_go_server/internal/pkg/response"
	"github.com/qs3c/salon_go_server/internal/plan"
	"github.com/qs3c/salon_go_server/internal/service"
)

var notFoundMessages = map[error]string{
	service.ErrCompanyNotFound:      "Empresa não encontrada",
	service.ErrAppointmentNotFound:  "Agendamento não encontrado",
	service.ErrProfessionalNotFound: "Profissional não encontrado",
	service.ErrClientNotFound:       "Cliente não encontrado",
	service.ErrServiceNotFound:      "Serviço não encontrado",
}

var paramMessages = map[error]string{
	service.ErrInvalidTransition:       "Mudança de status não permitida",
	service.ErrStatusConflict:          "O status foi alterado por outra pessoa, tente novamente",
	service.ErrAppointmentClosed:       "Agendamento já finalizado",
	service.ErrProfessionalUnavailable: "Profissional indisponível",
	service.ErrServiceInactive:         "Serviço inativo",
	service.ErrUnknownPlan:             "Plano desconhecido",
}

// respondError maps a service error onto the response envelope.
func respondError(c *gin.Context, err error) {
	for target, msg := range notFoundMessages {
		if errors.Is(err, target) {
			response.NotFoundError(c, msg)
			return
		}
	}
	for target, msg := range paramMessages {
		if errors.Is(err, target) {
			response.ParamError(c, msg)
			return
		}
	}

	var validation *plan.ValidationError
	switch {
	case errors.Is(err, service.ErrInvalidInput), errors.As(err, &validation):
		response.ParamError(c, err.Error())
	case errors.Is(err, service.ErrLimitReached):
		response.QuotaError(c, "Limite de agendamentos do plano atingido", nil)
	case errors.Is(err, service.ErrProfessionalLimit):
		response.QuotaError(c, "Limite de profissionais do plano atingido", nil)
	case errors.Is(err, service.ErrFeatureLocked):
		response.FeatureLockedError(c, "Faça upgrade para o plano Profissional para acessar este recurso")
	case errors.Is(err, service.ErrBackendUnavailable):
		log.Printf("Backend unavailable on %s %s: %v", c.Request.Method, c.FullPath(), err)
		response.UnavailableError(c, "")
	default:
		log.Printf("Request %s %s failed: %v", c.Request.Method, c.FullPath(), err)
		response.ServerError(c, "")
	}
}

// mustCompany reads the company from the context, answering 1001 when absent.
func mustCompany(c *gin.Context) (int64, bool) {
	companyID, ok := middleware.GetCompanyID(c)
	if !ok {
		response.AuthError(c, "")
	}
	return companyID, ok
}

func parseID(c *gin.Context, msg string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.ParamError(c, msg)
		return 0, false
	}
	return id, true
}
