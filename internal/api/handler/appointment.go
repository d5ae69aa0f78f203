package handler

import (
	"errors"
	"log"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/salon_go_server/internal/model/dto"
	"github.com/qs3c/salon_go_server/internal/pkg/response"
	"github.com/qs3c/salon_go_server/internal/service"
)

type AppointmentHandler struct {
	appointmentService  *service.AppointmentService
	subscriptionService *service.SubscriptionService
}

func NewAppointmentHandler(appointmentService *service.AppointmentService, subscriptionService *service.SubscriptionService) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentService:  appointmentService,
		subscriptionService: subscriptionService,
	}
}

// Create books an appointment and takes one unit of the cycle's quota.
// POST /api/v1/appointments
func (h *AppointmentHandler) Create(c *gin.Context) {
	companyID, ok := mustCompany(c)
	if !ok {
		return
	}

	var req dto.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	item, err := h.appointmentService.Create(c.Request.Context(), companyID, &req)
	if err != nil {
		if errors.Is(err, service.ErrLimitReached) {
			h.quotaError(c, companyID)
			return
		}
		respondError(c, err)
		return
	}

	response.SuccessWithMessage(c, "Agendamento criado", item)
}

// List is the list view of one day.
// GET /api/v1/appointments?date=&professional_id=&status=
func (h *AppointmentHandler) List(c *gin.Context) {
	companyID, ok := mustCompany(c)
	if !ok {
		return
	}
	q, ok := parseAppointmentQuery(c)
	if !ok {
		return
	}

	items, err := h.appointmentService.List(c.Request.Context(), companyID, q)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, items)
}

// Calendar is the hour by professional grid of one day.
// GET /api/v1/appointments/calendar?date=&professional_id=&status=
func (h *AppointmentHandler) Calendar(c *gin.Context) {
	companyID, ok := mustCompany(c)
	if !ok {
		return
	}
	q, ok := parseAppointmentQuery(c)
	if !ok {
		return
	}

	grid, err := h.appointmentService.Calendar(c.Request.Context(), companyID, q)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, grid)
}

// Get GET /api/v1/appointments/:id
func (h *AppointmentHandler) Get(c *gin.Context) {
	companyID, ok := mustCompany(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "ID de agendamento inválido")
	if !ok {
		return
	}

	item, err := h.appointmentService.Get(c.Request.Context(), companyID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, item)
}

// Update reschedules an appointment.
// PUT /api/v1/appointments/:id
func (h *AppointmentHandler) Update(c *gin.Context) {
	companyID, ok := mustCompany(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "ID de agendamento inválido")
	if !ok {
		return
	}

	var req dto.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	item, err := h.appointmentService.Update(c.Request.Context(), companyID, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.SuccessWithMessage(c, "Agendamento atualizado", item)
}

// UpdateStatus PATCH /api/v1/appointments/:id/status
func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	companyID, ok := mustCompany(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "ID de agendamento inválido")
	if !ok {
		return
	}

	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	item, err := h.appointmentService.UpdateStatus(c.Request.Context(), companyID, id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	response.SuccessWithMessage(c, "Status atualizado", item)
}

// Delete DELETE /api/v1/appointments/:id
func (h *AppointmentHandler) Delete(c *gin.Context) {
	companyID, ok := mustCompany(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "ID de agendamento inválido")
	if !ok {
		return
	}

	if err := h.appointmentService.Delete(c.Request.Context(), companyID, id); err != nil {
		respondError(c, err)
		return
	}

	response.SuccessWithMessage(c, "Agendamento removido", nil)
}

// quotaError answers 1004 with the status the usage card needs.
func (h *AppointmentHandler) quotaError(c *gin.Context, companyID int64) {
	status, err := h.subscriptionService.GetStatus(c.Request.Context(), companyID)
	if err != nil {
		log.Printf("Failed to load subscription status for company %d: %v", companyID, err)
	}
	response.QuotaError(c, "Limite de agendamentos do plano atingido", status)
}

func parseAppointmentQuery(c *gin.Context) (service.AppointmentQuery, bool) {
	q := service.AppointmentQuery{
		Date:   c.Query("date"),
		Status: c.Query("status"),
	}
	if raw := c.Query("professional_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			response.ParamError(c, "professional_id inválido")
			return q, false
		}
		q.ProfessionalID = &id
	}
	return q, true
}
