package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/qs3c/salon_go_server/internal/model/dto"
	"github.com/qs3c/salon_go_server/internal/pkg/response"
	"github.com/qs3c/salon_go_server/internal/service"
)

type ProfessionalHandler struct {
	professionalService *service.ProfessionalService
}

func NewProfessionalHandler(professionalService *service.ProfessionalService) *ProfessionalHandler {
	return &ProfessionalHandler{
		professionalService: professionalService,
	}
}

// List GET /api/v1/professionals?available=true
func (h *ProfessionalHandler) List(c *gin.Context) {
	companyID, ok := mustCompany(c)
	if !ok {
		return
	}

	items, err := h.professionalService.List(c.Request.Context(), companyID, c.Query("available") == "true")
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, items)
}

// Create adds a professional within the plan's roster limit.
// POST /api/v1/professionals
func (h *ProfessionalHandler) Create(c *gin.Context) {
	companyID, ok := mustCompany(c)
	if !ok {
		return
	}

	var req dto.CreateProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	item, err := h.professionalService.Create(c.Request.Context(), companyID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.SuccessWithMessage(c, "Profissional cadastrado", item)
}

// Get GET /api/v1/professionals/:id
func (h *ProfessionalHandler) Get(c *gin.Context) {
	companyID, ok := mustCompany(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "ID de profissional inválido")
	if !ok {
		return
	}

	item, err := h.professionalService.Get(c.Request.Context(), companyID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, item)
}

// Update PUT /api/v1/professionals/:id
func (h *ProfessionalHandler) Update(c *gin.Context) {
	companyID, ok := mustCompany(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "ID de profissional inválido")
	if !ok {
		return
	}

	var req dto.UpdateProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	item, err := h.professionalService.Update(c.Request.Context(), companyID, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.SuccessWithMessage(c, "Profissional atualizado", item)
}

// Delete DELETE /api/v1/professionals/:id
func (h *ProfessionalHandler) Delete(c *gin.Context) {
	companyID, ok := mustCompany(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "ID de profissional inválido")
	if !ok {
		return
	}

	if err := h.professionalService.Delete(c.Request.Context(), companyID, id); err != nil {
		respondError(c, err)
		return
	}

	response.SuccessWithMessage(c, "Profissional removido", nil)
}
