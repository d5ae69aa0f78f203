package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/qs3c/salon_go_server/internal/model/dto"
	"github.com/qs3c/salon_go_server/internal/pkg/response"
	"github.com/qs3c/salon_go_server/internal/service"
)

type CatalogHandler struct {
	catalogService *service.CatalogService
}

func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

// List GET /api/v1/services?active=true
func (h *CatalogHandler) List(c *gin.Context) {
	companyID, ok := mustCompany(c)
	if !ok {
		return
	}

	items, err := h.catalogService.List(c.Request.Context(), companyID, c.Query("active") == "true")
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, items)
}

// Create adds a service to the catalog.
// POST /api/v1/services
func (h *CatalogHandler) Create(c *gin.Context) {
	companyID, ok := mustCompany(c)
	if !ok {
		return
	}

	var req dto.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	item, err := h.catalogService.Create(c.Request.Context(), companyID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.SuccessWithMessage(c, "Serviço cadastrado", item)
}

// Get GET /api/v1/services/:id
func (h *CatalogHandler) Get(c *gin.Context) {
	companyID, ok := mustCompany(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "ID de serviço inválido")
	if !ok {
		return
	}

	item, err := h.catalogService.Get(c.Request.Context(), companyID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, item)
}

// Update PUT /api/v1/services/:id
func (h *CatalogHandler) Update(c *gin.Context) {
	companyID, ok := mustCompany(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "ID de serviço inválido")
	if !ok {
		return
	}

	var req dto.UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	item, err := h.catalogService.Update(c.Request.Context(), companyID, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.SuccessWithMessage(c, "Serviço atualizado", item)
}

// Delete DELETE /api/v1/services/:id
func (h *CatalogHandler) Delete(c *gin.Context) {
	companyID, ok := mustCompany(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "ID de serviço inválido")
	if !ok {
		return
	}

	if err := h.catalogService.Delete(c.Request.Context(), companyID, id); err != nil {
		respondError(c, err)
		return
	}

	response.SuccessWithMessage(c, "Serviço removido", nil)
}
