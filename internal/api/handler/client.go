package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/salon_go_server/internal/model/dto"
	"github.com/qs3c/salon_go_server/internal/pkg/response"
	"github.com/qs3c/salon_go_server/internal/service"
)

type ClientHandler struct {
	clientService *service.ClientService
}

func NewClientHandler(clientService *service.ClientService) *ClientHandler {
	return &ClientHandler{
		clientService: clientService,
	}
}

// List pages through the client base.
// GET /api/v1/clients?page=&page_size=&search=
func (h *ClientHandler) List(c *gin.Context) {
	companyID, ok := mustCompany(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	items, total, page, pageSize, err := h.clientService.List(c.Request.Context(), companyID, page, pageSize, c.Query("search"))
	if err != nil {
		respondError(c, err)
		return
	}

	response.SuccessPage(c, total, page, pageSize, items)
}

// Create POST /api/v1/clients
func (h *ClientHandler) Create(c *gin.Context) {
	companyID, ok := mustCompany(c)
	if !ok {
		return
	}

	var req dto.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	item, err := h.clientService.Create(c.Request.Context(), companyID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.SuccessWithMessage(c, "Cliente cadastrado", item)
}

// Get GET /api/v1/clients/:id
func (h *ClientHandler) Get(c *gin.Context) {
	companyID, ok := mustCompany(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "ID de cliente inválido")
	if !ok {
		return
	}

	item, err := h.clientService.Get(c.Request.Context(), companyID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, item)
}

// Update PUT /api/v1/clients/:id
func (h *ClientHandler) Update(c *gin.Context) {
	companyID, ok := mustCompany(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "ID de cliente inválido")
	if !ok {
		return
	}

	var req dto.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	item, err := h.clientService.Update(c.Request.Context(), companyID, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.SuccessWithMessage(c, "Cliente atualizado", item)
}

// Delete DELETE /api/v1/clients/:id
func (h *ClientHandler) Delete(c *gin.Context) {
	companyID, ok := mustCompany(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "ID de cliente inválido")
	if !ok {
		return
	}

	if err := h.clientService.Delete(c.Request.Context(), companyID, id); err != nil {
		respondError(c, err)
		return
	}

	response.SuccessWithMessage(c, "Cliente removido", nil)
}
