package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/qs3c/salon_go_server/internal/pkg/response"
	"github.com/qs3c/salon_go_server/internal/service"
)

type ReportHandler struct {
	reportService *service.ReportService
}

func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// Summary GET /api/v1/reports/summary?from=&to=
func (h *ReportHandler) Summary(c *gin.Context) {
	companyID, ok := mustCompany(c)
	if !ok {
		return
	}

	summary, err := h.reportService.Summary(c.Request.Context(), companyID, c.Query("from"), c.Query("to"))
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, summary)
}

// Export builds the period CSV. It answers with a temporary download link, or
// with the file itself when object storage is not configured.
// POST /api/v1/reports/export?from=&to=
func (h *ReportHandler) Export(c *gin.Context) {
	companyID, ok := mustCompany(c)
	if !ok {
		return
	}

	resp, err := h.reportService.Export(c.Request.Context(), companyID, c.Query("from"), c.Query("to"))
	if err != nil {
		respondError(c, err)
		return
	}

	response.SuccessWithMessage(c, "Relatório gerado", resp)
}
