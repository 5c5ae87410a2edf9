package handler

import (
	"context"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"
	appreport "github.com/okayo/invoicing/internal/application/report"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportService exposes invoice reporting
type ReportService interface {
	Statistics(ctx context.Context, q appreport.StatisticsQuery) (*appreport.StatisticsResponse, error)
	TopClients(ctx context.Context, limit int) ([]appreport.TopClientResponse, error)
	ExportInvoices(ctx context.Context, q appreport.StatisticsQuery) (*appreport.Export, error)
}

// StatisticsRequest holds the period query; bounds are checked by the
// report service.
type StatisticsRequest struct {
	Year  int  `form:"annee"`
	Month *int `form:"mois"`
}

func (r StatisticsRequest) toQuery() appreport.StatisticsQuery {
	return appreport.StatisticsQuery{Year: r.Year, Month: r.Month}
}

// TopClientsRequest holds the query of the client ranking
type TopClientsRequest struct {
	Limit int `form:"limit"`
}

// ReportHandler handles reporting endpoints
type ReportHandler struct {
	BaseHandler
	reportService ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Statistics handles GET /api/statistiques/factures?annee=&mois=
func (h *ReportHandler) Statistics(c *gin.Context) {
	var req StatisticsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	stats, err := h.reportService.Statistics(c.Request.Context(), req.toQuery())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Export handles GET /api/statistiques/factures/export?annee=&mois=
func (h *ReportHandler) Export(c *gin.Context) {
	var req StatisticsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	export, err := h.reportService.ExportInvoices(c.Request.Context(), req.toQuery())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": export.Filename}))
	c.Data(http.StatusOK, xlsxContentType, export.Data)
}

// TopClients handles GET /api/statistiques/top-clients?limit=
func (h *ReportHandler) TopClients(c *gin.Context) {
	var req TopClientsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	ranking, err := h.reportService.TopClients(c.Request.Context(), req.Limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, ranking)
}
