package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/okayo/invoicing/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// ServiceName is reported by the health check
const ServiceName = "Okayo Factures API"

const healthPingTimeout = 2 * time.Second

// Pinger checks that the database answers
type Pinger interface {
	Ping(ctx context.Context) error
}

// SystemHandler serves the health check and the API description
type SystemHandler struct {
	BaseHandler
	db     Pinger
	logger *zap.Logger
	now    func() time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db Pinger, logger *zap.Logger) *SystemHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SystemHandler{db: db, logger: logger, now: time.Now}
}

// Health handles GET /health. It answers 503 while the database is
// unreachable.
func (h *SystemHandler) Health(c *gin.Context) {
	resp := dto.HealthResponse{
		Status:    "OK",
		Timestamp: h.now().UTC(),
		Service:   ServiceName,
		Database:  "up",
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), healthPingTimeout)
	defer cancel()
	if err := h.db.Ping(ctx); err != nil {
		h.logger.Warn("Health check failed", zap.Error(err))
		resp.Status = "DEGRADED"
		resp.Database = "down"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

var apiDocs = dto.DocsResponse{
	Title:       "API Gestion Factures Okayo",
	Version:     "1.0.0",
	Description: "API pour la gestion des factures, clients, produits et statistiques",
	Endpoints: map[string]map[string]string{
		"clients": {
			"GET /api/clients":     "Liste des clients",
			"GET /api/clients/:id": "Détail d'un client",
			"POST /api/clients":    "Créer un client",
		},
		"catalogue": {
			"GET /api/catalogue":                         "Catalogue actuel",
			"GET /api/catalogue/produit/:id/historique": "Historique des prix d'un produit",
		},
		"factures": {
			"GET /api/factures":              "Liste des factures (avec pagination)",
			"GET /api/factures/:id":          "Détail d'une facture",
			"POST /api/factures":             "Créer une facture",
			"GET /api/factures/:id/html":     "Facture imprimable (HTML)",
			"GET /api/factures/:id/pdf":      "Facture au format PDF",
			"POST /api/factures/:id/archive": "Archiver le PDF d'une facture",
		},
		"produits": {
			"GET /api/produits":     "Liste des produits",
			"GET /api/produits/:id": "Détail d'un produit",
			"POST /api/produits":    "Créer un produit",
		},
		"statistiques": {
			"GET /api/statistiques/factures":        "Statistiques des factures",
			"GET /api/statistiques/factures/export": "Export Excel des factures",
			"GET /api/statistiques/top-clients":     "Top clients par CA",
		},
	},
}

// Docs handles GET /api/docs
func (h *SystemHandler) Docs(c *gin.Context) {
	c.JSON(http.StatusOK, apiDocs)
}
