package router

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	_ "github.com/okayo/invoicing/docs"
	"github.com/okayo/invoicing/internal/infrastructure/logger"
	"github.com/okayo/invoicing/internal/interfaces/http/dto"
	"github.com/okayo/invoicing/internal/interfaces/http/handler"
	"github.com/okayo/invoicing/internal/interfaces/http/middleware"
)

// HealthPath is served outside the API prefix
const HealthPath = "/health"

// EngineConfig carries the cross-cutting settings of the HTTP engine
type EngineConfig struct {
	Logger           *zap.Logger
	Meter            metric.Meter
	ServiceName      string
	TracingEnabled   bool
	ProfilingEnabled bool
	MaxBodySize      int64
	RenderRateLimit  int // PDF renders per client and minute, 0 disables
	TrustedProxies   []string
	CORS             middleware.CORSConfig
	Security         middleware.SecurityConfig
}

// Handlers groups the HTTP handlers mounted by NewEngine
type Handlers struct {
	Client  *handler.ClientHandler
	Product *handler.ProductHandler
	Invoice *handler.InvoiceHandler
	Print   *handler.PrintHandler
	Report  *handler.ReportHandler
	System  *handler.SystemHandler
}

// NewEngine builds the gin engine with the middleware chain and every route.
// Unknown routes answer 404 with the standard error body.
func NewEngine(cfg EngineConfig, h Handlers) (*gin.Engine, error) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, err
	}

	engine.Use(middleware.RequestID())
	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.ServiceName,
		Enabled:     cfg.TracingEnabled,
		SkipPaths:   []string{HealthPath},
	}))
	engine.Use(middleware.SpanEnricher())
	engine.Use(middleware.HTTPMetrics(cfg.Meter, log))
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Profiling(cfg.ProfilingEnabled, HealthPath))
	engine.Use(middleware.SecureWithConfig(cfg.Security))
	engine.Use(middleware.CORS(cfg.CORS))
	if cfg.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(cfg.MaxBodySize))
	}

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(
			"Route non trouvée",
			dto.CodeRouteNotFound,
			c.GetString(logger.RequestIDKey),
		))
	})

	if h.System != nil {
		engine.GET(HealthPath, h.System.Health)
	}

	var renderLimit []gin.HandlerFunc
	if cfg.RenderRateLimit > 0 {
		renderLimit = append(renderLimit, middleware.RateLimit(middleware.NewRateLimiter(cfg.RenderRateLimit, time.Minute)))
	}

	r := NewRouter(engine)
	for _, group := range domainGroups(h, renderLimit) {
		r.Register(group)
	}
	r.Setup()

	return engine, nil
}

func domainGroups(h Handlers, renderLimit []gin.HandlerFunc) []*DomainGroup {
	var groups []*DomainGroup

	if h.Client != nil {
		groups = append(groups, NewDomainGroup("clients", "/clients").
			GET("", h.Client.List).
			GET("/:id", h.Client.GetByID).
			POST("", h.Client.Create))
	}

	if h.Product != nil {
		groups = append(groups, NewDomainGroup("produits", "/produits").
			GET("", h.Product.List).
			GET("/:id", h.Product.GetByID).
			POST("", h.Product.Create))

		groups = append(groups, NewDomainGroup("catalogue", "/catalogue").
			GET("", h.Product.Catalog).
			GET("/produit/:id/historique", h.Product.PriceHistory))
	}

	if h.Invoice != nil {
		invoices := NewDomainGroup("factures", "/factures").
			GET("", h.Invoice.List).
			GET("/:id", h.Invoice.GetByID).
			POST("", h.Invoice.Create)
		if h.Print != nil {
			invoices.
				GET("/:id/html", h.Print.HTML).
				GET("/:id/pdf", append(slices.Clone(renderLimit), h.Print.PDF)...).
				POST("/:id/archive", append(slices.Clone(renderLimit), h.Print.Archive)...)
		}
		groups = append(groups, invoices)
	}

	if h.Report != nil {
		groups = append(groups, NewDomainGroup("statistiques", "/statistiques").
			GET("/factures", h.Report.Statistics).
			GET("/factures/export", h.Report.Export).
			GET("/top-clients", h.Report.TopClients))
	}

	if h.System != nil {
		groups = append(groups, NewDomainGroup("docs", "/docs").
			GET("", h.System.Docs).
			GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler)))
	}

	return groups
}
