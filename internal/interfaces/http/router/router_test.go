package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apppartner "github.com/okayo/invoicing/internal/application/partner"
	"github.com/okayo/invoicing/internal/interfaces/http/dto"
	"github.com/okayo/invoicing/internal/interfaces/http/handler"
	"github.com/okayo/invoicing/internal/interfaces/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNewRouter(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	assert.NotNil(t, r)
	assert.Equal(t, "/api", r.basePath)
	assert.Empty(t, r.registrars)
}

func TestRouterWithBasePath(t *testing.T) {
	r := NewRouter(gin.New(), WithBasePath("/internal"))

	assert.Equal(t, "/internal", r.basePath)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	group := NewDomainGroup("test", "/test")
	group.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	group.POST("/ping", func(c *gin.Context) {
		c.String(http.StatusCreated, "created")
	})

	r.Register(group).Setup()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/test/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/test/ping", nil))
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestDomainGroupSubgroupsAndMiddleware(t *testing.T) {
	engine := gin.New()

	var seen []string
	parent := NewDomainGroup("parent", "/parent").Use(func(c *gin.Context) {
		seen = append(seen, "parent")
		c.Next()
	})
	parent.Group("child", "/child").GET("", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	NewRouter(engine).Register(parent).Setup()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/parent/child", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []string{"parent"}, seen)
	assert.Equal(t, "parent", parent.Name())
	assert.Equal(t, "/parent", parent.Prefix())
}

type stubClientService struct {
	clients []apppartner.ClientResponse
}

func (s *stubClientService) List(context.Context) ([]apppartner.ClientResponse, error) {
	return s.clients, nil
}

func (s *stubClientService) GetByID(context.Context, int64) (*apppartner.ClientResponse, error) {
	return nil, errors.New("unused")
}

func (s *stubClientService) Create(context.Context, apppartner.CreateClientCommand) (*apppartner.ClientResponse, error) {
	return nil, errors.New("unused")
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func newTestEngine(t *testing.T, cfg EngineConfig) *gin.Engine {
	t.Helper()

	if cfg.Security == (middleware.SecurityConfig{}) {
		cfg.Security = middleware.DefaultSecurityConfig()
	}
	engine, err := NewEngine(cfg, Handlers{
		Client: handler.NewClientHandler(&stubClientService{
			clients: []apppartner.ClientResponse{{ID: 1, Code: "CLI001", Name: "Entreprise Alpha"}},
		}),
		System: handler.NewSystemHandler(stubPinger{}, zap.NewNop()),
	})
	require.NoError(t, err)
	return engine
}

func TestNewEngine_MountsRoutes(t *testing.T) {
	engine := newTestEngine(t, EngineConfig{})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/clients", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"code_client":"CLI001"`)

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/docs", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNewEngine_SwaggerUI(t *testing.T) {
	engine := newTestEngine(t, EngineConfig{})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/docs/doc.json", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Contains(t, doc["paths"], "/factures")
	assert.Contains(t, doc["paths"], "/factures/{id}/pdf")

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/docs/index.html", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "swagger-ui")

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/docs", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"POST /api/factures"`)
}

func TestNewEngine_UnknownRoute(t *testing.T) {
	engine := newTestEngine(t, EngineConfig{})

	req := httptest.NewRequest(http.MethodGet, "/api/nope", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-42")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, dto.CodeRouteNotFound, body.Code)
	assert.Equal(t, "req-42", body.RequestID)
	assert.Equal(t, "Route non trouvée", body.Details)
}

func TestNewEngine_SkipsUnconfiguredHandlers(t *testing.T) {
	engine, err := NewEngine(EngineConfig{}, Handlers{})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/factures", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNewEngine_AmbientHeaders(t *testing.T) {
	engine := newTestEngine(t, EngineConfig{
		CORS: middleware.CORSConfig{AllowOrigins: []string{"*"}},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/clients", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestNewEngine_BodyLimit(t *testing.T) {
	engine := newTestEngine(t, EngineConfig{MaxBodySize: 16})

	req := httptest.NewRequest(http.MethodPost, "/api/clients", strings.NewReader(strings.Repeat("x", 64)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Contains(t, w.Body.String(), `"details":`)
}

func TestNewEngine_InvalidTrustedProxy(t *testing.T) {
	_, err := NewEngine(EngineConfig{TrustedProxies: []string{"not-an-ip"}}, Handlers{})
	assert.Error(t, err)
}

func TestNewEngine_ThrottlesPDFRendering(t *testing.T) {
	engine, err := NewEngine(EngineConfig{RenderRateLimit: 1}, Handlers{
		Print:   handler.NewPrintHandler(nil),
		Invoice: handler.NewInvoiceHandler(nil),
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/factures/abc/pdf", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/factures/abc/pdf", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), `"details":"Too many requests, please try again later"`)

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/factures/abc/html", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
