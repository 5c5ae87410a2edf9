package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newCORSRouter(cfg CORSConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CORS(cfg))
	router.GET("/api/clients", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func corsRequest(router http.Handler, method, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/api/clients", nil)
	req.Header.Set("Origin", origin)
	if method == http.MethodOptions {
		req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCORS(t *testing.T) {
	t.Run("wildcard allows any origin", func(t *testing.T) {
		router := newCORSRouter(CORSConfig{AllowOrigins: []string{"*"}})

		w := corsRequest(router, http.MethodGet, "http://localhost:5173")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("listed origin is echoed with credentials", func(t *testing.T) {
		router := newCORSRouter(CORSConfig{AllowOrigins: []string{"https://factures.okayo.fr"}})

		w := corsRequest(router, http.MethodGet, "https://factures.okayo.fr")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "https://factures.okayo.fr", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
		assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "Content-Disposition")
	})

	t.Run("unlisted origin is rejected", func(t *testing.T) {
		router := newCORSRouter(CORSConfig{AllowOrigins: []string{"https://factures.okayo.fr"}})

		w := corsRequest(router, http.MethodGet, "https://evil.example")

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("empty list rejects cross-origin requests", func(t *testing.T) {
		router := newCORSRouter(CORSConfig{})

		w := corsRequest(router, http.MethodGet, "http://localhost:5173")

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("preflight answers without reaching the handler", func(t *testing.T) {
		router := newCORSRouter(CORSConfig{AllowOrigins: []string{"*"}, AllowMethods: []string{"GET", "POST"}})

		w := corsRequest(router, http.MethodOptions, "http://localhost:5173")

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
	})

	t.Run("same-origin requests pass through", func(t *testing.T) {
		router := newCORSRouter(CORSConfig{})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/clients", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
