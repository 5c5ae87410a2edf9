package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/okayo/invoicing/internal/domain/shared"
	"github.com/okayo/invoicing/internal/infrastructure/logger"
	"github.com/okayo/invoicing/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// errorBody mirrors dto.ErrorResponse with details kept raw
type errorBody struct {
	Error     string          `json:"error"`
	Details   json.RawMessage `json:"details"`
	Code      string          `json:"code"`
	RequestID string          `json:"request_id"`
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func serveError(err error, core zapcore.Core) *httptest.ResponseRecorder {
	h := &BaseHandler{}
	router := gin.New()
	router.GET("/test", func(c *gin.Context) {
		c.Set(logger.RequestIDKey, "req-1")
		if core != nil {
			c.Set("logger", zap.New(core))
		}
		h.HandleError(c, err)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
	return w
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantError  string
	}{
		{"validation", shared.NewValidationError([]shared.FieldError{{Field: "nom", Message: "is required"}}), http.StatusBadRequest, shared.CodeValidation, "Invalid data: nom"},
		{"not found", shared.NewNotFoundError("Client", 9), http.StatusNotFound, shared.CodeNotFound, ""},
		{"conflict", shared.NewConflictError("Invoice reference already exists"), http.StatusConflict, shared.CodeConflict, "Invoice reference already exists"},
		{"product unavailable", shared.NewDomainError(shared.CodeProductNotAvailable, "Product is not available on the invoice date"), http.StatusUnprocessableEntity, shared.CodeProductNotAvailable, ""},
		{"printing disabled", shared.NewDomainError(shared.CodePrintingDisabled, "PDF rendering is disabled"), http.StatusServiceUnavailable, shared.CodePrintingDisabled, "PDF rendering is disabled"},
		{"wrapped domain error", fmt.Errorf("create: %w", shared.NewConflictError("Client code already exists")), http.StatusConflict, shared.CodeConflict, "Client code already exists"},
		{"plain error", errors.New("dial tcp: connection refused"), http.StatusInternalServerError, shared.CodeInternal, "An unexpected error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serveError(tt.err, nil)

			assert.Equal(t, tt.wantStatus, w.Code)
			body := decodeError(t, w)
			assert.Equal(t, tt.wantCode, body.Code)
			assert.Equal(t, "req-1", body.RequestID)
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, body.Error)
			}
		})
	}
}

func TestHandleError_ValidationDetails(t *testing.T) {
	var errs shared.ValidationErrors
	errs.Add("nom", "is required")
	errs.Add("ville", "is required")

	w := serveError(errs.Err(), nil)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var details []shared.FieldError
	require.NoError(t, json.Unmarshal(decodeError(t, w).Details, &details))
	assert.Equal(t, []shared.FieldError{
		{Field: "nom", Message: "is required"},
		{Field: "ville", Message: "is required"},
	}, details)
}

func TestHandleError_DetailsAlwaysPresent(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantDetails string
	}{
		{"400", shared.NewValidationError([]shared.FieldError{{Field: "nom", Message: "is required"}}), http.StatusBadRequest, `[{"field":"nom","message":"is required"}]`},
		{"404", shared.NewDomainError(shared.CodeNotFound, "Client 9 not found"), http.StatusNotFound, `"Client 9 not found"`},
		{"409", shared.NewConflictError("Invoice reference already exists"), http.StatusConflict, `"Invoice reference already exists"`},
		{"422", shared.NewDomainError(shared.CodeProductNotAvailable, "Product 3 is not available on 2024-03-15"), http.StatusUnprocessableEntity, `"Product 3 is not available on 2024-03-15"`},
		{"500 domain", shared.NewInternalError("Failed to create invoice", errors.New("deadlock detected")), http.StatusInternalServerError, `"Failed to create invoice"`},
		{"500 plain", errors.New("dial tcp: connection refused"), http.StatusInternalServerError, `"An unexpected error occurred"`},
		{"503", shared.NewDomainError(shared.CodePrintingDisabled, "PDF rendering is disabled"), http.StatusServiceUnavailable, `"PDF rendering is disabled"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serveError(tt.err, nil)

			require.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantDetails, string(decodeError(t, w).Details))
		})
	}
}

func TestBadRequest_Details(t *testing.T) {
	h := &BaseHandler{}
	router := gin.New()
	router.POST("/test", func(c *gin.Context) {
		h.BadRequest(c, "Malformed request")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/test", nil))

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeError(t, w)
	assert.Equal(t, dto.CodeBadRequest, body.Code)
	assert.JSONEq(t, `"Malformed request"`, string(body.Details))
}

func TestHandleError_InternalErrorsAreLoggedNotLeaked(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	cause := errors.New("pq: password authentication failed")

	w := serveError(shared.NewInternalError("Failed to create invoice", cause), core)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeError(t, w)
	assert.Equal(t, "Failed to create invoice", body.Error)
	assert.NotContains(t, w.Body.String(), "password")

	entries := logs.FilterMessage("Request failed").All()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].ContextMap()["error"], "password authentication failed")
}

func TestParseID(t *testing.T) {
	h := &BaseHandler{}
	router := gin.New()
	router.GET("/items/:id", func(c *gin.Context) {
		id, ok := h.parseID(c, "id")
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id})
	})

	for _, raw := range []string{"abc", "0", "-3", "1.5", "99999999999999999999"} {
		t.Run(raw, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items/"+raw, nil))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, shared.CodeValidation, decodeError(t, w).Code)
		})
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items/42", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":42}`, w.Body.String())
}

func TestHandleBindError_Malformed(t *testing.T) {
	h := &BaseHandler{}
	router := gin.New()
	router.POST("/test", func(c *gin.Context) {
		var req struct {
			Name string `json:"nom"`
		}
		h.HandleBindError(c, c.ShouldBindJSON(&req))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/test", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.CodeBadRequest, decodeError(t, w).Code)
}
