package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	apppartner "github.com/okayo/invoicing/internal/application/partner"
	"github.com/okayo/invoicing/internal/domain/shared"
	"github.com/okayo/invoicing/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupClientRouter(svc *MockClientService) *gin.Engine {
	h := NewClientHandler(svc)
	router := newTestRouter()
	router.GET("/api/clients", h.List)
	router.GET("/api/clients/:id", h.GetByID)
	router.POST("/api/clients", h.Create)
	return router
}

func TestClientHandler_List(t *testing.T) {
	svc := new(MockClientService)
	svc.On("List", mock.Anything).Return([]apppartner.ClientResponse{
		{ID: 2, Code: "CLI002", Name: "Alpha"},
		{ID: 1, Code: "CLI001", Name: "Beta"},
	}, nil)

	w := doRequest(setupClientRouter(svc), http.MethodGet, "/api/clients", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var clients []apppartner.ClientResponse
	decodeJSON(t, w, &clients)
	require.Len(t, clients, 2)
	assert.Equal(t, "Alpha", clients[0].Name)
	svc.AssertExpectations(t)
}

func TestClientHandler_List_Empty(t *testing.T) {
	svc := new(MockClientService)
	svc.On("List", mock.Anything).Return([]apppartner.ClientResponse{}, nil)

	w := doRequest(setupClientRouter(svc), http.MethodGet, "/api/clients", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestClientHandler_GetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc := new(MockClientService)
		svc.On("GetByID", mock.Anything, int64(1)).Return(&apppartner.ClientResponse{ID: 1, Code: "CLI001", Name: "Dupont"}, nil)

		w := doRequest(setupClientRouter(svc), http.MethodGet, "/api/clients/1", nil)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"code_client":"CLI001"`)
	})

	t.Run("not found", func(t *testing.T) {
		svc := new(MockClientService)
		svc.On("GetByID", mock.Anything, int64(999)).Return(nil, shared.NewNotFoundError("Client", 999))

		w := doRequest(setupClientRouter(svc), http.MethodGet, "/api/clients/999", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("invalid id never reaches the service", func(t *testing.T) {
		svc := new(MockClientService)

		w := doRequest(setupClientRouter(svc), http.MethodGet, "/api/clients/abc", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})
}

func TestClientHandler_Create(t *testing.T) {
	validBody := map[string]any{
		"code_client": "CLI010",
		"nom":         "Martin SARL",
		"adresse":     "1 rue de la Paix",
		"ville":       "Paris",
		"code_postal": "75002",
		"email":       "contact@martin.fr",
	}

	t.Run("created", func(t *testing.T) {
		svc := new(MockClientService)
		svc.On("Create", mock.Anything, apppartner.CreateClientCommand{
			Code:       "CLI010",
			Name:       "Martin SARL",
			Address:    "1 rue de la Paix",
			City:       "Paris",
			PostalCode: "75002",
			Email:      "contact@martin.fr",
		}).Return(&apppartner.ClientResponse{ID: 10, Code: "CLI010"}, nil)

		w := doRequest(setupClientRouter(svc), http.MethodPost, "/api/clients", validBody)

		require.Equal(t, http.StatusCreated, w.Code)
		var resp dto.ClientCreatedResponse
		decodeJSON(t, w, &resp)
		assert.Equal(t, "Client créé avec succès", resp.Message)
		assert.Equal(t, int64(10), resp.ClientID)
		svc.AssertExpectations(t)
	})

	t.Run("missing fields are listed", func(t *testing.T) {
		svc := new(MockClientService)

		w := doRequest(setupClientRouter(svc), http.MethodPost, "/api/clients", map[string]any{
			"nom":   "Martin SARL",
			"email": "not-an-email",
		})

		require.Equal(t, http.StatusBadRequest, w.Code)
		body := decodeError(t, w)
		assert.Equal(t, shared.CodeValidation, body.Code)
		for _, field := range []string{"code_client", "adresse", "ville", "code_postal", "email"} {
			assert.Contains(t, string(body.Details), `"field":"`+field+`"`)
		}
		svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("malformed json", func(t *testing.T) {
		svc := new(MockClientService)

		w := doRequest(setupClientRouter(svc), http.MethodPost, "/api/clients", `{"nom":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.CodeBadRequest, decodeError(t, w).Code)
	})

	t.Run("duplicate code", func(t *testing.T) {
		svc := new(MockClientService)
		svc.On("Create", mock.Anything, mock.Anything).Return(nil, shared.NewConflictError("Client code already exists"))

		w := doRequest(setupClientRouter(svc), http.MethodPost, "/api/clients", validBody)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "Client code already exists", decodeError(t, w).Error)
	})
}
