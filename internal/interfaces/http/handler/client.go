package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	apppartner "github.com/okayo/invoicing/internal/application/partner"
	"github.com/okayo/invoicing/internal/interfaces/http/dto"
)

// ClientService is the client use-case surface the handler needs
type ClientService interface {
	List(ctx context.Context) ([]apppartner.ClientResponse, error)
	GetByID(ctx context.Context, id int64) (*apppartner.ClientResponse, error)
	Create(ctx context.Context, cmd apppartner.CreateClientCommand) (*apppartner.ClientResponse, error)
}

// ClientHandler handles client-related API endpoints
type ClientHandler struct {
	BaseHandler
	clientService ClientService
}

// NewClientHandler creates a new ClientHandler
func NewClientHandler(clientService ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// List handles GET /api/clients, ordered by name
func (h *ClientHandler) List(c *gin.Context) {
	clients, err := h.clientService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, clients)
}

// GetByID handles GET /api/clients/:id
func (h *ClientHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	client, err := h.clientService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

// Create handles POST /api/clients
func (h *ClientHandler) Create(c *gin.Context) {
	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	client, err := h.clientService.Create(c.Request.Context(), req.toCommand())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ClientCreatedResponse{
		Message:  "Client créé avec succès",
		ClientID: client.ID,
	})
}
