package partner

import (
	"context"
	"errors"

	"github.com/okayo/invoicing/internal/domain/partner"
	"github.com/okayo/invoicing/internal/domain/shared"
	"go.uber.org/zap"
)

// ClientService handles client-related business operations
type ClientService struct {
	clientRepo partner.ClientRepository
	logger     *zap.Logger
}

// NewClientService creates a new ClientService
func NewClientService(clientRepo partner.ClientRepository, logger *zap.Logger) *ClientService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClientService{
		clientRepo: clientRepo,
		logger:     logger,
	}
}

// List returns every client ordered by name
func (s *ClientService) List(ctx context.Context) ([]ClientResponse, error) {
	clients, err := s.clientRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]ClientResponse, len(clients))
	for i := range clients {
		out[i] = ToClientResponse(&clients[i])
	}
	return out, nil
}

// GetByID returns one client
func (s *ClientService) GetByID(ctx context.Context, id int64) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewNotFoundError("Client", id)
		}
		return nil, err
	}
	resp := ToClientResponse(client)
	return &resp, nil
}

// Create validates and stores a new client. A code already in use is
// reported as a conflict by the store.
func (s *ClientService) Create(ctx context.Context, cmd CreateClientCommand) (*ClientResponse, error) {
	client, err := partner.NewClient(cmd)
	if err != nil {
		return nil, err
	}

	if err := s.clientRepo.Create(ctx, client); err != nil {
		if !errors.Is(err, shared.ErrConflict) {
			s.logger.Error("Failed to create client", zap.String("code_client", client.Code), zap.Error(err))
		}
		return nil, err
	}

	s.logger.Info("Client created",
		zap.Int64("client_id", client.ID),
		zap.String("code_client", client.Code))

	resp := ToClientResponse(client)
	return &resp, nil
}
