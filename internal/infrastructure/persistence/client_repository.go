package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/okayo/invoicing/internal/domain/partner"
	"github.com/okayo/invoicing/internal/domain/shared"
	"github.com/okayo/invoicing/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormClientRepository implements ClientRepository using GORM
type GormClientRepository struct {
	db *gorm.DB
}

// NewGormClientRepository creates a new GormClientRepository
func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

// FindAll returns every client ordered by name
func (r *GormClientRepository) FindAll(ctx context.Context) ([]partner.Client, error) {
	var rows []models.ClientModel
	if err := r.db.WithContext(ctx).Order("name ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	clients := make([]partner.Client, len(rows))
	for i := range rows {
		clients[i] = *rows[i].ToDomain()
	}
	return clients, nil
}

// FindByID finds a client by its ID
func (r *GormClientRepository) FindByID(ctx context.Context, id int64) (*partner.Client, error) {
	var model models.ClientModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// ExistsByID reports whether a client with the ID exists
func (r *GormClientRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ClientModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts a client; the unique index on code rejects duplicates
func (r *GormClientRepository) Create(ctx context.Context, client *partner.Client) error {
	model := models.ClientModelFromDomain(client)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if err = translateError(err); errors.Is(err, shared.ErrConflict) {
			return shared.NewConflictError(fmt.Sprintf("Client code %s already exists", client.Code))
		}
		return err
	}
	client.ID = model.ID
	client.CreatedAt = model.CreatedAt
	return nil
}

// Ensure GormClientRepository implements ClientRepository
var _ partner.ClientRepository = (*GormClientRepository)(nil)
