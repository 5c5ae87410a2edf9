package persistence

import (
	"context"

	"github.com/okayo/invoicing/internal/domain/invoicing"
	"github.com/okayo/invoicing/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormDefaultsRepository reads issuers, payment terms and bank accounts
type GormDefaultsRepository struct {
	db *gorm.DB
}

// NewGormDefaultsRepository creates a new GormDefaultsRepository
func NewGormDefaultsRepository(db *gorm.DB) *GormDefaultsRepository {
	return &GormDefaultsRepository{db: db}
}

// FindIssuers returns up to limit issuers ordered by id
func (r *GormDefaultsRepository) FindIssuers(ctx context.Context, limit int) ([]invoicing.Issuer, error) {
	var rows []models.IssuerModel
	if err := r.db.WithContext(ctx).Order("id ASC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	issuers := make([]invoicing.Issuer, len(rows))
	for i := range rows {
		issuers[i] = rows[i].ToDomain()
	}
	return issuers, nil
}

// FindPaymentTerms returns up to limit payment terms ordered by id
func (r *GormDefaultsRepository) FindPaymentTerms(ctx context.Context, limit int) ([]invoicing.PaymentTerm, error) {
	var rows []models.PaymentTermModel
	if err := r.db.WithContext(ctx).Order("id ASC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	terms := make([]invoicing.PaymentTerm, len(rows))
	for i := range rows {
		terms[i] = rows[i].ToDomain()
	}
	return terms, nil
}

// FindOpenBankAccounts returns up to limit accounts without end date
func (r *GormDefaultsRepository) FindOpenBankAccounts(ctx context.Context, limit int) ([]invoicing.BankAccount, error) {
	var rows []models.BankAccountModel
	if err := r.db.WithContext(ctx).Where("valid_to IS NULL").Order("id ASC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	accounts := make([]invoicing.BankAccount, len(rows))
	for i := range rows {
		accounts[i] = rows[i].ToDomain()
	}
	return accounts, nil
}

// Ensure GormDefaultsRepository implements DefaultsRepository
var _ invoicing.DefaultsRepository = (*GormDefaultsRepository)(nil)
