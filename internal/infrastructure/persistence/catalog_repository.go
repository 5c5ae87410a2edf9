package persistence

import (
	"context"
	"time"

	"github.com/okayo/invoicing/internal/domain/catalog"
	"github.com/okayo/invoicing/internal/domain/shared/valueobject"
	"github.com/okayo/invoicing/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

const pricedEntryColumns = "ce.id AS entry_id, ce.product_id, p.name AS product_name, p.description, " +
	"ce.unit_price_excl_tax, tr.rate AS tax_rate, ce.valid_from, ce.valid_to"

// GormCatalogRepository implements CatalogRepository using GORM
type GormCatalogRepository struct {
	db *gorm.DB
}

// NewGormCatalogRepository creates a new GormCatalogRepository
func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

func (r *GormCatalogRepository) pricedEntries(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("catalog_entries AS ce").
		Select(pricedEntryColumns).
		Joins("JOIN products p ON p.id = ce.product_id").
		Joins("JOIN tax_rates tr ON tr.id = ce.tax_rate_id")
}

func scanPriced(query *gorm.DB) ([]catalog.PricedEntry, error) {
	var rows []models.PricedEntryRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	entries := make([]catalog.PricedEntry, len(rows))
	for i := range rows {
		entries[i] = rows[i].ToDomain()
	}
	return entries, nil
}

// FindCurrent returns entries that have not ended before today
func (r *GormCatalogRepository) FindCurrent(ctx context.Context, today time.Time) ([]catalog.PricedEntry, error) {
	return scanPriced(r.pricedEntries(ctx).
		Where("ce.valid_to IS NULL OR ce.valid_to >= ?", valueobject.DateOf(today)).
		Order("p.name ASC, ce.product_id ASC, ce.valid_from DESC, ce.id DESC"))
}

// FindHistory returns every entry of a product, most recent start first
func (r *GormCatalogRepository) FindHistory(ctx context.Context, productID int64) ([]catalog.PricedEntry, error) {
	return scanPriced(r.pricedEntries(ctx).
		Where("ce.product_id = ?", productID).
		Order("ce.valid_from DESC, ce.id DESC"))
}

// FindCovering returns the entries of a product whose inclusive interval
// covers date, most recent start first
func (r *GormCatalogRepository) FindCovering(ctx context.Context, productID int64, date time.Time) ([]catalog.PricedEntry, error) {
	day := valueobject.DateOf(date)
	return scanPriced(r.pricedEntries(ctx).
		Where("ce.product_id = ? AND ce.valid_from <= ? AND (ce.valid_to IS NULL OR ce.valid_to >= ?)", productID, day, day).
		Order("ce.valid_from DESC, ce.id DESC"))
}

// Create appends an entry
func (r *GormCatalogRepository) Create(ctx context.Context, entry *catalog.CatalogEntry) error {
	model := models.CatalogEntryModelFromDomain(entry)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateError(err)
	}
	entry.ID = model.ID
	return nil
}

// Ensure GormCatalogRepository implements CatalogRepository
var _ catalog.CatalogRepository = (*GormCatalogRepository)(nil)
