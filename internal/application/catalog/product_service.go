package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/okayo/invoicing/internal/domain/catalog"
	"github.com/okayo/invoicing/internal/domain/shared"
	"github.com/okayo/invoicing/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// ProductService handles product-related business operations
type ProductService struct {
	productRepo catalog.ProductRepository
	txScope     TransactionScope
	clock       shared.Clock
	logger      *zap.Logger
}

// NewProductService creates a new ProductService. Creation goes through
// txScope so the product and its opening catalog entry are written
// together.
func NewProductService(
	productRepo catalog.ProductRepository,
	txScope TransactionScope,
	clock shared.Clock,
	logger *zap.Logger,
) *ProductService {
	if clock == nil {
		clock = shared.SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{
		productRepo: productRepo,
		txScope:     txScope,
		clock:       clock,
		logger:      logger,
	}
}

// List returns every product ordered by name
func (s *ProductService) List(ctx context.Context) ([]ProductResponse, error) {
	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]ProductResponse, len(products))
	for i := range products {
		out[i] = ToProductResponse(&products[i])
	}
	return out, nil
}

// GetByID returns one product
func (s *ProductService) GetByID(ctx context.Context, id int64) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewNotFoundError("Product", id)
		}
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// Create stores a product and opens its first catalog entry today. The
// VAT rate must match an active tax rate, otherwise nothing is written.
func (s *ProductService) Create(ctx context.Context, cmd CreateProductCommand) (*ProductResponse, error) {
	product, err := catalog.NewProduct(cmd)
	if err != nil {
		return nil, err
	}

	today := valueobject.DateOf(s.clock.Now())
	product.CreatedAt = s.clock.Now()

	var entry *catalog.CatalogEntry
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.ProductRepo().Create(ctx, product); err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}

		rate, err := repos.TaxRateRepo().FindActiveByRate(ctx, cmd.TaxRate, today)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError(shared.CodeTaxRateNotFound,
					fmt.Sprintf("Tax rate %s%% not found", cmd.TaxRate.String()))
			}
			return fmt.Errorf("failed to resolve tax rate: %w", err)
		}

		entry = catalog.NewOpeningEntry(product.ID, cmd.UnitPriceExclTax, rate.ID, today)
		if err := repos.CatalogRepo().Create(ctx, entry); err != nil {
			return fmt.Errorf("failed to create catalog entry: %w", err)
		}
		return nil
	})
	if err != nil {
		if _, ok := shared.AsDomainError(err); !ok {
			s.logger.Error("Failed to create product", zap.String("nom_produit", product.Name), zap.Error(err))
		}
		return nil, err
	}

	s.logger.Info("Product created",
		zap.Int64("product_id", product.ID),
		zap.Int64("catalog_entry_id", entry.ID),
		zap.String("unit_price_excl_tax", entry.UnitPriceExclTax.StringFixed(2)))

	resp := ToProductResponse(product)
	return &resp, nil
}
