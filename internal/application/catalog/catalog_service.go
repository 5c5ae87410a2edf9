package catalog

import (
	"context"

	"github.com/okayo/invoicing/internal/domain/catalog"
	"github.com/okayo/invoicing/internal/domain/shared"
)

// CatalogService exposes read views over the time-versioned catalog
type CatalogService struct {
	catalogRepo catalog.CatalogRepository
	clock       shared.Clock
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(catalogRepo catalog.CatalogRepository, clock shared.Clock) *CatalogService {
	if clock == nil {
		clock = shared.SystemClock{}
	}
	return &CatalogService{catalogRepo: catalogRepo, clock: clock}
}

// Current lists the entries that have not ended before today
func (s *CatalogService) Current(ctx context.Context) ([]CatalogEntryResponse, error) {
	entries, err := s.catalogRepo.FindCurrent(ctx, s.clock.Now())
	if err != nil {
		return nil, err
	}

	out := make([]CatalogEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = ToCatalogEntryResponse(e)
	}
	return out, nil
}

// History lists every price a product has had, most recent first. An
// unknown product yields an empty list.
func (s *CatalogService) History(ctx context.Context, productID int64) ([]PriceHistoryResponse, error) {
	entries, err := s.catalogRepo.FindHistory(ctx, productID)
	if err != nil {
		return nil, err
	}

	out := make([]PriceHistoryResponse, len(entries))
	for i, e := range entries {
		out[i] = ToPriceHistoryResponse(e)
	}
	return out, nil
}
