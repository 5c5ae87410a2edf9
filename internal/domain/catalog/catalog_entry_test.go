package catalog

import (
	"testing"
	"time"

	"github.com/okayo/invoicing/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func datePtr(s string) *time.Time {
	t := date(s)
	return &t
}

func TestValidity_Covers(t *testing.T) {
	closed := Validity{From: date("2024-01-01"), To: datePtr("2024-06-30")}
	open := Validity{From: date("2024-07-01")}

	tests := []struct {
		name     string
		validity Validity
		date     string
		want     bool
	}{
		{"strictly inside closed interval", closed, "2024-03-15", true},
		{"start bound is inclusive", closed, "2024-01-01", true},
		{"end bound is inclusive", closed, "2024-06-30", true},
		{"day before start", closed, "2023-12-31", false},
		{"day after end", closed, "2024-07-01", false},
		{"open interval on start", open, "2024-07-01", true},
		{"open interval far future", open, "2099-01-01", true},
		{"open interval before start", open, "2024-06-30", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.validity.Covers(date(tt.date)))
		})
	}
}

func TestValidity_IsCurrent(t *testing.T) {
	today := date("2024-05-10")

	assert.True(t, Validity{From: date("2020-01-01")}.IsCurrent(today))
	assert.True(t, Validity{From: date("2020-01-01"), To: datePtr("2024-05-10")}.IsCurrent(today))
	assert.False(t, Validity{From: date("2020-01-01"), To: datePtr("2024-05-09")}.IsCurrent(today))
}

func TestSelectEffective(t *testing.T) {
	recent := PricedEntry{EntryID: 2, ProductID: 7, UnitPriceExclTax: decimal.NewFromInt(120), Validity: Validity{From: date("2024-03-01")}}
	older := PricedEntry{EntryID: 1, ProductID: 7, UnitPriceExclTax: decimal.NewFromInt(100), Validity: Validity{From: date("2024-01-01")}}
	candidates := []PricedEntry{recent, older}

	t.Run("no covering entry is not available", func(t *testing.T) {
		_, err := SelectEffective(7, date("2023-12-31"), candidates, OverlapLatest)

		require.Error(t, err)
		de, ok := shared.AsDomainError(err)
		require.True(t, ok)
		assert.Equal(t, shared.CodeProductNotAvailable, de.Code)
		assert.Contains(t, de.Message, "2023-12-31")
	})

	t.Run("latest policy keeps most recent start", func(t *testing.T) {
		got, err := SelectEffective(7, date("2024-04-01"), candidates, OverlapLatest)

		require.NoError(t, err)
		assert.Equal(t, int64(2), got.EntryID)
	})

	t.Run("strict policy rejects overlap", func(t *testing.T) {
		_, err := SelectEffective(7, date("2024-04-01"), candidates, OverlapStrict)

		de, ok := shared.AsDomainError(err)
		require.True(t, ok)
		assert.Equal(t, shared.CodeAmbiguousCatalog, de.Code)
	})

	t.Run("strict policy accepts a single match", func(t *testing.T) {
		got, err := SelectEffective(7, date("2024-02-01"), []PricedEntry{
			{EntryID: 1, Validity: Validity{From: date("2024-01-01"), To: datePtr("2024-02-28")}},
		}, OverlapStrict)

		require.NoError(t, err)
		assert.Equal(t, int64(1), got.EntryID)
	})
}

func TestNewProduct(t *testing.T) {
	t.Run("valid product", func(t *testing.T) {
		p, err := NewProduct(ProductInput{Name: " Audit ", UnitPriceExclTax: decimal.NewFromInt(500), TaxRate: decimal.NewFromInt(20)})

		require.NoError(t, err)
		assert.Equal(t, "Audit", p.Name)
	})

	t.Run("collects every invalid field", func(t *testing.T) {
		_, err := NewProduct(ProductInput{UnitPriceExclTax: decimal.NewFromInt(-1), TaxRate: decimal.NewFromInt(101)})

		de, ok := shared.AsDomainError(err)
		require.True(t, ok)
		assert.Len(t, de.Details, 3)
	})
}

func TestNewOpeningEntry(t *testing.T) {
	entry := NewOpeningEntry(3, decimal.RequireFromString("19.999"), 1, time.Date(2024, 5, 10, 15, 4, 5, 0, time.UTC))

	assert.True(t, decimal.RequireFromString("20.00").Equal(entry.UnitPriceExclTax))
	assert.Equal(t, date("2024-05-10"), entry.Validity.From)
	assert.Nil(t, entry.Validity.To)
}
