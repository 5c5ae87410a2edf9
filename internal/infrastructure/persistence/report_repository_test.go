package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormInvoiceReportRepository(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	repo := NewGormInvoiceReportRepository(db)
	ctx := context.Background()

	seedInvoice(t, db, "FAC-A", day(2024, 1, 10), f.client.ID, "100.00", "120.00")
	seedInvoice(t, db, "FAC-B", day(2024, 1, 31), f.other.ID, "1000.00", "1200.00")
	seedInvoice(t, db, "FAC-C", day(2024, 2, 1), f.client.ID, "33.33", "40.00")
	seedInvoice(t, db, "FAC-D", day(2023, 12, 31), f.client.ID, "10.00", "12.00")

	t.Run("month", func(t *testing.T) {
		totals, err := repo.SumPeriod(ctx, day(2024, 1, 1), day(2024, 2, 1))
		require.NoError(t, err)

		assert.Equal(t, int64(2), totals.InvoiceCount)
		assert.True(t, dec("1100.00").Equal(totals.TotalExclTax), totals.TotalExclTax.String())
		assert.True(t, dec("1320.00").Equal(totals.TotalInclTax))
		assert.True(t, dec("660.00").Equal(totals.Average()))
	})

	t.Run("year", func(t *testing.T) {
		totals, err := repo.SumPeriod(ctx, day(2024, 1, 1), day(2025, 1, 1))
		require.NoError(t, err)

		assert.Equal(t, int64(3), totals.InvoiceCount)
		assert.True(t, dec("1133.33").Equal(totals.TotalExclTax), totals.TotalExclTax.String())
		assert.True(t, dec("1360.00").Equal(totals.TotalInclTax))
	})

	t.Run("empty period", func(t *testing.T) {
		totals, err := repo.SumPeriod(ctx, day(2030, 1, 1), day(2031, 1, 1))
		require.NoError(t, err)

		assert.Zero(t, totals.InvoiceCount)
		assert.True(t, totals.TotalInclTax.IsZero())
		assert.True(t, totals.Average().IsZero())
	})

	t.Run("top clients", func(t *testing.T) {
		top, err := repo.TopClients(ctx, 10)
		require.NoError(t, err)

		require.Len(t, top, 2)
		assert.Equal(t, "CLI002", top[0].Code)
		assert.True(t, dec("1200.00").Equal(top[0].Revenue))
		assert.Equal(t, "CLI001", top[1].Code)
		assert.Equal(t, int64(3), top[1].InvoiceCount)
		assert.True(t, dec("172.00").Equal(top[1].Revenue))

		limited, err := repo.TopClients(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, limited, 1)
	})
}
