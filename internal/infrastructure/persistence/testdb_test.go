package persistence

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/okayo/invoicing/internal/domain/catalog"
	"github.com/okayo/invoicing/internal/domain/invoicing"
	"github.com/okayo/invoicing/internal/domain/partner"
	"github.com/okayo/invoicing/internal/domain/shared"
	"github.com/okayo/invoicing/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// newTestDB opens an in-memory SQLite database with the full schema. A
// single connection keeps every statement, transactions included, on the
// same in-memory database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := Open(sqlite.Open(":memory:"), gormlogger.Default.LogMode(gormlogger.Silent))
	require.NoError(t, err)

	sqlDB, err := db.DB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.DB.AutoMigrate(models.All()...))
	return db.DB
}

// fixture is the reference data most tests start from.
type fixture struct {
	db       *gorm.DB
	client   *partner.Client
	other    *partner.Client
	audit    *catalog.Product
	training *catalog.Product
	rate20   int64
	rate55   int64
}

func seedFixture(t *testing.T, db *gorm.DB) *fixture {
	t.Helper()
	ctx := context.Background()
	f := &fixture{db: db}

	require.NoError(t, db.Create(&models.IssuerModel{
		Name: "Okayo", Address: "35 rue du Général Foy", City: "Paris", PostalCode: "75008",
	}).Error)
	require.NoError(t, db.Create(&models.PaymentTermModel{Label: "À réception"}).Error)
	require.NoError(t, db.Create(&models.BankAccountModel{
		BankName: "BNP", HolderName: "Okayo SAS", IBAN: "FR7630004000031234567890143", BIC: "BNPAFRPP",
		ValidFrom: day(2020, 1, 1),
	}).Error)

	f.rate20 = seedTaxRate(t, db, "20", day(2014, 1, 1), nil)
	f.rate55 = seedTaxRate(t, db, "5.5", day(2014, 1, 1), nil)

	clients := NewGormClientRepository(db)
	f.client = &partner.Client{Code: "CLI001", Name: "Dupont SARL", Address: "1 rue de Paris", City: "Paris", PostalCode: "75001"}
	require.NoError(t, clients.Create(ctx, f.client))
	f.other = &partner.Client{Code: "CLI002", Name: "Martin SA", Address: "2 quai de Lyon", City: "Lyon", PostalCode: "69002"}
	require.NoError(t, clients.Create(ctx, f.other))

	f.audit = seedProduct(t, db, "Audit")
	f.training = seedProduct(t, db, "Formation")
	seedEntry(t, db, f.audit.ID, "100.00", f.rate20, day(2024, 1, 1), nil)
	seedEntry(t, db, f.training.ID, "33.33", f.rate55, day(2024, 1, 1), nil)
	return f
}

func seedTaxRate(t *testing.T, db *gorm.DB, rate string, from time.Time, to *time.Time) int64 {
	t.Helper()
	m := &models.TaxRateModel{Rate: dec(rate), ValidFrom: from, ValidTo: to}
	require.NoError(t, db.Create(m).Error)
	return m.ID
}

func seedProduct(t *testing.T, db *gorm.DB, name string) *catalog.Product {
	t.Helper()
	p := &catalog.Product{Name: name}
	p.CreatedAt = time.Now().UTC()
	require.NoError(t, NewGormProductRepository(db).Create(context.Background(), p))
	return p
}

func seedEntry(t *testing.T, db *gorm.DB, productID int64, price string, rateID int64, from time.Time, to *time.Time) {
	t.Helper()
	entry := &catalog.CatalogEntry{
		ProductID:        productID,
		UnitPriceExclTax: dec(price),
		TaxRateID:        rateID,
		Validity:         catalog.Validity{From: from, To: to},
	}
	require.NoError(t, NewGormCatalogRepository(db).Create(context.Background(), entry))
}

// seedInvoice writes a header with its totals, bypassing the workflow.
func seedInvoice(t *testing.T, db *gorm.DB, ref string, date time.Time, clientID int64, excl, incl string) int64 {
	t.Helper()
	inv := invoicing.NewInvoice(ref, date, date.AddDate(0, 0, 30), clientID, invoicing.Defaults{
		Issuer:      invoicing.Issuer{ID: 1},
		PaymentTerm: invoicing.PaymentTerm{ID: 1},
		BankAccount: invoicing.BankAccount{ID: 1},
	})
	inv.TotalExclTax = dec(excl)
	inv.TotalInclTax = dec(incl)
	require.NoError(t, NewGormInvoiceRepository(db).Create(context.Background(), inv))
	return inv.ID
}

func countRows(t *testing.T, db *gorm.DB, table string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Table(table).Count(&n).Error, fmt.Sprintf("count %s", table))
	return n
}

func invoicingFilter(clientID *int64, page, size int) invoicing.InvoiceFilter {
	return invoicing.InvoiceFilter{ClientID: clientID, Pagination: shared.NewPagination(page, size)}
}
