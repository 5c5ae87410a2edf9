package persistence

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/okayo/invoicing/internal/domain/invoicing"
	"github.com/okayo/invoicing/internal/domain/shared"
	"github.com/okayo/invoicing/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newMockDatabase creates a Database backed by sqlmock through the
// postgres dialector.
func newMockDatabase(t *testing.T) (*Database, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	mockDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	db, err := Open(postgres.New(postgres.Config{Conn: mockDB}), gormlogger.Default.LogMode(gormlogger.Silent))
	require.NoError(t, err)
	return db, mock, mockDB
}

func TestDatabase_Ping(t *testing.T) {
	db, mock, mockDB := newMockDatabase(t)
	defer mockDB.Close()

	mock.ExpectPing()
	require.NoError(t, db.Ping(t.Context()))

	mock.ExpectPing().WillReturnError(errors.New("connection reset"))
	assert.Error(t, db.Ping(t.Context()))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDatabase_Close(t *testing.T) {
	db, mock, _ := newMockDatabase(t)

	mock.ExpectClose()

	require.NoError(t, db.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDatabase_Stats(t *testing.T) {
	db, _, mockDB := newMockDatabase(t)
	defer mockDB.Close()
	mockDB.SetMaxOpenConns(7)

	stats, err := db.Stats()

	require.NoError(t, err)
	assert.Equal(t, 7, stats.MaxOpenConnections)
	assert.Equal(t, stats.OpenConnections, stats.InUse+stats.Idle)
}

func TestGormInvoiceRepository_UpdateTotals_MissingInvoice(t *testing.T) {
	db, mock, mockDB := newMockDatabase(t)
	defer mockDB.Close()

	mock.ExpectExec(`UPDATE "invoices" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := NewGormInvoiceRepository(db.DB).UpdateTotals(t.Context(), 12, dec("1"), dec("1.2"))

	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormInvoiceRepository_Create_PostgresUniqueViolation(t *testing.T) {
	db, mock, mockDB := newMockDatabase(t)
	defer mockDB.Close()

	mock.ExpectQuery(`INSERT INTO "invoices"`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_invoices_reference"})

	inv := invoicing.NewInvoice("FAC-2024-009", day(2024, 5, 2), day(2024, 6, 1), 1, invoicing.Defaults{})
	err := NewGormInvoiceRepository(db.DB).Create(t.Context(), inv)

	require.Error(t, err)
	assert.True(t, shared.IsConflict(err))
	assert.Equal(t, "Invoice reference FAC-2024-009 already exists", err.Error())
	assert.Zero(t, inv.ID)
}

func TestTranslateError(t *testing.T) {
	other := errors.New("deadlock detected")

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"record not found", gorm.ErrRecordNotFound, shared.ErrNotFound},
		{"wrapped record not found", fmt.Errorf("load: %w", gorm.ErrRecordNotFound), shared.ErrNotFound},
		{"translated duplicate", gorm.ErrDuplicatedKey, shared.ErrConflict},
		{"postgres unique violation", &pgconn.PgError{Code: "23505"}, shared.ErrConflict},
		{"postgres other code", &pgconn.PgError{Code: "23503"}, nil},
		{"mysql duplicate entry", &mysql.MySQLError{Number: 1062}, shared.ErrConflict},
		{"mysql other number", &mysql.MySQLError{Number: 1452}, nil},
		{"unrelated", other, other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateError(tt.err)
			switch {
			case tt.err == nil:
				assert.NoError(t, got)
			case tt.want == nil:
				assert.Same(t, tt.err, got)
			default:
				assert.ErrorIs(t, got, tt.want)
			}
		})
	}
}

func TestDialector(t *testing.T) {
	tests := []struct {
		driver  string
		want    string
		wantErr bool
	}{
		{config.DriverPostgres, "postgres", false},
		{"", "postgres", false},
		{config.DriverMySQL, "mysql", false},
		{"oracle", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			d, err := Dialector(&config.DatabaseConfig{Driver: tt.driver, Host: "localhost", Port: 5432, DBName: "invoicing"})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Name())
		})
	}
}
