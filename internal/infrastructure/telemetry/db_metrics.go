package telemetry

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"go.opentelemetry.io/otel/metric"
	"gorm.io/gorm"
)

// DBMetrics exports connection pool gauges and per-statement latency.
type DBMetrics struct {
	queryTotal    *Counter
	queryDuration *Histogram
	registration  metric.Registration
}

type dbMetricsStartKey struct{}

// RegisterDBMetrics observes the pool of sqlDB on every collection and
// times every statement run through db.
func RegisterDBMetrics(db *gorm.DB, sqlDB *sql.DB, meter metric.Meter) (*DBMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	queryTotal, err := NewCounter(meter, "db_query_total", "Number of database statements by operation", "{query}")
	if err != nil {
		return nil, err
	}
	queryDuration, err := NewHistogram(meter, HistogramOpts{
		Name:        "db_query_duration_seconds",
		Description: "Database statement latency in seconds",
		Unit:        "s",
		Boundaries:  DBDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	connections, err := meter.Int64ObservableGauge("db_pool_connections",
		metric.WithDescription("Connections in the pool by state"),
		metric.WithUnit("{connection}"))
	if err != nil {
		return nil, err
	}
	maxOpen, err := meter.Int64ObservableGauge("db_pool_connections_max",
		metric.WithDescription("Maximum open connections"),
		metric.WithUnit("{connection}"))
	if err != nil {
		return nil, err
	}

	reg, err := meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		stats := sqlDB.Stats()
		o.ObserveInt64(maxOpen, int64(stats.MaxOpenConnections))
		o.ObserveInt64(connections, int64(stats.Idle), metric.WithAttributes(AttrDBState.String("idle")))
		o.ObserveInt64(connections, int64(stats.InUse), metric.WithAttributes(AttrDBState.String("in_use")))
		o.ObserveInt64(connections, int64(stats.OpenConnections), metric.WithAttributes(AttrDBState.String("open")))
		return nil
	}, connections, maxOpen)
	if err != nil {
		return nil, err
	}

	m := &DBMetrics{queryTotal: queryTotal, queryDuration: queryDuration, registration: reg}

	before := func(tx *gorm.DB) {
		if tx.Statement.Context != nil {
			tx.Statement.Context = context.WithValue(tx.Statement.Context, dbMetricsStartKey{}, time.Now())
		}
	}
	after := func(tx *gorm.DB) {
		ctx := tx.Statement.Context
		if ctx == nil {
			return
		}
		start, ok := ctx.Value(dbMetricsStartKey{}).(time.Time)
		if !ok {
			return
		}
		m.RecordQuery(ctx, operationOf(tx.Statement.SQL.String()), time.Since(start))
	}
	if err := registerAroundCallbacks(db, "otel_db_metrics", before, after); err != nil {
		_ = reg.Unregister()
		return nil, err
	}
	return m, nil
}

// RecordQuery counts one statement and its duration.
func (m *DBMetrics) RecordQuery(ctx context.Context, operation string, d time.Duration) {
	attr := AttrDBOperation.String(operation)
	m.queryTotal.Inc(ctx, attr)
	m.queryDuration.RecordDuration(ctx, d, attr)
}

// Stop unregisters the pool observer.
func (m *DBMetrics) Stop() error {
	return m.registration.Unregister()
}

func operationOf(sql string) string {
	fields := strings.Fields(sql)
	if len(fields) == 0 {
		return "UNKNOWN"
	}
	switch op := strings.ToUpper(fields[0]); op {
	case "SELECT", "INSERT", "UPDATE", "DELETE":
		return op
	default:
		return "OTHER"
	}
}
