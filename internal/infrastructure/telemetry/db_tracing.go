package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig holds database tracing configuration.
type DBTracingConfig struct {
	Enabled bool
	// LogFullSQL keeps bound values in span statements.
	LogFullSQL      bool
	SlowQueryThresh time.Duration
	DBSystem        string
}

type queryStartKey struct{}

// RegisterDBTracing installs otelgorm on db together with callbacks that
// flag slow statements on the current span.
func RegisterDBTracing(db *gorm.DB, cfg DBTracingConfig, logger *zap.Logger) error {
	if !cfg.Enabled {
		return nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.SlowQueryThresh <= 0 {
		cfg.SlowQueryThresh = 200 * time.Millisecond
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(cfg.DBSystem)}
	if !cfg.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	before := func(tx *gorm.DB) {
		if tx.Statement.Context != nil {
			tx.Statement.Context = context.WithValue(tx.Statement.Context, queryStartKey{}, time.Now())
		}
	}
	after := func(tx *gorm.DB) {
		markSlowQuery(tx, cfg.SlowQueryThresh)
	}
	if err := registerAroundCallbacks(db, "otel_slow_query", before, after); err != nil {
		return err
	}

	logger.Info("Database tracing enabled",
		zap.Bool("log_full_sql", cfg.LogFullSQL),
		zap.Duration("slow_query_threshold", cfg.SlowQueryThresh),
		zap.String("db_system", cfg.DBSystem),
	)
	return nil
}

func markSlowQuery(tx *gorm.DB, threshold time.Duration) {
	ctx := tx.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	if tx.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", tx.Statement.Table))
	}
	if tx.Error != nil && !errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		RecordError(span, tx.Error)
	}
	start, ok := ctx.Value(queryStartKey{}).(time.Time)
	if !ok {
		return
	}
	if elapsed := time.Since(start); elapsed > threshold {
		span.SetAttributes(
			attribute.Bool("db.slow_query", true),
			attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
		)
	}
}

type gormRegister interface {
	Register(name string, fn func(*gorm.DB)) error
}

// registerAroundCallbacks hooks before and after every gorm processor
// under names prefixed with name. After-hooks run ahead of otelgorm's own
// so the statement span is still recording.
func registerAroundCallbacks(db *gorm.DB, name string, before, after func(*gorm.DB)) error {
	cb := db.Callback()
	hooks := []struct {
		register gormRegister
		fn       func(*gorm.DB)
		suffix   string
	}{
		{cb.Create().Before("gorm:create"), before, "before_create"},
		{cb.Create().After("gorm:create").Before("otel:after:create"), after, "after_create"},
		{cb.Query().Before("gorm:query"), before, "before_query"},
		{cb.Query().After("gorm:query").Before("otel:after:query"), after, "after_query"},
		{cb.Update().Before("gorm:update"), before, "before_update"},
		{cb.Update().After("gorm:update").Before("otel:after:update"), after, "after_update"},
		{cb.Delete().Before("gorm:delete"), before, "before_delete"},
		{cb.Delete().After("gorm:delete").Before("otel:after:delete"), after, "after_delete"},
		{cb.Row().Before("gorm:row"), before, "before_row"},
		{cb.Row().After("gorm:row").Before("otel:after:row"), after, "after_row"},
		{cb.Raw().Before("gorm:raw"), before, "before_raw"},
		{cb.Raw().After("gorm:raw").Before("otel:after:raw"), after, "after_raw"},
	}
	for _, h := range hooks {
		if err := h.register.Register(name+":"+h.suffix, h.fn); err != nil {
			return err
		}
	}
	return nil
}
