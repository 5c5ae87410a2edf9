package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	catalogapp "github.com/okayo/invoicing/internal/application/catalog"
	invoicingapp "github.com/okayo/invoicing/internal/application/invoicing"
	partnerapp "github.com/okayo/invoicing/internal/application/partner"
	printingapp "github.com/okayo/invoicing/internal/application/printing"
	reportapp "github.com/okayo/invoicing/internal/application/report"
	"github.com/okayo/invoicing/internal/domain/catalog"
	"github.com/okayo/invoicing/internal/domain/invoicing"
	"github.com/okayo/invoicing/internal/infrastructure/config"
	"github.com/okayo/invoicing/internal/infrastructure/logger"
	"github.com/okayo/invoicing/internal/infrastructure/persistence"
	infraprinting "github.com/okayo/invoicing/internal/infrastructure/printing"
	"github.com/okayo/invoicing/internal/infrastructure/storage"
	"github.com/okayo/invoicing/internal/infrastructure/telemetry"
	"github.com/okayo/invoicing/internal/interfaces/http/handler"
	"github.com/okayo/invoicing/internal/interfaces/http/middleware"
	"github.com/okayo/invoicing/internal/interfaces/http/router"
)

const meterName = "okayo-invoicing"

//	@title			API Gestion Factures Okayo
//	@version		1.0.0
//	@description	API pour la gestion des factures, clients, produits et statistiques

//	@BasePath	/api

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	ctx := context.Background()

	// OTLP log export feeds an extra zap core
	logProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	})
	if err != nil {
		panic("Failed to initialize log exporter: " + err.Error())
	}
	var extraCores []zapcore.Core
	if logProvider.IsEnabled() {
		extraCores = append(extraCores, logProvider.Core(logger.ParseLevel(cfg.Log.Level)))
	}

	// Initialize logger
	log, err := logger.New(logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	}, extraCores...)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting invoicing API",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("db_driver", cfg.Database.Driver),
	)

	// Tracing, metrics and profiling
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	meter := meterProvider.Meter(meterName)

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:         cfg.Telemetry.ProfilingEnabled,
		ServerAddress:   cfg.Telemetry.PyroscopeURL,
		ApplicationName: cfg.Telemetry.ServiceName,
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	if profiler.IsEnabled() {
		tracerProvider.EnableSpanProfiles()
	}

	// Create GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Log.SlowThreshold))

	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	log.Info("Database connected successfully")

	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
			Enabled:         true,
			LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
			SlowQueryThresh: cfg.Log.SlowThreshold,
			DBSystem:        cfg.Database.Driver,
		}, log); err != nil {
			log.Fatal("Failed to register database tracing", zap.Error(err))
		}
	}

	var dbMetrics *telemetry.DBMetrics
	if meterProvider.IsEnabled() {
		sqlDB, err := db.DB.DB()
		if err != nil {
			log.Fatal("Failed to access connection pool", zap.Error(err))
		}
		if dbMetrics, err = telemetry.RegisterDBMetrics(db.DB, sqlDB, meter); err != nil {
			log.Fatal("Failed to register database metrics", zap.Error(err))
		}
	}

	// Initialize repositories
	clientRepo := persistence.NewGormClientRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	catalogRepo := persistence.NewGormCatalogRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	reportRepo := persistence.NewGormInvoiceReportRepository(db.DB)

	// Initialize application services
	clientService := partnerapp.NewClientService(clientRepo, log)
	productService := catalogapp.NewProductService(productRepo, persistence.NewGormCatalogTransactionScope(db.DB), nil, log)
	catalogService := catalogapp.NewCatalogService(catalogRepo, nil)
	invoiceService := invoicingapp.NewInvoiceService(
		invoiceRepo,
		persistence.NewGormInvoicingTransactionScope(db.DB),
		invoicingapp.Policies{
			Defaults:       invoicing.DefaultsPolicy(cfg.Invoicing.DefaultsPolicy),
			CatalogOverlap: catalog.OverlapPolicy(cfg.Invoicing.CatalogOverlapPolicy),
		},
		log,
	)
	reportService := reportapp.NewReportService(reportRepo, invoiceRepo, nil, log)

	if meterProvider.IsEnabled() {
		invoiceMetrics, err := telemetry.NewInvoiceMetrics(meter, log)
		if err != nil {
			log.Fatal("Failed to create invoice metrics", zap.Error(err))
		}
		invoiceService.SetBusinessMetrics(invoiceMetrics)
	}

	// PDF rendering and archiving are optional
	var renderer infraprinting.PDFRenderer
	var chromeRenderer *infraprinting.ChromedpRenderer
	if cfg.Printing.Enabled {
		chromeRenderer, err = infraprinting.NewChromedpRenderer(&infraprinting.ChromedpConfig{
			DefaultTimeout: cfg.Printing.Timeout,
			RemoteURL:      cfg.Printing.RemoteURL,
			NoSandbox:      cfg.Printing.NoSandbox,
			Logger:         log,
		})
		if err != nil {
			log.Fatal("Failed to initialize PDF renderer", zap.Error(err))
		}
		renderer = chromeRenderer
		log.Info("PDF rendering enabled", zap.Bool("remote", cfg.Printing.RemoteURL != ""))
	}

	var store printingapp.ObjectStore
	if cfg.Storage.Enabled {
		s3Store, err := storage.NewS3ObjectStorage(&cfg.Storage,
			storage.WithLogger(log),
			storage.WithPresignExpiration(cfg.Storage.PresignExpiration),
		)
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		bucketCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		err = s3Store.EnsureBucket(bucketCtx)
		cancel()
		if err != nil {
			log.Fatal("Failed to prepare archive bucket", zap.Error(err), zap.String("bucket", s3Store.Bucket()))
		}
		store = s3Store
	}

	printService := printingapp.NewPrintService(invoiceService, renderer, store, log)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	security := middleware.DefaultSecurityConfig()
	security.HSTSEnabled = cfg.App.Env == "production"

	engine, err := router.NewEngine(router.EngineConfig{
		Logger:           log,
		Meter:            meter,
		ServiceName:      cfg.Telemetry.ServiceName,
		TracingEnabled:   tracerProvider.IsEnabled(),
		ProfilingEnabled: profiler.IsEnabled(),
		MaxBodySize:      cfg.HTTP.MaxBodySize,
		RenderRateLimit:  cfg.Printing.RateLimit,
		TrustedProxies:   cfg.HTTP.TrustedProxies,
		CORS: middleware.CORSConfig{
			AllowOrigins: cfg.HTTP.CORSAllowOrigins,
			AllowMethods: cfg.HTTP.CORSAllowMethods,
			AllowHeaders: cfg.HTTP.CORSAllowHeaders,
		},
		Security: security,
	}, router.Handlers{
		Client:  handler.NewClientHandler(clientService),
		Product: handler.NewProductHandler(productService, catalogService),
		Invoice: handler.NewInvoiceHandler(invoiceService),
		Print:   handler.NewPrintHandler(printService),
		Report:  handler.NewReportHandler(reportService),
		System:  handler.NewSystemHandler(db, log),
	})
	if err != nil {
		log.Fatal("Failed to build HTTP engine", zap.Error(err))
	}

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting",
			zap.String("addr", srv.Addr),
			zap.String("health", "http://localhost:"+cfg.App.Port+router.HealthPath),
			zap.String("docs", "http://localhost:"+cfg.App.Port+router.DefaultBasePath+"/docs"),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	if chromeRenderer != nil {
		if err := chromeRenderer.Close(); err != nil {
			log.Error("Error closing PDF renderer", zap.Error(err))
		}
	}
	if dbMetrics != nil {
		if err := dbMetrics.Stop(); err != nil {
			log.Error("Error stopping database metrics", zap.Error(err))
		}
	}
	if err := db.Close(); err != nil {
		log.Error("Error closing database", zap.Error(err))
	}
	if err := profiler.Stop(); err != nil {
		log.Error("Error stopping profiler", zap.Error(err))
	}
	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down meter provider", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down tracer provider", zap.Error(err))
	}

	log.Info("Server exited gracefully")

	if err := logProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down log exporter", zap.Error(err))
	}
}
