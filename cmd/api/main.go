package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"certapi/docs"
	"certapi/internal/audit"
	"certapi/internal/config"
	"certapi/internal/database"
	"certapi/internal/database/migration"
	handlers "certapi/internal/http/handler"
	"certapi/internal/http/middleware"
	otelpkg "certapi/internal/otel"
	"certapi/internal/provider"
	"certapi/internal/repository/postgres"
	"certapi/internal/service"
	"certapi/internal/storage"
)

// @title Evidence Intake API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	ctx := context.Background()

	// Initialize OpenTelemetry tracing (no-op when OTEL_SDK_DISABLED=true)
	shutdownTracing, err := otelpkg.Init(ctx, time.UTC)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	// Apply schema migrations on a fresh database
	if err := migration.EnsureMigrated(ctx, db, time.UTC, cfg.Database.Host); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	// Initialize reusable S3-compatible object storage client (MinIO-supported)
	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	// External classifier clients
	transcriber := provider.NewTranscriber(cfg.Providers)
	scorer := provider.NewAuthenticityScorer(cfg.Providers)
	mapper := provider.NewIndicatorMapper(cfg.Providers)

	// Repositories
	candidateRepo := postgres.NewCandidatePostgres(db)
	evidenceRepo := postgres.NewEvidencePostgres(db)
	auditRepo := postgres.NewAuditPostgres(db)
	assessmentRepo := postgres.NewAssessmentPostgres(db)

	// Audit outbox: asynchronous, retried writes; Close drains on shutdown
	auditEmitter := audit.NewEmitter(auditRepo, cfg.Audit)

	// Services
	evidenceSvc := service.NewEvidenceService(candidateRepo, evidenceRepo, objStore, transcriber, scorer, mapper, auditEmitter)
	assessmentSvc := service.NewAssessmentService(candidateRepo, assessmentRepo, auditEmitter)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    64 * 1024 * 1024, // evidence uploads can carry audio/video
	})

	// Register global middleware
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger())
	// Distributed tracing spans per request
	app.Use(otelfiber.Middleware())

	// Prometheus request counter plus /metrics scrape endpoint
	reg := prometheus.NewRegistry()
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatalf("failed to register prometheus metrics: %v", err)
	}
	app.Use(promMiddleware.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// Register HTTP routes with injected services
	handlers.RegisterRoutes(app, db, evidenceSvc, assessmentSvc)
	// Websocket endpoint for live assessor notes
	handlers.RegisterLiveNotes(app, assessmentSvc)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	// Graceful shutdown: stop accepting requests, drain the audit queue, flush traces
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	auditEmitter.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Printf("tracing shutdown: %v", err)
	}
}
