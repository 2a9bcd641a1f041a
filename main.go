package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vocabulary/internal/config"
	"vocabulary/internal/database"
	vgraphql "vocabulary/internal/graphql"
	"vocabulary/internal/handlers"
	"vocabulary/internal/logging"
	"vocabulary/internal/metrics"
	"vocabulary/internal/middleware"
	"vocabulary/internal/pipeline"
	"vocabulary/internal/repositories"
	"vocabulary/internal/services"
	"vocabulary/internal/uniqueness"
	"vocabulary/internal/validation"
	"vocabulary/pkg/rabbitmq"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/streadway/amqp"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel)

	app, cleanup, err := newApp(context.Background(), cfg)
	if err != nil {
		slog.Error("failed to initialise application", "error", err)
		os.Exit(1)
	}

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", cfg.AppPort, "env", cfg.AppEnv)
		if err := app.Listen(cfg.AppPort); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("error during fiber shutdown", "error", err)
	}
	cleanup()
	slog.Info("server gracefully stopped")
}

// repositorySet is the store backing the services.
type repositorySet struct {
	users      repositories.UserRepository
	admins     repositories.AdminUserRepository
	vocabulary repositories.VocabularyRepository
	ping       func(ctx context.Context) error
}

// newApp wires the application described by cfg. The returned cleanup func
// releases every connection that was opened, in reverse order.
func newApp(ctx context.Context, cfg *config.Config) (*fiber.App, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	fail := func(err error) (*fiber.App, func(), error) {
		cleanup()
		return nil, func() {}, err
	}

	// --- Store ---
	var repos repositorySet
	if cfg.DatabaseDriver == config.DriverMemory {
		slog.Warn("using in-memory store; data is lost on restart")
		repos = repositorySet{
			users:      repositories.NewMemoryUserRepository(),
			admins:     repositories.NewMemoryAdminUserRepository(),
			vocabulary: repositories.NewMemoryVocabularyRepository(),
		}
	} else {
		db, err := database.Open(cfg)
		if err != nil {
			return fail(err)
		}
		closers = append(closers, func() {
			if err := database.Close(db); err != nil {
				slog.Error("database close error", "error", err)
			}
		})
		repos = repositorySet{
			users:      repositories.NewGORMUserRepository(db),
			admins:     repositories.NewGORMAdminUserRepository(db),
			vocabulary: repositories.NewGORMVocabularyRepository(db),
			ping:       func(ctx context.Context) error { return database.Ping(ctx, db) },
		}
	}

	deps := services.Deps{
		Validator: validation.New(),
		Hasher:    services.BcryptHasher{Cost: cfg.BcryptCost},
		Guard:     uniqueness.NewLocalGuard(cfg.UniqueClaimTTL),
	}

	// --- Uniqueness claims shared through Redis ---
	if cfg.RedisURL != "" {
		client, err := uniqueness.OpenRedis(ctx, cfg.RedisURL)
		if err != nil {
			return fail(err)
		}
		closers = append(closers, func() { client.Close() })
		deps.Guard = uniqueness.NewRedisGuard(client, cfg.UniqueClaimTTL)
		slog.Info("redis uniqueness guard enabled")
	}

	// --- Lifecycle events ---
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			return fail(fmt.Errorf("failed to initialise RabbitMQ client: %w", err))
		}
		closers = append(closers, func() {
			if err := mqClient.Close(); err != nil {
				slog.Error("rabbitmq close error", "error", err)
			}
		})
		deps.Events = mqClient
		if err := mqClient.ConsumeEvents(auditEvent); err != nil {
			slog.Error("failed to start audit consumer", "error", err)
		}
	}

	// --- Metrics ---
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	// --- Services and pipelines ---
	userPipeline := pipeline.NewUserPipeline(services.NewUserService(repos.users, deps), m)
	adminPipeline := pipeline.NewAdminUserPipeline(services.NewAdminUserService(repos.admins, deps), m)
	vocabPipeline := pipeline.NewVocabularyPipeline(
		services.NewVocabularyService(repos.vocabulary, repos.users, deps), m)

	schema, err := vgraphql.NewSchema(adminPipeline)
	if err != nil {
		return fail(fmt.Errorf("failed to build graphql schema: %w", err))
	}

	// --- Fiber app ---
	app := fiber.New(fiber.Config{
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(recover.New())
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.AppEnv,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			closers = append(closers, func() { sentry.Flush(2 * time.Second) })
			app.Use(sentryfiber.New(sentryfiber.Options{Repanic: true}))
		}
	}
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${locals:requestid}\n",
	}))

	// --- Routes ---
	var protected []fiber.Handler
	if cfg.APIKey != "" {
		protected = append(protected, middleware.APIKeyRequired(cfg.APIKey))
	} else {
		slog.Warn("API_KEY is empty; /api and /graphql are unauthenticated")
	}

	api := app.Group("/api", protected...)
	handlers.NewUserHandler(userPipeline).RegisterRoutes(api)
	handlers.NewAdminUserHandler(adminPipeline).RegisterRoutes(api)
	handlers.NewVocabularyHandler(vocabPipeline).RegisterRoutes(api)
	handlers.NewGraphQLHandler(schema).RegisterRoutes(app, protected...)

	handlers.NewHealthHandler(repos.ping).RegisterRoutes(app)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	return app, cleanup, nil
}

// auditEvent logs a lifecycle event taken off the audit queue.
func auditEvent(msg amqp.Delivery) error {
	var event services.Event
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		return fmt.Errorf("malformed event %d: %w", msg.DeliveryTag, err)
	}
	slog.Info("audit event",
		"event", event.Event,
		"id", event.ID,
		"occurred_at", event.OccurredAt,
		"routing_key", msg.RoutingKey,
	)
	return nil
}
