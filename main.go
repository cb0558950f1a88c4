package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/streadway/amqp"
	"go.uber.org/zap"

	"building/internal/config"
	"building/internal/database"
	"building/internal/logger"
	"building/internal/repositories"
	"building/internal/server"
	"building/internal/services"
	"building/pkg/rabbitmq"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zl, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zl.Sync()
	zap.ReplaceGlobals(zl)

	// --- Repositories ---
	var (
		userRepo   repositories.UserRepository
		reportRepo repositories.ReportRepository
	)
	if cfg.DBDriver == database.DriverMemory {
		zl.Warn("using in-memory storage, data is lost on restart")
		userRepo = repositories.NewMemoryUserRepository()
		reportRepo = repositories.NewMemoryReportRepository()
	} else {
		db, err := database.Open(cfg.DBDriver, cfg.DatabaseDSN)
		if err != nil {
			zl.Fatal("failed to open database", zap.String("driver", cfg.DBDriver), zap.Error(err))
		}
		defer database.Close(db)
		userRepo = repositories.NewGORMUserRepository(db)
		reportRepo = repositories.NewGORMReportRepository(db)
	}

	// --- RabbitMQ (optional) ---
	var events services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{
			URL:      cfg.RabbitMQURL,
			Exchange: cfg.RabbitMQExchange,
			Queue:    cfg.RabbitMQQueue,
		}, zl)
		if err != nil {
			zl.Fatal("failed to initialize RabbitMQ client", zap.Error(err))
		}
		defer mqClient.Close()
		events = mqClient

		if err := mqClient.Consume(auditHandler(zl)); err != nil {
			zl.Error("failed to start audit consumer", zap.Error(err))
		}
	}

	// --- Services ---
	userService := services.NewUserService(userRepo, events, zl, cfg.BcryptCost)
	reportService := services.NewReportService(reportRepo, userRepo, events, zl)
	authService := services.NewAuthService(userRepo, cfg.AccessTokenSecret, cfg.AccessTokenTTL, zl)

	if _, err := userService.EnsureAdmin(context.Background(), cfg.AdminEmail, cfg.AdminPassword); err != nil {
		zl.Fatal("failed to bootstrap admin user", zap.Error(err))
	}

	app := server.NewApp(
		server.Services{Users: userService, Reports: reportService, Auth: authService},
		server.Options{AllowedOrigins: cfg.CORSAllowedOrigins, LoginRateLimit: cfg.LoginRateLimit},
		zl,
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		zl.Info("starting server", zap.String("addr", cfg.Port), zap.String("env", cfg.Env))
		if err := app.Listen(cfg.Port); err != nil {
			zl.Fatal("server failed to start", zap.Error(err))
		}
	}()

	<-quit
	zl.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		zl.Error("error during shutdown", zap.Error(err))
	}
	zl.Info("server gracefully stopped")
}

// auditHandler logs every domain event delivered to the audit queue.
func auditHandler(zl *zap.Logger) func(msg amqp.Delivery) error {
	return func(msg amqp.Delivery) error {
		zl.Info("audit event",
			zap.String("type", msg.Type),
			zap.ByteString("body", msg.Body),
			zap.Time("published_at", msg.Timestamp),
		)
		return nil
	}
}
