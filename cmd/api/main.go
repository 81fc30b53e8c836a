// @title           Partner Portal API
// @version         1.0
// @description     Admin API for premium project lifecycle, partner agencies and churn redistribution

// @contact.name   API Support

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8000
// @BasePath  /api/portal

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	_ "partner-portal-api/docs" // Swagger docs import

	"partner-portal-api/internal/client"
	"partner-portal-api/internal/config"
	"partner-portal-api/internal/database"
	"partner-portal-api/internal/job"
	"partner-portal-api/internal/metrics"
	"partner-portal-api/internal/repository"
	"partner-portal-api/internal/router"
	"partner-portal-api/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := initLogger(cfg.Logger.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Set Gin mode
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("Starting Partner Portal API",
		zap.String("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode),
		zap.String("base_path", cfg.Server.BasePath),
	)

	// Initialize database. Startup continues on failure so the pod stays
	// alive while the connection is retried in the background.
	dbConfig := database.Config{
		DSN:             cfg.Database.GetDSN(),
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}

	db, err := database.New(dbConfig)
	if err != nil {
		logger.Warn("Failed to connect to database on startup, will retry in background",
			zap.Error(err))
		database.NewAsync(dbConfig, 5*time.Second, logger)
	} else {
		logger.Info("Database connected successfully")

		if err := database.AutoMigrate(db); err != nil {
			logger.Warn("Failed to run database migrations", zap.Error(err))
		} else {
			logger.Info("Database migrations completed")
		}
	}

	// Initialize metrics
	m := metrics.NewWithLogger(logger)
	logger.Info("Metrics initialized")

	if db != nil {
		database.RegisterMetricsCallbacks(db, m)
		dbStatsDone := database.StartDBStatsCollector(db, m)
		defer close(dbStatsDone)

		collector := metrics.NewBusinessMetricsCollector(db, m, logger)
		collector.Start()
		defer collector.Stop()
	}

	// Initialize Redis for the portfolio summary cache. The API works
	// without it, every summary request just hits the database.
	var redisClient *redis.Client
	if rc, err := database.NewRedis(cfg.Redis, logger); err != nil {
		logger.Warn("Failed to connect to Redis, portfolio summary cache disabled", zap.Error(err))
	} else {
		redisClient = rc
		defer redisClient.Close()
	}

	// Initialize S3 client for the report archive
	var s3Client service.S3Client
	if cfg.S3.Bucket != "" && cfg.S3.Region != "" {
		c, err := client.NewS3Client(&cfg.S3)
		if err != nil {
			logger.Warn("Failed to initialize S3 client, report features disabled", zap.Error(err))
		} else {
			s3Client = c
			logger.Info("S3 client initialized",
				zap.String("bucket", cfg.S3.Bucket),
				zap.String("region", cfg.S3.Region),
			)
		}
	} else {
		logger.Warn("S3 configuration incomplete, report features disabled")
	}

	// Initialize notification client for churn client notifications
	var notificationClient client.NotificationClient
	if cfg.Notification.BaseURL != "" {
		notificationClient = client.NewNotificationClient(
			cfg.Notification.BaseURL,
			cfg.Notification.APIKey,
			cfg.Notification.Timeout,
			logger,
			m,
		)
		logger.Info("Notification client initialized",
			zap.String("base_url", cfg.Notification.BaseURL),
		)
	} else {
		notificationClient = client.NewNoOpNotificationClient()
		logger.Warn("Notification service URL not configured, client notifications disabled")
	}

	// Schedule the notification dispatch job
	scheduler := cron.New()
	if db != nil {
		notifyJob := job.NewNotifyJob(
			repository.NewChurnRepository(db),
			repository.NewProjectRepository(db),
			notificationClient,
			m,
			logger,
		)
		if _, err := scheduler.AddJob("*/5 * * * *", notifyJob); err != nil {
			logger.Error("Failed to schedule notification dispatch job", zap.Error(err))
		} else {
			logger.Info("Notification dispatch job scheduled", zap.String("schedule", "*/5 * * * *"))
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	// Setup router with all dependencies
	r := router.Setup(router.Config{
		DB:          db,
		Logger:      logger,
		JWTSecret:   cfg.JWT.Secret,
		BasePath:    cfg.Server.BasePath,
		Metrics:     m,
		RedisClient: redisClient,
		S3Client:    s3Client,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Partner Portal API started successfully",
			zap.String("address", srv.Addr),
			zap.String("swagger", fmt.Sprintf("http://localhost:%s/swagger/index.html", cfg.Server.Port)),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}

// initLogger initializes the zap logger with the specified level
func initLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      zapLevel == zapcore.DebugLevel,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return config.Build()
}
