package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"partner-portal-api/internal/handler"
	"partner-portal-api/internal/metrics"
	"partner-portal-api/internal/middleware"
	"partner-portal-api/internal/repository"
	"partner-portal-api/internal/service"
)

// Config holds everything Setup needs to wire the API
type Config struct {
	DB          *gorm.DB
	Logger      *zap.Logger
	JWTSecret   string
	BasePath    string
	Metrics     *metrics.Metrics
	RedisClient *redis.Client
	S3Client    service.S3Client
}

// Setup builds the gin engine with all repositories, services, handlers
// and routes wired together
func Setup(cfg Config) *gin.Engine {
	r := gin.New()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.CORS())
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}

	// Repositories
	projectRepo := repository.NewProjectRepository(cfg.DB)
	agencyRepo := repository.NewAgencyRepository(cfg.DB)
	historyRepo := repository.NewHistoryRepository(cfg.DB)
	churnRepo := repository.NewChurnRepository(cfg.DB)
	reportRepo := repository.NewReportRepository(cfg.DB)

	// Services
	projectService := service.NewProjectService(projectRepo, agencyRepo, historyRepo, cfg.RedisClient, cfg.Metrics, cfg.Logger)
	lifecycleService := service.NewLifecycleService(projectRepo, cfg.Metrics, cfg.Logger)
	agencyService := service.NewAgencyService(agencyRepo, projectRepo, cfg.Logger)
	churnService := service.NewChurnService(churnRepo, agencyRepo, projectRepo, cfg.Metrics, cfg.Logger)

	// Handlers
	projectHandler := handler.NewProjectHandler(projectService, lifecycleService)
	agencyHandler := handler.NewAgencyHandler(agencyService)
	churnHandler := handler.NewChurnHandler(churnService)

	var reportHandler *handler.ReportHandler
	if cfg.S3Client != nil {
		reportService := service.NewReportService(reportRepo, projectRepo, cfg.S3Client, cfg.Logger)
		reportHandler = handler.NewReportHandler(reportService)
	}

	registerHealthAndMetrics(r, "", cfg)
	if cfg.BasePath != "" {
		registerHealthAndMetrics(r, cfg.BasePath, cfg)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group(cfg.BasePath)
	api.Use(middleware.Auth(cfg.JWTSecret))
	{
		projects := api.Group("/projects")
		{
			projects.POST("", projectHandler.CreateProject)
			projects.GET("", projectHandler.ListProjects)
			projects.GET("/summary", projectHandler.GetPortfolioSummary)
			projects.GET("/:projectId", projectHandler.GetProject)
			projects.POST("/:projectId/transitions", projectHandler.RequestTransition)
			projects.GET("/:projectId/transitions", projectHandler.GetAllowedTransitions)

			if reportHandler != nil {
				projects.POST("/:projectId/reports/upload-url", reportHandler.GenerateUploadURL)
				projects.POST("/:projectId/reports", reportHandler.CreateReport)
				projects.GET("/:projectId/reports", reportHandler.ListReports)
			}
		}

		agencies := api.Group("/agencies")
		{
			agencies.POST("", agencyHandler.CreateAgency)
			agencies.GET("", agencyHandler.ListAgencies)
			agencies.GET("/:agencyId", agencyHandler.GetAgency)
			agencies.PUT("/:agencyId/rating", agencyHandler.UpdateRating)
			agencies.GET("/:agencyId/projects", agencyHandler.GetAgencyProjects)
		}

		churns := api.Group("/churns")
		{
			churns.POST("", churnHandler.ProcessChurn)
			churns.GET("", churnHandler.ListChurnEvents)
			churns.GET("/:churnEventId", churnHandler.GetChurnEvent)
			churns.POST("/:churnEventId/projects/:projectId/notified", churnHandler.MarkClientNotified)
		}

		if reportHandler != nil {
			api.DELETE("/reports/:reportId", reportHandler.DeleteReport)
		}
	}

	return r
}

// registerHealthAndMetrics exposes the unauthenticated operational
// endpoints at the given prefix. The health payload reports dependency
// state but always answers 200 so the pod is not restarted while the
// database reconnect loop is still running.
func registerHealthAndMetrics(r *gin.Engine, prefix string, cfg Config) {
	r.GET(prefix+"/health", func(c *gin.Context) {
		dbStatus := "disconnected"
		if cfg.DB != nil {
			if sqlDB, err := cfg.DB.DB(); err == nil && sqlDB.PingContext(c.Request.Context()) == nil {
				dbStatus = "connected"
			}
		}

		redisStatus := "disabled"
		if cfg.RedisClient != nil {
			redisStatus = "connected"
			if err := cfg.RedisClient.Ping(c.Request.Context()).Err(); err != nil {
				redisStatus = "disconnected"
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"database":  dbStatus,
			"redis":     redisStatus,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})
	r.GET(prefix+"/metrics", gin.WrapH(promhttp.Handler()))
}
