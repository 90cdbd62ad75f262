package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/CristopherGuzmanVelarde/school-admin-api/api/swagger"
	"github.com/CristopherGuzmanVelarde/school-admin-api/internal/batch"
	"github.com/CristopherGuzmanVelarde/school-admin-api/internal/handler"
	"github.com/CristopherGuzmanVelarde/school-admin-api/internal/middleware"
	"github.com/CristopherGuzmanVelarde/school-admin-api/internal/remote"
	"github.com/CristopherGuzmanVelarde/school-admin-api/internal/repository"
	"github.com/CristopherGuzmanVelarde/school-admin-api/internal/service"
	"github.com/CristopherGuzmanVelarde/school-admin-api/pkg/cache"
	"github.com/CristopherGuzmanVelarde/school-admin-api/pkg/config"
	"github.com/CristopherGuzmanVelarde/school-admin-api/pkg/logger"
	corsmiddleware "github.com/CristopherGuzmanVelarde/school-admin-api/pkg/middleware/cors"
	reqidmiddleware "github.com/CristopherGuzmanVelarde/school-admin-api/pkg/middleware/requestid"
)

// @title School Admin API
// @version 0.1.0
// @description Administrative gateway over the school record-store microservices
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	metrics := service.NewMetricsService()

	var cacheRepo *repository.CacheRepository
	if cfg.Cache.Enabled {
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, snapshot cache disabled", zap.Error(err))
		} else {
			cacheRepo = repository.NewCacheRepository(client, logr)
			defer cacheRepo.Close() //nolint:errcheck
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Cache.TTL, logr, cfg.Cache.Enabled && cacheRepo != nil)

	newClient := func(baseURL, collection string) *remote.Client {
		client := remote.NewClient(baseURL, cfg.Remote.Timeout, logr)
		client.Observer = func(outcome string, latency time.Duration) {
			metrics.RecordRemoteCall(collection, outcome, latency)
		}
		return client
	}

	gradesClient := newClient(cfg.Remote.GradesURL, "grades")
	notificationsClient := newClient(cfg.Remote.NotificationsURL, "notifications")
	studentsClient := newClient(cfg.Remote.StudentsURL, "students")
	teachersClient := newClient(cfg.Remote.TeachersURL, "teachers")

	gradeRepo := repository.NewGradeRepository(gradesClient, logr)
	notificationRepo := repository.NewNotificationRepository(notificationsClient, logr)
	directoryRepo := repository.NewDirectoryRepository(studentsClient, teachersClient, logr)

	validate := validator.New()
	coordinator := batch.New(logr)

	gradeSvc := service.NewGradeService(gradeRepo, directoryRepo, cacheSvc, validate, cfg.Exports.MaxRows, logr)
	notificationSvc := service.NewNotificationService(notificationRepo, directoryRepo, cacheSvc, coordinator, validate, cfg.Exports.MaxRows, logr)

	gradeHandler := handler.NewGradeHandler(gradeSvc)
	notificationHandler := handler.NewNotificationHandler(notificationSvc)
	directoryHandler := handler.NewDirectoryHandler(directoryRepo)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		grades := api.Group("/grades")
		{
			grades.GET("", gradeHandler.List)
			grades.POST("", gradeHandler.Create)
			if cfg.Exports.Enabled {
				grades.GET("/export", gradeHandler.Export)
			}
			grades.GET("/:id", gradeHandler.Get)
			grades.PUT("/:id", gradeHandler.Update)
			grades.DELETE("/:id", gradeHandler.Delete)
			grades.PUT("/:id/restore", gradeHandler.Restore)
			grades.GET("/:id/notifications", gradeHandler.Notifications)
		}

		notifications := api.Group("/notifications")
		{
			notifications.GET("", notificationHandler.List)
			notifications.POST("", notificationHandler.Create)
			notifications.POST("/bulk", notificationHandler.CreateBulk)
			notifications.POST("/mass-send", notificationHandler.MassSend)
			if cfg.Exports.Enabled {
				notifications.GET("/export", notificationHandler.Export)
			}
			notifications.GET("/recipient/:recipientId", notificationHandler.ByRecipient)
			notifications.GET("/recipient/:recipientId/unread", notificationHandler.Unread)
			notifications.GET("/type/:type", notificationHandler.ByType)
			notifications.GET("/status/:status", notificationHandler.ByStatus)
			notifications.PUT("/batch/read", notificationHandler.MarkManyRead)
			notifications.POST("/batch/resend", notificationHandler.ResendMany)
			notifications.PUT("/batch/restore", notificationHandler.RestoreMany)
			notifications.GET("/:id", notificationHandler.Get)
			notifications.PUT("/:id", notificationHandler.Update)
			notifications.DELETE("/:id", notificationHandler.Delete)
			notifications.PUT("/:id/restore", notificationHandler.Restore)
			notifications.PUT("/:id/read", notificationHandler.MarkRead)
			notifications.POST("/:id/resend", notificationHandler.Resend)
		}

		api.GET("/students", directoryHandler.Students)
		api.GET("/teachers", directoryHandler.Teachers)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
