package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/eduverse/portal-api/api/swagger"
	"github.com/eduverse/portal-api/internal/handler"
	"github.com/eduverse/portal-api/internal/middleware"
	"github.com/eduverse/portal-api/internal/models"
	"github.com/eduverse/portal-api/internal/repository"
	"github.com/eduverse/portal-api/internal/schema"
	"github.com/eduverse/portal-api/internal/service"
	"github.com/eduverse/portal-api/internal/validate"
	"github.com/eduverse/portal-api/pkg/cache"
	"github.com/eduverse/portal-api/pkg/config"
	"github.com/eduverse/portal-api/pkg/database"
	"github.com/eduverse/portal-api/pkg/logger"
	corsmiddleware "github.com/eduverse/portal-api/pkg/middleware/cors"
	reqidmiddleware "github.com/eduverse/portal-api/pkg/middleware/requestid"
)

// @title Eduverse Portal API
// @version 1.0.0
// @description Academic portal REST API
// @BasePath /
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go database.Monitor(ctx, db, cfg.Database.PingInterval, logr)

	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, response cache disabled", zap.Error(err))
		} else {
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.TTL, logr, true)
			defer cacheRepo.Close()
		}
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", handler.NewMetricsHandler(metricsSvc).Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	validator := validate.New()
	api := r.Group(cfg.APIPrefix)

	mount[models.Assignment](api, "assignments", db, validator, cacheSvc, logr)
	mount[models.Notice](api, "notices", db, validator, cacheSvc, logr)
	mount[models.Resource](api, "resources", db, validator, cacheSvc, logr)
	submissionRepo := mount[models.Submission](api, "submissions", db, validator, cacheSvc, logr)
	mount[models.TimetableEntry](api, "timetable", db, validator, cacheSvc, logr)

	if cfg.Exports.Enabled {
		exportSvc := service.NewExportService(submissionRepo, logr)
		api.GET("/submissions/export", handler.NewExportHandler(exportSvc).Submissions)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

// mount wires the repository, service and handler for one entity kind and
// returns the repository for collaborators that need direct list access.
func mount[T any](api *gin.RouterGroup, name string, db *sqlx.DB, validator *validate.Validator, cacheSvc *service.CacheService, logr *zap.Logger) *repository.EntityRepository[T] {
	entity := schema.Lookup(name)
	repo := repository.NewEntityRepository[T](db, entity)
	svc := service.NewEntityService[T](entity, repo, validator, cacheSvc, logr)
	handler.NewEntityHandler[T](entity, svc).Register(api)
	return repo
}
