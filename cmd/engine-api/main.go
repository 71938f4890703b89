package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/spendchat-engine/api/swagger"
	"github.com/noah-isme/spendchat-engine/internal/handler"
	"github.com/noah-isme/spendchat-engine/internal/middleware"
	"github.com/noah-isme/spendchat-engine/internal/optimistic"
	"github.com/noah-isme/spendchat-engine/internal/service"
	"github.com/noah-isme/spendchat-engine/internal/store"
	"github.com/noah-isme/spendchat-engine/pkg/cache"
	"github.com/noah-isme/spendchat-engine/pkg/config"
	"github.com/noah-isme/spendchat-engine/pkg/database"
	"github.com/noah-isme/spendchat-engine/pkg/localize"
	"github.com/noah-isme/spendchat-engine/pkg/logger"
	"github.com/noah-isme/spendchat-engine/pkg/markup"
	corsmiddleware "github.com/noah-isme/spendchat-engine/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/spendchat-engine/pkg/middleware/requestid"
)

// @title SpendChat Engine API
// @version 0.1.0
// @description Report derivation and optimistic mutation service
// @BasePath /
// @schemes http

type snapshotStore interface {
	service.SnapshotProvider
	service.BatchStore
}

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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	var backing snapshotStore
	switch cfg.StoreBackend {
	case "postgres":
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
		}
		defer db.Close() //nolint:errcheck
		backing = store.NewSQL(db, store.WithSQLLogger(logr))
	default:
		backing = store.NewMemory(store.WithMemoryLogger(logr))
	}

	var snapshotCache *store.SnapshotCache
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect to redis", "error", err)
		}
		defer redisClient.Close() //nolint:errcheck
		snapshotCache = store.NewSnapshotCache(redisClient, cfg.Cache.SnapshotTTL, logr)
	}

	translator := localize.Translator(localize.NewEnglish())
	if cfg.Engine.Locale != "" && cfg.Engine.Locale != "en" {
		logr.Sugar().Warnw("unsupported locale, falling back to en", "locale", cfg.Engine.Locale)
	}
	renderer := markup.NewBasic()

	metricsSvc := service.NewMetricsService()

	reportOpts := []service.ReportServiceOption{service.WithReportMetrics(metricsSvc)}
	if snapshotCache != nil {
		reportOpts = append(reportOpts, service.WithSnapshotCache(snapshotCache))
	}
	reportSvc := service.NewReportService(backing, translator, renderer, logr, reportOpts...)

	mutationCfg := service.MutationServiceConfig{
		Store:    backing,
		Provider: backing,
		Commands: service.NoopCommandClient{},
		Logger:   logr,
		Builder: optimistic.Config{
			Translator:           translator,
			Markup:               renderer,
			MaxCommentHTMLLength: cfg.Engine.MaxCommentHTMLLength,
		},
		Workers:        cfg.Mutations.ConfirmWorkers,
		Retries:        cfg.Mutations.ConfirmRetries,
		CommandTimeout: cfg.Mutations.CommandTimeout,
	}
	if snapshotCache != nil {
		mutationCfg.Cache = snapshotCache
	}
	mutationSvc := service.NewMutationService(mutationCfg)

	exportSvc := service.NewExportService(backing, translator, renderer, cfg.Exports.MaxRows, logr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if cfg.Mutations.Enabled {
		mutationSvc.Start(ctx)
		defer mutationSvc.Stop()
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
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handlers := handler.Handlers{
		Reports: handler.NewReportHandler(reportSvc),
		Metrics: handler.NewMetricsHandler(metricsSvc),
	}
	if cfg.Mutations.Enabled {
		handlers.Mutations = handler.NewMutationHandler(mutationSvc)
	}
	if cfg.Exports.Enabled {
		handlers.Exports = handler.NewExportHandler(exportSvc)
	}
	handler.Register(r, cfg.APIPrefix, cfg.JWT.Secret, handlers)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "store", cfg.StoreBackend)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
