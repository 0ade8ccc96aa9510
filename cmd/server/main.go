package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/ranch/internal/config"
	"github.com/mamadbah2/ranch/internal/domain/models"
	"github.com/mamadbah2/ranch/internal/repository/cache"
	"github.com/mamadbah2/ranch/internal/repository/mongodb"
	"github.com/mamadbah2/ranch/internal/repository/sheets"
	"github.com/mamadbah2/ranch/internal/scheduler"
	"github.com/mamadbah2/ranch/internal/server/handlers"
	"github.com/mamadbah2/ranch/internal/server/router"
	analysissvc "github.com/mamadbah2/ranch/internal/service/analysis"
	"github.com/mamadbah2/ranch/internal/service/export"
	"github.com/mamadbah2/ranch/internal/service/profitability"
	reportingsvc "github.com/mamadbah2/ranch/internal/service/reporting"
	whatsappclient "github.com/mamadbah2/ranch/pkg/clients/whatsapp"
	"github.com/mamadbah2/ranch/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName, cfg.MongoDB.Collection, baseLogger.Named("repo.mongodb"))
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := mongoRepo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	deps := analysissvc.Dependencies{
		Engine: profitability.NewEngine(profitability.Options{
			DiscountRate:  cfg.Analysis.DiscountRate,
			ScenarioMode:  profitability.ScenarioMode(cfg.Analysis.ScenarioMode),
			StrictMetrics: cfg.Analysis.StrictMetrics,
		}),
		Repo:           mongoRepo,
		Exporter:       export.NewExporter(baseLogger.Named("svc.export")),
		DefaultCountry: models.CountryCode(cfg.Analysis.DefaultCountry),
	}

	if cfg.Redis.Enabled() {
		redisCache, err := cache.NewRedisCache(context.Background(), cfg.Redis, cfg.Analysis.CacheTTL, baseLogger.Named("repo.cache"))
		if err != nil {
			baseLogger.Warn("redis unavailable, analysis cache disabled", zap.Error(err))
		} else {
			deps.Cache = redisCache
			defer func() { _ = redisCache.Close() }()
		}
	} else {
		baseLogger.Info("redis address missing, analysis cache disabled")
	}

	if cfg.Sheets.Enabled() {
		sheetsRepo, err := sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		ledger := sheets.NewAnalysisLedger(sheetsRepo, cfg.Sheets.Range)
		if err := ledger.EnsureHeader(context.Background()); err != nil {
			baseLogger.Warn("failed to prepare analysis ledger header", zap.Error(err))
		}
		deps.Ledger = ledger
	}

	analysisSvc := analysissvc.NewService(deps, baseLogger.Named("svc.analysis"))
	reportingSvc := reportingsvc.NewService(mongoRepo, baseLogger.Named("svc.reporting"))

	var notifier scheduler.Notifier
	if cfg.WhatsApp.Enabled() {
		notifier = whatsappclient.NewClient(cfg.WhatsApp)
	} else {
		baseLogger.Warn("whatsapp credentials missing, weekly digest will only be logged")
	}

	sched, err := scheduler.NewScheduler(*cfg, reportingSvc, notifier, baseLogger.Named("scheduler"))
	if err != nil {
		baseLogger.Fatal("failed to init scheduler", zap.Error(err))
	}
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	analysisHandler := handlers.NewAnalysisHandler(analysisSvc, baseLogger.Named("handlers.analysis"))
	engine := router.New(analysisHandler, baseLogger.Named("router"))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port), zap.String("engine_version", profitability.EngineVersion))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
