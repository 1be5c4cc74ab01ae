package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/kavinduj/workboard/internal/config"
	"github.com/kavinduj/workboard/internal/export/pdf"
	"github.com/kavinduj/workboard/internal/repository/mongodb"
	"github.com/kavinduj/workboard/internal/scheduler"
	"github.com/kavinduj/workboard/internal/server/handlers"
	"github.com/kavinduj/workboard/internal/server/router"
	authsvc "github.com/kavinduj/workboard/internal/service/auth"
	cascadesvc "github.com/kavinduj/workboard/internal/service/cascade"
	integritysvc "github.com/kavinduj/workboard/internal/service/integrity"
	ledgersvc "github.com/kavinduj/workboard/internal/service/ledger"
	registrysvc "github.com/kavinduj/workboard/internal/service/registry"
	reportingsvc "github.com/kavinduj/workboard/internal/service/reporting"
	"github.com/kavinduj/workboard/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	repo, err := mongodb.New(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := repo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	authSvc := authsvc.New(repo, cfg.Auth.JWTSecret, cfg.Auth.SessionTTL, baseLogger.Named("svc.auth"))
	if err := authSvc.EnsureDefaultAdmin(context.Background(), cfg.Auth.AdminUsername, cfg.Auth.AdminPassword); err != nil {
		baseLogger.Fatal("failed to bootstrap admin credentials", zap.Error(err))
	}

	cascades := cascadesvc.New(repo, baseLogger.Named("svc.cascade"))
	registrySvc := registrysvc.New(repo, cascades, baseLogger.Named("svc.registry"))
	ledgerSvc := ledgersvc.New(repo, baseLogger.Named("svc.ledger"))
	reportingSvc := reportingsvc.New(registrySvc, ledgerSvc, baseLogger.Named("svc.reporting"))
	exporter := pdf.New(baseLogger.Named("export.pdf"))

	authHandler := handlers.NewAuthHandler(authSvc, baseLogger.Named("handlers.auth"))
	workerHandler := handlers.NewWorkerHandler(registrySvc, baseLogger.Named("handlers.workers"))
	recordHandler := handlers.NewRecordHandler(ledgerSvc, baseLogger.Named("handlers.records"))
	reportHandler := handlers.NewReportHandler(reportingSvc, exporter, baseLogger.Named("handlers.reports"))
	engine := router.New(repo, authSvc, authHandler, workerHandler, recordHandler, reportHandler, baseLogger.Named("router"))

	checker := integritysvc.New(repo, baseLogger.Named("svc.integrity"))
	sched := scheduler.New(cfg.Integrity.CronSchedule, checker, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
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
