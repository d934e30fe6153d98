package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	apiHttp "github.com/voterworks/backend/internal/api/http"
	"github.com/voterworks/backend/internal/cache"
	"github.com/voterworks/backend/internal/config"
	"github.com/voterworks/backend/internal/db"
	"github.com/voterworks/backend/internal/domain"
	"github.com/voterworks/backend/internal/queue"
	"github.com/voterworks/backend/internal/queue/asynqserver"
	queueClient "github.com/voterworks/backend/internal/queue/client"
	"github.com/voterworks/backend/internal/repository"
	"github.com/voterworks/backend/internal/server"
	"github.com/voterworks/backend/internal/service"
	"github.com/voterworks/backend/internal/worker"
	"github.com/voterworks/backend/pkg/email/smtp"
	logger "github.com/voterworks/backend/pkg/logger"
	"github.com/voterworks/backend/pkg/pdf"

	"github.com/hibiken/asynq"
)

func main() {
	// Init cfg from environment variables
	cfg := config.MustLoad()

	// Dependencies
	appLogger := logger.SetupLogger(cfg.Env)

	appLogger.Info("starting registration api", "env", cfg.Env)
	appLogger.Debug("debug messages are enabled")

	// Init database
	dbMySQL, err := db.New(cfg.Database)
	if err != nil {
		appLogger.Error("mysql connect problem", "error", err)
		os.Exit(1)
	}
	defer func() {
		err = dbMySQL.Close()
		if err != nil {
			appLogger.Error("error when closing", "error", err)
		}
	}()
	appLogger.Info("mysql connection done")

	repos := repository.NewRepositories(dbMySQL)

	// The state table is tiny and immutable, load it once
	states, err := repos.GeoStates.GetAll(context.Background())
	if err != nil {
		appLogger.Error("load geo states failed", "error", err)
		os.Exit(1)
	}
	geoStates := domain.NewGeoStates(states)
	appLogger.Info("geo states loaded", "count", len(states))

	// Redis backs the completion queue, fail fast when it is unreachable
	redisClient, err := cache.NewRedis(cfg.Cache)
	if err != nil {
		appLogger.Error("redis connect problem", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			appLogger.Error("error when closing redis", "error", err)
		}
	}()
	appLogger.Info("redis connection done")

	// Queue client for the completion workflow
	asynqClient := asynq.NewClient(asynqserver.RedisOptions(cfg.Cache))
	defer func() {
		if err := asynqClient.Close(); err != nil {
			appLogger.Error("asynq client close failed", "error", err)
		}
	}()
	queueClient.SetClient(asynqClient)

	// Services & API Handlers
	services := service.NewServices(service.Deps{
		Config:     cfg,
		Repos:      repos,
		GeoStates:  geoStates,
		Dispatcher: queue.NewDispatcher(),
	})
	handlers := apiHttp.NewHandlers(services, cfg)

	// Completion worker
	emailSender, err := smtp.NewSMTPSender(cfg.SMTP.From, cfg.SMTP.Pass, cfg.SMTP.Host, cfg.SMTP.Port)
	if err != nil {
		appLogger.Error("smtp sender creation failed", "error", err)
		return
	}
	workers := worker.NewWorkers(worker.Deps{
		Repos:         repos,
		EmailProvider: emailSender,
		PdfGenerator:  pdf.NewGenerator(cfg.Pdf.OutputDir, cfg.Pdf.FontPath),
		Config:        cfg,
	})
	asynqSrv, mux := asynqserver.New(cfg.Cache, workers)
	go func() {
		if err := asynqSrv.Run(mux); err != nil {
			appLogger.Error("error occurred while running asynq server", "error", err)
		}
	}()

	// HTTP Server
	srv := server.NewServer(cfg, handlers.Init(cfg))
	go func() {
		if err := srv.Run(); !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("error occurred while running http server", "error", err)
		}
	}()
	appLogger.Info("server started")

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	<-quit

	const timeout = 5 * time.Second

	ctx, shutdown := context.WithTimeout(context.Background(), timeout)
	defer shutdown()

	if err := srv.Stop(ctx); err != nil {
		appLogger.Error("failed to stop server", "error", err)
	}
	asynqSrv.Shutdown()

	appLogger.Info("app stopped")
}
