package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gestimo/rentd/internal/auth"
	"github.com/gestimo/rentd/internal/config"
	"github.com/gestimo/rentd/internal/db"
	"github.com/gestimo/rentd/internal/excel"
	httphandler "github.com/gestimo/rentd/internal/http"
	"github.com/gestimo/rentd/internal/http/middleware"
	"github.com/gestimo/rentd/internal/logger"
	"github.com/gestimo/rentd/internal/pdf"
	"github.com/gestimo/rentd/internal/repository"
	"github.com/gestimo/rentd/internal/service"
	"github.com/gestimo/rentd/internal/webhook"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	contractRepo := repository.NewContractRepository(database)
	propertyRepo := repository.NewPropertyRepository(database)
	depositRepo := repository.NewDepositRepository(database)
	addendumRepo := repository.NewAddendumRepository(database)

	receiptGenerator, err := pdf.NewGenerator()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init pdf generator")
	}
	ledgerGenerator := excel.NewGenerator()

	contractService := service.NewContractService(database, contractRepo, propertyRepo, depositRepo, receiptGenerator, ledgerGenerator)
	propertyService := service.NewPropertyService(database, propertyRepo)
	depositService := service.NewDepositService(database, depositRepo)
	addendumService := service.NewAddendumService(database, addendumRepo, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	queue := webhook.NewQueue(cfg.Webhook.QueueSize, contractService, log)
	go queue.Run(ctx)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	handler := httphandler.NewHandler(contractService, propertyService, depositService, addendumService, queue, cfg.Webhook.Secret, log)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment, cfg.HTTP.AllowedOrigins)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting rentd")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
