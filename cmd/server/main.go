package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"philcali.me/inventory/internal/config"
	"philcali.me/inventory/internal/dynamodb/connection"
	itemData "philcali.me/inventory/internal/dynamodb/items"
	"philcali.me/inventory/internal/logger"
	"philcali.me/inventory/internal/routes"
	"philcali.me/inventory/internal/routes/items"
	"philcali.me/inventory/internal/server"
)

const SHUTDOWN_TIMEOUT = 30 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log := logger.Bootstrap()
		log.Fatal().Err(err).Msg("failed to load config")
	}
	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	handle, err := connection.Open(ctx, cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Str("table", cfg.Database.Name).Msg("failed to open database")
	}

	router := routes.NewRouter(log, items.NewRoute(itemData.NewItemService(handle)))
	srv := server.New(cfg, log, handle)
	srv.SetupHTTPServer(server.Handler(router, log))

	go func() {
		if err := srv.Start(); err != nil {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), SHUTDOWN_TIMEOUT)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}
	log.Info().Msg("server exited properly")
}
