package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iamasit07/connectfour/internal/config"
	"github.com/iamasit07/connectfour/internal/platform/otel"
	"github.com/iamasit07/connectfour/internal/service/cleanup"
	"github.com/iamasit07/connectfour/internal/service/game"
	transportHttp "github.com/iamasit07/connectfour/internal/transport/http"
	"github.com/iamasit07/connectfour/internal/transport/websocket"
)

func main() {
	config.LoadEnvFiles()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Setup(ctx, "connectfour-api", cfg.OTelEndpoint, cfg.OTelEnabled)
	if err != nil {
		log.Fatalf("Failed to set up tracing: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			log.Printf("Tracing shutdown: %v", err)
		}
	}()

	// 1. Services
	sessionManager := game.NewSessionManager(game.ManagerConfig{
		Defaults:    cfg.GameOptions(),
		MaxRows:     cfg.MaxRows,
		MaxColumns:  cfg.MaxColumns,
		EmptyMarker: cfg.EmptyMarker,
		FinishedTTL: cfg.FinishedTTL,
		IdleTTL:     cfg.IdleTTL,
	})

	// 2. Background workers
	cleanupWorker := cleanup.NewWorker(sessionManager, cfg.CleanupInterval)
	cleanupWorker.Start(ctx)

	// 3. Transport
	connManager := websocket.NewConnectionManager()
	wsHandler := websocket.NewHandler(connManager, sessionManager, cfg.AllowedOrigins)
	router := transportHttp.NewRouter(sessionManager, cfg.AllowedOrigins, wsHandler.HandleWebSocket)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Server is shutting down...")

	connManager.CloseAll("server shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited gracefully")
}
