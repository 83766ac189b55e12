package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/calebh/storyspace/internal/audit"
	"github.com/calebh/storyspace/internal/platform/seeder"
)

type App struct {
	server *http.Server
	config Config
	seeds  *seeder.Orchestrator
	audit  *audit.Subscriber // Held so the subscriber lives as long as the app
}

func NewApp(server *http.Server, config Config, seeds *seeder.Orchestrator, auditSub *audit.Subscriber) *App {
	return &App{
		server: server,
		config: config,
		seeds:  seeds,
		audit:  auditSub,
	}
}

// Run starts the application and handles graceful shutdown
func (a *App) Run() error {
	// Demo data only ever lands in development databases
	if a.config.IsDevelopment() && a.config.SeedDemoData {
		seedCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := a.seeds.RunAll(seedCtx); err != nil {
			return fmt.Errorf("seeding failed: %w", err)
		}
	}

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		log.Printf("Starting server on %s", a.server.Addr)
		serverErrors <- a.server.ListenAndServe()
	}()

	// Wait for shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
	case sig := <-sigChan:
		log.Printf("Received signal: %v", sig)
		log.Println("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := a.server.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to gracefully shutdown server: %w", err)
		}
	}

	log.Println("Server stopped")
	return nil
}
