package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fraternidade-care/treatment-service/internal/auth"
	"github.com/fraternidade-care/treatment-service/internal/db"
	httpserver "github.com/fraternidade-care/treatment-service/internal/http"
	"github.com/fraternidade-care/treatment-service/internal/messaging"
	"github.com/fraternidade-care/treatment-service/internal/telemetry"
)

func main() {
	log.Println("treatment-service starting")

	ctx := context.Background()

	// OpenTelemetry (degrades gracefully when the collector is down)
	telemetryProvider, err := telemetry.InitProvider(ctx, telemetry.LoadConfig())
	if err != nil {
		log.Printf("Warning: telemetry initialization failed: %v", err)
	}

	metrics, err := telemetry.InitMetrics()
	if err != nil {
		log.Printf("Warning: metrics initialization failed: %v", err)
		metrics = nil
	}

	database, err := db.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Best-effort messaging: submissions must work with RabbitMQ down
	publisher, err := messaging.NewPublisher()
	if err != nil {
		log.Printf("Warning: RabbitMQ unavailable, events will be skipped: %v", err)
		publisher = nil
	}
	defer publisher.Close()

	authCfg := auth.LoadConfig()
	jwks, err := auth.NewJWKS(authCfg.JWKSURL, 0)
	if err != nil {
		log.Fatalf("Failed to load JWKS: %v", err)
	}
	defer jwks.Close()
	verifier := auth.NewVerifier(authCfg, jwks)

	permsPath := os.Getenv("PERMISSIONS_FILE")
	if permsPath == "" {
		permsPath = "permissions.yml"
	}
	perms, err := auth.LoadPermissions(permsPath)
	if err != nil {
		log.Fatalf("Failed to load permissions: %v", err)
	}

	router := httpserver.SetupRouter(database, publisher, verifier, perms, metrics)

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	server := &http.Server{
		Addr:         addr,
		Handler:      httpserver.CORSMiddleware(router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Printf("treatment-service listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down treatment-service...")
	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}
	if telemetryProvider != nil {
		if err := telemetryProvider.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error during telemetry shutdown: %v", err)
		}
	}
	log.Println("treatment-service stopped")
}
