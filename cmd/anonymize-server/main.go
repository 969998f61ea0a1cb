// Command anonymize-server runs the optional HTTP facade: POST
// /api/anonymize, POST /api/anonymize-file, GET /api/audit-stream
// (websocket), and GET /healthz. DATABASE_URL is optional, without it the
// server runs without compliance-retention persistence of audit reports.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cybergodev/anonymize"
	"github.com/cybergodev/anonymize/httpapi"
	"github.com/cybergodev/anonymize/store"
)

func main() {
	log.Println("Starting anonymize HTTP facade...")

	hub := httpapi.NewHub()
	go hub.Run()
	defer hub.Close()

	auditConfig := anonymize.DefaultAuditConfig()
	auditConfig.Subscriber = hub.Subscriber()
	auditLogger := anonymize.NewAuditLogger(auditConfig)
	defer auditLogger.Close()

	cfg := anonymize.DefaultConfig()
	cfg.AuditLogger = auditLogger
	az, err := anonymize.New(cfg)
	if err != nil {
		log.Fatalf("FATAL: failed to build anonymizer: %v", err)
	}
	defer az.Close()

	var recorder httpapi.AuditRecorder
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		auditStore, err := store.Connect(context.Background(), dbURL)
		if err != nil {
			log.Printf("Warning: failed to connect to PostgreSQL, continuing without audit report persistence: %v", err)
		} else {
			defer auditStore.Close()
			if err := auditStore.InitSchema(context.Background()); err != nil {
				log.Printf("Warning: audit store schema init failed: %v", err)
			}
			recorder = auditStore
		}
	} else {
		log.Println("DATABASE_URL not set, running without audit report persistence")
	}

	router := httpapi.SetupRouter(az, hub, recorder, auditLogger)

	port := getEnvOrDefault("PORT", "8080")
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		log.Printf("anonymize HTTP facade listening on :%s\n", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), anonymize.DefaultHTTPShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Warning: graceful shutdown failed: %v", err)
	}
}

func getEnvOrDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
