package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/mvelkov/shopchat/api"
	"github.com/mvelkov/shopchat/assistant"
	"github.com/mvelkov/shopchat/config"
	"github.com/mvelkov/shopchat/inference"
	"github.com/mvelkov/shopchat/store"
	"github.com/mvelkov/shopchat/topic"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log.Printf("Starting shop assistant...")
	log.Printf("HTTP Port: %d", cfg.HTTPPort)
	log.Printf("Database: %s", cfg.DatabaseURL)
	log.Printf("LLM endpoint: %s (model %s)", cfg.LLMBaseURL, cfg.LLMModel)
	log.Printf("Topic policy enforced: %v", cfg.EnforceTopicPolicy)

	// Initialize store
	db, err := store.NewSQLiteStore(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer db.Close()

	// Initialize inference client. A missing credential leaves the client
	// nil; the invoker then reports the service as unavailable per request
	// instead of failing startup.
	var caller inference.CompletionCaller
	if cfg.LLMAPIKey != "" {
		caller = inference.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMTimeout)
	} else {
		log.Printf("ERROR: LLM_API_KEY not set; chat requests will fail until configured")
	}
	invoker := inference.NewInvoker(caller, cfg.LLMModel, cfg.LLMRetries, cfg.LLMRetryDelay)

	// Initialize topic classifier
	ctx := context.Background()
	var topics assistant.TopicChecker
	if cfg.EnforceTopicPolicy {
		classifier, err := topic.NewClassifier(ctx)
		if err != nil {
			log.Fatalf("Failed to initialize topic classifier: %v", err)
		}
		topics = classifier
	}

	// Initialize assistant service
	svc := assistant.New(cfg, invoker, topics)

	// Initialize handler
	h := api.NewHandler(db, svc, cfg)

	// Create Echo server
	server := echo.New()
	server.HideBanner = true

	// Middleware
	server.Use(middleware.Logger())
	server.Use(middleware.Recover())
	server.Use(middleware.CORS())

	// Register routes
	h.RegisterRoutes(server)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := server.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Printf("Shop assistant started on port %d", cfg.HTTPPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down shop assistant...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown server gracefully: %v", err)
	}

	log.Println("Shop assistant stopped")
}
