// Package main is the entry point for the API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/shoppiq/list-gateway/internal/config"
	"github.com/shoppiq/list-gateway/internal/events"
	"github.com/shoppiq/list-gateway/internal/handler"
	"github.com/shoppiq/list-gateway/internal/llm"
	"github.com/shoppiq/list-gateway/internal/middleware"
	"github.com/shoppiq/list-gateway/internal/service"
	"github.com/shoppiq/list-gateway/internal/store"
	"github.com/shoppiq/list-gateway/internal/vector"
	"github.com/shoppiq/list-gateway/pkg/logger"
	"github.com/shoppiq/list-gateway/pkg/tracing"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("starting API server")

	// Initialize tracing if enabled
	ctx := context.Background()
	if cfg.TracingEnabled {
		tp, err := tracing.InitTracer(ctx, "list-gateway", cfg.TracingEndpoint)
		if err != nil {
			log.Warn("failed to initialize tracing", zap.Error(err))
		} else {
			defer tracing.Shutdown(ctx, tp)
		}
	}

	// Connect to NATS for list events. Events are best-effort: without a
	// broker the gateway still serves requests.
	var publisher *events.Publisher
	if cfg.NATSURL != "" {
		publisher, err = events.Connect(ctx, events.Config{
			URL:   cfg.NATSURL,
			Token: cfg.NATSToken,
		}, log)
		if err != nil {
			log.Warn("failed to connect to NATS, list events disabled", zap.Error(err))
		} else {
			defer publisher.Close()
			if err := publisher.EnsureStream(ctx); err != nil {
				log.Warn("failed to ensure event stream", zap.Error(err))
			}
		}
	}

	// OpenAI serves embeddings in every configuration, and completions
	// unless Anthropic is selected.
	openaiClient, err := llm.NewOpenAIClient(cfg.OpenAIAPIKey)
	if err != nil {
		log.Error("failed to create OpenAI client", zap.Error(err))
		os.Exit(1)
	}

	var completer llm.Completer = openaiClient
	if cfg.DefaultLLM == string(llm.ProviderAnthropic) && cfg.AnthropicAPIKey != "" {
		anthropicClient, err := llm.NewAnthropicClient(cfg.AnthropicAPIKey)
		if err != nil {
			log.Warn("failed to create Anthropic client, falling back to OpenAI", zap.Error(err))
		} else {
			completer = anthropicClient
		}
	}

	// Vector index
	index := vector.New(vector.Config{
		APIKey: cfg.PineconeAPIKey,
		APIURL: cfg.PineconeAPIURL,
	}, log)

	// Document store (degrades to placeholder ids when unconfigured)
	docStore, err := store.New(ctx, store.Config{
		ProjectID:       cfg.FirestoreProjectID,
		CredentialsJSON: cfg.FirestoreCredentials,
	}, log)
	if err != nil {
		log.Error("failed to create document store client", zap.Error(err))
		os.Exit(1)
	}
	defer docStore.Close()

	// Initialize services
	listSvc := service.NewListService(completer, openaiClient, index, docStore, publisher, log)
	chatSvc := service.NewChatService(completer, openaiClient, index, publisher, log)

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(publisher)
	listHandler := handler.NewListHandler(listSvc, log)
	chatHandler := handler.NewChatHandler(chatSvc, log)
	embeddingHandler := handler.NewEmbeddingHandler(openaiClient, log)

	// Create router
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposedHeaders:   []string{"X-Correlation-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health endpoints (no auth required)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	// Metrics endpoint
	r.Handle("/metrics", promhttp.Handler())

	// API routes with authentication
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWTSecret))
		r.Use(middleware.RateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow))

		r.Post("/shopping-lists/generate", listHandler.Generate)
		r.Post("/chat", chatHandler.Converse)
		r.Post("/embeddings", embeddingHandler.Create)
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      r,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info("server listening", zap.String("port", cfg.ServerPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("server stopped")
}
