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

	"roaster-backend/internal/card"
	"roaster-backend/internal/config"
	"roaster-backend/internal/database"
	"roaster-backend/internal/handlers"
	"roaster-backend/internal/middleware"
	"roaster-backend/internal/router"
	"roaster-backend/internal/services"
)

func main() {
	log.Println("🚀 Starting AI Roaster & Praiser...")
	ctx := context.Background()

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("✗ Invalid configuration: %v", err)
	}
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize Generation Provider ────
	generator, closeGenerator, err := services.NewGenerator(ctx, services.ProviderSettings{
		Provider:      cfg.GenerationProvider,
		GeminiAPIKey:  cfg.GeminiAPIKey,
		GeminiModel:   cfg.GeminiModel,
		OpenAIAPIKey:  cfg.OpenAIAPIKey,
		OpenAIBaseURL: cfg.OpenAIBaseURL,
		OpenAIModel:   cfg.OpenAIModel,
	})
	if err != nil {
		log.Fatalf("✗ Generation provider initialization failed: %v", err)
	}
	defer closeGenerator()
	if generator == nil {
		log.Printf("✗ %s provider has no API key; /api/chat will report a configuration error", cfg.GenerationProvider)
	} else {
		log.Printf("✓ %s provider initialized", cfg.GenerationProvider)
	}
	generationService := services.NewGenerationService(generator, cfg.GenerationConcurrency)

	// ──── Step 3: Initialize Rate Limiter ────
	var limiter middleware.Limiter
	var memLimiter *middleware.RateLimiter
	switch {
	case cfg.RateLimitPerMinute == 0:
		log.Println("✓ Rate limiting disabled")
	case cfg.RedisURL != "":
		redisClient, err := database.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("✗ Redis connection failed: %v", err)
		}
		defer redisClient.Close()
		limiter = middleware.NewRedisRateLimiter(redisClient, cfg.RateLimitPerMinute, time.Minute)
		log.Printf("✓ Redis rate limiter connected (%d req/min per IP)", cfg.RateLimitPerMinute)
	default:
		memLimiter = middleware.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute)
		limiter = memLimiter
		log.Printf("✓ In-memory rate limiter started (%d req/min per IP)", cfg.RateLimitPerMinute)
	}

	// ──── Step 4: Initialize Handlers ────
	chatHandler := handlers.NewChatHandler(generationService, cfg.IsProduction())
	cardHandler := handlers.NewCardHandler(card.NewRenderer())

	// ──── Step 5: Start HTTP Server ────
	r := router.New(chatHandler, cardHandler, limiter, cfg.FrontendURL)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan struct{})
	go func() {
		defer close(done)
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		if memLimiter != nil {
			memLimiter.Stop()
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ AI Roaster & Praiser ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api/chat", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
	<-done
}
