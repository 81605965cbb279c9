package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/platefit/backend/config"
	"github.com/platefit/backend/internal/database"
	"github.com/platefit/backend/internal/middleware"
	"github.com/platefit/backend/internal/server"
	"github.com/platefit/backend/internal/service"
)

func main() {
	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Wire the pipeline: LLM extractor + Spoonacular source
	llmService := service.NewLLMService(cfg.LLMAPIKey, cfg.LLMAPIURL, cfg.LLMModel, cfg.ExternalTimeout)
	spoonacular := service.NewSpoonacularService(cfg.SpoonacularAPIKey, cfg.SpoonacularBaseURL, cfg.ExternalTimeout)
	recommender := service.NewRecommendationService(llmService, spoonacular, cfg.SearchResults, cfg.EnrichConcurrency)

	// Redis is optional; without it the server runs unlimited
	var rateLimiter *middleware.RateLimiter
	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis for rate limiting: %v", err)
	} else if redisClient != nil {
		rateLimiter = middleware.NewRecommendationRateLimiter(redisClient)
	}

	// Create and start server
	srv := server.New(cfg, recommender, rateLimiter)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)

	go func() {
		log.Printf("Starting server on %s:%s...", cfg.ServerHost, cfg.ServerPort)
		errChan <- srv.Start()
	}()

	// Channel to listen for an interrupt or terminate signal from the OS
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or error
	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	// Gracefully shutdown the server
	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
