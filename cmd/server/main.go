package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"propfinder/internal/config"
	"propfinder/internal/handler"
	"propfinder/internal/service"
	"propfinder/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	log.Printf("Propfinder API")
	log.Printf("Version: %s", Version)
	log.Printf("Build Time: %s", BuildTime)
	log.Printf("Git Commit: %s", GitCommit)
	log.Println("")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Property data loader (warm the cache up front so bad source files fail
	// at startup rather than on the first request)
	basics, characteristics, images := cfg.SourcePaths()
	loader := store.NewLoader(basics, characteristics, images)
	records, err := loader.Load(context.Background())
	if err != nil {
		log.Fatalf("Failed to load property data: %v", err)
	}
	log.Printf("Loaded %d property records", len(records))

	// Saved-listings store (optional)
	var savedStore *store.SavedStore
	if cfg.Postgres.DSN != "" {
		savedStore, err = store.NewSavedStore(
			cfg.Postgres.DSN,
			cfg.Postgres.MaxConnections,
			cfg.Postgres.MaxIdleConnections,
		)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer savedStore.Close()
		log.Println("Connected to PostgreSQL database")
	} else {
		log.Println("No DATABASE_URL configured - saved listings disabled")
	}

	// OpenAI client (optional)
	var aiClient service.AIClient
	if cfg.OpenAI.Enabled {
		aiClient = service.NewOpenAIClient(&cfg.OpenAI)
		log.Printf("OpenAI client initialized (model: %s, base: %s)", cfg.OpenAI.ChatModel, cfg.OpenAI.APIBase)
	} else {
		log.Println("OpenAI is disabled - intent parsing will use the heuristic fallback")
		log.Println("Set OPENAI_API_KEY environment variable to enable it")
	}

	// Price scorer (optional)
	scorer := service.NewScorerClient(&cfg.Scorer)
	if scorer.IsEnabled() {
		log.Printf("Price scorer configured: %s", cfg.Scorer.URL)
	} else {
		log.Println("No PRICE_SCORER_URL configured - predictions will use listing prices")
	}

	// Initialize services
	searchService := service.NewSearchService(loader)
	intentParser := service.NewIntentParser(aiClient)
	comparer := service.NewComparer(scorer)

	// Initialize handlers
	propertiesHandler := handler.NewPropertiesHandler(searchService, cfg.Search.DefaultPageSize, cfg.Search.MaxPageSize)
	nlpHandler := handler.NewNLPHandler(intentParser)
	compareHandler := handler.NewCompareHandler(searchService, comparer)
	savedHandler := handler.NewSavedHandler(searchService, savedStore)

	// Setup Gin router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(cfg.Server.AllowedOrigins, ",")
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "propfinder",
			"version": Version,
		})
	})

	// API routes
	apiV1 := router.Group("/api/v1")
	{
		apiV1.GET("/properties/search", propertiesHandler.Search)
		apiV1.GET("/properties/:id", propertiesHandler.GetProperty)
		apiV1.POST("/properties/compare", propertiesHandler.Compare)

		apiV1.POST("/nlp/parse", nlpHandler.Parse)
		apiV1.POST("/compare/predict", compareHandler.Predict)

		apiV1.GET("/users/:user_id/saved", savedHandler.List)
		apiV1.POST("/users/:user_id/saved", savedHandler.Save)
		apiV1.DELETE("/users/:user_id/saved/:property_id", savedHandler.Delete)

		apiV1.POST("/admin/reload", propertiesHandler.Reload)
	}

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Starting server on %s", addr)

	go func() {
		if err := router.Run(addr); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	log.Println("Server stopped")
}
