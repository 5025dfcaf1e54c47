package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"core/internal/config"
	"core/internal/handler"
	"core/internal/repository"
	"core/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Print version info
	log.Printf("Property Search Pipeline")
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

	// Initialize database connection
	repo, err := repository.NewPropertyRepository(
		cfg.GetPostgreSQLDSN(),
		cfg.PostgreSQL.MaxConnections,
		cfg.PostgreSQL.MaxIdleConnections,
	)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer repo.Close()

	log.Println("✅ Connected to PostgreSQL database")

	// Initialize OpenAI client
	if !cfg.OpenAI.Enabled {
		log.Fatalf("OPENAI_API_KEY is required - the pipeline cannot classify or embed queries without it")
	}
	openaiClient := service.NewOpenAIClient(&cfg.OpenAI)
	log.Printf("✅ OpenAI client initialized")
	log.Printf("   - API Base: %s", cfg.OpenAI.APIBase)
	log.Printf("   - Chat model: %s", cfg.OpenAI.ChatModel)
	log.Printf("   - Embedding model: %s", cfg.OpenAI.EmbeddingModel)
	log.Printf("   - Embedding dimensions: %d", cfg.OpenAI.EmbeddingDimensions)

	// Optional deterministic language gate
	var languageGate *service.LanguageGate
	if cfg.Language.GateEnabled {
		languageGate = service.NewLanguageGate()
		log.Println("✅ Language gate enabled (English-only queries)")
	} else {
		log.Println("⚠️  Language gate disabled - language screening is left to the AI format check")
	}

	// Optional Redis embedding cache
	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		log.Printf("✅ Connected to Redis embedding cache at %s", cfg.Redis.Addr)
	} else {
		log.Println("⚠️  Redis cache disabled - embeddings are recomputed on every request")
	}

	// Initialize services
	validator := service.NewQueryValidator(openaiClient)
	messages := service.NewMessageGenerator(openaiClient)
	extractor := service.NewFieldExtractor(openaiClient)
	embedder := service.NewEmbeddingService(
		openaiClient,
		redisClient,
		time.Duration(cfg.Redis.CacheTTLMin)*time.Minute,
	)
	summarizer := service.NewSummarizer(openaiClient)
	searchService := service.NewSearchService(
		repo,
		languageGate,
		validator,
		messages,
		extractor,
		embedder,
		summarizer,
		cfg.Language.GateEnabled,
		cfg.Search.ResultLimit,
	)

	log.Println("✅ Services initialized")

	// Initialize handlers
	searchHandler := handler.NewSearchHandler(searchService)

	// Setup Gin router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.AllowedOrigins}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":     "healthy",
			"service":    "property-search-pipeline",
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// Version endpoint
	router.GET("/version", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Search endpoint
	router.POST("/process_request", searchHandler.ProcessRequest)

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("🚀 Starting server on %s", addr)

	// Graceful shutdown
	go func() {
		if err := router.Run(addr); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	log.Println("✅ Server stopped")
}
