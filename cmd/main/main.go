package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"www.github.com/Wanderer0074348/AgentRouter/src/cache"
	"www.github.com/Wanderer0074348/AgentRouter/src/config"
	"www.github.com/Wanderer0074348/AgentRouter/src/handlers"
	"www.github.com/Wanderer0074348/AgentRouter/src/history"
	"www.github.com/Wanderer0074348/AgentRouter/src/inference"
	"www.github.com/Wanderer0074348/AgentRouter/src/models"
	"www.github.com/Wanderer0074348/AgentRouter/src/ratelimit"
	"www.github.com/Wanderer0074348/AgentRouter/src/retrieval"
	"www.github.com/Wanderer0074348/AgentRouter/src/router"
	"www.github.com/Wanderer0074348/AgentRouter/src/search"
	"www.github.com/Wanderer0074348/AgentRouter/src/tools"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	} else {
		log.Println("Loaded .env file")
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Printf("✓ Config loaded successfully")

	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Printf("✓ Redis connected")

	historyStore := history.NewStore(redisClient, &cfg.History)
	answerCache := cache.NewAnswerCache(redisClient, cfg.Redis.CacheTTL)

	chatClient, err := inference.NewChatClient(&cfg.Chat, cfg.Router.Tiers)
	if err != nil {
		log.Fatalf("Failed to initialize chat client: %v", err)
	}
	log.Printf("✓ Chat client ready (tiers: %s / %s / %s / %s)",
		cfg.Router.Tiers.Low, cfg.Router.Tiers.Mid, cfg.Router.Tiers.High, cfg.Router.Tiers.Superior)

	var memoryStore models.MemoryStore
	if cfg.Memory.PineconeAPIKey != "" {
		ragStore, err := inference.NewRAGStore(&cfg.Memory, &cfg.Chat, cfg.Router.Tiers.Low)
		if err != nil {
			log.Printf("Failed to initialize vector memory, continuing without it: %v", err)
		} else {
			memoryStore = ragStore
			log.Printf("✓ Vector memory connected")
		}
	} else {
		log.Println("Vector memory disabled (PINECONE_API_KEY not set)")
	}

	var searchClient models.SearchClient
	if perplexity, err := search.NewPerplexityClient(&cfg.Search); err != nil {
		log.Printf("Live search disabled: %v", err)
	} else {
		searchClient = perplexity
		log.Printf("✓ Live search client ready")
	}

	blender := retrieval.NewBlender(memoryStore, searchClient, answerCache)

	registry := tools.NewRegistry()
	registry.Register(tools.NewKnowledgeTool(blender))
	if memoryStore != nil {
		registry.Register(tools.NewMemoryTool(memoryStore))
	}
	log.Printf("✓ Tool registry initialized with %d tools", registry.Len())

	limiter := ratelimit.NewLimiter(&cfg.RateLimit)
	queryRouter := router.New(&cfg.Router, limiter, chatClient, blender, registry)
	log.Printf("✓ Query router initialized (threshold: %.2f)", cfg.Router.Threshold)

	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	queryHandler := handlers.NewQueryHandler(queryRouter, historyStore, memoryStore)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", queryHandler.HealthCheck)
		v1.POST("/query", queryHandler.HandleQuery)
		v1.POST("/memory", queryHandler.HandleAddMemory)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	log.Printf("🚀 AgentRouter running on port %s", cfg.Server.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

func corsMiddleware() gin.HandlerFunc {
	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	var allowedOrigins []string

	if allowedOriginsEnv != "" {
		allowedOrigins = strings.Split(allowedOriginsEnv, ",")
		for i := range allowedOrigins {
			allowedOrigins[i] = strings.TrimSpace(allowedOrigins[i])
		}
	} else {
		allowedOrigins = []string{
			"http://localhost:3000",
			"http://localhost:3001",
		}
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		// Requests without an Origin header (curl, health checks) pass through
		if origin == "" {
			c.Next()
			return
		}

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin {
				allowed = true
				c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
				break
			}
		}

		if !allowed {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}

		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
