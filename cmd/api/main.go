// cmd/api/main.go
// Main entry point for the application
// This file bootstraps all components and starts the server

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mehmet552/biletweb-online-ticket-assistant/internal/catalog"
	"github.com/mehmet552/biletweb-online-ticket-assistant/internal/common/database"
	"github.com/mehmet552/biletweb-online-ticket-assistant/internal/common/utils"
	"github.com/mehmet552/biletweb-online-ticket-assistant/internal/config"
	"github.com/mehmet552/biletweb-online-ticket-assistant/internal/recommend"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	log.Println("========================================")
	log.Println("🚀 Starting BiletWeb Ticket Assistant API")
	log.Println("========================================")

	// 1. Load environment variables
	log.Println("📁 Step 1: Loading .env file...")
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  Warning: No .env file found (%v), using environment variables", err)
	} else {
		log.Println("✅ .env file loaded successfully")
	}

	// 2. Load and validate configuration
	log.Println("📋 Step 2: Loading configuration...")
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal("❌ Configuration validation failed:", err)
	}
	log.Println("✅ Configuration is valid")

	// 3. Connect to PostgreSQL
	log.Println("🗄️  Step 3: Connecting to PostgreSQL...")
	db, err := database.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("❌ Failed to connect to PostgreSQL:", err)
	}
	defer db.Close()
	log.Println("✅ Connected to PostgreSQL successfully")

	// 4. Connect to Redis (optional)
	log.Println("📮 Step 4: Connecting to Redis...")
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.NewRedisClientFromURL(cfg.RedisURL)
		if err != nil {
			log.Printf("⚠️  Redis unavailable (%v), continuing without it", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
			log.Println("✅ Connected to Redis successfully")
		}
	} else {
		log.Println("⚠️  Redis URL not configured, skipping Redis connection")
	}

	// 5. Build catalog collaborators
	log.Println("🎪 Step 5: Building catalog sources...")
	catalogRepo := catalog.NewPostgresRepository(db)

	source := catalog.NewClient(catalog.ClientConfig{
		BaseURL:  cfg.CatalogBaseURL,
		Token:    cfg.CatalogToken,
		CacheTTL: cfg.CatalogCacheTTL,
	}, redisClient)

	var movies *catalog.MovieClient
	if cfg.MovieAPIKey != "" {
		movies = catalog.NewMovieClient(catalog.MovieClientConfig{
			BaseURL: cfg.MovieAPIBaseURL,
			APIKey:  cfg.MovieAPIKey,
			Region:  cfg.MovieRegion,
		})
		log.Println("✅ Movie source enabled")
	} else {
		log.Println("⚠️  Movie API key not configured, movies disabled")
	}

	// 6. Build the recommendation engine and service
	log.Println("🧠 Step 6: Building recommendation engine...")
	engineOpts := []recommend.Option{}
	if cfg.ExplainerURL != "" {
		engineOpts = append(engineOpts,
			recommend.WithExplainer(recommend.NewHTTPExplainer(cfg.ExplainerURL, cfg.ExplainerTimeout)))
		log.Println("✅ Explainer enabled")
	}
	engine := recommend.NewEngine(engineOpts...)

	recsRepo := recommend.NewPostgresRepository(db)
	recsService := recommend.NewService(recsRepo, catalogRepo, source, movies, engine, cfg.DefaultCityID)
	recsHandler := recommend.NewHandler(recsService)

	// 7. Background catalog sync
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.SyncEnabled {
		log.Println("🔄 Step 7: Starting catalog sync job...")
		sync := catalog.NewSyncService(catalogRepo, movies, cfg.CatalogBaseURL, cfg.CatalogToken)
		go sync.Run(ctx, cfg.DefaultCityID, cfg.SyncInterval)
	} else {
		log.Println("⏭️  Step 7: Catalog sync disabled")
	}

	// 8. Routes
	log.Println("🌐 Step 8: Registering routes...")
	router := mux.NewRouter()
	recommend.RegisterRoutes(router, recsHandler)
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	// 9. Start server with graceful shutdown
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("✅ Server listening on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("❌ Server failed:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal("❌ Forced shutdown:", err)
	}

	log.Println("✅ Server stopped cleanly")
}
