package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/kartikey3d/roommate-finder/config"
	"github.com/kartikey3d/roommate-finder/database"
	"github.com/kartikey3d/roommate-finder/handlers"
	"github.com/kartikey3d/roommate-finder/matching"
	"github.com/kartikey3d/roommate-finder/routes"
	"github.com/kartikey3d/roommate-finder/websocket"
	"github.com/kartikey3d/roommate-finder/workers"
)

func main() {
	log.Println("🚀 Starting Roommate Finder API...")

	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("❌ JWT_SECRET must be set")
	}

	// ===== CONNECT TO MONGODB WITH RETRY =====
	log.Println("🔌 Connecting to MongoDB...")

	var dbErr error
	for i := 1; i <= 3; i++ {
		if err := database.ConnectMongo(cfg.MongoURI, cfg.Database); err != nil {
			dbErr = err
			log.Printf("❌ MongoDB connection attempt %d failed: %v", i, err)
			time.Sleep(2 * time.Second)
			continue
		}
		dbErr = nil
		break
	}
	if dbErr != nil {
		log.Fatal("❌ Failed to connect to MongoDB:", dbErr)
	}

	// ===== MATCHING ENGINE =====
	engineCfg := matching.DefaultConfig()
	engineCfg.MaxDistanceKm = cfg.MatchingMaxDistanceKm
	engineCfg.MinScoreThreshold = cfg.MatchingMinScoreThreshold
	engineCfg.ReputationMin = cfg.ReputationMinScore
	engineCfg.ReputationMax = cfg.ReputationMaxScore

	engine, err := matching.NewEngine(engineCfg)
	if err != nil {
		log.Fatal("❌ Invalid matching configuration:", err)
	}

	// ===== GIN MODE =====
	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
		log.Println("⚙️ Running in RELEASE mode")
	} else {
		gin.SetMode(gin.DebugMode)
		log.Println("⚙️ Running in DEBUG mode")
	}

	// ===== WEBSOCKET =====
	wsManager := websocket.NewManager()
	go wsManager.Start()

	// ===== BACKGROUND WORKER =====
	events := workers.NewPublisher(256)
	recomputer := workers.NewRecomputer(cfg, engine, events, wsManager)

	workerCtx, workerCancel := context.WithCancel(context.Background())
	go recomputer.Run(workerCtx)

	// ===== ROUTER =====
	handlers.Init(cfg, engine, wsManager, events)
	router := routes.SetupRouter(cfg, wsManager)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("🌐 Server running on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("❌ Server error:", err)
		}
	}()

	// ===== GRACEFUL SHUTDOWN =====
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	workerCancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Println("❌ Forced shutdown:", err)
	}
	if err := database.DisconnectMongo(); err != nil {
		log.Println("❌ Mongo disconnect:", err)
	}

	log.Println("👋 Server stopped gracefully")
}
