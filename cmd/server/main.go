package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/tabdeck/backend/internal/application/services"
	"github.com/tabdeck/backend/internal/bootstrap"
	"github.com/tabdeck/backend/internal/infrastructure/database"
	"github.com/tabdeck/backend/internal/interfaces/rest"
	"github.com/tabdeck/backend/internal/registry"
	"github.com/tabdeck/backend/pkg/constants"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err == nil {
		log.Println("📄 Loaded configuration from .env")
	}

	port := envOr(constants.EnvPort, constants.DefaultPort)
	dbPath := envOr(constants.EnvDBPath, constants.DefaultDBPath)
	registryPath := envOr(constants.EnvRegistryPath, constants.DefaultRegistryPath)

	// Load the entity catalog first: a broken registry must abort startup
	// before any storage is touched
	reg, err := registry.Load(registryPath)
	if err != nil {
		log.Fatalf("Failed to load entity registry: %v", err)
	}
	log.Printf("📚 Entity registry loaded: %d entities from %s", len(reg.Names()), registryPath)

	db, err := database.Open(dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()
	log.Println("✅ Database connection established")

	ctx := context.Background()
	if err := bootstrap.InitializeSchema(ctx, db, reg); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}

	// Initialize service manager
	svcMgr := services.NewServiceManager(db, reg)
	log.Println("🔧 Service manager initialized")

	if err := svcMgr.Init(ctx); err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}

	// Start the once-per-second reminder evaluation
	if err := svcMgr.Scheduler.Start(); err != nil {
		log.Fatalf("Failed to start trigger scheduler: %v", err)
	}
	log.Println("⏰ Trigger scheduler started (1s tick)")

	router := rest.NewRouter(svcMgr)

	log.Println("🚀 TabDeck Backend Started Successfully")
	log.Printf("📍 Server:        http://localhost:%s", port)
	log.Printf("💾 Data API:      http://localhost:%s/api/data", port)
	log.Printf("📊 Meta API:      http://localhost:%s/api/meta", port)
	log.Printf("🔔 Reminder API:  http://localhost:%s/api/reminder", port)
	log.Printf("💚 Health check:  http://localhost:%s/health", port)

	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	svcMgr.Scheduler.Stop()
	log.Println("🛑 Trigger scheduler stopped")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	log.Println("Server exiting")
}
