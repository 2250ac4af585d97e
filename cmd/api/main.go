package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/formflow/internal/api/middleware"
	"github.com/linskybing/formflow/internal/api/routes"
	"github.com/linskybing/formflow/internal/config"
	"github.com/linskybing/formflow/internal/config/db"
	"github.com/linskybing/formflow/internal/cron"
	"github.com/linskybing/formflow/internal/idempotency"
	"github.com/linskybing/formflow/internal/storage"
	"github.com/linskybing/formflow/pkg/logger"
)

func main() {
	// Load configuration from environment variables and .env file
	config.LoadConfig()

	out := logger.Setup(logger.Options{
		File:       config.LogFile,
		MaxSizeMB:  config.LogMaxSizeMB,
		MaxBackups: config.LogMaxBackups,
		MaxAgeDays: config.LogMaxAgeDays,
		Compress:   config.LogCompress,
	})
	gin.DefaultWriter = out
	gin.DefaultErrorWriter = out

	// Initialize JWT signing key
	middleware.Init()

	// Initialize database connection and migrate
	db.Init()
	repos, err := db.Repositories()
	if err != nil {
		log.Fatalf("Failed to build repositories: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	objects, err := storage.NewFromConfig(ctx)
	if err != nil {
		log.Fatalf("Failed to initialise object storage: %v", err)
	}
	replay, err := idempotency.NewFromConfig(ctx)
	if err != nil {
		log.Fatalf("Failed to initialise idempotency store: %v", err)
	}
	if mem, ok := replay.(*idempotency.MemoryStore); ok {
		cron.StartSweepTask(context.Background(), "idempotency", mem, config.IdempotencySweep)
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware())

	routes.RegisterRoutes(router, repos, objects, replay)

	port := ":" + config.ServerPort
	log.Printf("Starting API server on %s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
}
