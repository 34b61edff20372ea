package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v3"

	"github.com/mohanprasath-dev/AI-Exhibit/internal/config"
	"github.com/mohanprasath-dev/AI-Exhibit/internal/db"
	"github.com/mohanprasath-dev/AI-Exhibit/internal/handler"
	"github.com/mohanprasath-dev/AI-Exhibit/internal/middleware"
	"github.com/mohanprasath-dev/AI-Exhibit/internal/repository"
	"github.com/mohanprasath-dev/AI-Exhibit/internal/router"
	"github.com/mohanprasath-dev/AI-Exhibit/internal/service"
	"github.com/mohanprasath-dev/AI-Exhibit/internal/storage"
)

func main() {
	cfg := config.Load()
	middleware.InitLogger(cfg.LogLevel, "exhibit-api")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.NewPool(ctx, db.Options{URL: cfg.DatabaseURL})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	store, err := storage.New(ctx, storage.Options{
		Endpoint:      cfg.S3Endpoint,
		Region:        cfg.S3Region,
		Bucket:        cfg.S3Bucket,
		AccessKey:     cfg.S3AccessKey,
		SecretKey:     cfg.S3SecretKey,
		PublicBaseURL: cfg.PublicBaseURL,
	})
	if err != nil {
		log.Fatalf("failed to configure object storage: %v", err)
	}

	cache := service.NewCacheService(cfg.RedisURL)
	defer cache.Close()

	entryRepo := repository.NewEntryRepo(pool)
	voteRepo := repository.NewVoteRepo(pool)
	categoryRepo := repository.NewCategoryRepo(pool)

	entrySvc := service.NewEntryService(entryRepo, store, cache)
	voteSvc := service.NewVoteService(voteRepo, cache)
	gallerySvc := service.NewGalleryService(entryRepo, cache)
	adminSvc := service.NewAdminService(entryRepo, store, cache)

	handler.InitMetrics(pool)

	h := &router.Handlers{
		Entry:   handler.NewEntryHandler(entrySvc),
		Vote:    handler.NewVoteHandler(voteSvc, cfg.IPHashSalt),
		Gallery: handler.NewGalleryHandler(gallerySvc, categoryRepo),
		Admin:   handler.NewAdminHandler(adminSvc),
		Health:  handler.NewHealthHandler(pool, cache.Client(), store),
	}

	app := fiber.New(fiber.Config{
		AppName:      "AI Exhibit API",
		ServerHeader: "AIExhibit",
		BodyLimit:    service.MaxUploadBytes + 1<<20,
	})

	router.Setup(app, h, cfg.CORSOrigins, cfg.AdminEmails)

	// Background counter reconciliation
	go service.NewRecountWorker(voteRepo, cache).Start(ctx)

	log.Printf("AI Exhibit backend starting on :%s (env=%s)", cfg.Port, cfg.Environment)
	log.Fatal(app.Listen(":" + cfg.Port))
}
