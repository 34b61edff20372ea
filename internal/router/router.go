package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/mohanprasath-dev/AI-Exhibit/internal/handler"
	"github.com/mohanprasath-dev/AI-Exhibit/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Entry   *handler.EntryHandler
	Vote    *handler.VoteHandler
	Gallery *handler.GalleryHandler
	Admin   *handler.AdminHandler
	Health  *handler.HealthHandler
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, corsOrigins string, adminEmails []string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(handler.MetricsMiddleware())
	app.Use(middleware.NewCORS(corsOrigins))

	// Probes and metrics (outside the API group, no rate limiting)
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/metrics", handler.MetricsHandler())

	galleryLimit := middleware.NewGalleryRateLimiter().Handler()
	voteLimit := middleware.NewVoteRateLimiter().Handler()
	submitLimit := middleware.NewSubmitRateLimiter().Handler()
	exportLimit := middleware.NewExportRateLimiter().Handler()

	// API routes
	api := app.Group("/api")

	// Entry routes
	api.Get("/entries", h.Entry.List, galleryLimit)
	api.Get("/entries/:id", h.Entry.Get, galleryLimit)
	api.Post("/entries", h.Entry.Submit, submitLimit)

	// Vote routes
	api.Post("/vote", h.Vote.Cast, voteLimit)
	api.Get("/vote", h.Vote.Check, galleryLimit)

	// Ranked read views
	api.Get("/leaderboard", h.Gallery.Leaderboard, galleryLimit)
	api.Get("/hall-of-fame", h.Gallery.HallOfFame, galleryLimit)
	api.Get("/categories", h.Gallery.Categories, galleryLimit)

	// Admin routes (allow-list gated)
	admin := api.Group("/admin", middleware.RequireAdmin(adminEmails))
	admin.Get("/entries", h.Admin.List)
	admin.Delete("/entries", h.Admin.Delete)
	admin.Get("/stats", h.Admin.Stats)
	admin.Get("/export", h.Admin.Export, exportLimit)
}
