package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/mohanprasath-dev/AI-Exhibit/internal/middleware"
	"github.com/mohanprasath-dev/AI-Exhibit/internal/repository"
	"github.com/mohanprasath-dev/AI-Exhibit/internal/service"
)

type GalleryHandler struct {
	svc        *service.GalleryService
	categories *repository.CategoryRepo
}

func NewGalleryHandler(svc *service.GalleryService, categories *repository.CategoryRepo) *GalleryHandler {
	return &GalleryHandler{svc: svc, categories: categories}
}

// Leaderboard handles GET /api/leaderboard
func (h *GalleryHandler) Leaderboard(c fiber.Ctx) error {
	category := fiber.Query[string](c, "category")
	limit := middleware.ClampLimit(fiber.Query[int](c, "limit"), 50, repository.MaxLeaderboardLimit)

	ranked, err := h.svc.Leaderboard(c.Context(), category, limit)
	if err != nil {
		middleware.Logger.Error().Err(err).Msg("leaderboard failed")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch leaderboard")
	}

	return c.JSON(fiber.Map{"success": true, "data": ranked})
}

// HallOfFame handles GET /api/hall-of-fame
func (h *GalleryHandler) HallOfFame(c fiber.Ctx) error {
	category := fiber.Query[string](c, "category")

	winners, err := h.svc.HallOfFame(c.Context(), category)
	if err != nil {
		middleware.Logger.Error().Err(err).Msg("hall of fame failed")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch hall of fame")
	}

	return c.JSON(fiber.Map{"success": true, "data": winners})
}

// Categories handles GET /api/categories
func (h *GalleryHandler) Categories(c fiber.Ctx) error {
	categories, err := h.categories.List(c.Context())
	if err != nil {
		middleware.Logger.Error().Err(err).Msg("list categories failed")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch categories")
	}

	return c.JSON(fiber.Map{"success": true, "data": categories})
}
