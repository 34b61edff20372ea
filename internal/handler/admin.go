package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/mohanprasath-dev/AI-Exhibit/internal/middleware"
	"github.com/mohanprasath-dev/AI-Exhibit/internal/model"
	"github.com/mohanprasath-dev/AI-Exhibit/internal/repository"
)

// AdminService is the moderation flow behind the authenticated surface.
// Satisfied by *service.AdminService.
type AdminService interface {
	List(ctx context.Context, f model.EntryFilters) (*model.PaginatedEntries, error)
	Delete(ctx context.Context, req model.DeleteEntriesRequest, adminEmail string) (*model.DeleteEntriesResponse, error)
	Stats(ctx context.Context) (*model.AdminStats, error)
	Export(ctx context.Context) ([]model.Entry, error)
}

type AdminHandler struct {
	svc AdminService
}

func NewAdminHandler(svc AdminService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

// List handles GET /api/admin/entries
func (h *AdminHandler) List(c fiber.Ctx) error {
	filters := model.EntryFilters{
		Category:    fiber.Query[string](c, "category"),
		Search:      fiber.Query[string](c, "search"),
		SortBy:      "created_at",
		WinnersOnly: fiber.Query[bool](c, "winners"),
		Page:        middleware.ClampPage(fiber.Query[int](c, "page", 1)),
		Limit: middleware.ClampLimit(fiber.Query[int](c, "limit"),
			repository.MaxGalleryLimit, repository.MaxGalleryLimit),
	}

	page, err := h.svc.List(c.Context(), filters)
	if err != nil {
		middleware.Logger.Error().Err(err).Msg("admin list failed")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch entries")
	}
	return c.JSON(page)
}

// Delete handles DELETE /api/admin/entries
func (h *AdminHandler) Delete(c fiber.Ctx) error {
	var req model.DeleteEntriesRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	if !req.DeleteAll {
		if len(req.EntryIDs) == 0 {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "MISSING_FIELDS",
				"No entries specified for deletion")
		}
		for i, id := range req.EntryIDs {
			valid, errMsg := middleware.ValidateEntryID(id)
			if errMsg != "" {
				return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
			}
			req.EntryIDs[i] = valid
		}
	}

	resp, err := h.svc.Delete(c.Context(), req, middleware.AuthedEmail(c))
	if err != nil {
		middleware.Logger.Error().Err(err).Msg("admin delete failed")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete entries")
	}
	return c.JSON(resp)
}

// Stats handles GET /api/admin/stats
func (h *AdminHandler) Stats(c fiber.Ctx) error {
	stats, err := h.svc.Stats(c.Context())
	if err != nil {
		middleware.Logger.Error().Err(err).Msg("admin stats failed")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch statistics")
	}
	return c.JSON(fiber.Map{"success": true, "stats": stats})
}

// Export handles GET /api/admin/export
// Streams every entry as a JSON attachment for offline inspection.
func (h *AdminHandler) Export(c fiber.Ctx) error {
	entries, err := h.svc.Export(c.Context())
	if err != nil {
		middleware.Logger.Error().Err(err).Msg("admin export failed")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to export entries")
	}

	filename := "entries-" + time.Now().UTC().Format("20060102") + ".json"
	c.Set("Content-Disposition", "attachment; filename="+filename)
	return c.JSON(fiber.Map{
		"generatedAt": time.Now().UTC().Format(time.RFC3339),
		"count":       len(entries),
		"entries":     entries,
	})
}
