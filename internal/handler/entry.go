package handler

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5"

	"github.com/mohanprasath-dev/AI-Exhibit/internal/middleware"
	"github.com/mohanprasath-dev/AI-Exhibit/internal/model"
	"github.com/mohanprasath-dev/AI-Exhibit/internal/repository"
	"github.com/mohanprasath-dev/AI-Exhibit/internal/service"
)

type EntryHandler struct {
	svc *service.EntryService
}

func NewEntryHandler(svc *service.EntryService) *EntryHandler {
	return &EntryHandler{svc: svc}
}

// List handles GET /api/entries
func (h *EntryHandler) List(c fiber.Ctx) error {
	filters := model.EntryFilters{
		Category:  fiber.Query[string](c, "category"),
		Search:    fiber.Query[string](c, "search"),
		SortBy:    fiber.Query(c, "sortBy", "created_at"),
		SortOrder: fiber.Query(c, "sortOrder", "desc"),
		Page:      middleware.ClampPage(fiber.Query[int](c, "page", 1)),
		Limit: middleware.ClampLimit(fiber.Query[int](c, "limit"),
			repository.DefaultPageLimit, repository.MaxGalleryLimit),
	}

	page, err := h.svc.List(c.Context(), filters)
	if err != nil {
		middleware.Logger.Error().Err(err).Msg("list entries failed")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch entries")
	}
	return c.JSON(page)
}

// Get handles GET /api/entries/:id
func (h *EntryHandler) Get(c fiber.Ctx) error {
	id, errMsg := middleware.ValidateEntryID(c.Params("id"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	entry, err := h.svc.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Entry not found")
		}
		middleware.Logger.Error().Err(err).Str("entry_id", id).Msg("get entry failed")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch entry")
	}
	return c.JSON(fiber.Map{"data": entry})
}

// Submit handles POST /api/entries (multipart form).
func (h *EntryHandler) Submit(c fiber.Ctx) error {
	fields := middleware.SubmissionInput{
		Title:         c.FormValue("title"),
		Category:      c.FormValue("category"),
		Prompt:        c.FormValue("prompt"),
		ToolUsed:      c.FormValue("tool_used"),
		ShareLink:     c.FormValue("share_link"),
		Description:   c.FormValue("description"),
		CreatorName:   c.FormValue("creator_name"),
		CreatorEmail:  c.FormValue("creator_email"),
		CreatorSocial: c.FormValue("creator_social"),
	}

	if fieldErrs := middleware.ValidateSubmission(fields); len(fieldErrs) > 0 {
		return middleware.ValidationErrorResponse(c, fieldErrs)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "MISSING_FILE", "File is required")
	}
	if fileHeader.Size > service.MaxUploadBytes {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "FILE_TOO_LARGE", "File must be at most 50MB")
	}

	file, err := fileHeader.Open()
	if err != nil {
		middleware.Logger.Error().Err(err).Msg("open upload failed")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to read file")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, service.MaxUploadBytes+1))
	if err != nil {
		middleware.Logger.Error().Err(err).Msg("read upload failed")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to read file")
	}
	if len(data) > service.MaxUploadBytes {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "FILE_TOO_LARGE", "File must be at most 50MB")
	}

	entry, err := h.svc.Create(c.Context(), service.Submission{
		Fields:      fields,
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
		OwnerID:     middleware.AuthedUserID(c),
	})
	if err != nil {
		middleware.Logger.Error().Err(err).Msg("create entry failed")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create entry")
	}

	if Metrics.SubmissionsTotal != nil {
		Metrics.SubmissionsTotal.Inc()
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Entry submitted successfully",
		"data":    entry,
	})
}
