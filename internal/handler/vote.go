package handler

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/mohanprasath-dev/AI-Exhibit/internal/middleware"
	"github.com/mohanprasath-dev/AI-Exhibit/internal/model"
	"github.com/mohanprasath-dev/AI-Exhibit/internal/repository"
	"github.com/mohanprasath-dev/AI-Exhibit/pkg/hash"
)

// VoteService is the vote flow behind the handler. Satisfied by
// *service.VoteService.
type VoteService interface {
	Cast(ctx context.Context, entryID, deviceHash, ipHash string) (*model.VoteResponse, error)
	HasVoted(ctx context.Context, entryID, deviceHash string) (bool, error)
}

type VoteHandler struct {
	svc VoteService

	// ipSalt salts the network identity before it reaches the ledger,
	// so stored rows cannot be reversed to addresses by enumeration.
	ipSalt string
}

func NewVoteHandler(svc VoteService, ipSalt string) *VoteHandler {
	return &VoteHandler{svc: svc, ipSalt: ipSalt}
}

// Cast handles POST /api/vote
func (h *VoteHandler) Cast(c fiber.Ctx) error {
	var req model.VoteRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	entryID, errMsg := middleware.ValidateEntryID(req.EntryID)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	deviceHash, errMsg := middleware.ValidateDeviceHash(req.DeviceHash)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	// IP resolved server-side from proxy headers, never trusted from the
	// body, and stored salted rather than raw.
	ipHash := hash.SaltedSHA256(h.ipSalt, middleware.ClientIP(c))

	resp, err := h.svc.Cast(c.Context(), entryID, deviceHash, ipHash)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateDevice):
			return middleware.ErrorResponse(c, fiber.StatusConflict, "ALREADY_VOTED",
				"You have already voted for this entry")
		case errors.Is(err, repository.ErrDuplicateNetwork):
			return middleware.ErrorResponse(c, fiber.StatusConflict, "ALREADY_VOTED",
				"Vote already recorded from this network")
		case errors.Is(err, repository.ErrEntryNotFound):
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Entry not found")
		}
		middleware.Logger.Error().Err(err).Str("entry_id", entryID).Msg("cast vote failed")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to record vote")
	}

	if Metrics.VotesTotal != nil {
		Metrics.VotesTotal.Inc()
	}
	return c.JSON(resp)
}

// Check handles GET /api/vote?entryId=&deviceHash=
func (h *VoteHandler) Check(c fiber.Ctx) error {
	entryID, errMsg := middleware.ValidateEntryID(fiber.Query[string](c, "entryId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	deviceHash, errMsg := middleware.ValidateDeviceHash(fiber.Query[string](c, "deviceHash"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	hasVoted, err := h.svc.HasVoted(c.Context(), entryID, deviceHash)
	if err != nil {
		middleware.Logger.Error().Err(err).Str("entry_id", entryID).Msg("vote check failed")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to check vote status")
	}

	return c.JSON(model.HasVotedResponse{Success: true, HasVoted: hasVoted})
}
