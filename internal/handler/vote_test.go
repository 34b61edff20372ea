package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohanprasath-dev/AI-Exhibit/internal/middleware"
	"github.com/mohanprasath-dev/AI-Exhibit/internal/model"
	"github.com/mohanprasath-dev/AI-Exhibit/internal/repository"
	"github.com/mohanprasath-dev/AI-Exhibit/pkg/hash"
)

const (
	testEntryID    = "7f3c9a2e-1b4d-4c8a-9e6f-2a5b8c1d3e4f"
	testDeviceHash = "k3j5h2g8f9d0ltu4"
	testClientIP   = "203.0.113.9"
)

type voteServiceStub struct {
	castErr  error
	votes    int
	hasVoted bool

	lastEntryID    string
	lastDeviceHash string
	lastIPHash     string
}

func (s *voteServiceStub) Cast(_ context.Context, entryID, deviceHash, ipHash string) (*model.VoteResponse, error) {
	s.lastEntryID, s.lastDeviceHash, s.lastIPHash = entryID, deviceHash, ipHash
	if s.castErr != nil {
		return nil, s.castErr
	}
	return &model.VoteResponse{Success: true, Message: "Vote recorded successfully", Votes: s.votes}, nil
}

func (s *voteServiceStub) HasVoted(_ context.Context, entryID, deviceHash string) (bool, error) {
	s.lastEntryID, s.lastDeviceHash = entryID, deviceHash
	return s.hasVoted, nil
}

func newVoteApp(stub *voteServiceStub) *fiber.App {
	middleware.InitLogger("error", "test")
	app := fiber.New()
	h := NewVoteHandler(stub, "pepper")
	app.Post("/api/vote", h.Cast)
	app.Get("/api/vote", h.Check)
	return app
}

func postVote(t *testing.T, app *fiber.App, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/vote", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Real-IP", testClientIP)
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeErrorBody(t *testing.T, resp *http.Response) (code, message string) {
	t.Helper()
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body.Error.Code, body.Error.Message
}

func TestVoteCast_RejectionStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		castErr    error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{
			"repeat device is a conflict",
			repository.ErrDuplicateDevice,
			fiber.StatusConflict, "ALREADY_VOTED",
			"You have already voted for this entry",
		},
		{
			"same network different device is a conflict",
			repository.ErrDuplicateNetwork,
			fiber.StatusConflict, "ALREADY_VOTED",
			"Vote already recorded from this network",
		},
		{
			"unknown entry is not found",
			repository.ErrEntryNotFound,
			fiber.StatusNotFound, "NOT_FOUND",
			"Entry not found",
		},
		{
			"unexpected failure is an internal error",
			errors.New("pool closed"),
			fiber.StatusInternalServerError, "INTERNAL_ERROR",
			"Failed to record vote",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newVoteApp(&voteServiceStub{castErr: tt.castErr})

			resp := postVote(t, app, `{"entryId":"`+testEntryID+`","deviceHash":"`+testDeviceHash+`"}`)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			code, msg := decodeErrorBody(t, resp)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestVoteCast_Success(t *testing.T) {
	stub := &voteServiceStub{votes: 42}
	app := newVoteApp(stub)

	resp := postVote(t, app, `{"entryId":"`+testEntryID+`","deviceHash":"`+testDeviceHash+`"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body model.VoteResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.Equal(t, 42, body.Votes)

	assert.Equal(t, testEntryID, stub.lastEntryID)
	assert.Equal(t, testDeviceHash, stub.lastDeviceHash)
}

func TestVoteCast_NetworkIdentityIsSalted(t *testing.T) {
	stub := &voteServiceStub{}
	app := newVoteApp(stub)

	postVote(t, app, `{"entryId":"`+testEntryID+`","deviceHash":"`+testDeviceHash+`"}`)

	assert.Equal(t, hash.SaltedSHA256("pepper", testClientIP), stub.lastIPHash)
	assert.NotContains(t, stub.lastIPHash, testClientIP)
}

func TestVoteCast_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed JSON", `{"entryId":`},
		{"non-UUID entry id", `{"entryId":"not-a-uuid","deviceHash":"` + testDeviceHash + `"}`},
		{"short device hash", `{"entryId":"` + testEntryID + `","deviceHash":"abc"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &voteServiceStub{}
			app := newVoteApp(stub)

			resp := postVote(t, app, tt.body)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
			assert.Empty(t, stub.lastEntryID, "service must not be reached on invalid input")
		})
	}
}

func TestVoteCheck(t *testing.T) {
	stub := &voteServiceStub{hasVoted: true}
	app := newVoteApp(stub)

	req := httptest.NewRequest(http.MethodGet,
		"/api/vote?entryId="+testEntryID+"&deviceHash="+testDeviceHash, nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body model.HasVotedResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.HasVoted)
}
