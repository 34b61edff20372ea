package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohanprasath-dev/AI-Exhibit/internal/middleware"
	"github.com/mohanprasath-dev/AI-Exhibit/internal/model"
	"github.com/mohanprasath-dev/AI-Exhibit/internal/repository"
)

type adminServiceStub struct {
	lastFilters model.EntryFilters
}

func (s *adminServiceStub) List(_ context.Context, f model.EntryFilters) (*model.PaginatedEntries, error) {
	s.lastFilters = f
	return &model.PaginatedEntries{Data: []model.Entry{}, Page: f.Page, Limit: f.Limit}, nil
}

func (s *adminServiceStub) Delete(_ context.Context, req model.DeleteEntriesRequest, _ string) (*model.DeleteEntriesResponse, error) {
	return &model.DeleteEntriesResponse{Success: true, DeletedCount: len(req.EntryIDs)}, nil
}

func (s *adminServiceStub) Stats(_ context.Context) (*model.AdminStats, error) {
	return &model.AdminStats{}, nil
}

func (s *adminServiceStub) Export(_ context.Context) ([]model.Entry, error) {
	return nil, nil
}

func newAdminApp(stub *adminServiceStub) *fiber.App {
	middleware.InitLogger("error", "test")
	app := fiber.New()
	h := NewAdminHandler(stub)
	app.Get("/api/admin/entries", h.List)
	return app
}

func TestAdminList_FilterParsing(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  model.EntryFilters
	}{
		{
			"defaults",
			"",
			model.EntryFilters{SortBy: "created_at", Page: 1, Limit: repository.MaxGalleryLimit},
		},
		{
			"winners filter",
			"?winners=true&category=digital-art",
			model.EntryFilters{
				Category:    "digital-art",
				SortBy:      "created_at",
				WinnersOnly: true,
				Page:        1,
				Limit:       repository.MaxGalleryLimit,
			},
		},
		{
			"search with paging",
			"?search=neon&page=3&limit=10",
			model.EntryFilters{
				Search: "neon",
				SortBy: "created_at",
				Page:   3,
				Limit:  10,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &adminServiceStub{}
			app := newAdminApp(stub)

			req := httptest.NewRequest(http.MethodGet, "/api/admin/entries"+tt.query, nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			require.Equal(t, fiber.StatusOK, resp.StatusCode)

			assert.Equal(t, tt.want, stub.lastFilters)
		})
	}
}

func TestAdminList_ResponseShape(t *testing.T) {
	stub := &adminServiceStub{}
	app := newAdminApp(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/entries?page=2", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	var page model.PaginatedEntries
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
	assert.Equal(t, 2, page.Page)
	assert.NotNil(t, page.Data)
}
