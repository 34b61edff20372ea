package handler

import (
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	up := checkResult{Status: statusUp}
	down := checkResult{Status: statusDown}
	disabled := checkResult{Status: statusDisabled}

	tests := []struct {
		name             string
		db, store, cache checkResult
		wantStatus       string
		wantCode         int
	}{
		{"all dependencies up", up, up, up, "healthy", fiber.StatusOK},
		{"redis disabled is still healthy", up, up, disabled, "healthy", fiber.StatusOK},
		{"database down fails readiness", down, up, up, "unhealthy", fiber.StatusServiceUnavailable},
		{"storage down fails readiness", up, down, up, "unhealthy", fiber.StatusServiceUnavailable},
		{"cache down alone only degrades", up, up, down, "degraded", fiber.StatusOK},
		{"everything down is unhealthy", down, down, down, "unhealthy", fiber.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code := summarize(tt.db, tt.store, tt.cache)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}
