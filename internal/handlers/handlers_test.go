package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"assessment-forge/internal/domain"
	"assessment-forge/internal/llmprovider"
	"assessment-forge/internal/orchestrator"
	"assessment-forge/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// emptyProvider never produces any completion; used here because these
// handler tests never exercise a full pipeline success path.
type emptyProvider struct{}

func (emptyProvider) Generate(ctx context.Context, req llmprovider.Request) (string, string, error) {
	return "", "end_turn", nil
}

func (emptyProvider) GenerateStreaming(ctx context.Context, req llmprovider.Request) (<-chan llmprovider.Chunk, error) {
	ch := make(chan llmprovider.Chunk, 1)
	ch <- llmprovider.Chunk{Done: true, StopReason: "end_turn"}
	close(ch)
	return ch, nil
}

func newTestHandler(t *testing.T) (*Handler, *storage.MemoryAdapter) {
	t.Helper()
	adapter := storage.NewMemoryAdapter()
	orch := orchestrator.New(emptyProvider{}, adapter, nil, orchestrator.Config{
		PipelineDeadline: time.Second,
		MaxRestarts:      1,
	})
	assessments := storage.NewAssessmentRepo(adapter)
	return NewHandler(orch, assessments), adapter
}

func TestGetUserIDRequiresHeader(t *testing.T) {
	app := fiber.New()
	h, _ := newTestHandler(t)
	app.Get("/assessments/history", h.GetHistory)

	req := httptest.NewRequest(http.MethodGet, "/assessments/history", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestGetUserIDRejectsMalformedUUID(t *testing.T) {
	app := fiber.New()
	h, _ := newTestHandler(t)
	app.Get("/assessments/history", h.GetHistory)

	req := httptest.NewRequest(http.MethodGet, "/assessments/history", nil)
	req.Header.Set("X-User-Id", "not-a-uuid")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGenerateAssessmentRequiresTopicOrUnit(t *testing.T) {
	app := fiber.New()
	h, _ := newTestHandler(t)
	app.Post("/assessments/generate", h.GenerateAssessment)

	req := httptest.NewRequest(http.MethodPost, "/assessments/generate", nil)
	req.Header.Set("X-User-Id", uuid.New().String())
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGetAssessmentNotFoundReturns404(t *testing.T) {
	app := fiber.New()
	h, _ := newTestHandler(t)
	app.Get("/assessments/:id", h.GetAssessment)

	req := httptest.NewRequest(http.MethodGet, "/assessments/missing-id", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestHealthReportsHealthy(t *testing.T) {
	app := fiber.New()
	h, _ := newTestHandler(t)
	app.Get("/health", h.Health)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestMetricsRespondsWithPrometheusText(t *testing.T) {
	app := fiber.New()
	h, _ := newTestHandler(t)
	app.Get("/metrics", h.Metrics)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestStatusForCategoryMapsEveryCategory(t *testing.T) {
	assert.Equal(t, fiber.StatusTooManyRequests, statusForCategory(domain.CategoryQuota))
	assert.Equal(t, fiber.StatusServiceUnavailable, statusForCategory(domain.CategoryServiceUnavailable))
	assert.Equal(t, fiber.StatusBadRequest, statusForCategory(domain.CategoryInvalidRequest))
	assert.Equal(t, fiber.StatusInternalServerError, statusForCategory(domain.CategoryInternal))
}
