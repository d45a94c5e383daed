package handlers

import (
	"errors"
	"log"
	"time"

	"assessment-forge/internal/domain"
	"assessment-forge/internal/orchestrator"
	"assessment-forge/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Handler wires the HTTP surface to the orchestrator and the assessment
// repository it reads history/defaults from.
type Handler struct {
	orch        *orchestrator.Orchestrator
	assessments *storage.AssessmentRepo
}

// NewHandler builds a Handler bound to its dependencies.
func NewHandler(orch *orchestrator.Orchestrator, assessments *storage.AssessmentRepo) *Handler {
	return &Handler{
		orch:        orch,
		assessments: assessments,
	}
}

// getUserID extracts user ID from X-User-Id header
func getUserID(c *fiber.Ctx) (uuid.UUID, error) {
	userIDStr := c.Get("X-User-Id")
	if userIDStr == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "X-User-Id header required")
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid user ID format")
	}

	return userID, nil
}

// GenerateAssessment runs the full pipeline for a submitted TeacherIntent.
// POST /assessments/generate
func (h *Handler) GenerateAssessment(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	var intent domain.TeacherIntent
	if err := c.BodyParser(&intent); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	intent.UserID = userID.String()

	if intent.Topic == "" && intent.Unit == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "topic or unit is required",
		})
	}

	runID := uuid.New().String()
	day := time.Now().UTC().Format("2006-01-02")

	result, err := h.orch.Run(c.Context(), intent, runID, 1, day)
	if err != nil {
		var pipelineErr *domain.PipelineError
		if errors.As(err, &pipelineErr) {
			log.Printf("pipeline run %s failed for user %s: %v", runID, userID, pipelineErr)
			return c.Status(statusForCategory(pipelineErr.Kind.Category())).JSON(fiber.Map{
				"error": pipelineErr.Message,
				"kind":  pipelineErr.Kind,
				"stage": pipelineErr.Stage,
			})
		}
		log.Printf("pipeline run %s failed for user %s: %v", runID, userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate assessment",
		})
	}

	return c.JSON(fiber.Map{
		"assessment": result.Assessment,
		"quality":    result.Quality,
		"trace":      result.Trace,
	})
}

// GetAssessment fetches a previously generated assessment by ID.
// GET /assessments/:id
func (h *Handler) GetAssessment(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "assessment id is required",
		})
	}

	assessment, err := h.assessments.Get(c.Context(), id)
	if err != nil {
		log.Printf("error getting assessment %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get assessment",
		})
	}
	if assessment == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Assessment not found",
		})
	}

	return c.JSON(assessment)
}

// GetHistory returns a user's predictive-default snapshot derived from
// their assessment generation history.
// GET /assessments/history
func (h *Handler) GetHistory(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	defaults, err := h.assessments.PredictiveDefaults(c.Context(), userID.String())
	if err != nil {
		log.Printf("error getting history for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get history",
		})
	}

	return c.JSON(defaults)
}

// Health reports service liveness.
// GET /health
func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "healthy",
		"service": "assessment-forge",
	})
}

// Metrics exposes Prometheus collectors for scraping.
// GET /metrics
func (h *Handler) Metrics(c *fiber.Ctx) error {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		log.Printf("error gathering metrics: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to gather metrics",
		})
	}

	c.Set(fiber.HeaderContentType, string(expfmt.FmtText))
	encoder := expfmt.NewEncoder(c.Response().BodyWriter(), expfmt.FmtText)
	for _, mf := range families {
		if err := encoder.Encode(mf); err != nil {
			log.Printf("error encoding metric family %s: %v", mf.GetName(), err)
		}
	}
	return nil
}

func statusForCategory(cat domain.UserFacingCategory) int {
	switch cat {
	case domain.CategoryQuota:
		return fiber.StatusTooManyRequests
	case domain.CategoryServiceUnavailable:
		return fiber.StatusServiceUnavailable
	case domain.CategoryInvalidRequest:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
