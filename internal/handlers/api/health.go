package api

import (
	"github.com/gofiber/fiber/v3"

	"leximap/internal/models"
)

// RelationsStatus reports the last known reachability of the relation service.
type RelationsStatus interface {
	Status() string
}

// HealthHandler serves GET /healthz.
type HealthHandler struct {
	lexicon string
	probe   RelationsStatus
}

// NewHealthHandler creates a health handler. probe may be nil when the
// probe job is disabled.
func NewHealthHandler(lexiconBackend string, probe RelationsStatus) *HealthHandler {
	return &HealthHandler{lexicon: lexiconBackend, probe: probe}
}

// Check reports service status. The relation service is best-effort, so its
// state never makes the service unhealthy.
func (h *HealthHandler) Check(c fiber.Ctx) error {
	relations := models.RelationsUnknown
	if h.probe != nil {
		relations = h.probe.Status()
	}
	return c.JSON(models.HealthResponse{
		Status:    "ok",
		Lexicon:   h.lexicon,
		Relations: relations,
	})
}
