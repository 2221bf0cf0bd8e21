package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/profile-service/internal/observability"
)

// MetricsHandler exposes the in-memory counters for debugging.
type MetricsHandler struct {
	metrics *observability.Metrics
}

// NewMetricsHandler returns a new handler instance.
func NewMetricsHandler(metrics *observability.Metrics) *MetricsHandler {
	return &MetricsHandler{metrics: metrics}
}

// Counters handles GET /health/metrics.
func (h *MetricsHandler) Counters(c *fiber.Ctx) error {
	requests, errs := h.metrics.Snapshot()
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"requests": requests,
			"errors":   errs,
		},
	})
}
