package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/bangla-ai/platform/internal/service/analytics"
)

type AnalyticsHandler struct {
	aggregator *analytics.Aggregator
	log        *zap.Logger
}

func NewAnalyticsHandler(aggregator *analytics.Aggregator, log *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		aggregator: aggregator,
		log:        log,
	}
}

// Summary returns the caller tenant's rolling traffic aggregate.
func (h *AnalyticsHandler) Summary(c *fiber.Ctx) error {
	tenantID, _ := c.Locals("tenant_id").(string)
	return c.JSON(h.aggregator.Summary(tenantID))
}
