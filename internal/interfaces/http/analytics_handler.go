package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/facturas-api/internal/application/analytics"
)

// AnalyticsHandler expone el resumen de facturación del usuario.
type AnalyticsHandler struct {
	uc *analytics.SummaryUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *analytics.SummaryUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// Summary GET /api/analytics/summary
func (h *AnalyticsHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}
