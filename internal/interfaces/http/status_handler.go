package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/tapiceria-pro/internal/application/usecase"
)

// StatusHandler catálogo de estados de factura.
type StatusHandler struct {
	uc *usecase.InvoiceStatusUseCase
}

// NewStatusHandler construye el handler.
func NewStatusHandler(uc *usecase.InvoiceStatusUseCase) *StatusHandler {
	return &StatusHandler{uc: uc}
}

// List catálogo completo ordenado por sortOrder.
// GET /api/invoice-statuses
func (h *StatusHandler) List(c *fiber.Ctx) error {
	statuses, err := h.uc.List(c.Context())
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(statuses)
}
