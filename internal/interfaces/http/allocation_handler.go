package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/tapiceria-pro/internal/application/dto"
	"github.com/tu-usuario/tapiceria-pro/internal/application/workshop"
)

// AllocationHandler edición independiente de la distribución mensual.
type AllocationHandler struct {
	uc *workshop.AllocationUseCase
}

// NewAllocationHandler construye el handler.
func NewAllocationHandler(uc *workshop.AllocationUseCase) *AllocationHandler {
	return &AllocationHandler{uc: uc}
}

// GetAllocation vista de la distribución de una orden (persistida o siembra).
// GET /api/orders/:orderType/:id/allocation
func (h *AllocationHandler) GetAllocation(c *fiber.Ctx) error {
	view, err := h.uc.GetAllocation(c.Context(), c.Params("orderType"), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(view)
}

// UpdateAllocation reemplaza la distribución completa; debe sumar 100%.
// PUT /api/orders/:orderType/:id/allocation
func (h *AllocationHandler) UpdateAllocation(c *fiber.Ctx) error {
	var in dto.AllocationUpdateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	view, err := h.uc.UpdateAllocation(c.Context(), c.Params("orderType"), c.Params("id"), in.Entries)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(view)
}
