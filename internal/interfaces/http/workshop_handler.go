package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/tapiceria-pro/internal/application/dto"
	"github.com/tu-usuario/tapiceria-pro/internal/application/workshop"
	"github.com/tu-usuario/tapiceria-pro/internal/domain"
)

// WorkshopHandler expone el flujo de cierre de órdenes y el tablero.
type WorkshopHandler struct {
	orchestrator *workshop.CompletionOrchestrator
	dashboard    *workshop.DashboardUseCase
}

// NewWorkshopHandler construye el handler del taller.
func NewWorkshopHandler(orchestrator *workshop.CompletionOrchestrator, dashboard *workshop.DashboardUseCase) *WorkshopHandler {
	return &WorkshopHandler{orchestrator: orchestrator, dashboard: dashboard}
}

// respondDomainError traduce los errores de dominio a códigos HTTP.
// El wrapping con %w en capas inferiores obliga a usar errors.Is.
func respondDomainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "SESSION_NOT_FOUND", Message: "la sesión de cierre no existe o expiró"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrPastResumeDate):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "PAST_RESUME_DATE", Message: "la fecha de reanudación no puede ser anterior a hoy"})
	case errors.Is(err, domain.ErrInvalidSessionState):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_SESSION_STATE", Message: "la operación no es válida en el estado actual de la sesión"})
	case errors.Is(err, domain.ErrAllocationNotBalanced):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "ALLOCATION_NOT_BALANCED", Message: "la distribución debe sumar exactamente 100%"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// ListOrders lista las órdenes en curso de ambas colecciones.
// GET /api/orders
func (h *WorkshopHandler) ListOrders(c *fiber.Ctx) error {
	orders, err := h.dashboard.ListActiveOrders(c.Context())
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(orders)
}

// GetOrder detalle de una orden con sus totales.
// GET /api/orders/:orderType/:id
func (h *WorkshopHandler) GetOrder(c *fiber.Ctx) error {
	order, err := h.dashboard.GetOrder(c.Context(), c.Params("orderType"), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(order)
}

// StartCompletion valida la transición de estado pedida y abre la sesión
// de cierre que corresponda al veredicto.
// POST /api/orders/:orderType/:id/completion
func (h *WorkshopHandler) StartCompletion(c *fiber.Ctx) error {
	var in dto.StartCompletionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.TargetStatus == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "targetStatus es requerido"})
	}
	resp, err := h.orchestrator.StartCompletion(c.Context(), c.Params("orderType"), c.Params("id"), in.TargetStatus)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetSession estado visible de una sesión abierta.
// GET /api/completion-sessions/:sessionId
func (h *WorkshopHandler) GetSession(c *fiber.Ctx) error {
	resp, err := h.orchestrator.GetSession(c.Params("sessionId"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(resp)
}

// ApplyRemediation ejecuta la acción ofrecida en el bloqueo (marcar pagado
// o reembolsar a cero) y revalida la transición.
// POST /api/completion-sessions/:sessionId/remediate
func (h *WorkshopHandler) ApplyRemediation(c *fiber.Ctx) error {
	resp, err := h.orchestrator.ApplyRemediation(c.Context(), c.Params("sessionId"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(resp)
}

// SetPercentage edita una entrada del libro de la sesión.
// PATCH /api/completion-sessions/:sessionId/percentage
func (h *WorkshopHandler) SetPercentage(c *fiber.Ctx) error {
	var in dto.SetPercentageRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.orchestrator.SetPercentage(c.Params("sessionId"), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(resp)
}

// Confirm pasa la sesión a confirmación con el resumen del cierre.
// POST /api/completion-sessions/:sessionId/confirm
func (h *WorkshopHandler) Confirm(c *fiber.Ctx) error {
	resp, err := h.orchestrator.Confirm(c.Params("sessionId"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(resp)
}

// CancelConfirmation vuelve de la confirmación a la edición del libro.
// POST /api/completion-sessions/:sessionId/cancel-confirmation
func (h *WorkshopHandler) CancelConfirmation(c *fiber.Ctx) error {
	resp, err := h.orchestrator.CancelConfirmation(c.Params("sessionId"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(resp)
}

// Commit persiste el cierre y dispara los efectos posteriores.
// POST /api/completion-sessions/:sessionId/commit
func (h *WorkshopHandler) Commit(c *fiber.Ctx) error {
	var in dto.CommitCompletionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	resp, err := h.orchestrator.Commit(c.Context(), c.Params("sessionId"), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(resp)
}

// CommitPending persiste una transición a "pending" con fecha de
// reanudación y notas.
// POST /api/completion-sessions/:sessionId/pending
func (h *WorkshopHandler) CommitPending(c *fiber.Ctx) error {
	var in dto.PendingDetailsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ExpectedResumeDate == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "expectedResumeDate es requerido"})
	}
	resp, err := h.orchestrator.CommitPending(c.Context(), c.Params("sessionId"), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(resp)
}

// Abandon descarta la sesión sin escribir nada.
// DELETE /api/completion-sessions/:sessionId
func (h *WorkshopHandler) Abandon(c *fiber.Ctx) error {
	if err := h.orchestrator.Abandon(c.Params("sessionId")); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
