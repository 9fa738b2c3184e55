package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrUserNotFound = errors.New("usuario no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")
)

// Errores del motor de cierre de órdenes (validación y sesiones).
var (
	// ErrInsufficientPayment la orden no está pagada en su totalidad; no puede pasar a "done".
	ErrInsufficientPayment = errors.New("pago insuficiente para completar la orden")
	// ErrUnrefundedPayment hay pagos registrados; no puede pasar a "cancelled" sin reembolsar.
	ErrUnrefundedPayment = errors.New("pago sin reembolsar para cancelar la orden")
	// ErrAllocationNotBalanced la suma de porcentajes de la distribución no es 100%.
	ErrAllocationNotBalanced = errors.New("la distribución mensual no suma 100%")
	// ErrPastResumeDate la fecha de reanudación es anterior a hoy.
	ErrPastResumeDate = errors.New("la fecha de reanudación no puede ser anterior a hoy")
	// ErrInvalidSessionState la operación no es válida en el estado actual de la sesión.
	ErrInvalidSessionState = errors.New("operación no permitida en el estado actual de la sesión")
	// ErrSessionNotFound la sesión de cierre no existe o ya fue descartada.
	ErrSessionNotFound = errors.New("sesión de cierre no encontrada")
)
