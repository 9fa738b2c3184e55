// Package workshop implementa el flujo de cierre de órdenes del taller:
// validación de transición de estado, sesiones de distribución mensual y
// la orquestación de persistencia con sus efectos posteriores.
package workshop

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/tapiceria-pro/internal/application/finance"
	"github.com/tu-usuario/tapiceria-pro/internal/domain"
	"github.com/tu-usuario/tapiceria-pro/internal/domain/entity"
)

// OutcomeKind veredicto del validador de transición.
type OutcomeKind int

const (
	// OutcomeAllowed transición a estado no terminal: pasa sin condiciones.
	OutcomeAllowed OutcomeKind = iota
	// OutcomeRequiresAllocation cierre válido a "done": sigue el flujo de distribución.
	OutcomeRequiresAllocation
	// OutcomeBlocked el estado de pagos impide la transición.
	OutcomeBlocked
	// OutcomeRequiresPendingDetails estado "pending": faltan fecha y notas.
	OutcomeRequiresPendingDetails
)

// Razones de bloqueo.
type BlockReason string

const (
	ReasonInsufficientPayment BlockReason = "insufficient_payment"
	ReasonUnrefundedPayment   BlockReason = "unrefunded_payment"
)

// Remediation acción de un clic ofrecida junto al bloqueo.
type Remediation struct {
	// PendingAmount faltante para "marcar pagado" (bloqueo por pago insuficiente).
	PendingAmount decimal.Decimal
	// RefundAmount monto a reembolsar a cero (bloqueo por pago sin reembolsar).
	RefundAmount decimal.Decimal
}

// Outcome resultado del validador.
type Outcome struct {
	Kind        OutcomeKind
	Reason      BlockReason
	Remediation *Remediation
}

var tolerancia = decimal.NewFromFloat(0.01)

// ValidateTransition decide si el estado de pagos de la orden permite la
// transición al estado candidato. Solo lee: ninguna mutación ocurre aquí;
// las remediaciones las aplica el orquestador tras el veredicto.
func ValidateTransition(candidate *entity.InvoiceStatus, payment entity.PaymentRecord, totals finance.Totals) Outcome {
	if candidate == nil || !candidate.IsEndState {
		return Outcome{Kind: OutcomeAllowed}
	}
	switch candidate.EndStateType {
	case entity.EndStateDone:
		if payment.AmountPaid.LessThan(totals.Revenue) {
			return Outcome{
				Kind:   OutcomeBlocked,
				Reason: ReasonInsufficientPayment,
				Remediation: &Remediation{
					PendingAmount: totals.Revenue.Sub(payment.AmountPaid).Round(2),
				},
			}
		}
		return Outcome{Kind: OutcomeRequiresAllocation}
	case entity.EndStateCancelled:
		if payment.AmountPaid.Abs().GreaterThan(tolerancia) {
			return Outcome{
				Kind:   OutcomeBlocked,
				Reason: ReasonUnrefundedPayment,
				Remediation: &Remediation{
					RefundAmount: payment.AmountPaid.Round(2),
				},
			}
		}
		// Cancelada sin pagos: no hay ingreso que distribuir, se commitea directo.
		return Outcome{Kind: OutcomeAllowed}
	case entity.EndStatePending:
		return Outcome{Kind: OutcomeRequiresPendingDetails}
	}
	return Outcome{Kind: OutcomeAllowed}
}

// ValidatePendingDetails exige una fecha de reanudación no anterior a hoy
// (comparación solo de fecha, la hora se ignora). Una fecha pasada es un
// error de validación, nunca un ajuste silencioso.
func ValidatePendingDetails(details entity.PendingDetails, now time.Time) error {
	ry, rm, rd := details.ExpectedResumeDate.Date()
	ny, nm, nd := now.Date()
	resume := time.Date(ry, rm, rd, 0, 0, 0, 0, time.UTC)
	today := time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC)
	if resume.Before(today) {
		return domain.ErrPastResumeDate
	}
	return nil
}

// MarkFullyPaidPayment arma el pago sintético que salda el faltante hasta
// el ingreso total calculado. Devuelve el pago y el nuevo acumulado.
func MarkFullyPaidPayment(payment entity.PaymentRecord, revenue decimal.Decimal, now time.Time) (entity.Payment, decimal.Decimal) {
	shortfall := revenue.Sub(payment.AmountPaid).Round(2)
	p := entity.Payment{
		ID:     uuid.New().String(),
		Amount: shortfall,
		Date:   now,
		Method: "ajuste",
		Note:   "Marcado como pagado en su totalidad",
	}
	return p, revenue.Round(2)
}

// RefundPayment arma el pago negativo que lleva el acumulado a cero.
func RefundPayment(payment entity.PaymentRecord, now time.Time) (entity.Payment, decimal.Decimal) {
	p := entity.Payment{
		ID:     uuid.New().String(),
		Amount: payment.AmountPaid.Neg().Round(2),
		Date:   now,
		Method: "reembolso",
		Note:   "Reembolso total para cancelación",
	}
	return p, decimal.Zero
}
