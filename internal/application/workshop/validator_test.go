package workshop

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/tapiceria-pro/internal/application/finance"
	"github.com/tu-usuario/tapiceria-pro/internal/domain"
	"github.com/tu-usuario/tapiceria-pro/internal/domain/entity"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

var (
	statusDone      = &entity.InvoiceStatus{Value: "completada", IsEndState: true, EndStateType: entity.EndStateDone}
	statusCancelled = &entity.InvoiceStatus{Value: "cancelada", IsEndState: true, EndStateType: entity.EndStateCancelled}
	statusPending   = &entity.InvoiceStatus{Value: "pausada", IsEndState: true, EndStateType: entity.EndStatePending}
	statusEnCurso   = &entity.InvoiceStatus{Value: "en-curso", IsEndState: false}
)

// ──────────────────────────────────────────────────────────────────────────────
// ValidateTransition
// ──────────────────────────────────────────────────────────────────────────────

// Una orden con ingreso 500 y solo 300 pagados no puede cerrarse: el
// bloqueo debe ofrecer el faltante exacto (200) como remediación.
func TestValidateTransition_PagoInsuficienteBloqueaCierre(t *testing.T) {
	payment := entity.PaymentRecord{
		Deposit:    dec("500"),
		AmountPaid: dec("300"),
	}
	totals := finance.Totals{Revenue: dec("500")}

	out := ValidateTransition(statusDone, payment, totals)

	assert.Equal(t, OutcomeBlocked, out.Kind)
	assert.Equal(t, ReasonInsufficientPayment, out.Reason)
	require.NotNil(t, out.Remediation)
	assert.True(t, dec("200").Equal(out.Remediation.PendingAmount),
		"el faltante debe ser revenue - amountPaid = 200, fue %s", out.Remediation.PendingAmount)
}

// Tras aplicar "marcar pagado" el acumulado iguala al ingreso y la misma
// transición pasa a exigir la distribución mensual.
func TestValidateTransition_MarcarPagadoDesbloquea(t *testing.T) {
	payment := entity.PaymentRecord{AmountPaid: dec("300")}
	totals := finance.Totals{Revenue: dec("500")}

	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	synthetic, newPaid := MarkFullyPaidPayment(payment, totals.Revenue, now)

	assert.True(t, dec("200").Equal(synthetic.Amount), "el pago sintético salda el faltante")
	assert.Equal(t, "ajuste", synthetic.Method)
	assert.True(t, dec("500").Equal(newPaid))

	payment.AmountPaid = newPaid
	out := ValidateTransition(statusDone, payment, totals)
	assert.Equal(t, OutcomeRequiresAllocation, out.Kind)
}

// Pago exacto (o de más) permite el cierre directo al flujo de distribución.
func TestValidateTransition_PagoCompletoExigeDistribucion(t *testing.T) {
	payment := entity.PaymentRecord{AmountPaid: dec("500")}
	totals := finance.Totals{Revenue: dec("500")}

	out := ValidateTransition(statusDone, payment, totals)
	assert.Equal(t, OutcomeRequiresAllocation, out.Kind)
	assert.Nil(t, out.Remediation)
}

// Cancelar con dinero recibido exige reembolsar primero: el bloqueo ofrece
// el monto exacto a devolver.
func TestValidateTransition_CancelarConPagoBloquea(t *testing.T) {
	payment := entity.PaymentRecord{AmountPaid: dec("350.50")}
	totals := finance.Totals{Revenue: dec("900")}

	out := ValidateTransition(statusCancelled, payment, totals)

	assert.Equal(t, OutcomeBlocked, out.Kind)
	assert.Equal(t, ReasonUnrefundedPayment, out.Reason)
	require.NotNil(t, out.Remediation)
	assert.True(t, dec("350.50").Equal(out.Remediation.RefundAmount))
}

// El reembolso sintético es negativo y deja el acumulado en cero; con eso
// la cancelación pasa sin condiciones.
func TestValidateTransition_ReembolsoPermiteCancelar(t *testing.T) {
	payment := entity.PaymentRecord{AmountPaid: dec("350.50")}
	now := time.Now()

	refund, newPaid := RefundPayment(payment, now)
	assert.True(t, dec("-350.50").Equal(refund.Amount))
	assert.Equal(t, "reembolso", refund.Method)
	assert.True(t, newPaid.IsZero())

	payment.AmountPaid = newPaid
	out := ValidateTransition(statusCancelled, payment, finance.Totals{})
	assert.Equal(t, OutcomeAllowed, out.Kind)
}

// Restos de redondeo menores a un centavo no bloquean la cancelación.
func TestValidateTransition_CancelarConResiduoDeCentavoPasa(t *testing.T) {
	payment := entity.PaymentRecord{AmountPaid: dec("0.009")}
	out := ValidateTransition(statusCancelled, payment, finance.Totals{})
	assert.Equal(t, OutcomeAllowed, out.Kind)
}

// La transición a "pending" nunca mira los pagos: siempre pide los detalles.
func TestValidateTransition_PendingPideDetalles(t *testing.T) {
	payment := entity.PaymentRecord{AmountPaid: dec("-50")}
	out := ValidateTransition(statusPending, payment, finance.Totals{Revenue: dec("100")})
	assert.Equal(t, OutcomeRequiresPendingDetails, out.Kind)
}

// Estados no terminales pasan sin condiciones, sin importar los pagos.
func TestValidateTransition_EstadoNoTerminalSiemprePasa(t *testing.T) {
	payment := entity.PaymentRecord{AmountPaid: dec("-999")}
	out := ValidateTransition(statusEnCurso, payment, finance.Totals{Revenue: dec("1000")})
	assert.Equal(t, OutcomeAllowed, out.Kind)
}

// ──────────────────────────────────────────────────────────────────────────────
// ValidatePendingDetails
// ──────────────────────────────────────────────────────────────────────────────

// La fecha de reanudación de hoy es válida aunque la hora ya haya pasado:
// se compara solo la fecha.
func TestValidatePendingDetails_HoyEsValido(t *testing.T) {
	now := time.Date(2025, 6, 15, 23, 50, 0, 0, time.Local)
	details := entity.PendingDetails{
		ExpectedResumeDate: time.Date(2025, 6, 15, 0, 0, 0, 0, time.Local),
	}
	assert.NoError(t, ValidatePendingDetails(details, now))
}

func TestValidatePendingDetails_FuturoEsValido(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.Local)
	details := entity.PendingDetails{
		ExpectedResumeDate: time.Date(2025, 9, 1, 0, 0, 0, 0, time.Local),
	}
	assert.NoError(t, ValidatePendingDetails(details, now))
}

// Una fecha pasada es un error de validación, nunca un ajuste silencioso.
func TestValidatePendingDetails_FechaPasadaRechazada(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 30, 0, 0, time.Local)
	details := entity.PendingDetails{
		ExpectedResumeDate: time.Date(2025, 6, 14, 23, 59, 0, 0, time.Local),
	}
	err := ValidatePendingDetails(details, now)
	assert.ErrorIs(t, err, domain.ErrPastResumeDate)
}
