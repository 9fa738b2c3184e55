package dto

import "github.com/shopspring/decimal"

// StartCompletionRequest inicia una sesión de cierre para una orden.
type StartCompletionRequest struct {
	OrderType    string `json:"orderType"`
	TargetStatus string `json:"targetStatus"`
}

// AllocationEntryResponse entrada del libro con sus montos derivados.
type AllocationEntryResponse struct {
	Month      int             `json:"month"`
	Year       int             `json:"year"`
	Label      string          `json:"label"`
	Percentage decimal.Decimal `json:"percentage"`
	Revenue    decimal.Decimal `json:"revenue"`
	Cost       decimal.Decimal `json:"cost"`
	Profit     decimal.Decimal `json:"profit"`
}

// LedgerTotalsResponse agregados del libro de distribución.
type LedgerTotalsResponse struct {
	TotalPercentage decimal.Decimal `json:"totalPercentage"`
	TotalRevenue    decimal.Decimal `json:"totalRevenue"`
	TotalCost       decimal.Decimal `json:"totalCost"`
	TotalProfit     decimal.Decimal `json:"totalProfit"`
	Status          string          `json:"status"` // valid | over | under
}

// RemediationResponse acción ofrecida cuando la transición está bloqueada.
type RemediationResponse struct {
	PendingAmount decimal.Decimal `json:"pendingAmount,omitempty"`
	RefundAmount  decimal.Decimal `json:"refundAmount,omitempty"`
}

// SessionResponse estado visible de una sesión de cierre.
type SessionResponse struct {
	SessionID    string `json:"sessionId,omitempty"`
	State        string `json:"state"`
	OrderID      string `json:"orderId"`
	BillInvoice  string `json:"billInvoice,omitempty"`
	CustomerName string `json:"customerName,omitempty"`

	Revenue decimal.Decimal `json:"revenue"`
	Cost    decimal.Decimal `json:"cost"`
	Profit  decimal.Decimal `json:"profit"`

	BlockReason string               `json:"blockReason,omitempty"`
	Remediation *RemediationResponse `json:"remediation,omitempty"`

	Entries []AllocationEntryResponse `json:"entries,omitempty"`
	Totals  *LedgerTotalsResponse     `json:"totals,omitempty"`

	EmailAvailable bool `json:"emailAvailable"`
}

// SetPercentageRequest edita una entrada del libro.
type SetPercentageRequest struct {
	Index      int             `json:"index"`
	Percentage decimal.Decimal `json:"percentage"`
}

// ConfirmationSummaryResponse resumen legible antes de persistir el cierre.
type ConfirmationSummaryResponse struct {
	SessionID    string                    `json:"sessionId"`
	OrderID      string                    `json:"orderId"`
	BillInvoice  string                    `json:"billInvoice,omitempty"`
	CustomerName string                    `json:"customerName"`
	TargetStatus string                    `json:"targetStatus"`
	Entries      []AllocationEntryResponse `json:"entries"`
	Revenue      decimal.Decimal           `json:"revenue"`
	Cost         decimal.Decimal           `json:"cost"`
	Profit       decimal.Decimal           `json:"profit"`

	EmailAvailable       bool `json:"emailAvailable"`
	SendEmailDefault     bool `json:"sendEmailDefault"`
	IncludeReviewDefault bool `json:"includeReviewDefault"`
}

// CommitCompletionRequest opciones del commit final.
type CommitCompletionRequest struct {
	SendEmail     *bool `json:"sendEmail,omitempty"`
	IncludeReview *bool `json:"includeReview,omitempty"`
}

// CommitCompletionResponse resultado del cierre persistido.
type CommitCompletionResponse struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
	// Warning aviso no fatal (ej. el correo falló pero el cierre quedó firme).
	Warning string `json:"warning,omitempty"`
}

// PendingDetailsRequest datos para dejar la orden en estado "pending".
type PendingDetailsRequest struct {
	ExpectedResumeDate string `json:"expectedResumeDate"` // YYYY-MM-DD
	Notes              string `json:"notes,omitempty"`
}

// AllocationUpdateRequest reemplazo completo de la distribución (edición
// independiente, sin cambio de estado).
type AllocationUpdateRequest struct {
	OrderType string                  `json:"orderType"`
	Entries   []AllocationEntryUpdate `json:"entries"`
}

// AllocationEntryUpdate triple editable (mes, año, porcentaje).
type AllocationEntryUpdate struct {
	Month      int             `json:"month"`
	Year       int             `json:"year"`
	Percentage decimal.Decimal `json:"percentage"`
}

// AllocationViewResponse vista de la distribución de una orden.
type AllocationViewResponse struct {
	OrderID string                    `json:"orderId"`
	Entries []AllocationEntryResponse `json:"entries"`
	Totals  LedgerTotalsResponse      `json:"totals"`
	Revenue decimal.Decimal           `json:"revenue"`
	Cost    decimal.Decimal           `json:"cost"`
	Profit  decimal.Decimal           `json:"profit"`
}
