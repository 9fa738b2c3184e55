package workshop

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/tapiceria-pro/internal/application/finance"
	"github.com/tu-usuario/tapiceria-pro/internal/domain/repository"
)

// CompletionTxRunner ejecuta el cierre corporativo como una sola unidad
// lógica: actualización de estado+distribución, copia a done-orders y
// copia fiscal a taxedInvoices. Si cualquier paso falla, nada queda escrito.
// El callback debe usar txCtx en todas las llamadas a los repos.
type CompletionTxRunner interface {
	RunCompletion(ctx context.Context, fn func(
		txCtx context.Context,
		orderRepo repository.OrderRepository,
		doneRepo repository.DoneOrderRepository,
	) error) error
}

// CompletionEmailData datos del correo de cierre al cliente.
type CompletionEmailData struct {
	OrderID      string
	BillInvoice  string
	CustomerName string
	ClosedAt     string
	Total        decimal.Decimal
	// PDF resumen adjunto; vacío = sin adjunto.
	SummaryPDF []byte
}

// EmailSender servicio de correo saliente. La implementación debe
// autorizarse (conexión/login SMTP) antes de intentar el envío.
type EmailSender interface {
	SendCompletionEmail(ctx context.Context, data CompletionEmailData, recipient string, includeReview bool) error
}

// SummaryData entrada del PDF resumen de cierre.
type SummaryData struct {
	BillInvoice  string
	CustomerName string
	ClosedAt     string
	Entries      []finance.EntryBreakdown
	Totals       finance.Totals
}

// SummaryPDFGenerator genera el PDF con la distribución mensual del cierre.
type SummaryPDFGenerator interface {
	Generate(ctx context.Context, data SummaryData) ([]byte, error)
}
