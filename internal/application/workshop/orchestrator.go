package workshop

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/tapiceria-pro/internal/application/dto"
	"github.com/tu-usuario/tapiceria-pro/internal/application/finance"
	"github.com/tu-usuario/tapiceria-pro/internal/domain"
	"github.com/tu-usuario/tapiceria-pro/internal/domain/entity"
	"github.com/tu-usuario/tapiceria-pro/internal/domain/repository"
	"github.com/tu-usuario/tapiceria-pro/pkg/logger"
)

// SessionState estado explícito de la sesión de cierre. Un solo valor
// etiquetado reemplaza la docena de banderas abiertas/ocultas del flujo:
//
//	(inicio) → blocked | collecting_allocation | collecting_pending_details
//	collecting_allocation → confirming_completion → persisting → done
//	confirming_completion → (cancelar) → collecting_allocation, libro intacto
type SessionState string

const (
	StateBlocked              SessionState = "blocked"
	StateCollectingAllocation SessionState = "collecting_allocation"
	StateCollectingPending    SessionState = "collecting_pending_details"
	StateConfirming           SessionState = "confirming_completion"
	StatePersisting           SessionState = "persisting"
	StateDone                 SessionState = "done"
)

// CompletionSession sesión de edición de un cierre. El libro es propiedad
// exclusiva de la sesión: nada se escribe en el almacén hasta el commit.
type CompletionSession struct {
	ID      string
	State   SessionState
	Order   *entity.Order
	Target  *entity.InvoiceStatus
	Payment entity.PaymentRecord
	Totals  finance.Totals
	Outcome Outcome
	Ledger  *finance.AllocationLedger

	// Email destino del aviso de cierre, resuelto una sola vez al abrir
	// la sesión (campo de la orden, o la colección de clientes).
	Email          string
	EmailAvailable bool
	CreatedAt      time.Time
}

// CompletionOrchestrator secuencia el flujo completo de cierre:
// validar → distribuir → confirmar → persistir → efectos posteriores.
// Las escrituras de un cierre van en orden, nunca intercaladas; dos
// órdenes distintas no comparten sesión ni libro.
type CompletionOrchestrator struct {
	orderRepo    repository.OrderRepository
	statusRepo   repository.InvoiceStatusRepository
	customerRepo repository.CustomerRepository
	materialRepo repository.MaterialCompanyRepository
	txRunner     CompletionTxRunner
	emailSender  EmailSender
	pdfGen       SummaryPDFGenerator
	params       finance.Params
	log          *logger.Logger

	mu       sync.Mutex
	sessions map[string]*CompletionSession
}

// NewCompletionOrchestrator construye el orquestador.
func NewCompletionOrchestrator(
	orderRepo repository.OrderRepository,
	statusRepo repository.InvoiceStatusRepository,
	customerRepo repository.CustomerRepository,
	materialRepo repository.MaterialCompanyRepository,
	txRunner CompletionTxRunner,
	emailSender EmailSender,
	pdfGen SummaryPDFGenerator,
	params finance.Params,
	log *logger.Logger,
) *CompletionOrchestrator {
	return &CompletionOrchestrator{
		orderRepo:    orderRepo,
		statusRepo:   statusRepo,
		customerRepo: customerRepo,
		materialRepo: materialRepo,
		txRunner:     txRunner,
		emailSender:  emailSender,
		pdfGen:       pdfGen,
		params:       params,
		log:          log,
		sessions:     make(map[string]*CompletionSession),
	}
}

// resolveEmail dirección de aviso de cierre: el campo denormalizado de la
// orden primero; si falta, el documento del cliente.
func (uc *CompletionOrchestrator) resolveEmail(ctx context.Context, order *entity.Order) string {
	if e := order.ResolvableEmail(); e != "" {
		return e
	}
	if order.CustomerID == "" || uc.customerRepo == nil {
		return ""
	}
	customer, err := uc.customerRepo.GetByID(ctx, order.CustomerID)
	if err != nil || customer == nil {
		return ""
	}
	return customer.Email
}

func parseOrderType(s string) (entity.OrderType, error) {
	switch entity.OrderType(s) {
	case entity.OrderTypeIndividual:
		return entity.OrderTypeIndividual, nil
	case entity.OrderTypeCorporate:
		return entity.OrderTypeCorporate, nil
	}
	return "", domain.ErrInvalidInput
}

// StartCompletion valida la transición pedida y abre la sesión que
// corresponda al veredicto. Una transición a estado no terminal se
// commitea directo, sin sesión.
func (uc *CompletionOrchestrator) StartCompletion(ctx context.Context, orderType, orderID, targetValue string) (*dto.SessionResponse, error) {
	ot, err := parseOrderType(orderType)
	if err != nil {
		return nil, err
	}
	if orderID == "" || targetValue == "" {
		return nil, domain.ErrInvalidInput
	}

	order, err := uc.orderRepo.GetByID(ctx, ot, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	target, err := uc.statusRepo.GetByValue(ctx, targetValue)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, domain.ErrNotFound
	}
	taxRates, err := uc.materialRepo.GetTaxRates(ctx)
	if err != nil {
		return nil, fmt.Errorf("tasas de material: %w", err)
	}

	now := time.Now()
	totals := finance.ComputeTotals(order, taxRates, uc.params)
	payment := order.Payment()
	outcome := ValidateTransition(target, payment, totals)

	if outcome.Kind == OutcomeAllowed {
		if err := uc.orderRepo.UpdateStatus(ctx, ot, orderID, target.Value); err != nil {
			return nil, fmt.Errorf("actualizar estado: %w", err)
		}
		return &dto.SessionResponse{
			State:        string(StateDone),
			OrderID:      orderID,
			BillInvoice:  order.OrderDetails.BillInvoice,
			CustomerName: order.DisplayName(),
			Revenue:      totals.Revenue,
			Cost:         totals.Cost,
			Profit:       totals.Profit,
		}, nil
	}

	email := uc.resolveEmail(ctx, order)
	s := &CompletionSession{
		ID:             uuid.New().String(),
		Order:          order,
		Target:         target,
		Payment:        payment,
		Totals:         totals,
		Outcome:        outcome,
		Email:          email,
		EmailAvailable: order.OrderType == entity.OrderTypeIndividual && email != "",
		CreatedAt:      now,
	}
	switch outcome.Kind {
	case OutcomeBlocked:
		s.State = StateBlocked
	case OutcomeRequiresAllocation:
		s.State = StateCollectingAllocation
		s.Ledger = finance.SeedLedger(order, totals, now)
	case OutcomeRequiresPendingDetails:
		s.State = StateCollectingPending
	}

	uc.mu.Lock()
	uc.sessions[s.ID] = s
	uc.mu.Unlock()

	return uc.toSessionResponse(s), nil
}

func (uc *CompletionOrchestrator) session(id string) (*CompletionSession, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	s, ok := uc.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return s, nil
}

func (uc *CompletionOrchestrator) dropSession(id string) {
	uc.mu.Lock()
	delete(uc.sessions, id)
	uc.mu.Unlock()
}

// GetSession estado visible de una sesión abierta.
func (uc *CompletionOrchestrator) GetSession(sessionID string) (*dto.SessionResponse, error) {
	s, err := uc.session(sessionID)
	if err != nil {
		return nil, err
	}
	return uc.toSessionResponse(s), nil
}

// ApplyRemediation ejecuta la acción de un clic ofrecida en el bloqueo
// (marcar pagado / reembolsar a cero), persiste el pago sintético y
// vuelve a validar la transición con el pago ya corregido.
func (uc *CompletionOrchestrator) ApplyRemediation(ctx context.Context, sessionID string) (*dto.SessionResponse, error) {
	s, err := uc.session(sessionID)
	if err != nil {
		return nil, err
	}
	if s.State != StateBlocked {
		return nil, domain.ErrInvalidSessionState
	}

	now := time.Now()
	var synthetic entity.Payment
	var newPaid = s.Payment.AmountPaid
	switch s.Outcome.Reason {
	case ReasonInsufficientPayment:
		synthetic, newPaid = MarkFullyPaidPayment(s.Payment, s.Totals.Revenue, now)
	case ReasonUnrefundedPayment:
		synthetic, newPaid = RefundPayment(s.Payment, now)
	default:
		return nil, domain.ErrInvalidSessionState
	}
	if err := uc.orderRepo.AppendPayment(ctx, s.Order.OrderType, s.Order.ID, synthetic, newPaid); err != nil {
		return nil, fmt.Errorf("registrar pago de remediación: %w", err)
	}
	s.Payment.Payments = append(s.Payment.Payments, synthetic)
	s.Payment.AmountPaid = newPaid

	outcome := ValidateTransition(s.Target, s.Payment, s.Totals)
	s.Outcome = outcome
	switch outcome.Kind {
	case OutcomeAllowed:
		// Cancelación ya reembolsada: se commitea el estado y la sesión termina.
		if err := uc.orderRepo.UpdateStatus(ctx, s.Order.OrderType, s.Order.ID, s.Target.Value); err != nil {
			return nil, fmt.Errorf("actualizar estado: %w", err)
		}
		uc.dropSession(s.ID)
		s.State = StateDone
	case OutcomeRequiresAllocation:
		s.State = StateCollectingAllocation
		s.Ledger = finance.SeedLedger(s.Order, s.Totals, now)
	case OutcomeBlocked:
		s.State = StateBlocked
	case OutcomeRequiresPendingDetails:
		s.State = StateCollectingPending
	}
	return uc.toSessionResponse(s), nil
}

// SetPercentage edita una entrada del libro de la sesión.
func (uc *CompletionOrchestrator) SetPercentage(sessionID string, req dto.SetPercentageRequest) (*dto.SessionResponse, error) {
	s, err := uc.session(sessionID)
	if err != nil {
		return nil, err
	}
	if s.State != StateCollectingAllocation {
		return nil, domain.ErrInvalidSessionState
	}
	if err := s.Ledger.SetPercentage(req.Index, req.Percentage); err != nil {
		return nil, domain.ErrInvalidInput
	}
	return uc.toSessionResponse(s), nil
}

// Confirm pasa a la confirmación. Solo se permite con el libro balanceado.
func (uc *CompletionOrchestrator) Confirm(sessionID string) (*dto.ConfirmationSummaryResponse, error) {
	s, err := uc.session(sessionID)
	if err != nil {
		return nil, err
	}
	if s.State != StateCollectingAllocation {
		return nil, domain.ErrInvalidSessionState
	}
	if s.Ledger.Status() != finance.LedgerValid {
		return nil, domain.ErrAllocationNotBalanced
	}
	s.State = StateConfirming

	return &dto.ConfirmationSummaryResponse{
		SessionID:            s.ID,
		OrderID:              s.Order.ID,
		BillInvoice:          s.Order.OrderDetails.BillInvoice,
		CustomerName:         s.Order.DisplayName(),
		TargetStatus:         s.Target.Value,
		Entries:              entriesToDTO(s.Ledger.Breakdown()),
		Revenue:              s.Totals.Revenue,
		Cost:                 s.Totals.Cost,
		Profit:               s.Totals.Profit,
		EmailAvailable:       s.EmailAvailable,
		SendEmailDefault:     s.EmailAvailable,
		IncludeReviewDefault: s.EmailAvailable,
	}, nil
}

// CancelConfirmation vuelve de la confirmación a la edición del libro.
// El libro queda exactamente como estaba: cancelar no pierde datos.
func (uc *CompletionOrchestrator) CancelConfirmation(sessionID string) (*dto.SessionResponse, error) {
	s, err := uc.session(sessionID)
	if err != nil {
		return nil, err
	}
	if s.State != StateConfirming {
		return nil, domain.ErrInvalidSessionState
	}
	s.State = StateCollectingAllocation
	return uc.toSessionResponse(s), nil
}

// Abandon descarta la sesión sin escribir nada. No disponible una vez
// iniciada la persistencia: una escritura en vuelo no se revierte.
func (uc *CompletionOrchestrator) Abandon(sessionID string) error {
	s, err := uc.session(sessionID)
	if err != nil {
		return err
	}
	if s.State == StatePersisting {
		return domain.ErrInvalidSessionState
	}
	uc.dropSession(sessionID)
	return nil
}

// Commit persiste el cierre: estado + distribución en una sola operación
// atómica y, para corporativas, las copias a done-orders y taxedInvoices
// dentro de la misma unidad. El correo es un efecto posterior: su falla
// se reporta como aviso, nunca revierte el cierre.
func (uc *CompletionOrchestrator) Commit(ctx context.Context, sessionID string, req dto.CommitCompletionRequest) (*dto.CommitCompletionResponse, error) {
	s, err := uc.session(sessionID)
	if err != nil {
		return nil, err
	}
	if s.State != StateConfirming {
		return nil, domain.ErrInvalidSessionState
	}
	if s.Ledger.Status() != finance.LedgerValid {
		return nil, domain.ErrAllocationNotBalanced
	}
	s.State = StatePersisting

	now := time.Now()
	snapshot := s.Ledger.Snapshot(now)

	if s.Order.OrderType == entity.OrderTypeCorporate {
		err = uc.txRunner.RunCompletion(ctx, func(txCtx context.Context, orderRepo repository.OrderRepository, doneRepo repository.DoneOrderRepository) error {
			if err := orderRepo.UpdateStatusAndAllocation(txCtx, s.Order.OrderType, s.Order.ID, s.Target.Value, snapshot); err != nil {
				return err
			}
			closed := *s.Order
			closed.InvoiceStatus = s.Target.Value
			closed.Allocation = snapshot
			if err := doneRepo.CreateDoneOrder(txCtx, &entity.DoneOrder{
				ID:       uuid.New().String(),
				Order:    closed,
				ClosedAt: now,
			}); err != nil {
				return err
			}
			return doneRepo.CreateTaxedInvoice(txCtx, &entity.TaxedInvoice{
				ID:                uuid.New().String(),
				OriginalInvoiceID: s.Order.ID,
				Order:             closed,
				ClosedAt:          now,
			})
		})
	} else {
		err = uc.orderRepo.UpdateStatusAndAllocation(ctx, s.Order.OrderType, s.Order.ID, s.Target.Value, snapshot)
	}
	if err != nil {
		// La persistencia falló completa: la sesión vuelve a confirmación y
		// el estado visible de la orden no cambia.
		s.State = StateConfirming
		return nil, fmt.Errorf("persistir cierre: %w", err)
	}

	resp := &dto.CommitCompletionResponse{
		OrderID: s.Order.ID,
		Status:  s.Target.Value,
	}
	if warning := uc.sendCompletionEmail(ctx, s, req, now); warning != "" {
		resp.Warning = warning
	}

	uc.dropSession(s.ID)
	s.State = StateDone
	return resp, nil
}

// sendCompletionEmail efecto posterior del cierre individual. Devuelve el
// aviso a mostrar si el correo no pudo enviarse.
func (uc *CompletionOrchestrator) sendCompletionEmail(ctx context.Context, s *CompletionSession, req dto.CommitCompletionRequest, now time.Time) string {
	if s.Order.OrderType != entity.OrderTypeIndividual || !s.EmailAvailable || uc.emailSender == nil {
		return ""
	}
	sendEmail := true
	if req.SendEmail != nil {
		sendEmail = *req.SendEmail
	}
	if !sendEmail {
		return ""
	}
	includeReview := true
	if req.IncludeReview != nil {
		includeReview = *req.IncludeReview
	}

	data := CompletionEmailData{
		OrderID:      s.Order.ID,
		BillInvoice:  s.Order.OrderDetails.BillInvoice,
		CustomerName: s.Order.DisplayName(),
		ClosedAt:     now.Format("2006-01-02"),
		Total:        s.Totals.Revenue,
	}
	if uc.pdfGen != nil {
		pdf, err := uc.pdfGen.Generate(ctx, SummaryData{
			BillInvoice:  data.BillInvoice,
			CustomerName: data.CustomerName,
			ClosedAt:     data.ClosedAt,
			Entries:      s.Ledger.Breakdown(),
			Totals:       s.Totals,
		})
		if err != nil {
			uc.log.Warn().Err(err).Str("order_id", s.Order.ID).Msg("no se pudo generar el PDF resumen; el correo sale sin adjunto")
		} else {
			data.SummaryPDF = pdf
		}
	}
	if err := uc.emailSender.SendCompletionEmail(ctx, data, s.Email, includeReview); err != nil {
		uc.log.Warn().Err(err).Str("order_id", s.Order.ID).Msg("el cierre quedó firme pero el correo falló")
		return "el cierre se guardó, pero no se pudo enviar el correo al cliente"
	}
	return ""
}

// CommitPending persiste una transición a estado "pending" con su fecha
// de reanudación y notas. Estado y detalles se escriben juntos.
func (uc *CompletionOrchestrator) CommitPending(ctx context.Context, sessionID string, req dto.PendingDetailsRequest) (*dto.CommitCompletionResponse, error) {
	s, err := uc.session(sessionID)
	if err != nil {
		return nil, err
	}
	if s.State != StateCollectingPending {
		return nil, domain.ErrInvalidSessionState
	}
	resume, err := time.ParseInLocation("2006-01-02", req.ExpectedResumeDate, time.Local)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	details := entity.PendingDetails{ExpectedResumeDate: resume, Notes: req.Notes}
	if err := ValidatePendingDetails(details, time.Now()); err != nil {
		return nil, err
	}
	s.State = StatePersisting
	if err := uc.orderRepo.UpdateStatusAndPending(ctx, s.Order.OrderType, s.Order.ID, s.Target.Value, &details); err != nil {
		s.State = StateCollectingPending
		return nil, fmt.Errorf("persistir pausa: %w", err)
	}
	uc.dropSession(s.ID)
	return &dto.CommitCompletionResponse{OrderID: s.Order.ID, Status: s.Target.Value}, nil
}

// ── Conversión a DTO ──────────────────────────────────────────────────────────

func ledgerStatusString(st finance.LedgerStatus) string {
	switch st {
	case finance.LedgerValid:
		return "valid"
	case finance.LedgerOver:
		return "over"
	default:
		return "under"
	}
}

func entriesToDTO(bd []finance.EntryBreakdown) []dto.AllocationEntryResponse {
	out := make([]dto.AllocationEntryResponse, 0, len(bd))
	for _, e := range bd {
		out = append(out, dto.AllocationEntryResponse{
			Month:      e.Month,
			Year:       e.Year,
			Label:      e.Label,
			Percentage: e.Percentage,
			Revenue:    e.Revenue,
			Cost:       e.Cost,
			Profit:     e.Profit,
		})
	}
	return out
}

func (uc *CompletionOrchestrator) toSessionResponse(s *CompletionSession) *dto.SessionResponse {
	resp := &dto.SessionResponse{
		SessionID:      s.ID,
		State:          string(s.State),
		OrderID:        s.Order.ID,
		BillInvoice:    s.Order.OrderDetails.BillInvoice,
		CustomerName:   s.Order.DisplayName(),
		Revenue:        s.Totals.Revenue,
		Cost:           s.Totals.Cost,
		Profit:         s.Totals.Profit,
		EmailAvailable: s.EmailAvailable,
	}
	if s.State == StateBlocked && s.Outcome.Remediation != nil {
		resp.BlockReason = string(s.Outcome.Reason)
		resp.Remediation = &dto.RemediationResponse{
			PendingAmount: s.Outcome.Remediation.PendingAmount,
			RefundAmount:  s.Outcome.Remediation.RefundAmount,
		}
	}
	if s.Ledger != nil {
		resp.Entries = entriesToDTO(s.Ledger.Breakdown())
		t := s.Ledger.Totals()
		resp.Totals = &dto.LedgerTotalsResponse{
			TotalPercentage: t.TotalPercentage,
			TotalRevenue:    t.TotalRevenue,
			TotalCost:       t.TotalCost,
			TotalProfit:     t.TotalProfit,
			Status:          ledgerStatusString(s.Ledger.Status()),
		}
	}
	return resp
}
