package workshop

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/tapiceria-pro/internal/application/dto"
	"github.com/tu-usuario/tapiceria-pro/internal/application/finance"
	"github.com/tu-usuario/tapiceria-pro/internal/domain"
	"github.com/tu-usuario/tapiceria-pro/internal/domain/entity"
	"github.com/tu-usuario/tapiceria-pro/internal/domain/repository"
)

// DashboardUseCase lecturas del tablero del taller: órdenes en curso
// (individuales y corporativas juntas) y detalle con totales calculados.
type DashboardUseCase struct {
	orderRepo    repository.OrderRepository
	statusRepo   repository.InvoiceStatusRepository
	materialRepo repository.MaterialCompanyRepository
	params       finance.Params
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	orderRepo repository.OrderRepository,
	statusRepo repository.InvoiceStatusRepository,
	materialRepo repository.MaterialCompanyRepository,
	params finance.Params,
) *DashboardUseCase {
	return &DashboardUseCase{
		orderRepo:    orderRepo,
		statusRepo:   statusRepo,
		materialRepo: materialRepo,
		params:       params,
	}
}

// closedStates estados terminales done/cancelled: sus órdenes salen de la
// lista activa (el documento sigue en su colección, para auditoría).
func (uc *DashboardUseCase) closedStates(ctx context.Context) (map[string]bool, error) {
	statuses, err := uc.statusRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("catálogo de estados: %w", err)
	}
	closed := make(map[string]bool)
	for _, st := range statuses {
		if st.IsEndState && (st.EndStateType == entity.EndStateDone || st.EndStateType == entity.EndStateCancelled) {
			closed[st.Value] = true
		}
	}
	return closed, nil
}

// ListActiveOrders lista las órdenes en curso de ambas colecciones, con el
// ingreso calculado por orden. Las cerradas (done/cancelled) no aparecen.
func (uc *DashboardUseCase) ListActiveOrders(ctx context.Context) ([]*dto.OrderSummaryResponse, error) {
	closed, err := uc.closedStates(ctx)
	if err != nil {
		return nil, err
	}
	taxRates, err := uc.materialRepo.GetTaxRates(ctx)
	if err != nil {
		return nil, fmt.Errorf("tasas de material: %w", err)
	}

	out := make([]*dto.OrderSummaryResponse, 0)
	for _, ot := range []entity.OrderType{entity.OrderTypeIndividual, entity.OrderTypeCorporate} {
		orders, err := uc.orderRepo.List(ctx, ot)
		if err != nil {
			return nil, err
		}
		for _, o := range orders {
			if closed[o.InvoiceStatus] {
				continue
			}
			out = append(out, uc.toSummary(o, taxRates))
		}
	}
	return out, nil
}

// GetOrder detalle de una orden con ingreso, costo y utilidad calculados.
func (uc *DashboardUseCase) GetOrder(ctx context.Context, orderType, id string) (*dto.OrderDetailResponse, error) {
	ot, err := parseOrderType(orderType)
	if err != nil {
		return nil, err
	}
	order, err := uc.orderRepo.GetByID(ctx, ot, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	taxRates, err := uc.materialRepo.GetTaxRates(ctx)
	if err != nil {
		return nil, fmt.Errorf("tasas de material: %w", err)
	}
	totals := finance.ComputeTotals(order, taxRates, uc.params)
	return &dto.OrderDetailResponse{
		OrderSummaryResponse: *uc.toSummary(order, taxRates),
		Cost:                 totals.Cost,
		Profit:               totals.Profit,
		HasAllocation:        order.Allocation != nil && len(order.Allocation.Allocations) > 0,
	}, nil
}

func (uc *DashboardUseCase) toSummary(o *entity.Order, taxRates map[string]decimal.Decimal) *dto.OrderSummaryResponse {
	payment := o.Payment()
	totals := finance.ComputeTotals(o, taxRates, uc.params)
	return &dto.OrderSummaryResponse{
		ID:            o.ID,
		OrderType:     string(o.OrderType),
		BillInvoice:   o.OrderDetails.BillInvoice,
		CustomerName:  o.DisplayName(),
		InvoiceStatus: o.InvoiceStatus,
		StartDate:     o.OrderDetails.StartDate,
		EndDate:       o.OrderDetails.EndDate,
		Deposit:       payment.Deposit,
		AmountPaid:    payment.AmountPaid,
		Revenue:       totals.Revenue,
	}
}
