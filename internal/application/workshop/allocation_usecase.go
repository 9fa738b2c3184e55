package workshop

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/tapiceria-pro/internal/application/dto"
	"github.com/tu-usuario/tapiceria-pro/internal/application/finance"
	"github.com/tu-usuario/tapiceria-pro/internal/domain"
	"github.com/tu-usuario/tapiceria-pro/internal/domain/repository"
)

// AllocationUseCase edición de la distribución mensual sin cambio de
// estado. Reutiliza el mismo AllocationLedger del flujo de cierre: una
// sola pieza de recorte y totales para ambos puntos de entrada.
type AllocationUseCase struct {
	orderRepo    repository.OrderRepository
	materialRepo repository.MaterialCompanyRepository
	params       finance.Params
}

// NewAllocationUseCase construye el caso de uso.
func NewAllocationUseCase(
	orderRepo repository.OrderRepository,
	materialRepo repository.MaterialCompanyRepository,
	params finance.Params,
) *AllocationUseCase {
	return &AllocationUseCase{orderRepo: orderRepo, materialRepo: materialRepo, params: params}
}

// GetAllocation vista de la distribución de una orden: la persistida
// normalizada, o la siembra por defecto si aún no existe.
func (uc *AllocationUseCase) GetAllocation(ctx context.Context, orderType, id string) (*dto.AllocationViewResponse, error) {
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
	ledger := finance.SeedLedger(order, totals, time.Now())
	return uc.toView(order.ID, ledger, totals), nil
}

// UpdateAllocation reemplaza la distribución completa de la orden. El
// libro debe sumar 100% — la edición parcial vive en el cliente; aquí
// solo llega el libro entero listo para persistir.
func (uc *AllocationUseCase) UpdateAllocation(ctx context.Context, orderType, id string, entries []dto.AllocationEntryUpdate) (*dto.AllocationViewResponse, error) {
	ot, err := parseOrderType(orderType)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, domain.ErrInvalidInput
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

	slots := make([]finance.MonthSlot, 0, len(entries))
	for _, e := range entries {
		if e.Month < 1 || e.Month > 12 {
			return nil, domain.ErrInvalidInput
		}
		slots = append(slots, finance.MonthSlot{
			Month:      e.Month,
			Year:       e.Year,
			Label:      finance.MonthLabel(e.Month, e.Year),
			Percentage: e.Percentage,
		})
	}
	ledger := finance.NewLedger(slots, totals)
	if ledger.Status() != finance.LedgerValid {
		return nil, domain.ErrAllocationNotBalanced
	}
	snapshot := ledger.Snapshot(time.Now())
	if err := uc.orderRepo.UpdateAllocation(ctx, ot, id, snapshot); err != nil {
		return nil, fmt.Errorf("persistir distribución: %w", err)
	}
	return uc.toView(order.ID, ledger, totals), nil
}

func (uc *AllocationUseCase) toView(orderID string, ledger *finance.AllocationLedger, totals finance.Totals) *dto.AllocationViewResponse {
	t := ledger.Totals()
	return &dto.AllocationViewResponse{
		OrderID: orderID,
		Entries: entriesToDTO(ledger.Breakdown()),
		Totals: dto.LedgerTotalsResponse{
			TotalPercentage: t.TotalPercentage,
			TotalRevenue:    t.TotalRevenue,
			TotalCost:       t.TotalCost,
			TotalProfit:     t.TotalProfit,
			Status:          ledgerStatusString(ledger.Status()),
		},
		Revenue: totals.Revenue,
		Cost:    totals.Cost,
		Profit:  totals.Profit,
	}
}
