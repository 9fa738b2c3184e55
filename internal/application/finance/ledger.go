package finance

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/tapiceria-pro/internal/domain/entity"
)

var errIndexOutOfRange = errors.New("índice de entrada fuera de rango")

// epsilon tolerancia flotante para la suma de porcentajes.
var epsilon = decimal.NewFromFloat(0.01)

// LedgerStatus estado de balance del libro de distribución.
type LedgerStatus int

const (
	LedgerUnder LedgerStatus = iota // suma < 100
	LedgerValid                     // |suma − 100| ≤ 0.01; único estado que permite commit
	LedgerOver                      // suma > 100 (no alcanzable vía SetPercentage)
)

// LedgerTotals agregados del libro: suma de porcentajes y montos derivados.
type LedgerTotals struct {
	TotalPercentage decimal.Decimal
	TotalRevenue    decimal.Decimal
	TotalCost       decimal.Decimal
	TotalProfit     decimal.Decimal
}

// EntryBreakdown una entrada del libro con sus montos derivados en lectura.
type EntryBreakdown struct {
	MonthSlot
	Revenue decimal.Decimal
	Cost    decimal.Decimal
	Profit  decimal.Decimal
}

// AllocationLedger libro de distribución mensual de una orden durante una
// sesión de edición. Es propiedad exclusiva de la sesión: los cambios de
// porcentaje viven en memoria hasta que el commit escribe el libro completo.
// Un mismo tipo sirve al flujo de cierre y a la edición independiente.
type AllocationLedger struct {
	entries []MonthSlot
	revenue decimal.Decimal
	cost    decimal.Decimal
}

// NewLedger construye un libro a partir de entradas ya armadas.
func NewLedger(slots []MonthSlot, totals Totals) *AllocationLedger {
	entries := make([]MonthSlot, len(slots))
	copy(entries, slots)
	return &AllocationLedger{
		entries: entries,
		revenue: totals.Revenue,
		cost:    totals.Cost,
	}
}

// SeedLedger siembra el libro inicial de una orden. Precedencia:
//  1. distribución persistida en order.allocation (normalizada: se
//     descartan meses fuera de 1–12 y se reconstruyen las etiquetas),
//  2. partición del periodo de servicio (100% al primer mes),
//  3. ventana por defecto de ±2 meses alrededor de hoy (100% al mes actual).
func SeedLedger(o *entity.Order, totals Totals, now time.Time) *AllocationLedger {
	if o.Allocation != nil && len(o.Allocation.Allocations) > 0 {
		slots := normalizeEntries(o.Allocation.Allocations)
		if len(slots) > 0 {
			return NewLedger(slots, totals)
		}
	}
	if o.OrderDetails.StartDate != nil && o.OrderDetails.EndDate != nil &&
		!o.OrderDetails.StartDate.After(*o.OrderDetails.EndDate) {
		return NewLedger(PartitionByMonth(*o.OrderDetails.StartDate, *o.OrderDetails.EndDate), totals)
	}
	return NewLedger(DefaultWindow(now), totals)
}

func normalizeEntries(entries []entity.AllocationEntry) []MonthSlot {
	slots := make([]MonthSlot, 0, len(entries))
	for _, e := range entries {
		if e.Month < 1 || e.Month > 12 {
			continue
		}
		slots = append(slots, MonthSlot{
			Month:      e.Month,
			Year:       e.Year,
			Label:      MonthLabel(e.Month, e.Year),
			Percentage: e.Percentage,
		})
	}
	return slots
}

// Len número de entradas del libro.
func (l *AllocationLedger) Len() int { return len(l.entries) }

// Entries copia de las entradas (el libro no expone su slice interno).
func (l *AllocationLedger) Entries() []MonthSlot {
	out := make([]MonthSlot, len(l.entries))
	copy(out, l.entries)
	return out
}

// SetPercentage fija el porcentaje de la entrada i. El valor crudo se
// recorta a [0, 100] y luego se limita a 100 − Σ(otras entradas), con piso
// en 0: política de recorte, no de rechazo — un desborde de un solo campo
// se ajusta visiblemente en lugar de producir error. La suma total nunca
// supera 100.
func (l *AllocationLedger) SetPercentage(i int, raw decimal.Decimal) error {
	if i < 0 || i >= len(l.entries) {
		return errIndexOutOfRange
	}
	value := raw
	if value.LessThan(decimal.Zero) {
		value = decimal.Zero
	}
	if value.GreaterThan(cien) {
		value = cien
	}
	others := decimal.Zero
	for j, e := range l.entries {
		if j == i {
			continue
		}
		others = others.Add(e.Percentage)
	}
	room := cien.Sub(others)
	if room.LessThan(decimal.Zero) {
		room = decimal.Zero
	}
	if value.GreaterThan(room) {
		value = room
	}
	l.entries[i].Percentage = value
	return nil
}

// Totals suma de porcentajes y montos derivados del libro completo.
func (l *AllocationLedger) Totals() LedgerTotals {
	t := LedgerTotals{}
	for _, e := range l.entries {
		t.TotalPercentage = t.TotalPercentage.Add(e.Percentage)
	}
	t.TotalRevenue = l.revenue.Mul(t.TotalPercentage).Div(cien).Round(2)
	t.TotalCost = l.cost.Mul(t.TotalPercentage).Div(cien).Round(2)
	t.TotalProfit = t.TotalRevenue.Sub(t.TotalCost)
	return t
}

// Breakdown entradas con sus montos derivados (revenue/cost × pct/100).
// Los montos por mes nunca se persisten: siempre se derivan en lectura.
func (l *AllocationLedger) Breakdown() []EntryBreakdown {
	out := make([]EntryBreakdown, 0, len(l.entries))
	for _, e := range l.entries {
		rev := l.revenue.Mul(e.Percentage).Div(cien).Round(2)
		cost := l.cost.Mul(e.Percentage).Div(cien).Round(2)
		out = append(out, EntryBreakdown{
			MonthSlot: e,
			Revenue:   rev,
			Cost:      cost,
			Profit:    rev.Sub(cost),
		})
	}
	return out
}

// Status estado de balance: solo LedgerValid permite el commit.
func (l *AllocationLedger) Status() LedgerStatus {
	total := decimal.Zero
	for _, e := range l.entries {
		total = total.Add(e.Percentage)
	}
	diff := total.Sub(cien).Abs()
	switch {
	case diff.LessThanOrEqual(epsilon):
		return LedgerValid
	case total.GreaterThan(cien):
		return LedgerOver
	default:
		return LedgerUnder
	}
}

// Snapshot congela el libro para persistirlo en order.allocation.
func (l *AllocationLedger) Snapshot(calculatedAt time.Time) *entity.AllocationSnapshot {
	entries := make([]entity.AllocationEntry, 0, len(l.entries))
	for _, e := range l.entries {
		entries = append(entries, entity.AllocationEntry{
			Month:      e.Month,
			Year:       e.Year,
			Percentage: e.Percentage,
		})
	}
	return &entity.AllocationSnapshot{
		Allocations:  entries,
		Revenue:      l.revenue,
		Cost:         l.cost,
		Profit:       l.revenue.Sub(l.cost).Round(2),
		CalculatedAt: calculatedAt,
	}
}
