package finance

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/tapiceria-pro/internal/domain/entity"
)

// Params parámetros de negocio del taller (vienen de configuración).
type Params struct {
	// TasaIVA tasa de impuesto al cliente (fracción, ej. 0.19).
	TasaIVA decimal.Decimal
	// RecargoTarjetaPct recargo por tarjeta de crédito en corporativas (fracción).
	RecargoTarjetaPct decimal.Decimal
}

// Totals ingreso, costo y utilidad de una orden, redondeados a 2 decimales.
type Totals struct {
	Revenue decimal.Decimal
	Cost    decimal.Decimal
	Profit  decimal.Decimal
}

var cien = decimal.NewFromInt(100)

// normalizeRate acepta tasas como fracción (0.19) o porcentaje (19) y
// devuelve siempre la fracción.
func normalizeRate(rate decimal.Decimal) decimal.Decimal {
	if rate.GreaterThan(decimal.NewFromInt(1)) {
		return rate.Div(cien)
	}
	return rate
}

// pickupUnits unidades de recogida/entrega a cobrar: 1 para pickup o
// delivery solos, 2 para "both", 0 si el servicio está deshabilitado.
func pickupUnits(p entity.PaymentRecord) decimal.Decimal {
	if !p.PickupDeliveryEnabled {
		return decimal.Zero
	}
	switch p.ServiceType {
	case entity.ServiceBoth:
		return decimal.NewFromInt(2)
	case entity.ServicePickup, entity.ServiceDelivery:
		return decimal.NewFromInt(1)
	}
	return decimal.Zero
}

// ComputeTotals calcula ingreso, costo y utilidad de una orden. Función
// pura e idempotente: misma orden y misma tabla de tasas producen el
// mismo resultado. La acumulación se hace a precisión completa y el
// redondeo a 2 decimales ocurre solo en la salida.
//
// Individual: subtotal por categorías + IVA solo sobre material y espuma
// + recogida/entrega. Corporativa: subtotal completo (recogida/entrega
// incluida antes del impuesto, no se suma dos veces) + IVA plano sobre
// todo el subtotal + recargo opcional de tarjeta sobre subtotal+IVA.
//
// El costo interno usa la tabla de tasas por empresa de material para el
// impuesto del lado de compra y excluye los márgenes al cliente.
func ComputeTotals(o *entity.Order, taxRates map[string]decimal.Decimal, params Params) Totals {
	payment := o.Payment()
	iva := normalizeRate(params.TasaIVA)

	var materialTotal, labourTotal, foamTotal, paintingTotal decimal.Decimal
	var cost decimal.Decimal
	for _, g := range o.FurnitureGroups {
		units := g.Units()
		materialTotal = materialTotal.Add(g.MaterialPrice.Mul(units))
		labourTotal = labourTotal.Add(g.LabourPrice.Mul(units))
		foamTotal = foamTotal.Add(g.FoamPrice.Mul(units))
		paintingTotal = paintingTotal.Add(g.PaintingPrice.Mul(units))

		companyRate := normalizeRate(taxRates[g.MaterialCompany])
		lineCost := g.MaterialInternalCost.Mul(decimal.NewFromInt(1).Add(companyRate)).
			Add(g.FoamInternalCost).
			Mul(units)
		cost = cost.Add(lineCost)
	}

	pickup := pickupUnits(payment).Mul(payment.PickupDeliveryCost)

	var revenue decimal.Decimal
	switch o.OrderType {
	case entity.OrderTypeCorporate:
		subtotal := materialTotal.Add(labourTotal).Add(foamTotal).Add(paintingTotal).Add(pickup)
		tax := subtotal.Mul(iva)
		revenue = subtotal.Add(tax)
		if payment.CreditCardFeeEnabled {
			revenue = revenue.Add(subtotal.Add(tax).Mul(normalizeRate(params.RecargoTarjetaPct)))
		}
	default:
		subtotal := materialTotal.Add(labourTotal).Add(foamTotal).Add(paintingTotal)
		tax := materialTotal.Add(foamTotal).Mul(iva)
		revenue = subtotal.Add(tax).Add(pickup)
	}

	revenue = revenue.Round(2)
	cost = cost.Round(2)
	return Totals{
		Revenue: revenue,
		Cost:    cost,
		Profit:  revenue.Sub(cost).Round(2),
	}
}
