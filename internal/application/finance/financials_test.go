package finance_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/tapiceria-pro/internal/application/finance"
	"github.com/tu-usuario/tapiceria-pro/internal/domain/entity"
)

func d(v string) decimal.Decimal {
	out, err := decimal.NewFromString(v)
	if err != nil {
		panic(err)
	}
	return out
}

func paramsTaller() finance.Params {
	return finance.Params{
		TasaIVA:           d("0.19"),
		RecargoTarjetaPct: d("0.03"),
	}
}

func ordenIndividual() *entity.Order {
	return &entity.Order{
		ID:        "ord-1",
		OrderType: entity.OrderTypeIndividual,
		FurnitureGroups: []entity.FurnitureGroup{
			{
				ItemName:             "Sofá 3 puestos",
				MaterialCompany:      "Textiles Andinos",
				Quantity:             1,
				MaterialPrice:        d("200"),
				LabourPrice:          d("150"),
				FoamPrice:            d("100"),
				PaintingPrice:        d("50"),
				MaterialInternalCost: d("120"),
				FoamInternalCost:     d("60"),
			},
		},
		PaymentData: &entity.PaymentInfo{
			Deposit:                   d("100"),
			AmountPaid:                d("100"),
			PickupDeliveryEnabled:     true,
			PickupDeliveryCost:        d("25"),
			PickupDeliveryServiceType: entity.ServiceBoth,
		},
	}
}

// Individual: IVA solo sobre material+espuma; recogida y entrega = 2 unidades.
func TestComputeTotals_Individual(t *testing.T) {
	tasas := map[string]decimal.Decimal{"Textiles Andinos": d("0.10")}
	tot := finance.ComputeTotals(ordenIndividual(), tasas, paramsTaller())

	// subtotal 500 + IVA 19% de (200+100)=57 + entrega 2×25=50 → 607
	assert.True(t, tot.Revenue.Equal(d("607")), "revenue = %s", tot.Revenue)
	// costo: material 120×1.10 + espuma 60 = 192
	assert.True(t, tot.Cost.Equal(d("192")), "cost = %s", tot.Cost)
	assert.True(t, tot.Profit.Equal(d("415")), "profit = %s", tot.Profit)
}

// La tasa de la empresa de material puede venir como porcentaje (10) o
// fracción (0.10); ambas deben dar el mismo costo.
func TestComputeTotals_TasaComoPorcentaje(t *testing.T) {
	a := finance.ComputeTotals(ordenIndividual(), map[string]decimal.Decimal{"Textiles Andinos": d("10")}, paramsTaller())
	b := finance.ComputeTotals(ordenIndividual(), map[string]decimal.Decimal{"Textiles Andinos": d("0.10")}, paramsTaller())
	assert.True(t, a.Cost.Equal(b.Cost))
}

// Servicio solo de recogida: 1 unidad.
func TestComputeTotals_RecogidaSola(t *testing.T) {
	o := ordenIndividual()
	o.PaymentData.PickupDeliveryServiceType = entity.ServicePickup
	tot := finance.ComputeTotals(o, nil, paramsTaller())
	assert.True(t, tot.Revenue.Equal(d("582")), "500 + 57 + 25 = 582, fue %s", tot.Revenue)
}

func ordenCorporativa(conTarjeta bool) *entity.Order {
	return &entity.Order{
		ID:          "corp-1",
		OrderType:   entity.OrderTypeCorporate,
		CompanyName: "Hoteles del Sur",
		FurnitureGroups: []entity.FurnitureGroup{
			{
				ItemName:             "Sillas comedor",
				MaterialCompany:      "Textiles Andinos",
				Quantity:             10,
				MaterialPrice:        d("30"),
				LabourPrice:          d("20"),
				FoamPrice:            d("10"),
				PaintingPrice:        d("0"),
				MaterialInternalCost: d("18"),
				FoamInternalCost:     d("5"),
			},
		},
		PaymentDetails: &entity.PaymentInfo{
			Deposit:                   d("200"),
			PickupDeliveryEnabled:     true,
			PickupDeliveryCost:        d("40"),
			PickupDeliveryServiceType: entity.ServiceDelivery,
			CreditCardFeeEnabled:      conTarjeta,
		},
	}
}

// Corporativa: IVA plano sobre todo el subtotal (entrega incluida, una sola vez).
func TestComputeTotals_Corporativa(t *testing.T) {
	tasas := map[string]decimal.Decimal{"Textiles Andinos": d("0.10")}
	tot := finance.ComputeTotals(ordenCorporativa(false), tasas, paramsTaller())

	// subtotal = 10×(30+20+10) + 40 = 640; IVA 19% = 121.60 → revenue 761.60
	assert.True(t, tot.Revenue.Equal(d("761.60")), "revenue = %s", tot.Revenue)
	// costo = 10×(18×1.10 + 5) = 248
	assert.True(t, tot.Cost.Equal(d("248")), "cost = %s", tot.Cost)
}

// Recargo de tarjeta: 3% sobre subtotal+IVA, solo si está habilitado.
func TestComputeTotals_CorporativaConTarjeta(t *testing.T) {
	tot := finance.ComputeTotals(ordenCorporativa(true), nil, paramsTaller())
	// 761.60 × 1.03 = 784.448 → 784.45
	assert.True(t, tot.Revenue.Equal(d("784.45")), "revenue = %s", tot.Revenue)
}

// Idempotencia: dos llamadas con la misma entrada producen lo mismo.
func TestComputeTotals_Idempotente(t *testing.T) {
	tasas := map[string]decimal.Decimal{"Textiles Andinos": d("0.10")}
	o := ordenIndividual()

	a := finance.ComputeTotals(o, tasas, paramsTaller())
	b := finance.ComputeTotals(o, tasas, paramsTaller())

	require.True(t, a.Revenue.Equal(b.Revenue))
	require.True(t, a.Cost.Equal(b.Cost))
	require.True(t, a.Profit.Equal(b.Profit))
}

// Orden sin registro de pagos: el acceso normalizado devuelve ceros y el
// cálculo no agrega recogida/entrega.
func TestComputeTotals_SinRegistroDePagos(t *testing.T) {
	o := ordenIndividual()
	o.PaymentData = nil
	tot := finance.ComputeTotals(o, nil, paramsTaller())
	assert.True(t, tot.Revenue.Equal(d("557")), "500 + 57 sin entrega, fue %s", tot.Revenue)
}

// Profit siempre es revenue − cost, redondeado a 2 decimales.
func TestComputeTotals_RedondeoALaSalida(t *testing.T) {
	o := ordenIndividual()
	o.FurnitureGroups[0].MaterialPrice = d("33.333")
	tot := finance.ComputeTotals(o, nil, paramsTaller())
	assert.True(t, tot.Profit.Equal(tot.Revenue.Sub(tot.Cost).Round(2)))
	assert.Equal(t, int32(-2), max32(tot.Revenue.Exponent(), -2), "redondeo a 2 decimales")
}

func max32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}
