package finance_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/tapiceria-pro/internal/application/finance"
	"github.com/tu-usuario/tapiceria-pro/internal/domain/entity"
)

func totales(revenue, cost string) finance.Totals {
	return finance.Totals{Revenue: d(revenue), Cost: d(cost), Profit: d(revenue).Sub(d(cost))}
}

func libroDeTresMeses(t *testing.T) *finance.AllocationLedger {
	t.Helper()
	slots := finance.PartitionByMonth(fecha(2024, time.January, 15), fecha(2024, time.March, 10))
	return finance.NewLedger(slots, totales("1000", "400"))
}

// Edición con recorte: [70, 20] y pedir 50 en la tercera → queda 10 (100−90).
func TestSetPercentage_RecortaAlEspacioDisponible(t *testing.T) {
	l := libroDeTresMeses(t)
	require.NoError(t, l.SetPercentage(0, d("70")))
	require.NoError(t, l.SetPercentage(1, d("20")))
	require.NoError(t, l.SetPercentage(2, d("50")))

	entries := l.Entries()
	assert.True(t, entries[2].Percentage.Equal(d("10")), "50 debe recortarse a 10, fue %s", entries[2].Percentage)
	assert.Equal(t, finance.LedgerValid, l.Status())
}

// Valores crudos fuera de [0,100] se recortan antes de aplicar el tope.
func TestSetPercentage_RecortaRangoCrudo(t *testing.T) {
	l := libroDeTresMeses(t)
	require.NoError(t, l.SetPercentage(0, d("-15")))
	assert.True(t, l.Entries()[0].Percentage.IsZero())

	require.NoError(t, l.SetPercentage(0, d("250")))
	assert.True(t, l.Entries()[0].Percentage.Equal(d("100")))
}

// Propiedad: tras cualquier secuencia de ediciones la suma nunca pasa de 100.
func TestSetPercentage_SumaNuncaSupera100(t *testing.T) {
	l := libroDeTresMeses(t)
	secuencia := []struct {
		idx int
		val string
	}{
		{0, "80"}, {1, "80"}, {2, "80"}, {0, "5"}, {1, "100"}, {2, "33.34"}, {0, "0.009"},
	}
	for _, paso := range secuencia {
		require.NoError(t, l.SetPercentage(paso.idx, d(paso.val)))
		assert.True(t, l.Totals().TotalPercentage.LessThanOrEqual(d("100.01")),
			"la suma no debe superar 100+ε tras fijar %s en %d", paso.val, paso.idx)
	}
}

func TestSetPercentage_IndiceInvalido(t *testing.T) {
	l := libroDeTresMeses(t)
	assert.Error(t, l.SetPercentage(-1, d("10")))
	assert.Error(t, l.SetPercentage(3, d("10")))
}

// Status: under mientras falte porcentaje, valid dentro de la tolerancia.
func TestStatus_Transiciones(t *testing.T) {
	l := libroDeTresMeses(t)
	require.NoError(t, l.SetPercentage(0, d("40")))
	assert.Equal(t, finance.LedgerUnder, l.Status())

	require.NoError(t, l.SetPercentage(1, d("59.995")))
	assert.Equal(t, finance.LedgerValid, l.Status(), "99.995 está dentro de ±0.01")
}

// Montos derivados: revenue/cost × pct/100, redondeados a 2 decimales.
func TestBreakdown_MontosDerivados(t *testing.T) {
	l := libroDeTresMeses(t)
	require.NoError(t, l.SetPercentage(0, d("50")))
	require.NoError(t, l.SetPercentage(1, d("30")))
	require.NoError(t, l.SetPercentage(2, d("20")))

	bd := l.Breakdown()
	require.Len(t, bd, 3)
	assert.True(t, bd[0].Revenue.Equal(d("500")))
	assert.True(t, bd[0].Cost.Equal(d("200")))
	assert.True(t, bd[0].Profit.Equal(d("300")))
	assert.True(t, bd[1].Revenue.Equal(d("300")))
	assert.True(t, bd[2].Revenue.Equal(d("200")))

	tot := l.Totals()
	assert.True(t, tot.TotalPercentage.Equal(d("100")))
	assert.True(t, tot.TotalRevenue.Equal(d("1000")))
	assert.True(t, tot.TotalProfit.Equal(d("600")))
}

// Round-trip: persistir el snapshot y volver a sembrar reproduce los mismos
// triples (mes, año, porcentaje).
func TestSnapshot_RoundTripDeSiembra(t *testing.T) {
	l := libroDeTresMeses(t)
	require.NoError(t, l.SetPercentage(0, d("60")))
	require.NoError(t, l.SetPercentage(1, d("25")))
	require.NoError(t, l.SetPercentage(2, d("15")))

	now := time.Now()
	snap := l.Snapshot(now)
	require.Len(t, snap.Allocations, 3)
	assert.True(t, snap.Profit.Equal(d("600")))
	assert.Equal(t, now, snap.CalculatedAt)

	o := &entity.Order{OrderType: entity.OrderTypeIndividual, Allocation: snap}
	resembrado := finance.SeedLedger(o, totales("1000", "400"), now)
	require.Equal(t, l.Len(), resembrado.Len())
	for i, e := range resembrado.Entries() {
		orig := l.Entries()[i]
		assert.Equal(t, orig.Month, e.Month)
		assert.Equal(t, orig.Year, e.Year)
		assert.True(t, orig.Percentage.Equal(e.Percentage))
		assert.Equal(t, finance.MonthLabel(e.Month, e.Year), e.Label, "la etiqueta se reconstruye al sembrar")
	}
}

// Siembra: la distribución persistida se normaliza (meses inválidos se descartan).
func TestSeedLedger_NormalizaPersistida(t *testing.T) {
	o := &entity.Order{
		OrderType: entity.OrderTypeIndividual,
		Allocation: &entity.AllocationSnapshot{
			Allocations: []entity.AllocationEntry{
				{Month: 13, Year: 2024, Percentage: d("40")},
				{Month: 2, Year: 2024, Percentage: d("100")},
			},
		},
	}
	l := finance.SeedLedger(o, totales("500", "100"), time.Now())
	require.Equal(t, 1, l.Len())
	assert.Equal(t, 2, l.Entries()[0].Month)
	assert.Equal(t, "Febrero 2024", l.Entries()[0].Label)
}

// Siembra: sin distribución persistida se parte el periodo de servicio.
func TestSeedLedger_DesdePeriodoDeServicio(t *testing.T) {
	start := fecha(2024, time.January, 15)
	end := fecha(2024, time.March, 10)
	o := &entity.Order{
		OrderType:    entity.OrderTypeIndividual,
		OrderDetails: entity.OrderDetails{StartDate: &start, EndDate: &end},
	}
	l := finance.SeedLedger(o, totales("500", "100"), time.Now())
	require.Equal(t, 3, l.Len())
	assert.True(t, l.Entries()[0].Percentage.Equal(d("100")))
}

// Siembra: sin fechas ni distribución → ventana por defecto de 5 meses.
func TestSeedLedger_VentanaPorDefecto(t *testing.T) {
	o := &entity.Order{OrderType: entity.OrderTypeIndividual}
	now := fecha(2024, time.June, 1)
	l := finance.SeedLedger(o, totales("500", "100"), now)
	require.Equal(t, 5, l.Len())
	assert.True(t, l.Entries()[2].Percentage.Equal(d("100")))
}

// Fechas invertidas no deben usarse para particionar: se cae a la ventana.
func TestSeedLedger_FechasInvertidas(t *testing.T) {
	start := fecha(2024, time.May, 10)
	end := fecha(2024, time.February, 1)
	o := &entity.Order{
		OrderType:    entity.OrderTypeIndividual,
		OrderDetails: entity.OrderDetails{StartDate: &start, EndDate: &end},
	}
	l := finance.SeedLedger(o, totales("500", "100"), fecha(2024, time.June, 1))
	assert.Equal(t, 5, l.Len())
}

// Un snapshot vacío no cuenta como distribución persistida.
func TestSeedLedger_SnapshotVacio(t *testing.T) {
	o := &entity.Order{
		OrderType:  entity.OrderTypeIndividual,
		Allocation: &entity.AllocationSnapshot{Allocations: []entity.AllocationEntry{}},
	}
	l := finance.SeedLedger(o, totales("500", "100"), fecha(2024, time.June, 1))
	assert.Equal(t, 5, l.Len())
}
