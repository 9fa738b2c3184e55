package finance_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/tapiceria-pro/internal/application/finance"
)

func fecha(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// Periodo 2024-01-15 a 2024-03-10 → exactamente tres meses en orden.
func TestPartitionByMonth_TresMesesEnOrden(t *testing.T) {
	slots := finance.PartitionByMonth(fecha(2024, time.January, 15), fecha(2024, time.March, 10))
	require.Len(t, slots, 3)

	assert.Equal(t, 1, slots[0].Month)
	assert.Equal(t, 2024, slots[0].Year)
	assert.Equal(t, 2, slots[1].Month)
	assert.Equal(t, 3, slots[2].Month)
	assert.Equal(t, "Enero 2024", slots[0].Label)
	assert.Equal(t, "Marzo 2024", slots[2].Label)

	// Siembra por defecto: 100% al primer mes, 0% al resto.
	assert.True(t, slots[0].Percentage.Equal(decimal.NewFromInt(100)))
	assert.True(t, slots[1].Percentage.IsZero())
	assert.True(t, slots[2].Percentage.IsZero())
}

// Mismo (año, mes) → una sola entrada al 100%.
func TestPartitionByMonth_MismoMes(t *testing.T) {
	slots := finance.PartitionByMonth(fecha(2024, time.May, 1), fecha(2024, time.May, 31))
	require.Len(t, slots, 1)
	assert.Equal(t, 5, slots[0].Month)
	assert.True(t, slots[0].Percentage.Equal(decimal.NewFromInt(100)))
}

// Cruce de año: noviembre 2023 a febrero 2024 → 4 meses sin huecos.
func TestPartitionByMonth_CruceDeAnio(t *testing.T) {
	slots := finance.PartitionByMonth(fecha(2023, time.November, 20), fecha(2024, time.February, 5))
	require.Len(t, slots, 4)
	assert.Equal(t, []int{11, 12, 1, 2}, []int{slots[0].Month, slots[1].Month, slots[2].Month, slots[3].Month})
	assert.Equal(t, 2023, slots[0].Year)
	assert.Equal(t, 2023, slots[1].Year)
	assert.Equal(t, 2024, slots[2].Year)
	assert.Equal(t, 2024, slots[3].Year)
}

// Propiedad: para cualquier par válido, las entradas son estrictamente
// crecientes en (año, mes), sin huecos ni duplicados.
func TestPartitionByMonth_OrdenEstrictoSinHuecos(t *testing.T) {
	casos := []struct {
		nombre     string
		start, end time.Time
	}{
		{"dos años completos", fecha(2022, time.March, 31), fecha(2024, time.March, 1)},
		{"fin de mes a inicio", fecha(2024, time.January, 31), fecha(2024, time.February, 1)},
		{"un solo día", fecha(2024, time.July, 4), fecha(2024, time.July, 4)},
	}
	for _, tc := range casos {
		t.Run(tc.nombre, func(t *testing.T) {
			slots := finance.PartitionByMonth(tc.start, tc.end)
			require.NotEmpty(t, slots)
			for i := 1; i < len(slots); i++ {
				prev := slots[i-1].Year*12 + slots[i-1].Month
				cur := slots[i].Year*12 + slots[i].Month
				assert.Equal(t, prev+1, cur, "los meses deben ser consecutivos")
			}
		})
	}
}

// La hora del día no debe mover el mes: un instante a las 23:59 del último
// día del mes sigue perteneciendo a ese mes.
func TestPartitionByMonth_IgnoraHoraDelDia(t *testing.T) {
	start := time.Date(2024, time.January, 31, 23, 59, 59, 0, time.Local)
	end := time.Date(2024, time.February, 1, 0, 0, 1, 0, time.Local)
	slots := finance.PartitionByMonth(start, end)
	require.Len(t, slots, 2)
	assert.Equal(t, 1, slots[0].Month)
	assert.Equal(t, 2, slots[1].Month)
}

// Ventana por defecto: 5 meses centrados en hoy, 100% al mes actual.
func TestDefaultWindow_CincoMesesCentrados(t *testing.T) {
	now := fecha(2024, time.June, 15)
	slots := finance.DefaultWindow(now)
	require.Len(t, slots, 5)

	assert.Equal(t, 4, slots[0].Month)
	assert.Equal(t, 6, slots[2].Month)
	assert.Equal(t, 8, slots[4].Month)
	assert.True(t, slots[2].Percentage.Equal(decimal.NewFromInt(100)), "el mes actual recibe el 100%")
	assert.True(t, slots[0].Percentage.IsZero())
	assert.True(t, slots[4].Percentage.IsZero())
}

// Ventana por defecto en enero: los meses previos caen en el año anterior.
func TestDefaultWindow_CruceDeAnioHaciaAtras(t *testing.T) {
	slots := finance.DefaultWindow(fecha(2024, time.January, 10))
	require.Len(t, slots, 5)
	assert.Equal(t, 11, slots[0].Month)
	assert.Equal(t, 2023, slots[0].Year)
	assert.Equal(t, 12, slots[1].Month)
	assert.Equal(t, 2023, slots[1].Year)
	assert.Equal(t, 1, slots[2].Month)
	assert.Equal(t, 2024, slots[2].Year)
}

func TestMonthLabel_FueraDeRango(t *testing.T) {
	assert.Equal(t, "", finance.MonthLabel(0, 2024))
	assert.Equal(t, "", finance.MonthLabel(13, 2024))
	assert.Equal(t, "Diciembre 2025", finance.MonthLabel(12, 2025))
}
