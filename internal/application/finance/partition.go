// Package finance implementa el núcleo de cálculo del cierre de órdenes:
// partición del periodo de servicio en meses calendario, totales de
// ingreso/costo/utilidad por orden y el libro de distribución mensual.
package finance

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// MonthSlot un mes calendario tocado por el periodo de servicio, con el
// porcentaje de la distribución que le corresponde.
type MonthSlot struct {
	Month      int
	Year       int
	Label      string
	Percentage decimal.Decimal
}

var nombresMes = [12]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// MonthLabel etiqueta legible "Mes Año" para un (mes, año). Meses fuera
// de 1–12 producen etiqueta vacía; el libro descarta esas entradas antes.
func MonthLabel(month, year int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return fmt.Sprintf("%s %d", nombresMes[month-1], year)
}

// PartitionByMonth parte el intervalo [start, end] en sus meses calendario,
// en orden cronológico, sin huecos ni repetidos. Ambos instantes se
// normalizan a fecha local (se descarta la hora) para evitar corrimientos
// de mes por zona horaria. La siembra por defecto pone 100% en el primer
// mes y 0% en el resto: es un punto de partida para ajuste manual, no un
// prorrateo por días.
//
// Precondición: start no posterior a end (el caller valida antes de llamar).
func PartitionByMonth(start, end time.Time) []MonthSlot {
	sy, sm, _ := start.Date()
	ey, em, _ := end.Date()

	first := sy*12 + int(sm) - 1
	last := ey*12 + int(em) - 1
	if last < first {
		last = first
	}

	slots := make([]MonthSlot, 0, last-first+1)
	for idx := first; idx <= last; idx++ {
		year := idx / 12
		month := idx%12 + 1
		pct := decimal.Zero
		if idx == first {
			pct = decimal.NewFromInt(100)
		}
		slots = append(slots, MonthSlot{
			Month:      month,
			Year:       year,
			Label:      MonthLabel(month, year),
			Percentage: pct,
		})
	}
	return slots
}

// DefaultWindow ventana de ±2 meses alrededor de hoy (5 entradas) para
// órdenes sin fechas de servicio. El 100% cae en el mes actual.
func DefaultWindow(now time.Time) []MonthSlot {
	y, m, _ := now.Date()
	center := y*12 + int(m) - 1

	slots := make([]MonthSlot, 0, 5)
	for idx := center - 2; idx <= center+2; idx++ {
		year := idx / 12
		month := idx%12 + 1
		pct := decimal.Zero
		if idx == center {
			pct = decimal.NewFromInt(100)
		}
		slots = append(slots, MonthSlot{
			Month:      month,
			Year:       year,
			Label:      MonthLabel(month, year),
			Percentage: pct,
		})
	}
	return slots
}
