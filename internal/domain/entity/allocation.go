package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// AllocationEntry porcentaje asignado a un mes calendario.
// El label legible no se persiste: se reconstruye al sembrar el libro.
type AllocationEntry struct {
	Month      int             `bson:"month" json:"month"`
	Year       int             `bson:"year" json:"year"`
	Percentage decimal.Decimal `bson:"percentage" json:"percentage"`
}

// AllocationSnapshot distribución mensual persistida en order.allocation.
// Los montos por entrada no se guardan: se derivan en lectura como
// revenue/cost × percentage/100.
type AllocationSnapshot struct {
	Allocations  []AllocationEntry `bson:"allocations" json:"allocations"`
	Revenue      decimal.Decimal   `bson:"revenue" json:"revenue"`
	Cost         decimal.Decimal   `bson:"cost" json:"cost"`
	Profit       decimal.Decimal   `bson:"profit" json:"profit"`
	CalculatedAt time.Time         `bson:"calculatedAt" json:"calculatedAt"`
}
