package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// MaterialCompanyRepository proveedor de tasas de impuesto por empresa de
// material; se consulta una vez por cálculo financiero.
type MaterialCompanyRepository interface {
	GetTaxRates(ctx context.Context) (map[string]decimal.Decimal, error)
}
