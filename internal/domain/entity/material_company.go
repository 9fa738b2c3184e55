package entity

import "github.com/shopspring/decimal"

// MaterialCompany proveedor de material con su tasa de impuesto
// (colección "material-companies"). La tasa puede venir como fracción
// (0.19) o como porcentaje (19); la normalización la hace el cálculo.
type MaterialCompany struct {
	ID      string          `bson:"_id" json:"id"`
	Name    string          `bson:"name" json:"name"`
	TaxRate decimal.Decimal `bson:"taxRate" json:"taxRate"`
}
