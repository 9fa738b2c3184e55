package mongodb

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/tapiceria-pro/internal/domain/entity"
	"github.com/tu-usuario/tapiceria-pro/internal/domain/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const collMaterialCompanies = "material-companies"

// MongoMaterialCompanyRepository tasas de impuesto por empresa de material.
type MongoMaterialCompanyRepository struct {
	db *mongo.Database
}

// NewMaterialCompanyRepository construye el repositorio de proveedores.
func NewMaterialCompanyRepository(db *mongo.Database) *MongoMaterialCompanyRepository {
	return &MongoMaterialCompanyRepository{db: db}
}

var _ repository.MaterialCompanyRepository = (*MongoMaterialCompanyRepository)(nil)

// GetTaxRates devuelve el mapa nombre de empresa → tasa de impuesto.
// Se consulta una vez por cálculo; una empresa ausente se trata como tasa cero.
func (r *MongoMaterialCompanyRepository) GetTaxRates(ctx context.Context) (map[string]decimal.Decimal, error) {
	cur, err := r.db.Collection(collMaterialCompanies).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("listando empresas de material: %w", err)
	}
	defer cur.Close(ctx)

	rates := make(map[string]decimal.Decimal)
	for cur.Next(ctx) {
		var mc entity.MaterialCompany
		if err := cur.Decode(&mc); err != nil {
			return nil, fmt.Errorf("decodificando empresa de material: %w", err)
		}
		rates[mc.Name] = mc.TaxRate
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return rates, nil
}
