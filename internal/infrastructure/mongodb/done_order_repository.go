package mongodb

import (
	"context"
	"fmt"

	"github.com/tu-usuario/tapiceria-pro/internal/domain/entity"
	"github.com/tu-usuario/tapiceria-pro/internal/domain/repository"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	collDoneOrders    = "done-orders"
	collTaxedInvoices = "taxedInvoices"
)

// MongoDoneOrderRepository copias de cierre de órdenes corporativas.
type MongoDoneOrderRepository struct {
	db *mongo.Database
}

// NewDoneOrderRepository construye el repositorio de registros de cierre.
func NewDoneOrderRepository(db *mongo.Database) *MongoDoneOrderRepository {
	return &MongoDoneOrderRepository{db: db}
}

var _ repository.DoneOrderRepository = (*MongoDoneOrderRepository)(nil)

// CreateDoneOrder inserta la copia de cierre en done-orders.
func (r *MongoDoneOrderRepository) CreateDoneOrder(ctx context.Context, rec *entity.DoneOrder) error {
	if _, err := r.db.Collection(collDoneOrders).InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("insertando done-order %s: %w", rec.ID, err)
	}
	return nil
}

// CreateTaxedInvoice inserta la copia fiscal en taxedInvoices.
func (r *MongoDoneOrderRepository) CreateTaxedInvoice(ctx context.Context, rec *entity.TaxedInvoice) error {
	if _, err := r.db.Collection(collTaxedInvoices).InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("insertando taxed-invoice %s: %w", rec.ID, err)
	}
	return nil
}
