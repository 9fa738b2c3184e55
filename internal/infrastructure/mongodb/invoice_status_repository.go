package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/tu-usuario/tapiceria-pro/internal/domain"
	"github.com/tu-usuario/tapiceria-pro/internal/domain/entity"
	"github.com/tu-usuario/tapiceria-pro/internal/domain/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collInvoiceStatuses = "invoiceStatuses"

// MongoInvoiceStatusRepository catálogo de estados de factura.
type MongoInvoiceStatusRepository struct {
	db *mongo.Database
}

// NewInvoiceStatusRepository construye el repositorio del catálogo.
func NewInvoiceStatusRepository(db *mongo.Database) *MongoInvoiceStatusRepository {
	return &MongoInvoiceStatusRepository{db: db}
}

var _ repository.InvoiceStatusRepository = (*MongoInvoiceStatusRepository)(nil)

// List devuelve el catálogo ordenado por sortOrder.
func (r *MongoInvoiceStatusRepository) List(ctx context.Context) ([]*entity.InvoiceStatus, error) {
	opts := options.Find().SetSort(bson.D{{Key: "sortOrder", Value: 1}})
	cur, err := r.db.Collection(collInvoiceStatuses).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("listando estados: %w", err)
	}
	defer cur.Close(ctx)

	var statuses []*entity.InvoiceStatus
	if err := cur.All(ctx, &statuses); err != nil {
		return nil, fmt.Errorf("decodificando estados: %w", err)
	}
	return statuses, nil
}

// GetByValue busca un estado por su valor canónico.
func (r *MongoInvoiceStatusRepository) GetByValue(ctx context.Context, value string) (*entity.InvoiceStatus, error) {
	var st entity.InvoiceStatus
	err := r.db.Collection(collInvoiceStatuses).FindOne(ctx, bson.M{"value": value}).Decode(&st)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("estado %q: %w", value, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("leyendo estado %q: %w", value, err)
	}
	return &st, nil
}
