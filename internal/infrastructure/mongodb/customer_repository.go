package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/tu-usuario/tapiceria-pro/internal/domain/entity"
	"github.com/tu-usuario/tapiceria-pro/internal/domain/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collCustomers = "customers"

// MongoCustomerRepository lectura de clientes.
type MongoCustomerRepository struct {
	db *mongo.Database
}

// NewCustomerRepository construye el repositorio de clientes.
func NewCustomerRepository(db *mongo.Database) *MongoCustomerRepository {
	return &MongoCustomerRepository{db: db}
}

var _ repository.CustomerRepository = (*MongoCustomerRepository)(nil)

// GetByID obtiene un cliente; devuelve nil sin error si no existe.
func (r *MongoCustomerRepository) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	var c entity.Customer
	err := r.db.Collection(collCustomers).FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("leyendo cliente %s: %w", id, err)
	}
	return &c, nil
}

// List lista clientes ordenados por nombre.
func (r *MongoCustomerRepository) List(ctx context.Context, limit, offset int) ([]*entity.Customer, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))
	cur, err := r.db.Collection(collCustomers).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("listando clientes: %w", err)
	}
	defer cur.Close(ctx)

	var customers []*entity.Customer
	if err := cur.All(ctx, &customers); err != nil {
		return nil, fmt.Errorf("decodificando clientes: %w", err)
	}
	return customers, nil
}
