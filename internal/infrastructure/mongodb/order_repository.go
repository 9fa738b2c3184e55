package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/tapiceria-pro/internal/domain"
	"github.com/tu-usuario/tapiceria-pro/internal/domain/entity"
	"github.com/tu-usuario/tapiceria-pro/internal/domain/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	collOrders          = "orders"
	collCorporateOrders = "corporate-orders"
)

// MongoOrderRepository implementación Mongo del puerto de órdenes.
// El tipo de orden selecciona la colección; todo lo demás es idéntico
// salvo el nombre del campo de pagos.
type MongoOrderRepository struct {
	db *mongo.Database
}

// NewOrderRepository construye el repositorio de órdenes.
func NewOrderRepository(db *mongo.Database) *MongoOrderRepository {
	return &MongoOrderRepository{db: db}
}

var _ repository.OrderRepository = (*MongoOrderRepository)(nil)

func (r *MongoOrderRepository) collection(orderType entity.OrderType) *mongo.Collection {
	if orderType == entity.OrderTypeCorporate {
		return r.db.Collection(collCorporateOrders)
	}
	return r.db.Collection(collOrders)
}

// GetByID obtiene una orden por id. El documento no persiste orderType:
// se fija aquí según la colección de origen.
func (r *MongoOrderRepository) GetByID(ctx context.Context, orderType entity.OrderType, id string) (*entity.Order, error) {
	var order entity.Order
	err := r.collection(orderType).FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("orden %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("leyendo orden %s: %w", id, err)
	}
	order.OrderType = orderType
	return &order, nil
}

// List devuelve todas las órdenes de la colección del tipo indicado.
func (r *MongoOrderRepository) List(ctx context.Context, orderType entity.OrderType) ([]*entity.Order, error) {
	cur, err := r.collection(orderType).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("listando órdenes: %w", err)
	}
	defer cur.Close(ctx)

	var orders []*entity.Order
	for cur.Next(ctx) {
		var o entity.Order
		if err := cur.Decode(&o); err != nil {
			return nil, fmt.Errorf("decodificando orden: %w", err)
		}
		o.OrderType = orderType
		orders = append(orders, &o)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateStatus cambia solo el invoiceStatus.
func (r *MongoOrderRepository) UpdateStatus(ctx context.Context, orderType entity.OrderType, id, status string) error {
	return r.update(ctx, orderType, id, bson.M{
		"invoiceStatus": status,
		"updatedAt":     time.Now(),
	})
}

// UpdateStatusAndAllocation escribe estado y distribución en un solo UpdateOne:
// un lector concurrente nunca ve el estado terminal sin su allocation.
func (r *MongoOrderRepository) UpdateStatusAndAllocation(ctx context.Context, orderType entity.OrderType, id, status string, snapshot *entity.AllocationSnapshot) error {
	return r.update(ctx, orderType, id, bson.M{
		"invoiceStatus": status,
		"allocation":    snapshot,
		"updatedAt":     time.Now(),
	})
}

// UpdateAllocation reemplaza solo la distribución.
func (r *MongoOrderRepository) UpdateAllocation(ctx context.Context, orderType entity.OrderType, id string, snapshot *entity.AllocationSnapshot) error {
	return r.update(ctx, orderType, id, bson.M{
		"allocation": snapshot,
		"updatedAt":  time.Now(),
	})
}

// UpdateStatusAndPending escribe estado y detalles de pausa juntos.
func (r *MongoOrderRepository) UpdateStatusAndPending(ctx context.Context, orderType entity.OrderType, id, status string, details *entity.PendingDetails) error {
	return r.update(ctx, orderType, id, bson.M{
		"invoiceStatus":  status,
		"pendingDetails": details,
		"updatedAt":      time.Now(),
	})
}

// AppendPayment agrega el pago al historial y fija el nuevo acumulado en la
// misma operación. El campo depende del tipo: paymentData o paymentDetails.
func (r *MongoOrderRepository) AppendPayment(ctx context.Context, orderType entity.OrderType, id string, payment entity.Payment, newAmountPaid decimal.Decimal) error {
	field := "paymentData"
	if orderType == entity.OrderTypeCorporate {
		field = "paymentDetails"
	}
	res, err := r.collection(orderType).UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{
			"$push": bson.M{field + ".payments": payment},
			"$set": bson.M{
				field + ".amountPaid": newAmountPaid,
				"updatedAt":           time.Now(),
			},
		},
	)
	if err != nil {
		return fmt.Errorf("registrando pago en orden %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("orden %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *MongoOrderRepository) update(ctx context.Context, orderType entity.OrderType, id string, set bson.M) error {
	res, err := r.collection(orderType).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("actualizando orden %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("orden %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
