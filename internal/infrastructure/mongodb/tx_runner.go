package mongodb

import (
	"context"
	"fmt"

	"github.com/tu-usuario/tapiceria-pro/internal/application/workshop"
	"github.com/tu-usuario/tapiceria-pro/internal/domain/repository"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoCompletionTxRunner ejecuta el cierre corporativo dentro de una
// transacción de sesión Mongo. Requiere replica set (o Atlas); si la
// transacción aborta, ninguna de las tres escrituras queda visible.
type MongoCompletionTxRunner struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewCompletionTxRunner construye el runner transaccional.
func NewCompletionTxRunner(client *mongo.Client, db *mongo.Database) *MongoCompletionTxRunner {
	return &MongoCompletionTxRunner{client: client, db: db}
}

var _ workshop.CompletionTxRunner = (*MongoCompletionTxRunner)(nil)

// RunCompletion abre una sesión, ejecuta fn dentro de WithTransaction y
// entrega repos ligados a la misma base. fn debe usar txCtx en cada llamada.
func (r *MongoCompletionTxRunner) RunCompletion(ctx context.Context, fn func(
	txCtx context.Context,
	orderRepo repository.OrderRepository,
	doneRepo repository.DoneOrderRepository,
) error) error {
	session, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("abriendo sesión mongo: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc, NewOrderRepository(r.db), NewDoneOrderRepository(r.db))
	})
	if err != nil {
		return fmt.Errorf("transacción de cierre: %w", err)
	}
	return nil
}
