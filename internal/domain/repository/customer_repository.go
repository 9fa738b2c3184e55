package repository

import (
	"context"

	"github.com/tu-usuario/tapiceria-pro/internal/domain/entity"
)

// CustomerRepository puerto de lectura de clientes (resolución de email).
type CustomerRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Customer, error)
}
