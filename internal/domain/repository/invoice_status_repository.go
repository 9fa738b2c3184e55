package repository

import (
	"context"

	"github.com/tu-usuario/tapiceria-pro/internal/domain/entity"
)

// InvoiceStatusRepository catálogo de estados de factura (solo lectura).
type InvoiceStatusRepository interface {
	List(ctx context.Context) ([]*entity.InvoiceStatus, error)
	GetByValue(ctx context.Context, value string) (*entity.InvoiceStatus, error)
}
