package repository

import (
	"context"

	"github.com/tu-usuario/tapiceria-pro/internal/domain/entity"
)

// DoneOrderRepository registros de cierre de órdenes corporativas:
// copia en "done-orders" y copia fiscal en "taxedInvoices".
type DoneOrderRepository interface {
	CreateDoneOrder(ctx context.Context, rec *entity.DoneOrder) error
	CreateTaxedInvoice(ctx context.Context, rec *entity.TaxedInvoice) error
}
