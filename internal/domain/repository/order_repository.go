package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/tapiceria-pro/internal/domain/entity"
)

// OrderRepository puerto de persistencia de órdenes. El tipo de orden
// selecciona la colección (orders / corporate-orders); fuera de esta
// interfaz nadie conoce los nombres de campo del documento.
type OrderRepository interface {
	GetByID(ctx context.Context, orderType entity.OrderType, id string) (*entity.Order, error)
	List(ctx context.Context, orderType entity.OrderType) ([]*entity.Order, error)

	// UpdateStatus cambia solo el invoiceStatus (transiciones a estados no terminales).
	UpdateStatus(ctx context.Context, orderType entity.OrderType, id, status string) error

	// UpdateStatusAndAllocation escribe invoiceStatus y allocation en una sola
	// operación atómica: nunca debe quedar visible un estado sin su distribución.
	UpdateStatusAndAllocation(ctx context.Context, orderType entity.OrderType, id, status string, snapshot *entity.AllocationSnapshot) error

	// UpdateAllocation reemplaza solo la distribución (edición sin cambio de estado).
	UpdateAllocation(ctx context.Context, orderType entity.OrderType, id string, snapshot *entity.AllocationSnapshot) error

	// UpdateStatusAndPending escribe invoiceStatus y los detalles de pausa juntos.
	UpdateStatusAndPending(ctx context.Context, orderType entity.OrderType, id, status string, details *entity.PendingDetails) error

	// AppendPayment agrega un pago al historial y fija el nuevo acumulado en
	// la misma operación (remediaciones: pago completo o reembolso a cero).
	AppendPayment(ctx context.Context, orderType entity.OrderType, id string, payment entity.Payment, newAmountPaid decimal.Decimal) error
}
