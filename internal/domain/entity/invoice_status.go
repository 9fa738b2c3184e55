package entity

// EndStateType clase de estado terminal de una orden.
type EndStateType string

const (
	EndStateDone      EndStateType = "done"
	EndStateCancelled EndStateType = "cancelled"
	EndStatePending   EndStateType = "pending"
)

// InvoiceStatus entrada del catálogo de estados de factura (colección
// "invoiceStatuses", solo lectura para el motor). El motor únicamente
// consume IsEndState y EndStateType para decidir las reglas de pago.
type InvoiceStatus struct {
	Value        string       `bson:"value" json:"value"`
	Label        string       `bson:"label" json:"label"`
	Color        string       `bson:"color,omitempty" json:"color,omitempty"`
	IsEndState   bool         `bson:"isEndState" json:"isEndState"`
	EndStateType EndStateType `bson:"endStateType,omitempty" json:"endStateType,omitempty"`
	IsDefault    bool         `bson:"isDefault,omitempty" json:"isDefault,omitempty"`
	SortOrder    int          `bson:"sortOrder" json:"sortOrder"`
}
