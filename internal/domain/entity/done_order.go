package entity

import "time"

// DoneOrder copia de una orden corporativa cerrada (colección "done-orders").
// El documento original en "corporate-orders" no se borra: queda marcado
// con su invoiceStatus terminal para auditoría.
type DoneOrder struct {
	ID       string    `bson:"_id" json:"id"`
	Order    Order     `bson:"order" json:"order"`
	ClosedAt time.Time `bson:"closedAt" json:"closedAt"`
}

// TaxedInvoice copia fiscal de la orden corporativa cerrada (colección
// "taxedInvoices"); conserva el id original como originalInvoiceId.
type TaxedInvoice struct {
	ID                string    `bson:"_id" json:"id"`
	OriginalInvoiceID string    `bson:"originalInvoiceId" json:"originalInvoiceId"`
	Order             Order     `bson:"order" json:"order"`
	ClosedAt          time.Time `bson:"closedAt" json:"closedAt"`
}
