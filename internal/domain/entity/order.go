package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderType distingue órdenes de particulares y de empresas.
// Las corporativas viven en la colección "corporate-orders" y llevan
// su registro de pagos en paymentDetails (no paymentData).
type OrderType string

const (
	OrderTypeIndividual OrderType = "individual"
	OrderTypeCorporate  OrderType = "corporate"
)

// Tipos de servicio de recogida/entrega.
const (
	ServicePickup   = "pickup"
	ServiceDelivery = "delivery"
	ServiceBoth     = "both"
)

// OrderDetails cabecera de la orden: número de factura visible y periodo de servicio.
type OrderDetails struct {
	BillInvoice string     `bson:"billInvoice" json:"billInvoice"`
	StartDate   *time.Time `bson:"startDate,omitempty" json:"startDate,omitempty"`
	EndDate     *time.Time `bson:"endDate,omitempty" json:"endDate,omitempty"`
	Description string     `bson:"description,omitempty" json:"description,omitempty"`
}

// FurnitureGroup una línea de trabajo de tapicería: precios al cliente por
// categoría (material, mano de obra, espuma, pintura) y costos internos.
type FurnitureGroup struct {
	ItemName        string `bson:"itemName" json:"itemName"`
	MaterialCompany string `bson:"materialCompany,omitempty" json:"materialCompany,omitempty"`
	Quantity        int    `bson:"quantity" json:"quantity"`

	// Precios facturados al cliente.
	MaterialPrice decimal.Decimal `bson:"materialPrice" json:"materialPrice"`
	LabourPrice   decimal.Decimal `bson:"labourPrice" json:"labourPrice"`
	FoamPrice     decimal.Decimal `bson:"foamPrice" json:"foamPrice"`
	PaintingPrice decimal.Decimal `bson:"paintingPrice" json:"paintingPrice"`

	// Costos internos (compra de material y espuma), sin margen.
	MaterialInternalCost decimal.Decimal `bson:"materialInternalCost" json:"materialInternalCost"`
	FoamInternalCost     decimal.Decimal `bson:"foamInternalCost" json:"foamInternalCost"`
}

// Units cantidad efectiva de la línea (mínimo 1).
func (g FurnitureGroup) Units() decimal.Decimal {
	if g.Quantity <= 1 {
		return decimal.NewFromInt(1)
	}
	return decimal.NewFromInt(int64(g.Quantity))
}

// Payment un pago puntual dentro del historial (solo-añadir).
// Los montos negativos representan reembolsos.
type Payment struct {
	ID     string          `bson:"id" json:"id"`
	Amount decimal.Decimal `bson:"amount" json:"amount"`
	Date   time.Time       `bson:"date" json:"date"`
	Method string          `bson:"method,omitempty" json:"method,omitempty"`
	Note   string          `bson:"note,omitempty" json:"note,omitempty"`
}

// PaymentInfo registro de pagos tal como se persiste en el documento
// (campo paymentData en individuales, paymentDetails en corporativas).
type PaymentInfo struct {
	Deposit    decimal.Decimal `bson:"deposit" json:"deposit"`
	AmountPaid decimal.Decimal `bson:"amountPaid" json:"amountPaid"`
	Payments   []Payment       `bson:"payments,omitempty" json:"payments,omitempty"`

	PickupDeliveryEnabled     bool            `bson:"pickupDeliveryEnabled" json:"pickupDeliveryEnabled"`
	PickupDeliveryCost        decimal.Decimal `bson:"pickupDeliveryCost" json:"pickupDeliveryCost"`
	PickupDeliveryServiceType string          `bson:"pickupDeliveryServiceType,omitempty" json:"pickupDeliveryServiceType,omitempty"`

	// Solo corporativas: recargo por pago con tarjeta de crédito.
	CreditCardFeeEnabled bool `bson:"creditCardFeeEnabled,omitempty" json:"creditCardFeeEnabled,omitempty"`
}

// PaymentRecord registro de pago normalizado: una sola forma sin importar
// si la orden es individual o corporativa. Es la única vía de acceso a
// pagos para el validador y el cálculo financiero.
type PaymentRecord struct {
	Kind       OrderType
	Deposit    decimal.Decimal
	AmountPaid decimal.Decimal
	Payments   []Payment

	PickupDeliveryEnabled bool
	PickupDeliveryCost    decimal.Decimal
	ServiceType           string
	CreditCardFeeEnabled  bool
}

// PendingDetails datos requeridos para dejar una orden en estado "pending".
type PendingDetails struct {
	ExpectedResumeDate time.Time `bson:"expectedResumeDate" json:"expectedResumeDate"`
	Notes              string    `bson:"notes,omitempty" json:"notes,omitempty"`
}

// Order documento de orden de trabajo (colecciones "orders" y "corporate-orders").
// El motor de cierre lee y actualiza órdenes; nunca las crea.
type Order struct {
	ID        string    `bson:"_id" json:"id"`
	OrderType OrderType `bson:"orderType" json:"orderType"`

	CustomerID    string `bson:"customerId,omitempty" json:"customerId,omitempty"`
	CustomerName  string `bson:"customerName,omitempty" json:"customerName,omitempty"`
	CustomerEmail string `bson:"customerEmail,omitempty" json:"customerEmail,omitempty"`

	// Solo corporativas: empresa y persona de contacto.
	CompanyName  string `bson:"companyName,omitempty" json:"companyName,omitempty"`
	ContactName  string `bson:"contactName,omitempty" json:"contactName,omitempty"`
	ContactEmail string `bson:"contactEmail,omitempty" json:"contactEmail,omitempty"`

	OrderDetails    OrderDetails     `bson:"orderDetails" json:"orderDetails"`
	FurnitureGroups []FurnitureGroup `bson:"furnitureGroups,omitempty" json:"furnitureGroups,omitempty"`

	// Variante según OrderType: individual usa PaymentData, corporativa PaymentDetails.
	PaymentData    *PaymentInfo `bson:"paymentData,omitempty" json:"paymentData,omitempty"`
	PaymentDetails *PaymentInfo `bson:"paymentDetails,omitempty" json:"paymentDetails,omitempty"`

	InvoiceStatus  string              `bson:"invoiceStatus" json:"invoiceStatus"`
	Allocation     *AllocationSnapshot `bson:"allocation,omitempty" json:"allocation,omitempty"`
	PendingDetails *PendingDetails     `bson:"pendingDetails,omitempty" json:"pendingDetails,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Payment devuelve el registro de pagos normalizado según el tipo de orden.
// Si el campo esperado no existe en el documento devuelve un registro en cero,
// nunca nil: el resto del motor no vuelve a ramificar por OrderType.
func (o *Order) Payment() PaymentRecord {
	var info *PaymentInfo
	switch o.OrderType {
	case OrderTypeCorporate:
		info = o.PaymentDetails
	default:
		info = o.PaymentData
	}
	rec := PaymentRecord{Kind: o.OrderType}
	if info == nil {
		return rec
	}
	rec.Deposit = info.Deposit
	rec.AmountPaid = info.AmountPaid
	rec.Payments = info.Payments
	rec.PickupDeliveryEnabled = info.PickupDeliveryEnabled
	rec.PickupDeliveryCost = info.PickupDeliveryCost
	rec.ServiceType = info.PickupDeliveryServiceType
	rec.CreditCardFeeEnabled = info.CreditCardFeeEnabled
	return rec
}

// PaymentFieldName nombre del campo de pagos en el documento según el tipo.
// Lo usa la capa de persistencia para armar updates parciales.
func (o *Order) PaymentFieldName() string {
	if o.OrderType == OrderTypeCorporate {
		return "paymentDetails"
	}
	return "paymentData"
}

// ResolvableEmail devuelve el email al que notificar el cierre, si existe.
func (o *Order) ResolvableEmail() string {
	if o.OrderType == OrderTypeCorporate {
		return o.ContactEmail
	}
	return o.CustomerEmail
}

// DisplayName nombre a mostrar en confirmaciones y correos.
func (o *Order) DisplayName() string {
	if o.OrderType == OrderTypeCorporate && o.CompanyName != "" {
		return o.CompanyName
	}
	return o.CustomerName
}
