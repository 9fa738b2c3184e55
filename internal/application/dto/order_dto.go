package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderSummaryResponse fila del tablero del taller.
type OrderSummaryResponse struct {
	ID            string          `json:"id"`
	OrderType     string          `json:"orderType"`
	BillInvoice   string          `json:"billInvoice,omitempty"`
	CustomerName  string          `json:"customerName,omitempty"`
	InvoiceStatus string          `json:"invoiceStatus"`
	StartDate     *time.Time      `json:"startDate,omitempty"`
	EndDate       *time.Time      `json:"endDate,omitempty"`
	Deposit       decimal.Decimal `json:"deposit"`
	AmountPaid    decimal.Decimal `json:"amountPaid"`
	Revenue       decimal.Decimal `json:"revenue"`
}

// OrderDetailResponse orden completa con sus totales calculados.
type OrderDetailResponse struct {
	OrderSummaryResponse
	Cost          decimal.Decimal `json:"cost"`
	Profit        decimal.Decimal `json:"profit"`
	HasAllocation bool            `json:"hasAllocation"`
}

// InvoiceStatusResponse entrada del catálogo de estados.
type InvoiceStatusResponse struct {
	Value        string `json:"value"`
	Label        string `json:"label"`
	Color        string `json:"color,omitempty"`
	IsEndState   bool   `json:"isEndState"`
	EndStateType string `json:"endStateType,omitempty"`
	IsDefault    bool   `json:"isDefault"`
	SortOrder    int    `json:"sortOrder"`
}
