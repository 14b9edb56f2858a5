package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una transacción de venta: active → reverted (terminal).
const (
	SaleStatusActive   = "active"
	SaleStatusReverted = "reverted"
)

// SaleItem es una línea de venta con el precio capturado al momento de la venta.
// Es una foto denormalizada: nunca se re-resuelve contra el precio actual del
// producto; para mostrar se enriquece con el nombre vigente si hace falta.
type SaleItem struct {
	ProductID string          `json:"product_id"`
	NameEN    string          `json:"name_en"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// SalesTransaction representa una venta registrada en el punto de venta.
// Inmutable una vez creada salvo la acción de reversión.
// Invariante: TotalAmount es la suma de los subtotales de las líneas.
type SalesTransaction struct {
	ID              string
	ReceiptNumber   string
	StaffID         string
	WarehouseID     string
	SaleItems       []SaleItem
	TotalAmount     decimal.Decimal
	PaymentMethod   string
	Status          string
	RevertedBy      string
	RevertedAt      *time.Time
	TransactionTime time.Time
}
