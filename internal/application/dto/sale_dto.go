package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest línea de venta enviada por el POS. El precio se resuelve
// en el servidor contra el precio vigente del producto.
type SaleItemRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity" validate:"required"`
}

// CreateSaleRequest registra una venta.
type CreateSaleRequest struct {
	WarehouseID   string            `json:"warehouse_id" validate:"required"`
	SaleItems     []SaleItemRequest `json:"sale_items" validate:"required,min=1,dive"`
	TotalAmount   decimal.Decimal   `json:"total_amount" validate:"required"`
	PaymentMethod string            `json:"payment_method" validate:"required"`
}

// SaleItemResponse línea de venta con el precio capturado al momento de la venta.
type SaleItemResponse struct {
	ProductID string          `json:"product_id"`
	NameEN    string          `json:"name_en"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// SaleResponse detalle completo de una venta.
type SaleResponse struct {
	ID              string             `json:"id"`
	ReceiptNumber   string             `json:"receipt_number"`
	TransactionTime time.Time          `json:"transaction_time"`
	TotalAmount     decimal.Decimal    `json:"total_amount"`
	PaymentMethod   string             `json:"payment_method"`
	Status          string             `json:"status"`
	StaffName       string             `json:"staff_name,omitempty"`
	SaleItems       []SaleItemResponse `json:"sale_items"`
}

// SaleSummary fila del historial de ventas.
type SaleSummary struct {
	ID              string          `json:"id"`
	ReceiptNumber   string          `json:"receipt_number"`
	TransactionTime time.Time       `json:"transaction_time"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	PaymentMethod   string          `json:"payment_method"`
	Status          string          `json:"status"`
	StaffName       string          `json:"staff_name"`
}
