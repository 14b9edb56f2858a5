package dto

import "github.com/shopspring/decimal"

// OrderCustomer datos de contacto del pedido público.
type OrderCustomer struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone" validate:"required"`
}

// OrderItem línea de un pedido público (catálogo en línea).
type OrderItem struct {
	NameEN       string          `json:"name_en" validate:"required"`
	NameKM       string          `json:"name_km"`
	SellingPrice decimal.Decimal `json:"selling_price" validate:"required"`
	Quantity     int             `json:"quantity" validate:"required,min=1"`
}

// CreateOrderRequest pedido del catálogo público: solo dispara la notificación,
// no muta inventario.
type CreateOrderRequest struct {
	Customer OrderCustomer `json:"customer" validate:"required"`
	Items    []OrderItem   `json:"items" validate:"required,min=1,dive"`
}

// CreateQRRequest solicitud de QR de pago para una transacción.
type CreateQRRequest struct {
	TranID      string          `json:"tran_id" validate:"required"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	ItemsBase64 string          `json:"items_base64"`
}
