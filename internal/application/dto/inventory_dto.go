package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordPurchaseRequest registra una compra: crea un lote nuevo de inventario.
type RecordPurchaseRequest struct {
	ProductID   string           `json:"product_id" validate:"required"`
	WarehouseID string           `json:"warehouse_id" validate:"required"`
	Quantity    decimal.Decimal  `json:"quantity" validate:"required"`
	ExpiryDate  string           `json:"expiry_date"` // YYYY-MM-DD, opcional
	BatchNumber string           `json:"batch_number"`
	Cost        *decimal.Decimal `json:"cost,omitempty"`
	Notes       string           `json:"notes"`
}

// AdjustStockRequest ajuste manual de stock, positivo o negativo.
type AdjustStockRequest struct {
	ProductID          string          `json:"product_id" validate:"required"`
	WarehouseID        string          `json:"warehouse_id" validate:"required"`
	AdjustmentQuantity decimal.Decimal `json:"adjustment_quantity" validate:"required"`
	Reason             string          `json:"reason" validate:"required"`
	Notes              string          `json:"notes"`
}

// TransferItemRequest línea de un traslado.
type TransferItemRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity" validate:"required"`
}

// CreateTransferRequest traslado de stock entre bodegas.
type CreateTransferRequest struct {
	FromWarehouseID string                `json:"from_warehouse_id" validate:"required"`
	ToWarehouseID   string                `json:"to_warehouse_id" validate:"required"`
	Items           []TransferItemRequest `json:"items" validate:"required,min=1,dive"`
	Notes           string                `json:"notes"`
}

// TransferHistoryItem fila del historial de traslados.
type TransferHistoryItem struct {
	ID            string    `json:"id"`
	TransferDate  time.Time `json:"transfer_date"`
	Status        string    `json:"status"`
	FromWarehouse string    `json:"from_warehouse"`
	ToWarehouse   string    `json:"to_warehouse"`
	Initiator     string    `json:"initiator"`
}

// PurchaseHistoryItem fila del historial de compras (purchase_in).
type PurchaseHistoryItem struct {
	ID            string          `json:"id"`
	CreatedAt     time.Time       `json:"created_at"`
	Quantity      decimal.Decimal `json:"adjustment_quantity"`
	Reason        string          `json:"reason"`
	Notes         string          `json:"notes"`
	SKU           string          `json:"sku"`
	NameEN        string          `json:"name_en"`
	NameKM        string          `json:"name_km"`
	WarehouseName string          `json:"warehouse_name"`
	StaffName     string          `json:"staff_name"`
}
