package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryBatch representa un lote concreto de stock de un producto en una bodega.
// Pueden existir varios lotes para el mismo (producto, bodega); nunca se fusionan:
// cada compra crea un lote nuevo con su propia fecha de vencimiento y número de lote.
// Invariante: Quantity nunca queda negativa tras una mutación.
type InventoryBatch struct {
	ID          string
	ProductID   string
	WarehouseID string
	Quantity    decimal.Decimal
	ExpiryDate  *time.Time // opcional
	BatchNumber string     // opcional
	CreatedAt   time.Time
}
