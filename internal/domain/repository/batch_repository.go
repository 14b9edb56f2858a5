package repository

import (
	"github.com/shopspring/decimal"
	"github.com/sokha/pos-api/internal/domain/entity"
)

// BatchRepository define el puerto para los lotes de inventario.
// Usado dentro de transacciones para garantizar consistencia.
type BatchRepository interface {
	Insert(batch *entity.InventoryBatch) error
	// ListForUpdate bloquea (SELECT FOR UPDATE) todos los lotes de un
	// (producto, bodega) en orden FIFO: expiry_date ASC NULLS LAST, created_at ASC.
	ListForUpdate(productID, warehouseID string) ([]*entity.InventoryBatch, error)
	UpdateQuantity(batchID string, quantity decimal.Decimal) error
	// TotalQuantity suma los lotes de un producto en una bodega (o en todas si warehouseID es vacío).
	TotalQuantity(productID, warehouseID string) (decimal.Decimal, error)
}
