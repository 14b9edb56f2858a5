package repository

import "github.com/sokha/pos-api/internal/domain/entity"

// AdjustmentRepository define el puerto para el registro de auditoría de stock.
// Solo inserta: los ajustes son append-only.
type AdjustmentRepository interface {
	Create(adjustment *entity.StockAdjustment) error
}
