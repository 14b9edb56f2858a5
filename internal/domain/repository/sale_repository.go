package repository

import (
	"time"

	"github.com/sokha/pos-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para SalesTransaction.
// Las ventas son inmutables salvo MarkReverted.
type SaleRepository interface {
	Create(sale *entity.SalesTransaction) error
	GetByID(id string) (*entity.SalesTransaction, error)
	// GetForUpdate bloquea la fila de la venta (SELECT FOR UPDATE) para la reversión.
	GetForUpdate(id string) (*entity.SalesTransaction, error)
	MarkReverted(id, staffID string, at time.Time) error
}
