package repository

import "github.com/sokha/pos-api/internal/domain/entity"

// TransferRepository define el puerto de persistencia para StockTransfer.
type TransferRepository interface {
	Create(transfer *entity.StockTransfer) error
	GetByID(id string) (*entity.StockTransfer, error)
}
