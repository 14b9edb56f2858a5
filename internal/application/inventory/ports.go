package inventory

import (
	"context"

	"github.com/sokha/pos-api/internal/domain/repository"
)

// TxRepos agrupa los repositorios atados a una misma transacción de BD.
type TxRepos struct {
	Batches     repository.BatchRepository
	Adjustments repository.AdjustmentRepository
	Sales       repository.SaleRepository
	Transfers   repository.TransferRepository
	Products    repository.ProductRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de inventario:
// si fn devuelve error se hace Rollback, si no, Commit.
type TxRunner interface {
	Run(ctx context.Context, fn func(r TxRepos) error) error
}
