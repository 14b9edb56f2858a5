package postgres

import (
	"context"
	"fmt"

	"github.com/sokha/pos-api/internal/domain/entity"
	"github.com/sokha/pos-api/internal/domain/repository"
)

var _ repository.AdjustmentRepository = (*AdjustmentRepo)(nil)

// AdjustmentRepo implementación del puerto AdjustmentRepository sobre PostgreSQL.
// La tabla es append-only: no hay Update ni Delete.
type AdjustmentRepo struct {
	q Querier
}

// NewAdjustmentRepository construye el adaptador del registro de auditoría de stock.
func NewAdjustmentRepository(q Querier) *AdjustmentRepo {
	return &AdjustmentRepo{q: q}
}

// Create inserta un registro de auditoría con su delta firmado.
func (r *AdjustmentRepo) Create(adjustment *entity.StockAdjustment) error {
	query := `
		INSERT INTO stock_adjustments (id, product_id, warehouse_id, staff_id, quantity, reason, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		adjustment.ID, adjustment.ProductID, adjustment.WarehouseID, adjustment.StaffID,
		adjustment.Quantity, adjustment.Reason, adjustment.Notes, adjustment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock adjustment: %w", err)
	}
	return nil
}
