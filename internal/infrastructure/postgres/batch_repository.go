package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sokha/pos-api/internal/domain/entity"
	"github.com/sokha/pos-api/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

// BatchRepo implementación del puerto BatchRepository sobre PostgreSQL.
// Se usa dentro de una transacción (Querier = pgx.Tx) para todas las mutaciones.
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador de persistencia para lotes de inventario.
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

// Insert inserta un lote nuevo. Los lotes nunca se fusionan con existentes.
func (r *BatchRepo) Insert(batch *entity.InventoryBatch) error {
	query := `
		INSERT INTO inventory (id, product_id, warehouse_id, quantity, expiry_date, batch_number, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		batch.ID, batch.ProductID, batch.WarehouseID, batch.Quantity,
		batch.ExpiryDate, batch.BatchNumber, batch.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert batch: %w", err)
	}
	return nil
}

// ListForUpdate bloquea los lotes de un (producto, bodega) en orden FIFO por vencimiento.
// Los lotes sin fecha de vencimiento se consumen al final.
func (r *BatchRepo) ListForUpdate(productID, warehouseID string) ([]*entity.InventoryBatch, error) {
	query := `
		SELECT id, product_id, warehouse_id, quantity, expiry_date, batch_number, created_at
		FROM inventory
		WHERE product_id = $1 AND warehouse_id = $2
		ORDER BY expiry_date ASC NULLS LAST, created_at ASC
		FOR UPDATE`
	rows, err := r.q.Query(context.Background(), query, productID, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("lock batches: %w", err)
	}
	defer rows.Close()
	var batches []*entity.InventoryBatch
	for rows.Next() {
		var b entity.InventoryBatch
		if err := rows.Scan(&b.ID, &b.ProductID, &b.WarehouseID, &b.Quantity,
			&b.ExpiryDate, &b.BatchNumber, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		batches = append(batches, &b)
	}
	return batches, rows.Err()
}

// UpdateQuantity fija la cantidad absoluta de un lote ya bloqueado.
func (r *BatchRepo) UpdateQuantity(batchID string, quantity decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE inventory SET quantity = $2 WHERE id = $1`, batchID, quantity)
	if err != nil {
		return fmt.Errorf("update batch quantity: %w", err)
	}
	return nil
}

// TotalQuantity suma los lotes de un producto; warehouseID vacío suma todas las bodegas.
func (r *BatchRepo) TotalQuantity(productID, warehouseID string) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(quantity), 0) FROM inventory WHERE product_id = $1`
	args := []interface{}{productID}
	if warehouseID != "" {
		query += ` AND warehouse_id = $2`
		args = append(args, warehouseID)
	}
	var total decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query, args...).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum batches: %w", err)
	}
	return total, nil
}
