package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/sokha/pos-api/internal/domain/entity"
	"github.com/sokha/pos-api/internal/domain/repository"
)

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo implementación del puerto TransferRepository sobre PostgreSQL.
// Las líneas del traslado se guardan como jsonb, igual que las de venta.
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador de persistencia para traslados.
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

// Create persiste el traslado con sus líneas serializadas.
func (r *TransferRepo) Create(transfer *entity.StockTransfer) error {
	items, err := json.Marshal(transfer.Items)
	if err != nil {
		return fmt.Errorf("marshal transfer items: %w", err)
	}
	query := `
		INSERT INTO stock_transfers (id, from_warehouse_id, to_warehouse_id, staff_id, items, status, notes, transfer_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err = r.q.Exec(context.Background(), query,
		transfer.ID, transfer.FromWarehouseID, transfer.ToWarehouseID, transfer.StaffID,
		items, transfer.Status, transfer.Notes, transfer.TransferDate,
	)
	if err != nil {
		return fmt.Errorf("insert transfer: %w", err)
	}
	return nil
}

// GetByID obtiene un traslado por ID; nil si no existe.
func (r *TransferRepo) GetByID(id string) (*entity.StockTransfer, error) {
	query := `
		SELECT id, from_warehouse_id, to_warehouse_id, staff_id, items, status, notes, transfer_date
		FROM stock_transfers WHERE id = $1`
	var t entity.StockTransfer
	var items []byte
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.FromWarehouseID, &t.ToWarehouseID, &t.StaffID,
		&items, &t.Status, &t.Notes, &t.TransferDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer: %w", err)
	}
	if err := json.Unmarshal(items, &t.Items); err != nil {
		return nil, fmt.Errorf("unmarshal transfer items: %w", err)
	}
	return &t, nil
}
