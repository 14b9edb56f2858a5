package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sokha/pos-api/internal/domain/entity"
	"github.com/sokha/pos-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, receipt_number, staff_id, warehouse_id, sale_items, total_amount,
	payment_method, status, reverted_by, reverted_at, transaction_time`

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL.
// Las líneas de venta se guardan como jsonb: son una foto inmutable del precio
// al momento de la venta, no un join contra products.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de persistencia para ventas.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la venta con sus líneas serializadas.
func (r *SaleRepo) Create(sale *entity.SalesTransaction) error {
	items, err := json.Marshal(sale.SaleItems)
	if err != nil {
		return fmt.Errorf("marshal sale items: %w", err)
	}
	query := `
		INSERT INTO sales_transactions (id, receipt_number, staff_id, warehouse_id, sale_items, total_amount, payment_method, status, transaction_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err = r.q.Exec(context.Background(), query,
		sale.ID, sale.ReceiptNumber, sale.StaffID, sale.WarehouseID, items,
		sale.TotalAmount, sale.PaymentMethod, sale.Status, sale.TransactionTime,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("duplicate receipt number %s: %w", sale.ReceiptNumber, err)
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// GetByID obtiene una venta por ID; nil si no existe.
func (r *SaleRepo) GetByID(id string) (*entity.SalesTransaction, error) {
	row := r.q.QueryRow(context.Background(),
		`SELECT `+saleColumns+` FROM sales_transactions WHERE id = $1`, id)
	return scanSale(row)
}

// GetForUpdate bloquea la fila de la venta para la reversión.
func (r *SaleRepo) GetForUpdate(id string) (*entity.SalesTransaction, error) {
	row := r.q.QueryRow(context.Background(),
		`SELECT `+saleColumns+` FROM sales_transactions WHERE id = $1 FOR UPDATE`, id)
	return scanSale(row)
}

// MarkReverted marca la venta como revertida (estado terminal).
func (r *SaleRepo) MarkReverted(id, staffID string, at time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE sales_transactions SET status = $2, reverted_by = $3, reverted_at = $4 WHERE id = $1`,
		id, entity.SaleStatusReverted, staffID, at)
	if err != nil {
		return fmt.Errorf("mark sale reverted: %w", err)
	}
	return nil
}

func scanSale(row pgx.Row) (*entity.SalesTransaction, error) {
	var s entity.SalesTransaction
	var items []byte
	var revertedBy *string
	err := row.Scan(&s.ID, &s.ReceiptNumber, &s.StaffID, &s.WarehouseID, &items,
		&s.TotalAmount, &s.PaymentMethod, &s.Status, &revertedBy, &s.RevertedAt,
		&s.TransactionTime)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	if revertedBy != nil {
		s.RevertedBy = *revertedBy
	}
	if err := json.Unmarshal(items, &s.SaleItems); err != nil {
		return nil, fmt.Errorf("unmarshal sale items: %w", err)
	}
	return &s, nil
}
