package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/sokha/pos-api/internal/domain/entity"
	"github.com/sokha/pos-api/internal/domain/repository"
)

var _ repository.ReportingRepository = (*ReportingRepo)(nil)

// ReportingRepo implementación de las consultas de solo lectura sobre PostgreSQL.
// Corre siempre contra el pool: no participa en transacciones del motor.
type ReportingRepo struct {
	q Querier
}

// NewReportingRepository construye el adaptador de consultas de reporte.
func NewReportingRepository(q Querier) *ReportingRepo {
	return &ReportingRepo{q: q}
}

const productStockColumns = `p.id, p.sku, p.name_en, p.name_km, p.description, p.category,
	p.image_url, p.selling_price, p.reorder_point, p.is_active,
	COALESCE(SUM(i.quantity), 0) AS total_stock`

const productStockGroupBy = `GROUP BY p.id, p.sku, p.name_en, p.name_km, p.description,
	p.category, p.image_url, p.selling_price, p.reorder_point, p.is_active`

// ListProductsWithStock lista productos con su stock total sumado sobre todos los lotes.
func (r *ReportingRepo) ListProductsWithStock(ctx context.Context, onlyActive bool) ([]repository.ProductStockResult, error) {
	query := `
		SELECT ` + productStockColumns + `
		FROM products p
		LEFT JOIN inventory i ON i.product_id = p.id`
	if onlyActive {
		query += `
		WHERE p.is_active = true`
	}
	query += `
		` + productStockGroupBy + `
		ORDER BY p.name_en ASC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list products with stock: %w", err)
	}
	defer rows.Close()
	return scanProductStockRows(rows)
}

// GetProductWithStock devuelve un producto activo con su stock total; nil si no existe.
func (r *ReportingRepo) GetProductWithStock(ctx context.Context, id string) (*repository.ProductStockResult, error) {
	query := `
		SELECT ` + productStockColumns + `
		FROM products p
		LEFT JOIN inventory i ON i.product_id = p.id
		WHERE p.id = $1 AND p.is_active = true
		` + productStockGroupBy
	var p repository.ProductStockResult
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.SKU, &p.NameEN, &p.NameKM, &p.Description, &p.Category,
		&p.ImageURL, &p.SellingPrice, &p.ReorderPoint, &p.IsActive, &p.TotalStock,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product with stock: %w", err)
	}
	return &p, nil
}

// DetailedInventory stock por (producto, bodega), solo filas con lotes.
func (r *ReportingRepo) DetailedInventory(ctx context.Context) ([]repository.WarehouseStockResult, error) {
	query := `
		SELECT p.id, p.sku, p.name_en, p.name_km, w.id, w.name, COALESCE(SUM(i.quantity), 0)
		FROM inventory i
		JOIN products p ON p.id = i.product_id
		JOIN warehouses w ON w.id = i.warehouse_id
		GROUP BY p.id, p.sku, p.name_en, p.name_km, w.id, w.name
		ORDER BY p.name_en ASC, w.name ASC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("detailed inventory: %w", err)
	}
	defer rows.Close()
	var list []repository.WarehouseStockResult
	for rows.Next() {
		var ws repository.WarehouseStockResult
		if err := rows.Scan(&ws.ProductID, &ws.SKU, &ws.NameEN, &ws.NameKM,
			&ws.WarehouseID, &ws.WarehouseName, &ws.Quantity); err != nil {
			return nil, fmt.Errorf("scan warehouse stock: %w", err)
		}
		list = append(list, ws)
	}
	return list, rows.Err()
}

// LowStockProducts productos activos bajo su punto de reorden (o el umbral por defecto).
func (r *ReportingRepo) LowStockProducts(ctx context.Context, fallbackThreshold int) ([]repository.ProductStockResult, error) {
	query := `
		SELECT ` + productStockColumns + `
		FROM products p
		LEFT JOIN inventory i ON i.product_id = p.id
		WHERE p.is_active = true
		` + productStockGroupBy + `
		HAVING COALESCE(SUM(i.quantity), 0) < CASE WHEN p.reorder_point > 0 THEN p.reorder_point ELSE $1 END
		ORDER BY total_stock ASC`
	rows, err := r.q.Query(ctx, query, fallbackThreshold)
	if err != nil {
		return nil, fmt.Errorf("low stock products: %w", err)
	}
	defer rows.Close()
	return scanProductStockRows(rows)
}

// ExpiringBatches lotes con cantidad > 0 que vencen dentro de [from, until].
// El límite inferior deja fuera los lotes ya vencidos.
func (r *ReportingRepo) ExpiringBatches(ctx context.Context, from, until time.Time) ([]repository.ExpiringBatchResult, error) {
	query := `
		SELECT p.id, p.sku, p.name_en, p.name_km, w.name, i.quantity, i.expiry_date, i.batch_number
		FROM inventory i
		JOIN products p ON p.id = i.product_id
		JOIN warehouses w ON w.id = i.warehouse_id
		WHERE i.quantity > 0 AND i.expiry_date IS NOT NULL
		  AND i.expiry_date >= $1 AND i.expiry_date <= $2
		ORDER BY i.expiry_date ASC`
	rows, err := r.q.Query(ctx, query, from, until)
	if err != nil {
		return nil, fmt.Errorf("expiring batches: %w", err)
	}
	defer rows.Close()
	var list []repository.ExpiringBatchResult
	for rows.Next() {
		var b repository.ExpiringBatchResult
		if err := rows.Scan(&b.ProductID, &b.SKU, &b.NameEN, &b.NameKM,
			&b.WarehouseName, &b.Quantity, &b.ExpiryDate, &b.BatchNumber); err != nil {
			return nil, fmt.Errorf("scan expiring batch: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// SalesHistory ventas más recientes primero con nombre del vendedor resuelto.
func (r *ReportingRepo) SalesHistory(ctx context.Context, limit, offset int) ([]repository.SaleSummaryResult, error) {
	query := `
		SELECT s.id, s.receipt_number, s.transaction_time, s.total_amount, s.payment_method, s.status,
			COALESCE(st.full_name, '')
		FROM sales_transactions s
		LEFT JOIN staff st ON st.id = s.staff_id
		ORDER BY s.transaction_time DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("sales history: %w", err)
	}
	defer rows.Close()
	var list []repository.SaleSummaryResult
	for rows.Next() {
		var s repository.SaleSummaryResult
		if err := rows.Scan(&s.ID, &s.ReceiptNumber, &s.TransactionTime, &s.TotalAmount,
			&s.PaymentMethod, &s.Status, &s.StaffName); err != nil {
			return nil, fmt.Errorf("scan sale summary: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// PurchaseHistory ajustes purchase_in más recientes primero.
func (r *ReportingRepo) PurchaseHistory(ctx context.Context, limit, offset int) ([]repository.PurchaseHistoryResult, error) {
	query := `
		SELECT a.id, a.created_at, a.quantity, a.reason, a.notes,
			p.sku, p.name_en, p.name_km, w.name, COALESCE(st.full_name, '')
		FROM stock_adjustments a
		JOIN products p ON p.id = a.product_id
		JOIN warehouses w ON w.id = a.warehouse_id
		LEFT JOIN staff st ON st.id = a.staff_id
		WHERE a.reason = $1
		ORDER BY a.created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, entity.ReasonPurchaseIn, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("purchase history: %w", err)
	}
	defer rows.Close()
	var list []repository.PurchaseHistoryResult
	for rows.Next() {
		var ph repository.PurchaseHistoryResult
		if err := rows.Scan(&ph.ID, &ph.CreatedAt, &ph.Quantity, &ph.Reason, &ph.Notes,
			&ph.SKU, &ph.NameEN, &ph.NameKM, &ph.WarehouseName, &ph.StaffName); err != nil {
			return nil, fmt.Errorf("scan purchase history: %w", err)
		}
		list = append(list, ph)
	}
	return list, rows.Err()
}

// TransferHistory traslados más recientes primero con nombres de bodegas resueltos.
func (r *ReportingRepo) TransferHistory(ctx context.Context, limit, offset int) ([]repository.TransferHistoryResult, error) {
	query := `
		SELECT t.id, t.transfer_date, t.status,
			wf.name, wt.name, COALESCE(st.full_name, '')
		FROM stock_transfers t
		JOIN warehouses wf ON wf.id = t.from_warehouse_id
		JOIN warehouses wt ON wt.id = t.to_warehouse_id
		LEFT JOIN staff st ON st.id = t.staff_id
		ORDER BY t.transfer_date DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("transfer history: %w", err)
	}
	defer rows.Close()
	var list []repository.TransferHistoryResult
	for rows.Next() {
		var th repository.TransferHistoryResult
		if err := rows.Scan(&th.ID, &th.TransferDate, &th.Status,
			&th.FromWarehouseName, &th.ToWarehouseName, &th.StaffName); err != nil {
			return nil, fmt.Errorf("scan transfer history: %w", err)
		}
		list = append(list, th)
	}
	return list, rows.Err()
}

// SalesTotal total vendido (ventas activas) en el rango [start, end].
func (r *ReportingRepo) SalesTotal(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(total_amount), 0)
		FROM sales_transactions
		WHERE status = $1 AND transaction_time >= $2 AND transaction_time <= $3`
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, query, entity.SaleStatusActive, start, end).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sales total: %w", err)
	}
	return total, nil
}

// TopSellingProducts los `limit` productos con más unidades vendidas en el rango.
// Desagrega las líneas jsonb de las ventas activas.
func (r *ReportingRepo) TopSellingProducts(ctx context.Context, start, end time.Time, limit int) ([]repository.TopProductResult, error) {
	query := `
		SELECT item->>'product_id',
			MAX(item->>'name_en'),
			SUM((item->>'quantity')::numeric),
			SUM((item->>'subtotal')::numeric)
		FROM sales_transactions s,
			jsonb_array_elements(s.sale_items) AS item
		WHERE s.status = $1 AND s.transaction_time >= $2 AND s.transaction_time <= $3
		GROUP BY item->>'product_id'
		ORDER BY SUM((item->>'quantity')::numeric) DESC
		LIMIT $4`
	rows, err := r.q.Query(ctx, query, entity.SaleStatusActive, start, end, limit)
	if err != nil {
		return nil, fmt.Errorf("top selling products: %w", err)
	}
	defer rows.Close()
	var list []repository.TopProductResult
	for rows.Next() {
		var tp repository.TopProductResult
		if err := rows.Scan(&tp.ProductID, &tp.NameEN, &tp.QuantitySold, &tp.Revenue); err != nil {
			return nil, fmt.Errorf("scan top product: %w", err)
		}
		list = append(list, tp)
	}
	return list, rows.Err()
}

// SalesReport agregados de ventas activas del período.
func (r *ReportingRepo) SalesReport(ctx context.Context, start, end time.Time) (*repository.SalesPeriodResult, error) {
	// El join lateral duplicaría total_amount por línea, así que el conteo de
	// unidades va aparte del total.
	query := `
		SELECT COUNT(DISTINCT s.id),
			COALESCE(SUM((item->>'quantity')::numeric), 0)
		FROM sales_transactions s
		LEFT JOIN LATERAL jsonb_array_elements(s.sale_items) AS item ON true
		WHERE s.status = $1 AND s.transaction_time >= $2 AND s.transaction_time <= $3`
	var res repository.SalesPeriodResult
	err := r.q.QueryRow(ctx, query, entity.SaleStatusActive, start, end).Scan(
		&res.TransactionCount, &res.ItemsSold)
	if err != nil {
		return nil, fmt.Errorf("sales report: %w", err)
	}
	total, err := r.SalesTotal(ctx, start, end)
	if err != nil {
		return nil, err
	}
	res.TotalRevenue = total
	return &res, nil
}

// StaffNames resuelve nombres de staff por ID.
func (r *ReportingRepo) StaffNames(ctx context.Context, ids []string) (map[string]string, error) {
	if len(ids) == 0 {
		return map[string]string{}, nil
	}
	rows, err := r.q.Query(ctx, `SELECT id, full_name FROM staff WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("staff names: %w", err)
	}
	defer rows.Close()
	names := make(map[string]string, len(ids))
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("scan staff name: %w", err)
		}
		names[id] = name
	}
	return names, rows.Err()
}

func scanProductStockRows(rows pgx.Rows) ([]repository.ProductStockResult, error) {
	var list []repository.ProductStockResult
	for rows.Next() {
		var p repository.ProductStockResult
		if err := rows.Scan(&p.ID, &p.SKU, &p.NameEN, &p.NameKM, &p.Description,
			&p.Category, &p.ImageURL, &p.SellingPrice, &p.ReorderPoint, &p.IsActive,
			&p.TotalStock); err != nil {
			return nil, fmt.Errorf("scan product stock: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
