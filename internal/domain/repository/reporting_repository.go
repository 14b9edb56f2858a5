package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ProductStockResult producto activo con su stock total (suma de lotes en todas las bodegas).
type ProductStockResult struct {
	ID           string
	SKU          string
	NameEN       string
	NameKM       string
	Description  string
	Category     string
	ImageURL     string
	SellingPrice decimal.Decimal
	ReorderPoint int
	IsActive     bool
	TotalStock   decimal.Decimal
}

// WarehouseStockResult stock de un producto en una bodega concreta (vista detallada).
type WarehouseStockResult struct {
	ProductID     string
	SKU           string
	NameEN        string
	NameKM        string
	WarehouseID   string
	WarehouseName string
	Quantity      decimal.Decimal
}

// ExpiringBatchResult lote con vencimiento dentro del horizonte configurado.
type ExpiringBatchResult struct {
	ProductID     string
	SKU           string
	NameEN        string
	NameKM        string
	WarehouseName string
	Quantity      decimal.Decimal
	ExpiryDate    time.Time
	BatchNumber   string
}

// SaleSummaryResult fila del historial de ventas con el nombre del vendedor resuelto.
type SaleSummaryResult struct {
	ID              string
	ReceiptNumber   string
	TransactionTime time.Time
	TotalAmount     decimal.Decimal
	PaymentMethod   string
	Status          string
	StaffName       string
}

// PurchaseHistoryResult fila del historial de compras (ajustes con reason=purchase_in).
type PurchaseHistoryResult struct {
	ID            string
	CreatedAt     time.Time
	Quantity      decimal.Decimal
	Reason        string
	Notes         string
	SKU           string
	NameEN        string
	NameKM        string
	WarehouseName string
	StaffName     string
}

// TransferHistoryResult fila del historial de traslados con nombres resueltos.
type TransferHistoryResult struct {
	ID                string
	TransferDate      time.Time
	Status            string
	FromWarehouseName string
	ToWarehouseName   string
	StaffName         string
}

// TopProductResult producto más vendido en una ventana de días.
type TopProductResult struct {
	ProductID    string
	NameEN       string
	QuantitySold decimal.Decimal
	Revenue      decimal.Decimal
}

// SalesPeriodResult agregados de ventas activas en un rango de fechas.
type SalesPeriodResult struct {
	TotalRevenue     decimal.Decimal
	TransactionCount int
	ItemsSold        decimal.Decimal
}

// ReportingRepository define las consultas de solo lectura para catálogos,
// históricos y dashboard. Las implementaciones no modifican datos; basta
// consistencia read-committed frente a escrituras concurrentes del motor.
type ReportingRepository interface {
	// ListProductsWithStock devuelve los productos (activos si onlyActive) con su stock total.
	ListProductsWithStock(ctx context.Context, onlyActive bool) ([]ProductStockResult, error)

	// GetProductWithStock devuelve un producto activo con su stock total, o nil si no existe.
	GetProductWithStock(ctx context.Context, id string) (*ProductStockResult, error)

	// DetailedInventory devuelve el stock por (producto, bodega), ordenado por nombre de producto.
	DetailedInventory(ctx context.Context) ([]WarehouseStockResult, error)

	// LowStockProducts devuelve productos activos cuyo stock total está bajo su punto
	// de reorden (o bajo fallbackThreshold si el producto no define uno).
	LowStockProducts(ctx context.Context, fallbackThreshold int) ([]ProductStockResult, error)

	// ExpiringBatches devuelve lotes con cantidad > 0 cuyo vencimiento cae en
	// [from, until]. Lotes ya vencidos quedan fuera si from es hoy.
	ExpiringBatches(ctx context.Context, from, until time.Time) ([]ExpiringBatchResult, error)

	// SalesHistory devuelve las ventas más recientes primero, con nombre del vendedor.
	SalesHistory(ctx context.Context, limit, offset int) ([]SaleSummaryResult, error)

	// PurchaseHistory devuelve los ajustes purchase_in más recientes primero.
	PurchaseHistory(ctx context.Context, limit, offset int) ([]PurchaseHistoryResult, error)

	// TransferHistory devuelve los traslados más recientes primero.
	TransferHistory(ctx context.Context, limit, offset int) ([]TransferHistoryResult, error)

	// SalesTotal devuelve el total vendido (ventas activas) en el rango [start, end].
	SalesTotal(ctx context.Context, start, end time.Time) (decimal.Decimal, error)

	// TopSellingProducts devuelve los `limit` productos con más unidades vendidas
	// en el rango [start, end].
	TopSellingProducts(ctx context.Context, start, end time.Time, limit int) ([]TopProductResult, error)

	// SalesReport devuelve los agregados de ventas del período.
	SalesReport(ctx context.Context, start, end time.Time) (*SalesPeriodResult, error)

	// StaffNames resuelve nombres de staff por ID (para enriquecer detalles de venta).
	StaffNames(ctx context.Context, ids []string) (map[string]string, error)
}
