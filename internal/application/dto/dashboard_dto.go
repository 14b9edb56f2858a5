package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LowStockItem producto bajo su punto de reorden.
type LowStockItem struct {
	ProductID    string          `json:"product_id"`
	SKU          string          `json:"sku"`
	NameEN       string          `json:"name_en"`
	TotalStock   decimal.Decimal `json:"quantity"`
	ReorderPoint int             `json:"reorder_point"`
}

// TopProduct producto más vendido en la ventana del dashboard.
type TopProduct struct {
	ProductID    string          `json:"product_id"`
	NameEN       string          `json:"name_en"`
	QuantitySold decimal.Decimal `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// DashboardSummaryResponse resumen del panel principal.
type DashboardSummaryResponse struct {
	SalesToday        decimal.Decimal `json:"sales_today"`
	SalesThisMonth    decimal.Decimal `json:"sales_this_month"`
	LowStockItemCount int             `json:"low_stock_item_count"`
	LowStockItems     []LowStockItem  `json:"low_stock_items"`
	TopSellingProducts []TopProduct   `json:"top_selling_products"`
}

// ExpiringSoonItem lote que vence dentro del horizonte configurado.
type ExpiringSoonItem struct {
	SKU           string          `json:"sku"`
	NameEN        string          `json:"name_en"`
	NameKM        string          `json:"name_km"`
	WarehouseName string          `json:"warehouse_name"`
	Quantity      decimal.Decimal `json:"quantity"`
	ExpiryDate    time.Time       `json:"expiry_date"`
	BatchNumber   string          `json:"batch_number"`
}

// SalesReportResponse agregados de ventas para un rango de fechas.
type SalesReportResponse struct {
	StartDate        string          `json:"start_date"`
	EndDate          string          `json:"end_date"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	TransactionCount int             `json:"transaction_count"`
	ItemsSold        decimal.Decimal `json:"items_sold"`
	TopProducts      []TopProduct    `json:"top_products"`
}
