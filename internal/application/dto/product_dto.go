package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest alta de producto.
type CreateProductRequest struct {
	SKU           string          `json:"sku" validate:"required"`
	NameEN        string          `json:"name_en" validate:"required"`
	NameKM        string          `json:"name_km"`
	Description   string          `json:"description"`
	Category      string          `json:"category" validate:"required"`
	ImageURL      string          `json:"image_url"`
	SellingPrice  decimal.Decimal `json:"selling_price" validate:"required"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	ReorderPoint  int             `json:"reorder_point" validate:"omitempty,min=0"`
}

// UpdateProductRequest actualización parcial: solo los campos presentes se aplican.
type UpdateProductRequest struct {
	SKU           *string          `json:"sku,omitempty"`
	NameEN        *string          `json:"name_en,omitempty"`
	NameKM        *string          `json:"name_km,omitempty"`
	Description   *string          `json:"description,omitempty"`
	Category      *string          `json:"category,omitempty"`
	ImageURL      *string          `json:"image_url,omitempty"`
	SellingPrice  *decimal.Decimal `json:"selling_price,omitempty"`
	PurchasePrice *decimal.Decimal `json:"purchase_price,omitempty"`
	ReorderPoint  *int             `json:"reorder_point,omitempty" validate:"omitempty,min=0"`
	IsActive      *bool            `json:"is_active,omitempty"`
}

// ProductResponse producto con su stock total para el panel interno.
type ProductResponse struct {
	ID            string          `json:"id"`
	SKU           string          `json:"sku"`
	NameEN        string          `json:"name_en"`
	NameKM        string          `json:"name_km"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	ImageURL      string          `json:"image_url"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	PurchasePrice decimal.Decimal `json:"purchase_price,omitempty"`
	ReorderPoint  int             `json:"reorder_point"`
	IsActive      bool            `json:"is_active"`
	TotalStock    decimal.Decimal `json:"total_stock"`
	CreatedAt     time.Time       `json:"created_at,omitzero"`
	UpdatedAt     time.Time       `json:"updated_at,omitzero"`
}

// PublicProductResponse vista pública del catálogo (solo activos).
type PublicProductResponse struct {
	ID           string          `json:"id"`
	NameEN       string          `json:"name_en"`
	Category     string          `json:"category"`
	ImageURL     string          `json:"image_url"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	StockLevel   decimal.Decimal `json:"stock_level"`
}

// WarehouseStockItem stock de un producto en una bodega (vista detallada).
type WarehouseStockItem struct {
	ProductID     string          `json:"product_id"`
	SKU           string          `json:"sku"`
	NameEN        string          `json:"name_en"`
	NameKM        string          `json:"name_km"`
	WarehouseID   string          `json:"warehouse_id"`
	WarehouseName string          `json:"warehouse_name"`
	Quantity      decimal.Decimal `json:"quantity"`
}
