package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU a la venta.
// Nombre bilingüe (inglés/jemer) porque los recibos y el catálogo público se muestran en ambos idiomas.
// El stock NO vive aquí: se maneja por lotes en InventoryBatch.
type Product struct {
	ID            string
	SKU           string // código único
	NameEN        string
	NameKM        string
	Description   string
	Category      string
	ImageURL      string
	SellingPrice  decimal.Decimal
	PurchasePrice decimal.Decimal
	ReorderPoint  int  // umbral de stock bajo
	IsActive      bool // borrado lógico: nunca se elimina la fila
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
