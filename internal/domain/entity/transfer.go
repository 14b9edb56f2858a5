package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un traslado. pending es transitorio: esta implementación solo
// persiste completed (o falla antes de crear el registro).
const (
	TransferStatusPending   = "pending"
	TransferStatusCompleted = "completed"
	TransferStatusFailed    = "failed"
)

// TransferItem es una línea de traslado (producto, cantidad).
type TransferItem struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// StockTransfer representa un traslado de stock entre dos bodegas.
// Invariante: bodega origen ≠ bodega destino. El traslado es todo-o-nada:
// todas las líneas se mueven o ninguna produce efecto.
type StockTransfer struct {
	ID              string
	FromWarehouseID string
	ToWarehouseID   string
	StaffID         string
	Items           []TransferItem
	Status          string
	Notes           string
	TransferDate    time.Time
}
