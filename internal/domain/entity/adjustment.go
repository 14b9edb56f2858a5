package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Razones válidas para un ajuste de stock.
const (
	ReasonPurchaseIn  = "purchase_in"  // entrada por compra (lote nuevo)
	ReasonSaleOut     = "sale_out"     // salida por venta
	ReasonAdjustment  = "adjustment"   // ajuste manual (merma, conteo, daño)
	ReasonTransferOut = "transfer_out" // salida por traslado entre bodegas
	ReasonTransferIn  = "transfer_in"  // entrada por traslado entre bodegas
	ReasonReversal    = "reversal"     // reversión de una venta
)

// StockAdjustment es el registro de auditoría de todo cambio de cantidad en inventario.
// Append-only: nunca se actualiza ni se elimina. Toda mutación de un lote debe
// producir exactamente un StockAdjustment con el signo correspondiente.
type StockAdjustment struct {
	ID          string
	ProductID   string
	WarehouseID string
	StaffID     string
	Quantity    decimal.Decimal // delta con signo: positivo entrada, negativo salida
	Reason      string
	Notes       string
	CreatedAt   time.Time
}
