package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sokha/pos-api/internal/domain"
	"github.com/sokha/pos-api/internal/domain/entity"
	"github.com/sokha/pos-api/internal/domain/repository"
	"github.com/sokha/pos-api/pkg/logger"
)

// InventoryUseCase es el motor de inventario: las cinco operaciones atómicas
// que mutan lotes, ajustes, traslados y ventas. Cada operación corre dentro
// de una transacción con bloqueo de fila (SELECT FOR UPDATE) sobre los lotes
// que toca; operaciones concurrentes sobre el mismo (producto, bodega) nunca
// dejan cantidades negativas ni ajustes inconsistentes con el lote resultante.
//
// Nota de diseño: la inserción del lote y su ajuste de auditoría en
// RecordPurchase se hacen en UNA sola transacción (todo-o-nada); un lote
// sin su ajuste purchase_in rompe la auditoría.
type InventoryUseCase struct {
	tx         TxRunner
	products   repository.ProductRepository
	warehouses repository.WarehouseRepository
	log        *logger.Logger
}

// NewInventoryUseCase construye el motor de inventario.
func NewInventoryUseCase(
	tx TxRunner,
	products repository.ProductRepository,
	warehouses repository.WarehouseRepository,
	log *logger.Logger,
) *InventoryUseCase {
	return &InventoryUseCase{tx: tx, products: products, warehouses: warehouses, log: log}
}

// ── Entradas ──────────────────────────────────────────────────────────────────

// PurchaseInput entrada para registrar una compra (lote nuevo).
type PurchaseInput struct {
	ProductID   string
	WarehouseID string
	Quantity    decimal.Decimal
	ExpiryDate  *time.Time
	BatchNumber string
	Cost        *decimal.Decimal // opcional; queda en las notas del ajuste de auditoría
	Notes       string
	StaffID     string
}

// AdjustmentInput entrada para un ajuste manual de stock.
type AdjustmentInput struct {
	ProductID   string
	WarehouseID string
	Delta       decimal.Decimal // con signo, distinto de cero
	Reason      string
	Notes       string
	StaffID     string
}

// validReasons razones aceptadas en un ajuste manual. purchase_in, transfer_*
// y reversal las escriben solo sus operaciones dedicadas.
var validReasons = map[string]bool{
	entity.ReasonSaleOut:    true,
	entity.ReasonAdjustment: true,
}

// ── RecordPurchase ────────────────────────────────────────────────────────────

// RecordPurchase crea un lote nuevo de inventario y su ajuste purchase_in en
// una sola transacción. No toca otros lotes del mismo producto. Devuelve el
// lote creado.
func (uc *InventoryUseCase) RecordPurchase(ctx context.Context, in PurchaseInput) (*entity.InventoryBatch, error) {
	if in.StaffID == "" {
		return nil, domain.ErrUnauthorized
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkProductAndWarehouse(in.ProductID, in.WarehouseID); err != nil {
		return nil, err
	}

	now := time.Now()
	batch := &entity.InventoryBatch{
		ID:          uuid.New().String(),
		ProductID:   in.ProductID,
		WarehouseID: in.WarehouseID,
		Quantity:    in.Quantity,
		ExpiryDate:  in.ExpiryDate,
		BatchNumber: in.BatchNumber,
		CreatedAt:   now,
	}

	err := uc.tx.Run(ctx, func(r TxRepos) error {
		if err := r.Batches.Insert(batch); err != nil {
			return err
		}
		adj := &entity.StockAdjustment{
			ID:          uuid.New().String(),
			ProductID:   in.ProductID,
			WarehouseID: in.WarehouseID,
			StaffID:     in.StaffID,
			Quantity:    in.Quantity,
			Reason:      entity.ReasonPurchaseIn,
			Notes:       purchaseNotes(in),
			CreatedAt:   now,
		}
		return r.Adjustments.Create(adj)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("product_id", in.ProductID).
		Str("warehouse_id", in.WarehouseID).
		Str("quantity", in.Quantity.String()).
		Msg("compra registrada: lote nuevo")
	return batch, nil
}

func purchaseNotes(in PurchaseInput) string {
	batchNo := in.BatchNumber
	if batchNo == "" {
		batchNo = "N/A"
	}
	expires := "N/A"
	if in.ExpiryDate != nil {
		expires = in.ExpiryDate.Format("2006-01-02")
	}
	notes := fmt.Sprintf("Batch: %s. Expires: %s.", batchNo, expires)
	if in.Cost != nil {
		notes += fmt.Sprintf(" Unit cost: %s.", in.Cost.String())
	}
	if in.Notes != "" {
		notes += " " + in.Notes
	}
	return notes
}

// ── AdjustStock ───────────────────────────────────────────────────────────────

// AdjustStock aplica un delta con signo al stock de (producto, bodega) y
// escribe un StockAdjustment. Delta positivo crea un lote nuevo (los lotes
// nunca se fusionan); delta negativo descuenta de los lotes existentes en
// orden FIFO por vencimiento. Falla con ErrInsufficientStock si el total
// disponible no alcanza, sin efecto parcial alguno.
func (uc *InventoryUseCase) AdjustStock(ctx context.Context, in AdjustmentInput) error {
	if in.StaffID == "" {
		return domain.ErrUnauthorized
	}
	if in.Delta.IsZero() || in.Reason == "" {
		return domain.ErrInvalidInput
	}
	if !validReasons[in.Reason] {
		return domain.ErrInvalidInput
	}
	// sale_out es siempre una salida: un delta positivo dejaría un lote de
	// entrada con razón de salida en la auditoría.
	if in.Reason == entity.ReasonSaleOut && in.Delta.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if err := uc.checkProductAndWarehouse(in.ProductID, in.WarehouseID); err != nil {
		return err
	}

	now := time.Now()
	return uc.tx.Run(ctx, func(r TxRepos) error {
		if in.Delta.GreaterThan(decimal.Zero) {
			batch := &entity.InventoryBatch{
				ID:          uuid.New().String(),
				ProductID:   in.ProductID,
				WarehouseID: in.WarehouseID,
				Quantity:    in.Delta,
				CreatedAt:   now,
			}
			if err := r.Batches.Insert(batch); err != nil {
				return err
			}
		} else {
			if _, err := drainFIFO(r.Batches, in.ProductID, in.WarehouseID, in.Delta.Neg()); err != nil {
				return err
			}
		}
		adj := &entity.StockAdjustment{
			ID:          uuid.New().String(),
			ProductID:   in.ProductID,
			WarehouseID: in.WarehouseID,
			StaffID:     in.StaffID,
			Quantity:    in.Delta,
			Reason:      in.Reason,
			Notes:       in.Notes,
			CreatedAt:   now,
		}
		return r.Adjustments.Create(adj)
	})
}

// ── Helpers compartidos por las operaciones ───────────────────────────────────

func (uc *InventoryUseCase) checkProductAndWarehouse(productID, warehouseID string) error {
	product, err := uc.products.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil || !product.IsActive {
		return domain.ErrNotFound
	}
	wh, err := uc.warehouses.GetByID(warehouseID)
	if err != nil {
		return err
	}
	if wh == nil {
		return domain.ErrNotFound
	}
	return nil
}

// batchDraw cuánto se tomó de qué lote al descontar stock.
type batchDraw struct {
	Batch *entity.InventoryBatch
	Taken decimal.Decimal
}

// drainFIFO descuenta `qty` del stock de (producto, bodega) recorriendo los
// lotes bloqueados en orden FIFO por vencimiento (el lote que vence primero se
// consume primero; lotes sin vencimiento al final). Si el total disponible no
// alcanza, devuelve ErrInsufficientStock SIN escribir nada. Los lotes que
// quedan en cero se conservan para auditoría.
func drainFIFO(batches repository.BatchRepository, productID, warehouseID string, qty decimal.Decimal) ([]batchDraw, error) {
	locked, err := batches.ListForUpdate(productID, warehouseID)
	if err != nil {
		return nil, err
	}
	available := decimal.Zero
	for _, b := range locked {
		available = available.Add(b.Quantity)
	}
	if available.LessThan(qty) {
		return nil, domain.ErrInsufficientStock
	}

	var draws []batchDraw
	remaining := qty
	for _, b := range locked {
		if !remaining.GreaterThan(decimal.Zero) {
			break
		}
		if !b.Quantity.GreaterThan(decimal.Zero) {
			continue
		}
		take := decimal.Min(b.Quantity, remaining)
		if err := batches.UpdateQuantity(b.ID, b.Quantity.Sub(take)); err != nil {
			return nil, err
		}
		draws = append(draws, batchDraw{Batch: b, Taken: take})
		remaining = remaining.Sub(take)
	}
	return draws, nil
}
