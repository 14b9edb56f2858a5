package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sokha/pos-api/internal/domain"
	"github.com/sokha/pos-api/internal/domain/entity"
)

// TransferInput entrada para un traslado de stock entre bodegas.
type TransferInput struct {
	FromWarehouseID string
	ToWarehouseID   string
	Items           []entity.TransferItem
	Notes           string
	StaffID         string
}

// TransferStock mueve stock de una bodega a otra de forma atómica: por cada
// línea descuenta FIFO en origen (fallando todo con ErrInsufficientStock si
// una sola línea no alcanza), crea lotes nuevos en destino conservando
// vencimiento y número de lote, y escribe un ajuste transfer_out y uno
// transfer_in por línea. Al final registra un StockTransfer con status
// completed. Todo-o-nada: ningún efecto de línea sobrevive al fallo de otra.
// Devuelve el ID del traslado.
func (uc *InventoryUseCase) TransferStock(ctx context.Context, in TransferInput) (string, error) {
	if in.StaffID == "" {
		return "", domain.ErrUnauthorized
	}
	if in.FromWarehouseID == "" || in.ToWarehouseID == "" || len(in.Items) == 0 {
		return "", domain.ErrInvalidInput
	}
	if in.FromWarehouseID == in.ToWarehouseID {
		return "", domain.ErrInvalidInput
	}
	for _, item := range in.Items {
		if item.ProductID == "" || !item.Quantity.GreaterThan(decimal.Zero) {
			return "", domain.ErrInvalidInput
		}
	}
	from, err := uc.warehouses.GetByID(in.FromWarehouseID)
	if err != nil {
		return "", err
	}
	to, err := uc.warehouses.GetByID(in.ToWarehouseID)
	if err != nil {
		return "", err
	}
	if from == nil || to == nil {
		return "", domain.ErrNotFound
	}
	for _, item := range in.Items {
		product, err := uc.products.GetByID(item.ProductID)
		if err != nil {
			return "", err
		}
		if product == nil {
			return "", domain.ErrNotFound
		}
	}

	now := time.Now()
	transferID := uuid.New().String()

	err = uc.tx.Run(ctx, func(r TxRepos) error {
		for _, item := range in.Items {
			draws, err := drainFIFO(r.Batches, item.ProductID, in.FromWarehouseID, item.Quantity)
			if err != nil {
				return err
			}
			// Lo extraído de cada lote de origen entra como lote nuevo en el
			// destino, conservando vencimiento y número de lote.
			for _, d := range draws {
				dest := &entity.InventoryBatch{
					ID:          uuid.New().String(),
					ProductID:   item.ProductID,
					WarehouseID: in.ToWarehouseID,
					Quantity:    d.Taken,
					ExpiryDate:  d.Batch.ExpiryDate,
					BatchNumber: d.Batch.BatchNumber,
					CreatedAt:   now,
				}
				if err := r.Batches.Insert(dest); err != nil {
					return err
				}
			}
			out := &entity.StockAdjustment{
				ID:          uuid.New().String(),
				ProductID:   item.ProductID,
				WarehouseID: in.FromWarehouseID,
				StaffID:     in.StaffID,
				Quantity:    item.Quantity.Neg(),
				Reason:      entity.ReasonTransferOut,
				Notes:       in.Notes,
				CreatedAt:   now,
			}
			if err := r.Adjustments.Create(out); err != nil {
				return err
			}
			inAdj := &entity.StockAdjustment{
				ID:          uuid.New().String(),
				ProductID:   item.ProductID,
				WarehouseID: in.ToWarehouseID,
				StaffID:     in.StaffID,
				Quantity:    item.Quantity,
				Reason:      entity.ReasonTransferIn,
				Notes:       in.Notes,
				CreatedAt:   now,
			}
			if err := r.Adjustments.Create(inAdj); err != nil {
				return err
			}
		}
		transfer := &entity.StockTransfer{
			ID:              transferID,
			FromWarehouseID: in.FromWarehouseID,
			ToWarehouseID:   in.ToWarehouseID,
			StaffID:         in.StaffID,
			Items:           in.Items,
			Status:          entity.TransferStatusCompleted,
			Notes:           in.Notes,
			TransferDate:    now,
		}
		return r.Transfers.Create(transfer)
	})
	if err != nil {
		return "", err
	}
	uc.log.Info().
		Str("transfer_id", transferID).
		Str("from", in.FromWarehouseID).
		Str("to", in.ToWarehouseID).
		Int("lines", len(in.Items)).
		Msg("traslado de stock completado")
	return transferID, nil
}
