package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sokha/pos-api/internal/domain"
	"github.com/sokha/pos-api/internal/domain/entity"
)

// SaleLine línea de venta que envía el cliente. El precio unitario NO se toma
// de aquí: se resuelve del precio vigente del producto (ver ProcessSale).
type SaleLine struct {
	ProductID string
	Quantity  decimal.Decimal
}

// SaleInput entrada para procesar una venta.
type SaleInput struct {
	StaffID       string
	WarehouseID   string
	Items         []SaleLine
	TotalAmount   decimal.Decimal
	PaymentMethod string
}

// ProcessSale procesa una venta de forma atómica: por cada línea descuenta
// stock FIFO en la bodega (ErrInsufficientStock si no alcanza) y escribe un
// ajuste sale_out; al final crea una SalesTransaction con las líneas y el
// precio capturado al momento de la venta. Devuelve la venta creada.
//
// Verificación estricta de total: el precio unitario se resuelve del precio
// de venta vigente del producto y TotalAmount debe coincidir con la suma de
// subtotales; si no, ErrInvalidInput. Nunca se confía en precios enviados
// por el cliente.
func (uc *InventoryUseCase) ProcessSale(ctx context.Context, in SaleInput) (*entity.SalesTransaction, error) {
	if in.StaffID == "" {
		return nil, domain.ErrUnauthorized
	}
	if in.WarehouseID == "" || len(in.Items) == 0 || in.PaymentMethod == "" {
		return nil, domain.ErrInvalidInput
	}
	for _, line := range in.Items {
		if line.ProductID == "" || !line.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}
	wh, err := uc.warehouses.GetByID(in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, domain.ErrNotFound
	}

	ids := make([]string, 0, len(in.Items))
	for _, line := range in.Items {
		ids = append(ids, line.ProductID)
	}

	now := time.Now()
	var sale *entity.SalesTransaction
	err = uc.tx.Run(ctx, func(r TxRepos) error {
		// Precio autoritativo leído dentro de la misma transacción que
		// descuenta el stock: la foto de las líneas queda consistente.
		products, err := r.Products.GetActiveByIDs(ids)
		if err != nil {
			return err
		}
		byID := make(map[string]*entity.Product, len(products))
		for _, p := range products {
			byID[p.ID] = p
		}

		items := make([]entity.SaleItem, 0, len(in.Items))
		total := decimal.Zero
		for _, line := range in.Items {
			p, ok := byID[line.ProductID]
			if !ok {
				return domain.ErrNotFound
			}
			subtotal := p.SellingPrice.Mul(line.Quantity)
			items = append(items, entity.SaleItem{
				ProductID: p.ID,
				NameEN:    p.NameEN,
				Quantity:  line.Quantity,
				UnitPrice: p.SellingPrice,
				Subtotal:  subtotal,
			})
			total = total.Add(subtotal)
		}
		if !total.Equal(in.TotalAmount) {
			return domain.ErrInvalidInput
		}

		sale = &entity.SalesTransaction{
			ID:              uuid.New().String(),
			ReceiptNumber:   newReceiptNumber(now),
			StaffID:         in.StaffID,
			WarehouseID:     in.WarehouseID,
			SaleItems:       items,
			TotalAmount:     total,
			PaymentMethod:   in.PaymentMethod,
			Status:          entity.SaleStatusActive,
			TransactionTime: now,
		}
		for _, item := range sale.SaleItems {
			if _, err := drainFIFO(r.Batches, item.ProductID, in.WarehouseID, item.Quantity); err != nil {
				return err
			}
			adj := &entity.StockAdjustment{
				ID:          uuid.New().String(),
				ProductID:   item.ProductID,
				WarehouseID: in.WarehouseID,
				StaffID:     in.StaffID,
				Quantity:    item.Quantity.Neg(),
				Reason:      entity.ReasonSaleOut,
				Notes:       "Venta " + sale.ReceiptNumber,
				CreatedAt:   now,
			}
			if err := r.Adjustments.Create(adj); err != nil {
				return err
			}
		}
		return r.Sales.Create(sale)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("sale_id", sale.ID).
		Str("receipt", sale.ReceiptNumber).
		Str("total", sale.TotalAmount.String()).
		Msg("venta procesada")
	return sale, nil
}

// RevertSale es la transacción compensatoria de una venta: re-ingresa el
// stock de cada línea a la bodega original como lote nuevo, escribe un ajuste
// reversal por línea y marca la venta como reverted. Segunda reversión del
// mismo ID → ErrConflict sin mutación adicional.
func (uc *InventoryUseCase) RevertSale(ctx context.Context, saleID, staffID string) error {
	if staffID == "" {
		return domain.ErrUnauthorized
	}
	if saleID == "" {
		return domain.ErrInvalidInput
	}
	err := uc.tx.Run(ctx, func(r TxRepos) error {
		sale, err := r.Sales.GetForUpdate(saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		if sale.Status == entity.SaleStatusReverted {
			return domain.ErrConflict
		}
		now := time.Now()
		for _, item := range sale.SaleItems {
			batch := &entity.InventoryBatch{
				ID:          uuid.New().String(),
				ProductID:   item.ProductID,
				WarehouseID: sale.WarehouseID,
				Quantity:    item.Quantity,
				CreatedAt:   now,
			}
			if err := r.Batches.Insert(batch); err != nil {
				return err
			}
			adj := &entity.StockAdjustment{
				ID:          uuid.New().String(),
				ProductID:   item.ProductID,
				WarehouseID: sale.WarehouseID,
				StaffID:     staffID,
				Quantity:    item.Quantity,
				Reason:      entity.ReasonReversal,
				Notes:       "Reversión de venta " + sale.ReceiptNumber,
				CreatedAt:   now,
			}
			if err := r.Adjustments.Create(adj); err != nil {
				return err
			}
		}
		return r.Sales.MarkReverted(saleID, staffID, now)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("sale_id", saleID).Str("staff_id", staffID).Msg("venta revertida")
	return nil
}

// newReceiptNumber genera un número de recibo legible: RCP-YYYYMMDD-XXXXXXXX.
func newReceiptNumber(at time.Time) string {
	suffix := strings.ToUpper(uuid.New().String()[:8])
	return fmt.Sprintf("RCP-%s-%s", at.Format("20060102"), suffix)
}
