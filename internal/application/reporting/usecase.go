package reporting

import (
	"context"
	"time"

	"github.com/sokha/pos-api/internal/application/dto"
	"github.com/sokha/pos-api/internal/domain"
	"github.com/sokha/pos-api/internal/domain/entity"
	"github.com/sokha/pos-api/internal/domain/repository"
)

// Ventana y tamaño del top de productos del dashboard.
const (
	topProductsWindowDays = 30
	topProductsLimit      = 5
)

// ReportingUseCase proyecciones de solo lectura: dashboard, históricos y
// reporte de ventas. No muta nada; tolera escrituras concurrentes del motor.
type ReportingUseCase struct {
	repo              repository.ReportingRepository
	sales             repository.SaleRepository
	lowStockThreshold int
	expiryHorizon     time.Duration
}

// NewReportingUseCase construye el caso de uso. lowStockThreshold aplica a
// productos sin punto de reorden propio; expiryHorizonDays define "vence pronto".
func NewReportingUseCase(
	repo repository.ReportingRepository,
	sales repository.SaleRepository,
	lowStockThreshold, expiryHorizonDays int,
) *ReportingUseCase {
	return &ReportingUseCase{
		repo:              repo,
		sales:             sales,
		lowStockThreshold: lowStockThreshold,
		expiryHorizon:     time.Duration(expiryHorizonDays) * 24 * time.Hour,
	}
}

// DashboardSummary resumen del panel: ventas de hoy y del mes, stock bajo y
// productos más vendidos de los últimos 30 días.
func (uc *ReportingUseCase) DashboardSummary(ctx context.Context) (*dto.DashboardSummaryResponse, error) {
	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	salesToday, err := uc.repo.SalesTotal(ctx, todayStart, now)
	if err != nil {
		return nil, err
	}
	salesMonth, err := uc.repo.SalesTotal(ctx, monthStart, now)
	if err != nil {
		return nil, err
	}
	lowStock, err := uc.repo.LowStockProducts(ctx, uc.lowStockThreshold)
	if err != nil {
		return nil, err
	}
	top, err := uc.repo.TopSellingProducts(ctx, now.AddDate(0, 0, -topProductsWindowDays), now, topProductsLimit)
	if err != nil {
		return nil, err
	}

	out := &dto.DashboardSummaryResponse{
		SalesToday:         salesToday,
		SalesThisMonth:     salesMonth,
		LowStockItemCount:  len(lowStock),
		LowStockItems:      make([]dto.LowStockItem, 0, len(lowStock)),
		TopSellingProducts: toTopProducts(top),
	}
	for _, p := range lowStock {
		out.LowStockItems = append(out.LowStockItems, dto.LowStockItem{
			ProductID:    p.ID,
			SKU:          p.SKU,
			NameEN:       p.NameEN,
			TotalStock:   p.TotalStock,
			ReorderPoint: p.ReorderPoint,
		})
	}
	return out, nil
}

// ExpiringSoon lotes con cantidad > 0 que vencen entre hoy y el horizonte.
// Lotes ya vencidos no son "por vencer": el límite inferior es hoy a medianoche.
func (uc *ReportingUseCase) ExpiringSoon(ctx context.Context) ([]dto.ExpiringSoonItem, error) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	rows, err := uc.repo.ExpiringBatches(ctx, from, now.Add(uc.expiryHorizon))
	if err != nil {
		return nil, err
	}
	out := make([]dto.ExpiringSoonItem, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ExpiringSoonItem{
			SKU:           r.SKU,
			NameEN:        r.NameEN,
			NameKM:        r.NameKM,
			WarehouseName: r.WarehouseName,
			Quantity:      r.Quantity,
			ExpiryDate:    r.ExpiryDate,
			BatchNumber:   r.BatchNumber,
		})
	}
	return out, nil
}

// SalesHistory ventas más recientes primero, con nombre del vendedor resuelto.
func (uc *ReportingUseCase) SalesHistory(ctx context.Context, limit, offset int) ([]dto.SaleSummary, error) {
	rows, err := uc.repo.SalesHistory(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleSummary, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.SaleSummary{
			ID:              r.ID,
			ReceiptNumber:   r.ReceiptNumber,
			TransactionTime: r.TransactionTime,
			TotalAmount:     r.TotalAmount,
			PaymentMethod:   r.PaymentMethod,
			Status:          r.Status,
			StaffName:       r.StaffName,
		})
	}
	return out, nil
}

// SaleDetail detalle de una venta. Las líneas son la foto tomada al vender
// (precio y nombre capturados); solo se resuelve el nombre del vendedor.
func (uc *ReportingUseCase) SaleDetail(ctx context.Context, id string) (*dto.SaleResponse, error) {
	sale, err := uc.sales.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	names, err := uc.repo.StaffNames(ctx, []string{sale.StaffID})
	if err != nil {
		return nil, err
	}
	return saleToResponse(sale, names[sale.StaffID]), nil
}

// PurchaseHistory ajustes purchase_in más recientes primero.
func (uc *ReportingUseCase) PurchaseHistory(ctx context.Context, limit, offset int) ([]dto.PurchaseHistoryItem, error) {
	rows, err := uc.repo.PurchaseHistory(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PurchaseHistoryItem, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.PurchaseHistoryItem{
			ID:            r.ID,
			CreatedAt:     r.CreatedAt,
			Quantity:      r.Quantity,
			Reason:        r.Reason,
			Notes:         r.Notes,
			SKU:           r.SKU,
			NameEN:        r.NameEN,
			NameKM:        r.NameKM,
			WarehouseName: r.WarehouseName,
			StaffName:     r.StaffName,
		})
	}
	return out, nil
}

// TransferHistory traslados más recientes primero, con nombres resueltos.
func (uc *ReportingUseCase) TransferHistory(ctx context.Context, limit, offset int) ([]dto.TransferHistoryItem, error) {
	rows, err := uc.repo.TransferHistory(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TransferHistoryItem, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.TransferHistoryItem{
			ID:            r.ID,
			TransferDate:  r.TransferDate,
			Status:        r.Status,
			FromWarehouse: r.FromWarehouseName,
			ToWarehouse:   r.ToWarehouseName,
			Initiator:     r.StaffName,
		})
	}
	return out, nil
}

// SalesReport agregados de ventas para un rango de fechas (ambos inclusive).
func (uc *ReportingUseCase) SalesReport(ctx context.Context, start, end time.Time) (*dto.SalesReportResponse, error) {
	if end.Before(start) {
		return nil, domain.ErrInvalidInput
	}
	// end es una fecha: cubrir el día completo.
	endOfDay := time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 0, end.Location())
	agg, err := uc.repo.SalesReport(ctx, start, endOfDay)
	if err != nil {
		return nil, err
	}
	top, err := uc.repo.TopSellingProducts(ctx, start, endOfDay, topProductsLimit)
	if err != nil {
		return nil, err
	}
	return &dto.SalesReportResponse{
		StartDate:        start.Format("2006-01-02"),
		EndDate:          end.Format("2006-01-02"),
		TotalRevenue:     agg.TotalRevenue,
		TransactionCount: agg.TransactionCount,
		ItemsSold:        agg.ItemsSold,
		TopProducts:      toTopProducts(top),
	}, nil
}

func toTopProducts(rows []repository.TopProductResult) []dto.TopProduct {
	out := make([]dto.TopProduct, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.TopProduct{
			ProductID:    r.ProductID,
			NameEN:       r.NameEN,
			QuantitySold: r.QuantitySold,
			Revenue:      r.Revenue,
		})
	}
	return out
}

func saleToResponse(sale *entity.SalesTransaction, staffName string) *dto.SaleResponse {
	items := make([]dto.SaleItemResponse, 0, len(sale.SaleItems))
	for _, it := range sale.SaleItems {
		items = append(items, dto.SaleItemResponse{
			ProductID: it.ProductID,
			NameEN:    it.NameEN,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal,
		})
	}
	return &dto.SaleResponse{
		ID:              sale.ID,
		ReceiptNumber:   sale.ReceiptNumber,
		TransactionTime: sale.TransactionTime,
		TotalAmount:     sale.TotalAmount,
		PaymentMethod:   sale.PaymentMethod,
		Status:          sale.Status,
		StaffName:       staffName,
		SaleItems:       items,
	}
}
