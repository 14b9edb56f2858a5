package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sokha/pos-api/internal/application/dto"
	"github.com/sokha/pos-api/internal/domain"
	"github.com/sokha/pos-api/internal/domain/entity"
	"github.com/sokha/pos-api/internal/domain/repository"
)

// ProductUseCase CRUD de productos más las vistas de catálogo con stock.
type ProductUseCase struct {
	products  repository.ProductRepository
	reporting repository.ReportingRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(products repository.ProductRepository, reporting repository.ReportingRepository) *ProductUseCase {
	return &ProductUseCase{products: products, reporting: reporting}
}

// Create da de alta un producto activo. SKU duplicado → ErrDuplicate.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	existing, err := uc.products.GetBySKU(in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	p := &entity.Product{
		ID:            uuid.New().String(),
		SKU:           in.SKU,
		NameEN:        in.NameEN,
		NameKM:        in.NameKM,
		Description:   in.Description,
		Category:      in.Category,
		ImageURL:      in.ImageURL,
		SellingPrice:  in.SellingPrice,
		PurchasePrice: in.PurchasePrice,
		ReorderPoint:  in.ReorderPoint,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.products.Create(p); err != nil {
		return nil, err
	}
	return productToResponse(p), nil
}

// Update aplica una actualización parcial: solo los campos presentes mutan.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.products.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if in.SKU != nil {
		p.SKU = *in.SKU
	}
	if in.NameEN != nil {
		p.NameEN = *in.NameEN
	}
	if in.NameKM != nil {
		p.NameKM = *in.NameKM
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
	if in.ImageURL != nil {
		p.ImageURL = *in.ImageURL
	}
	if in.SellingPrice != nil {
		p.SellingPrice = *in.SellingPrice
	}
	if in.PurchasePrice != nil {
		p.PurchasePrice = *in.PurchasePrice
	}
	if in.ReorderPoint != nil {
		p.ReorderPoint = *in.ReorderPoint
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	p.UpdatedAt = time.Now()
	if err := uc.products.Update(p); err != nil {
		return nil, err
	}
	return productToResponse(p), nil
}

// Deactivate borrado lógico del producto (is_active = false).
func (uc *ProductUseCase) Deactivate(id string) error {
	p, err := uc.products.GetByID(id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	return uc.products.Deactivate(id)
}

// ListWithStock devuelve los productos activos con su stock total.
func (uc *ProductUseCase) ListWithStock(ctx context.Context) ([]dto.ProductResponse, error) {
	rows, err := uc.reporting.ListProductsWithStock(ctx, true)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, stockResultToResponse(r))
	}
	return out, nil
}

// GetWithStock devuelve un producto activo con su stock total.
func (uc *ProductUseCase) GetWithStock(ctx context.Context, id string) (*dto.ProductResponse, error) {
	r, err := uc.reporting.GetProductWithStock(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	resp := stockResultToResponse(*r)
	return &resp, nil
}

// PublicCatalog vista pública: productos activos con su nivel de stock.
func (uc *ProductUseCase) PublicCatalog(ctx context.Context) ([]dto.PublicProductResponse, error) {
	rows, err := uc.reporting.ListProductsWithStock(ctx, true)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PublicProductResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.PublicProductResponse{
			ID:           r.ID,
			NameEN:       r.NameEN,
			Category:     r.Category,
			ImageURL:     r.ImageURL,
			SellingPrice: r.SellingPrice,
			StockLevel:   r.TotalStock,
		})
	}
	return out, nil
}

// DetailedInventory stock por (producto, bodega) para la vista de inventario.
func (uc *ProductUseCase) DetailedInventory(ctx context.Context) ([]dto.WarehouseStockItem, error) {
	rows, err := uc.reporting.DetailedInventory(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.WarehouseStockItem, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.WarehouseStockItem{
			ProductID:     r.ProductID,
			SKU:           r.SKU,
			NameEN:        r.NameEN,
			NameKM:        r.NameKM,
			WarehouseID:   r.WarehouseID,
			WarehouseName: r.WarehouseName,
			Quantity:      r.Quantity,
		})
	}
	return out, nil
}

func productToResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:            p.ID,
		SKU:           p.SKU,
		NameEN:        p.NameEN,
		NameKM:        p.NameKM,
		Description:   p.Description,
		Category:      p.Category,
		ImageURL:      p.ImageURL,
		SellingPrice:  p.SellingPrice,
		PurchasePrice: p.PurchasePrice,
		ReorderPoint:  p.ReorderPoint,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func stockResultToResponse(r repository.ProductStockResult) dto.ProductResponse {
	return dto.ProductResponse{
		ID:           r.ID,
		SKU:          r.SKU,
		NameEN:       r.NameEN,
		NameKM:       r.NameKM,
		Description:  r.Description,
		Category:     r.Category,
		ImageURL:     r.ImageURL,
		SellingPrice: r.SellingPrice,
		ReorderPoint: r.ReorderPoint,
		IsActive:     r.IsActive,
		TotalStock:   r.TotalStock,
	}
}
