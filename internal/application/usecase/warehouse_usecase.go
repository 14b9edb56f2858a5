package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/sokha/pos-api/internal/application/dto"
	"github.com/sokha/pos-api/internal/domain"
	"github.com/sokha/pos-api/internal/domain/entity"
	"github.com/sokha/pos-api/internal/domain/repository"
)

// WarehouseUseCase CRUD de bodegas. Las bodegas nunca se eliminan.
type WarehouseUseCase struct {
	warehouses repository.WarehouseRepository
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(warehouses repository.WarehouseRepository) *WarehouseUseCase {
	return &WarehouseUseCase{warehouses: warehouses}
}

// Create da de alta una bodega.
func (uc *WarehouseUseCase) Create(in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	now := time.Now()
	w := &entity.Warehouse{
		ID:               uuid.New().String(),
		Name:             in.Name,
		Location:         in.Location,
		IsRetailLocation: in.IsRetailLocation,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.warehouses.Create(w); err != nil {
		return nil, err
	}
	return warehouseToResponse(w), nil
}

// Update edita una bodega existente.
func (uc *WarehouseUseCase) Update(id string, in dto.UpdateWarehouseRequest) (*dto.WarehouseResponse, error) {
	w, err := uc.warehouses.GetByID(id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.ErrNotFound
	}
	w.Name = in.Name
	w.Location = in.Location
	w.IsRetailLocation = in.IsRetailLocation
	w.UpdatedAt = time.Now()
	if err := uc.warehouses.Update(w); err != nil {
		return nil, err
	}
	return warehouseToResponse(w), nil
}

// List lista todas las bodegas ordenadas por nombre.
func (uc *WarehouseUseCase) List() ([]dto.WarehouseResponse, error) {
	list, err := uc.warehouses.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		out = append(out, *warehouseToResponse(w))
	}
	return out, nil
}

func warehouseToResponse(w *entity.Warehouse) *dto.WarehouseResponse {
	return &dto.WarehouseResponse{
		ID:               w.ID,
		Name:             w.Name,
		Location:         w.Location,
		IsRetailLocation: w.IsRetailLocation,
		CreatedAt:        w.CreatedAt,
		UpdatedAt:        w.UpdatedAt,
	}
}
