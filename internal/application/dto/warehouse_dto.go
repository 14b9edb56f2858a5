package dto

import "time"

// CreateWarehouseRequest alta de bodega.
type CreateWarehouseRequest struct {
	Name             string `json:"name" validate:"required"`
	Location         string `json:"location"`
	IsRetailLocation bool   `json:"is_retail_location"`
}

// UpdateWarehouseRequest edición de bodega (name obligatorio, como el alta).
type UpdateWarehouseRequest struct {
	Name             string `json:"name" validate:"required"`
	Location         string `json:"location"`
	IsRetailLocation bool   `json:"is_retail_location"`
}

// WarehouseResponse representación de una bodega.
type WarehouseResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Location         string    `json:"location"`
	IsRetailLocation bool      `json:"is_retail_location"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
