package entity

import "time"

// Warehouse representa una bodega o punto de venta donde se almacena inventario.
// IsRetailLocation distingue el local de venta directa de las bodegas de almacenamiento.
// Las bodegas nunca se eliminan, solo se editan.
type Warehouse struct {
	ID               string
	Name             string
	Location         string
	IsRetailLocation bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
