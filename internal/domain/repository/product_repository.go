package repository

import "github.com/sokha/pos-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	GetActiveByIDs(ids []string) ([]*entity.Product, error)
	Update(product *entity.Product) error
	List(onlyActive bool, limit, offset int) ([]*entity.Product, error)
	// Deactivate es el borrado lógico: is_active = false. Nunca se borra la fila.
	Deactivate(id string) error
}
