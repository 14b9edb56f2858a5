package repository

import "github.com/sokha/pos-api/internal/domain/entity"

// StaffRepository define el puerto de persistencia para Staff (DIP).
type StaffRepository interface {
	Create(staff *entity.Staff) error
	GetByID(id string) (*entity.Staff, error)
	GetByEmail(email string) (*entity.Staff, error)
	Update(staff *entity.Staff) error
	List() ([]*entity.Staff, error)
	// Deactivate es el borrado lógico: is_active = false.
	Deactivate(id string) error
}
