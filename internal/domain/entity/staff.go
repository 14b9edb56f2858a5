package entity

import "time"

// Roles válidos para Staff.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// Staff representa un miembro del personal con acceso al sistema.
// Borrado lógico vía IsActive; un miembro no puede desactivarse a sí mismo.
type Staff struct {
	ID           string
	FullName     string
	Email        string // único
	PasswordHash string // bcrypt, nunca en claro después de persistir
	Role         string // admin, staff
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
