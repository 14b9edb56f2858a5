package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/sokha/pos-api/internal/domain"
	"github.com/sokha/pos-api/internal/domain/entity"
	"github.com/sokha/pos-api/internal/domain/repository"
)

var _ repository.StaffRepository = (*StaffRepo)(nil)

const staffColumns = `id, full_name, email, password_hash, role, is_active, created_at, updated_at`

// StaffRepo implementación del puerto StaffRepository sobre PostgreSQL.
type StaffRepo struct {
	q Querier
}

// NewStaffRepository construye el adaptador de persistencia para el personal.
func NewStaffRepository(q Querier) *StaffRepo {
	return &StaffRepo{q: q}
}

// Create persiste un nuevo miembro del personal. Email duplicado → ErrEmailAlreadyExists.
func (r *StaffRepo) Create(staff *entity.Staff) error {
	query := `
		INSERT INTO staff (id, full_name, email, password_hash, role, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		staff.ID, staff.FullName, staff.Email, staff.PasswordHash, staff.Role,
		staff.IsActive, staff.CreatedAt, staff.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert staff: %w", err)
	}
	return nil
}

// GetByID obtiene un miembro por ID; nil si no existe.
func (r *StaffRepo) GetByID(id string) (*entity.Staff, error) {
	row := r.q.QueryRow(context.Background(),
		`SELECT `+staffColumns+` FROM staff WHERE id = $1`, id)
	return scanStaff(row)
}

// GetByEmail obtiene un miembro por email; nil si no existe.
func (r *StaffRepo) GetByEmail(email string) (*entity.Staff, error) {
	row := r.q.QueryRow(context.Background(),
		`SELECT `+staffColumns+` FROM staff WHERE email = $1`, email)
	return scanStaff(row)
}

// Update actualiza un miembro existente.
func (r *StaffRepo) Update(staff *entity.Staff) error {
	query := `
		UPDATE staff SET full_name = $2, email = $3, password_hash = $4, role = $5, is_active = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		staff.ID, staff.FullName, staff.Email, staff.PasswordHash, staff.Role,
		staff.IsActive, staff.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update staff: %w", err)
	}
	return nil
}

// List lista todo el personal, activos e inactivos.
func (r *StaffRepo) List() ([]*entity.Staff, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+staffColumns+` FROM staff ORDER BY full_name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list staff: %w", err)
	}
	defer rows.Close()
	var list []*entity.Staff
	for rows.Next() {
		var s entity.Staff
		if err := rows.Scan(&s.ID, &s.FullName, &s.Email, &s.PasswordHash, &s.Role,
			&s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan staff: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Deactivate borrado lógico: is_active = false.
func (r *StaffRepo) Deactivate(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE staff SET is_active = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate staff: %w", err)
	}
	return nil
}

func scanStaff(row pgx.Row) (*entity.Staff, error) {
	var s entity.Staff
	err := row.Scan(&s.ID, &s.FullName, &s.Email, &s.PasswordHash, &s.Role,
		&s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get staff: %w", err)
	}
	return &s, nil
}
