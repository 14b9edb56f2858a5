package postgres

import (
	"context"
	"fmt"

	"github.com/sokha/pos-api/internal/domain/entity"
	"github.com/sokha/pos-api/internal/domain/repository"
)

var _ repository.CurrencyRepository = (*CurrencyRepo)(nil)

// CurrencyRepo implementación del puerto CurrencyRepository sobre PostgreSQL.
type CurrencyRepo struct {
	q Querier
}

// NewCurrencyRepository construye el adaptador para las tasas de cambio.
func NewCurrencyRepository(q Querier) *CurrencyRepo {
	return &CurrencyRepo{q: q}
}

// List lista todas las tasas configuradas.
func (r *CurrencyRepo) List() ([]*entity.Currency, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT code, rate_to_base, updated_at FROM currencies ORDER BY code ASC`)
	if err != nil {
		return nil, fmt.Errorf("list currencies: %w", err)
	}
	defer rows.Close()
	var list []*entity.Currency
	for rows.Next() {
		var c entity.Currency
		if err := rows.Scan(&c.Code, &c.RateToBase, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan currency: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Upsert inserta o actualiza cada tasa por código de moneda.
func (r *CurrencyRepo) Upsert(currencies []*entity.Currency) error {
	query := `
		INSERT INTO currencies (code, rate_to_base, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (code) DO UPDATE SET rate_to_base = EXCLUDED.rate_to_base, updated_at = EXCLUDED.updated_at`
	for _, c := range currencies {
		if _, err := r.q.Exec(context.Background(), query, c.Code, c.RateToBase, c.UpdatedAt); err != nil {
			return fmt.Errorf("upsert currency %s: %w", c.Code, err)
		}
	}
	return nil
}
