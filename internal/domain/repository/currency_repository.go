package repository

import "github.com/sokha/pos-api/internal/domain/entity"

// CurrencyRepository define el puerto para las tasas de cambio configurables.
type CurrencyRepository interface {
	List() ([]*entity.Currency, error)
	// Upsert inserta o actualiza por código de moneda.
	Upsert(currencies []*entity.Currency) error
}
