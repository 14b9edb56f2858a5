package usecase

import (
	"time"

	"github.com/sokha/pos-api/internal/application/dto"
	"github.com/sokha/pos-api/internal/domain"
	"github.com/sokha/pos-api/internal/domain/entity"
	"github.com/sokha/pos-api/internal/domain/repository"
)

// SettingsUseCase tasas de cambio configurables.
type SettingsUseCase struct {
	currencies repository.CurrencyRepository
}

// NewSettingsUseCase construye el caso de uso.
func NewSettingsUseCase(currencies repository.CurrencyRepository) *SettingsUseCase {
	return &SettingsUseCase{currencies: currencies}
}

// GetCurrencyRates devuelve todas las tasas configuradas.
func (uc *SettingsUseCase) GetCurrencyRates() ([]dto.CurrencyRate, error) {
	list, err := uc.currencies.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.CurrencyRate, 0, len(list))
	for _, c := range list {
		out = append(out, dto.CurrencyRate{Code: c.Code, RateToBase: c.RateToBase, UpdatedAt: c.UpdatedAt})
	}
	return out, nil
}

// UpdateCurrencyRates upsert por código de moneda.
func (uc *SettingsUseCase) UpdateCurrencyRates(rates []dto.CurrencyRate) ([]dto.CurrencyRate, error) {
	if len(rates) == 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	entities := make([]*entity.Currency, 0, len(rates))
	for _, r := range rates {
		entities = append(entities, &entity.Currency{Code: r.Code, RateToBase: r.RateToBase, UpdatedAt: now})
	}
	if err := uc.currencies.Upsert(entities); err != nil {
		return nil, err
	}
	return uc.GetCurrencyRates()
}
