package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CurrencyRate tasa de cambio de una moneda respecto a la base.
type CurrencyRate struct {
	Code       string          `json:"code" validate:"required,len=3"`
	RateToBase decimal.Decimal `json:"rate_to_base" validate:"required"`
	UpdatedAt  time.Time       `json:"updated_at,omitzero"`
}
