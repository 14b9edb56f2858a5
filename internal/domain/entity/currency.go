package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Currency representa una tasa de cambio configurable (ej. USD, KHR, THB).
type Currency struct {
	Code       string // PK, ej. "USD"
	RateToBase decimal.Decimal
	UpdatedAt  time.Time
}
