package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExchangeRate is one entry of the append-only rate history. BuyRate and
// SellRate are SDG per 1 AED; the newest row is the current quote.
type ExchangeRate struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	BuyRate   decimal.Decimal `gorm:"type:decimal(18,6);not null" json:"buy_rate"`
	SellRate  decimal.Decimal `gorm:"type:decimal(18,6);not null" json:"sell_rate"`
	UpdatedAt time.Time       `gorm:"index" json:"updated_at"`
	UpdatedBy uuid.UUID       `gorm:"type:uuid" json:"updated_by"`
}

// Spread is the sell/buy difference, the margin earned on a round trip.
func (r *ExchangeRate) Spread() decimal.Decimal {
	return r.SellRate.Sub(r.BuyRate)
}
