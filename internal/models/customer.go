package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Customer is a counterparty. Balances are set when the record is created;
// the settlement workflow does not debit or credit them.
type Customer struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Name            string          `gorm:"index;not null" json:"name"`
	AccountNumber   string          `json:"account_number,omitempty"`
	Phone           string          `json:"phone,omitempty"`
	Email           string          `json:"email,omitempty"`
	BalanceSDG      decimal.Decimal `gorm:"type:decimal(20,2)" json:"balance_sdg"`
	BalanceAED      decimal.Decimal `gorm:"type:decimal(20,2)" json:"balance_aed"`
	IsRecurring     bool            `json:"is_recurring"`
	HasBanakAccount bool            `json:"has_banak_account"`
	CreatedAt       time.Time       `json:"created_at"`
}
