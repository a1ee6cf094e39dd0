package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Vault is a cash box holding a balance in each supported currency.
// At most one vault is flagged as the main vault; approved transfers are
// swept into it.
type Vault struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Name              string          `gorm:"not null" json:"name"`
	BalanceSDG        decimal.Decimal `gorm:"type:decimal(20,2)" json:"balance_sdg"`
	BalanceAED        decimal.Decimal `gorm:"type:decimal(20,2)" json:"balance_aed"`
	InitialBalanceSDG decimal.Decimal `gorm:"type:decimal(20,2)" json:"initial_balance_sdg"`
	InitialBalanceAED decimal.Decimal `gorm:"type:decimal(20,2)" json:"initial_balance_aed"`
	Description       string          `json:"description,omitempty"`
	IsMainVault       bool            `gorm:"index" json:"is_main_vault"`
	CreatedAt         time.Time       `json:"created_at"`
}

func (v *Vault) Balance(c Currency) decimal.Decimal {
	if c == CurrencySDG {
		return v.BalanceSDG
	}
	return v.BalanceAED
}

func (v *Vault) Credit(c Currency, amount decimal.Decimal) {
	if c == CurrencySDG {
		v.BalanceSDG = v.BalanceSDG.Add(amount)
	} else {
		v.BalanceAED = v.BalanceAED.Add(amount)
	}
}

func (v *Vault) Debit(c Currency, amount decimal.Decimal) {
	if c == CurrencySDG {
		v.BalanceSDG = v.BalanceSDG.Sub(amount)
	} else {
		v.BalanceAED = v.BalanceAED.Sub(amount)
	}
}
