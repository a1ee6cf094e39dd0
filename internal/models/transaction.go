package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Currency string

const (
	CurrencySDG Currency = "SDG"
	CurrencyAED Currency = "AED"
)

func (c Currency) Valid() bool {
	return c == CurrencySDG || c == CurrencyAED
}

type TransactionType string

const (
	TypeDeposit    TransactionType = "deposit"
	TypeWithdrawal TransactionType = "withdrawal"
	TypeTransfer   TransactionType = "transfer"
)

type TransactionStatus string

const (
	StatusPending   TransactionStatus = "pending"
	StatusConfirmed TransactionStatus = "confirmed"
	StatusApproved  TransactionStatus = "approved"
	StatusCancelled TransactionStatus = "cancelled"
)

// ExchangeDirection determines the currency pair of a transfer:
// normal is AED to SDG, reverse is SDG to AED.
type ExchangeDirection string

const (
	DirectionNormal  ExchangeDirection = "normal"
	DirectionReverse ExchangeDirection = "reverse"
)

type Transaction struct {
	ID                uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	TransactionNumber string            `gorm:"uniqueIndex;not null" json:"transaction_number"`
	Type              TransactionType   `gorm:"index;not null" json:"type"`
	Status            TransactionStatus `gorm:"index;not null" json:"status"`
	Amount            decimal.Decimal   `gorm:"type:decimal(20,2);not null" json:"amount"`
	Currency          Currency          `json:"currency"`

	// Deposit and withdrawal target.
	VaultID *uuid.UUID `gorm:"type:uuid;index" json:"vault_id,omitempty"`

	// Transfer fields. The source is either a registered customer or a
	// free-text cash customer who pays in hand.
	ToVaultID      *uuid.UUID        `gorm:"type:uuid;index" json:"to_vault_id,omitempty"`
	FromCustomerID *uuid.UUID        `gorm:"type:uuid;index" json:"from_customer_id,omitempty"`
	CashCustomer   string            `json:"cash_customer,omitempty"`
	FromCurrency   Currency          `json:"from_currency,omitempty"`
	ToCurrency     Currency          `json:"to_currency,omitempty"`
	Direction      ExchangeDirection `gorm:"column:exchange_direction" json:"exchange_direction,omitempty"`

	// Rate snapshot taken at creation. A later rate change never
	// retroactively affects this transaction.
	ExchangeRate decimal.Decimal `gorm:"type:decimal(18,6)" json:"exchange_rate"`
	ProfitLoss   decimal.Decimal `gorm:"type:decimal(20,6)" json:"profit_loss"`

	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	CreatedBy uuid.UUID `gorm:"type:uuid" json:"created_by"`

	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
	ConfirmedBy *uuid.UUID `gorm:"type:uuid" json:"confirmed_by,omitempty"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
	ApprovedBy  *uuid.UUID `gorm:"type:uuid" json:"approved_by,omitempty"`
}

// CrossCurrency reports whether the transaction exchanges one currency for
// the other, which is what makes it carry a profit or loss.
func (t *Transaction) CrossCurrency() bool {
	return t.Type == TypeTransfer && t.FromCurrency != t.ToCurrency
}
