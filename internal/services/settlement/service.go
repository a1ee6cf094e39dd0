// Package settlement drives the transaction state machine: pending on
// creation, confirmed when the money lands in a vault, approved when a
// normal transfer is swept to the main vault, cancelled before any balance
// effect. Every transition runs as a single database transaction over the
// vault write and the status write.
package settlement

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"exchange-office-backend/internal/events"
	"exchange-office-backend/internal/models"
	"exchange-office-backend/internal/services/rates"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shopspring/decimal"
)

type Service struct {
	db     *gorm.DB
	rates  *rates.Service
	bus    *events.Bus
	logger *slog.Logger
}

func NewService(db *gorm.DB, rateService *rates.Service, bus *events.Bus, logger *slog.Logger) *Service {
	return &Service{db: db, rates: rateService, bus: bus, logger: logger}
}

type DepositInput struct {
	TransactionNumber string
	Amount            decimal.Decimal
	Currency          models.Currency
	VaultID           uuid.UUID
	Notes             string
}

type WithdrawalInput struct {
	TransactionNumber string
	Amount            decimal.Decimal
	Currency          models.Currency
	VaultID           uuid.UUID
	Notes             string
}

// TransferInput describes an exchange transfer. The source is either a
// registered customer or a cash customer named free-text; the destination
// is always a vault. Currencies are derived from the direction.
type TransferInput struct {
	TransactionNumber string
	Amount            decimal.Decimal
	Direction         models.ExchangeDirection
	FromCustomerID    *uuid.UUID
	CashCustomer      string
	ToVaultID         uuid.UUID
	Notes             string
}

func (s *Service) CreateDeposit(ctx context.Context, in DepositInput, actor uuid.UUID) (*models.Transaction, error) {
	number, err := s.validNumber(ctx, in.TransactionNumber)
	if err != nil {
		return nil, err
	}
	if err := validAmount(in.Amount); err != nil {
		return nil, err
	}
	if !in.Currency.Valid() {
		return nil, ErrInvalidCurrency
	}
	if in.VaultID == uuid.Nil {
		return nil, ErrMissingDestination
	}

	tx := &models.Transaction{
		ID:                uuid.New(),
		TransactionNumber: number,
		Type:              models.TypeDeposit,
		Status:            models.StatusPending,
		Amount:            in.Amount,
		Currency:          in.Currency,
		VaultID:           &in.VaultID,
		Notes:             strings.TrimSpace(in.Notes),
		CreatedAt:         time.Now(),
		CreatedBy:         actor,
	}
	return s.insert(ctx, tx, actor)
}

func (s *Service) CreateWithdrawal(ctx context.Context, in WithdrawalInput, actor uuid.UUID) (*models.Transaction, error) {
	number, err := s.validNumber(ctx, in.TransactionNumber)
	if err != nil {
		return nil, err
	}
	if err := validAmount(in.Amount); err != nil {
		return nil, err
	}
	if !in.Currency.Valid() {
		return nil, ErrInvalidCurrency
	}
	if in.VaultID == uuid.Nil {
		return nil, ErrMissingDestination
	}

	tx := &models.Transaction{
		ID:                uuid.New(),
		TransactionNumber: number,
		Type:              models.TypeWithdrawal,
		Status:            models.StatusPending,
		Amount:            in.Amount,
		Currency:          in.Currency,
		VaultID:           &in.VaultID,
		Notes:             strings.TrimSpace(in.Notes),
		CreatedAt:         time.Now(),
		CreatedBy:         actor,
	}
	return s.insert(ctx, tx, actor)
}

func (s *Service) CreateTransfer(ctx context.Context, in TransferInput, actor uuid.UUID) (*models.Transaction, error) {
	number, err := s.validNumber(ctx, in.TransactionNumber)
	if err != nil {
		return nil, err
	}
	if err := validAmount(in.Amount); err != nil {
		return nil, err
	}
	cashCustomer := strings.TrimSpace(in.CashCustomer)
	if in.FromCustomerID == nil && cashCustomer == "" {
		return nil, ErrMissingSource
	}
	if in.ToVaultID == uuid.Nil {
		return nil, ErrMissingDestination
	}

	direction := in.Direction
	if direction == "" {
		direction = models.DirectionNormal
	}
	fromCurrency, toCurrency := CurrenciesFor(direction)

	// Snapshot the quote in force right now. A later rate update must not
	// reprice this transfer.
	current, err := s.rates.Current(ctx)
	if err != nil {
		return nil, err
	}
	rate := current.BuyRate
	if direction == models.DirectionReverse {
		rate = current.SellRate
	}

	profitLoss := ProfitLoss(in.Amount, fromCurrency, toCurrency, rate, current.BuyRate, current.SellRate)

	tx := &models.Transaction{
		ID:                uuid.New(),
		TransactionNumber: number,
		Type:              models.TypeTransfer,
		Status:            models.StatusPending,
		Amount:            in.Amount,
		Currency:          fromCurrency,
		ToVaultID:         &in.ToVaultID,
		FromCustomerID:    in.FromCustomerID,
		CashCustomer:      cashCustomer,
		FromCurrency:      fromCurrency,
		ToCurrency:        toCurrency,
		Direction:         direction,
		ExchangeRate:      rate,
		ProfitLoss:        profitLoss,
		Notes:             strings.TrimSpace(in.Notes),
		CreatedAt:         time.Now(),
		CreatedBy:         actor,
	}
	return s.insert(ctx, tx, actor)
}

// Confirm applies the balance effect and moves pending to confirmed.
// Deposits credit their vault, withdrawals debit it after a funds check,
// transfers credit the destination vault with the converted amount. A
// transfer debits nothing: the counterparty paid cash in hand.
func (s *Service) Confirm(ctx context.Context, id uuid.UUID, actor uuid.UUID) (*models.Transaction, error) {
	var confirmed *models.Transaction
	err := s.db.WithContext(ctx).Transaction(func(db *gorm.DB) error {
		tx, err := lockTransaction(db, id)
		if err != nil {
			return err
		}
		if tx.Status != models.StatusPending {
			return ErrInvalidStatus
		}

		switch tx.Type {
		case models.TypeDeposit:
			vault, err := lockVault(db, tx.VaultID)
			if err != nil {
				return err
			}
			vault.Credit(tx.Currency, tx.Amount)
			if err := db.Save(vault).Error; err != nil {
				return err
			}
		case models.TypeWithdrawal:
			vault, err := lockVault(db, tx.VaultID)
			if err != nil {
				return err
			}
			if vault.Balance(tx.Currency).LessThan(tx.Amount) {
				return ErrInsufficientFunds
			}
			vault.Debit(tx.Currency, tx.Amount)
			if err := db.Save(vault).Error; err != nil {
				return err
			}
		case models.TypeTransfer:
			vault, err := lockVault(db, tx.ToVaultID)
			if err != nil {
				return err
			}
			target := Convert(tx.Amount, tx.FromCurrency, tx.ToCurrency, tx.ExchangeRate)
			vault.Credit(tx.ToCurrency, target)
			if err := db.Save(vault).Error; err != nil {
				return err
			}
		}

		now := time.Now()
		tx.Status = models.StatusConfirmed
		tx.ConfirmedAt = &now
		tx.ConfirmedBy = &actor
		if err := db.Save(tx).Error; err != nil {
			return err
		}
		if err := writeAudit(db, tx, "confirmed", actor); err != nil {
			return err
		}
		confirmed = tx
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "transaction confirmed",
		"number", confirmed.TransactionNumber, "type", string(confirmed.Type), "actor", actor)
	s.bus.Publish(events.Event{Type: events.TransactionConfirmed, EntityID: confirmed.ID})
	return confirmed, nil
}

// Approve sweeps a confirmed normal-direction transfer out of the
// destination vault into the main vault, same currency on both sides.
func (s *Service) Approve(ctx context.Context, id uuid.UUID, actor uuid.UUID) (*models.Transaction, error) {
	var approved *models.Transaction
	err := s.db.WithContext(ctx).Transaction(func(db *gorm.DB) error {
		tx, err := lockTransaction(db, id)
		if err != nil {
			return err
		}
		if tx.Status != models.StatusConfirmed {
			return ErrInvalidStatus
		}
		if tx.Type != models.TypeTransfer || tx.Direction != models.DirectionNormal {
			return ErrInvalidStatus
		}

		var main models.Vault
		if err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&main, "is_main_vault = ?", true).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoMainVault
			}
			return err
		}
		if tx.ToVaultID == nil {
			return ErrRecipientAccountNotFound
		}

		// Same converted amount that confirmation credited; no second
		// conversion, the sweep stays in the destination currency. A
		// transfer paid straight into the main vault has nothing to move:
		// debiting and crediting the same row must net to zero, not load
		// two copies of it.
		target := Convert(tx.Amount, tx.FromCurrency, tx.ToCurrency, tx.ExchangeRate)
		if *tx.ToVaultID != main.ID {
			recipient, err := lockVault(db, tx.ToVaultID)
			if err != nil {
				return err
			}
			if recipient.Balance(tx.ToCurrency).LessThan(target) {
				return ErrInsufficientFunds
			}
			recipient.Debit(tx.ToCurrency, target)
			main.Credit(tx.ToCurrency, target)
			if err := db.Save(recipient).Error; err != nil {
				return err
			}
			if err := db.Save(&main).Error; err != nil {
				return err
			}
		}

		now := time.Now()
		tx.Status = models.StatusApproved
		tx.ApprovedAt = &now
		tx.ApprovedBy = &actor
		if err := db.Save(tx).Error; err != nil {
			return err
		}
		if err := writeAudit(db, tx, "approved", actor); err != nil {
			return err
		}
		approved = tx
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "transaction approved",
		"number", approved.TransactionNumber, "actor", actor)
	s.bus.Publish(events.Event{Type: events.TransactionApproved, EntityID: approved.ID})
	return approved, nil
}

// Cancel voids a pending transaction. Confirmed money movements cannot be
// cancelled, and approved/cancelled are terminal.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID, actor uuid.UUID) (*models.Transaction, error) {
	var cancelled *models.Transaction
	err := s.db.WithContext(ctx).Transaction(func(db *gorm.DB) error {
		tx, err := lockTransaction(db, id)
		if err != nil {
			return err
		}
		if tx.Status != models.StatusPending {
			return ErrInvalidStatus
		}
		tx.Status = models.StatusCancelled
		if err := db.Save(tx).Error; err != nil {
			return err
		}
		if err := writeAudit(db, tx, "cancelled", actor); err != nil {
			return err
		}
		cancelled = tx
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "transaction cancelled",
		"number", cancelled.TransactionNumber, "actor", actor)
	s.bus.Publish(events.Event{Type: events.TransactionCancelled, EntityID: cancelled.ID})
	return cancelled, nil
}

func (s *Service) validNumber(ctx context.Context, number string) (string, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return "", ErrMissingNumber
	}
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Transaction{}).
		Where("transaction_number = ?", number).
		Count(&count).Error
	if err != nil {
		return "", err
	}
	if count > 0 {
		return "", ErrDuplicateTransactionNumber
	}
	return number, nil
}

func validAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	return nil
}

func (s *Service) insert(ctx context.Context, tx *models.Transaction, actor uuid.UUID) (*models.Transaction, error) {
	err := s.db.WithContext(ctx).Transaction(func(db *gorm.DB) error {
		if err := db.Create(tx).Error; err != nil {
			// The unique index catches the race the pre-insert count check
			// cannot: a concurrent create with the same number.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateTransactionNumber
			}
			return err
		}
		return writeAudit(db, tx, "created", actor)
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "transaction created",
		"number", tx.TransactionNumber, "type", string(tx.Type), "actor", actor)
	s.bus.Publish(events.Event{Type: events.TransactionCreated, EntityID: tx.ID})
	return tx, nil
}

func lockTransaction(db *gorm.DB, id uuid.UUID) (*models.Transaction, error) {
	var tx models.Transaction
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&tx, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &tx, nil
}

func lockVault(db *gorm.DB, id *uuid.UUID) (*models.Vault, error) {
	if id == nil {
		return nil, ErrRecipientAccountNotFound
	}
	var vault models.Vault
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&vault, "id = ?", *id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipientAccountNotFound
		}
		return nil, err
	}
	return &vault, nil
}

func writeAudit(db *gorm.DB, tx *models.Transaction, action string, actor uuid.UUID) error {
	details, _ := json.Marshal(map[string]any{
		"transaction_number": tx.TransactionNumber,
		"type":               tx.Type,
		"status":             tx.Status,
		"amount":             tx.Amount.String(),
		"currency":           tx.Currency,
		"exchange_rate":      tx.ExchangeRate.String(),
		"profit_loss":        tx.ProfitLoss.String(),
	})
	log := &models.AuditLog{
		ID:            uuid.New(),
		TransactionID: tx.ID,
		Action:        action,
		PerformedBy:   actor,
		Details:       datatypes.JSON(details),
		CreatedAt:     time.Now(),
	}
	return db.Create(log).Error
}
