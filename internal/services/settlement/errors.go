package settlement

import "errors"

var (
	ErrInvalidAmount              = errors.New("amount must be greater than zero")
	ErrMissingNumber              = errors.New("transaction number is required")
	ErrInvalidCurrency            = errors.New("unsupported currency")
	ErrDuplicateTransactionNumber = errors.New("transaction number already exists")
	ErrMissingSource              = errors.New("transfer source is required")
	ErrMissingDestination         = errors.New("destination vault is required")
	ErrInsufficientFunds          = errors.New("insufficient funds")
	ErrNoMainVault                = errors.New("no main vault configured")
	ErrRecipientAccountNotFound   = errors.New("recipient account not found")
	ErrInvalidStatus              = errors.New("invalid transaction status")
	ErrNotFound                   = errors.New("transaction not found")
)
