package settlement

import (
	"exchange-office-backend/internal/models"

	"github.com/shopspring/decimal"
)

// CurrenciesFor maps an exchange direction to its currency pair. The
// direction, not a user-chosen pair, is authoritative.
func CurrenciesFor(direction models.ExchangeDirection) (from, to models.Currency) {
	if direction == models.DirectionReverse {
		return models.CurrencySDG, models.CurrencyAED
	}
	return models.CurrencyAED, models.CurrencySDG
}

// Convert turns an amount in the source currency into the destination
// currency using the given SDG-per-AED rate: divide out of SDG, multiply
// into it. Same-currency or zero-rate conversions pass through unchanged.
func Convert(amount decimal.Decimal, from, to models.Currency, rate decimal.Decimal) decimal.Decimal {
	if from == to || rate.IsZero() {
		return amount
	}
	if from == models.CurrencySDG {
		return amount.Div(rate)
	}
	return amount.Mul(rate)
}

// ProfitLoss values a cross-currency transfer in AED against the buy/sell
// pair in force. rate is the per-transaction snapshot the transfer settles
// at; buy and sell are the evaluation pair.
//
// Selling AED (AED to SDG): the office pays out amount*rate SDG, worth
// received/buy AED, against the amount AED taken in.
// Buying AED (SDG to AED): the office hands out amount/rate AED that cost
// amount/sell AED to acquire.
//
// Zero rate, a zero divisor, or a same-currency pair values to zero.
func ProfitLoss(amount decimal.Decimal, from, to models.Currency, rate, buy, sell decimal.Decimal) decimal.Decimal {
	if from == to || rate.IsZero() {
		return decimal.Zero
	}
	if from == models.CurrencyAED && to == models.CurrencySDG {
		if buy.IsZero() {
			return decimal.Zero
		}
		received := amount.Mul(rate)
		realValue := received.Div(buy)
		return amount.Sub(realValue)
	}
	if from == models.CurrencySDG && to == models.CurrencyAED {
		if sell.IsZero() {
			return decimal.Zero
		}
		received := amount.Div(rate)
		cost := amount.Div(sell)
		return received.Sub(cost)
	}
	return decimal.Zero
}
