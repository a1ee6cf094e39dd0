package settlement_test

import (
	"testing"

	"exchange-office-backend/internal/models"
	"exchange-office-backend/internal/services/settlement"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestCurrenciesFor(t *testing.T) {
	from, to := settlement.CurrenciesFor(models.DirectionNormal)
	if from != models.CurrencyAED || to != models.CurrencySDG {
		t.Fatalf("normal direction: got %s->%s, want AED->SDG", from, to)
	}

	from, to = settlement.CurrenciesFor(models.DirectionReverse)
	if from != models.CurrencySDG || to != models.CurrencyAED {
		t.Fatalf("reverse direction: got %s->%s, want SDG->AED", from, to)
	}
}

func TestConvert(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		from   models.Currency
		to     models.Currency
		rate   string
		want   string
	}{
		{"AED into SDG multiplies", "100", models.CurrencyAED, models.CurrencySDG, "200", "20000"},
		{"SDG into AED divides", "20000", models.CurrencySDG, models.CurrencyAED, "202", "99.0099"},
		{"same currency passes through", "150", models.CurrencyAED, models.CurrencyAED, "200", "150"},
		{"zero rate passes through", "150", models.CurrencyAED, models.CurrencySDG, "0", "150"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := settlement.Convert(dec(tt.amount), tt.from, tt.to, dec(tt.rate))
			if !got.Round(4).Equal(dec(tt.want)) {
				t.Fatalf("Convert(%s %s->%s @ %s) = %s, want %s",
					tt.amount, tt.from, tt.to, tt.rate, got, tt.want)
			}
		})
	}
}

func TestProfitLossZeroAtSnapshotPair(t *testing.T) {
	// A transfer valued against the exact pair it settled at carries no
	// profit in either direction.
	normal := settlement.ProfitLoss(
		dec("100"), models.CurrencyAED, models.CurrencySDG, dec("200"), dec("200"), dec("202"))
	if !normal.IsZero() {
		t.Fatalf("normal at snapshot pair: got %s, want 0", normal)
	}

	reverse := settlement.ProfitLoss(
		dec("20200"), models.CurrencySDG, models.CurrencyAED, dec("202"), dec("200"), dec("202"))
	if !reverse.IsZero() {
		t.Fatalf("reverse at snapshot pair: got %s, want 0", reverse)
	}
}

func TestProfitLossAfterRateMove(t *testing.T) {
	// 100 AED settled at 200, then the buy side climbs to 205: the 20000 SDG
	// paid out are now worth only 20000/205 AED, so the transfer nets
	// positive.
	got := settlement.ProfitLoss(
		dec("100"), models.CurrencyAED, models.CurrencySDG, dec("200"), dec("205"), dec("207"))
	want := dec("100").Sub(dec("20000").Div(dec("205")))
	if !got.Equal(want) {
		t.Fatalf("normal after buy moved up: got %s, want %s", got, want)
	}
	if !got.IsPositive() {
		t.Fatalf("normal after buy moved up should be positive, got %s", got)
	}

	// The mirror case: buy drops below the snapshot and the same transfer
	// shows a loss.
	got = settlement.ProfitLoss(
		dec("100"), models.CurrencyAED, models.CurrencySDG, dec("200"), dec("195"), dec("202"))
	if !got.IsNegative() {
		t.Fatalf("normal after buy moved down should be negative, got %s", got)
	}

	// Reverse: 20200 SDG settled at 202, sell climbs to 205. Acquiring the
	// 100 AED handed out now costs less, netting positive.
	got = settlement.ProfitLoss(
		dec("20200"), models.CurrencySDG, models.CurrencyAED, dec("202"), dec("200"), dec("205"))
	want = dec("20200").Div(dec("202")).Sub(dec("20200").Div(dec("205")))
	if !got.Equal(want) {
		t.Fatalf("reverse after sell moved up: got %s, want %s", got, want)
	}
	if !got.IsPositive() {
		t.Fatalf("reverse after sell moved up should be positive, got %s", got)
	}
}

func TestProfitLossGuards(t *testing.T) {
	if got := settlement.ProfitLoss(
		dec("100"), models.CurrencyAED, models.CurrencyAED, dec("200"), dec("200"), dec("202")); !got.IsZero() {
		t.Fatalf("same-currency pair: got %s, want 0", got)
	}
	if got := settlement.ProfitLoss(
		dec("100"), models.CurrencyAED, models.CurrencySDG, dec("0"), dec("200"), dec("202")); !got.IsZero() {
		t.Fatalf("zero snapshot rate: got %s, want 0", got)
	}
	if got := settlement.ProfitLoss(
		dec("100"), models.CurrencyAED, models.CurrencySDG, dec("200"), dec("0"), dec("202")); !got.IsZero() {
		t.Fatalf("zero buy divisor: got %s, want 0", got)
	}
	if got := settlement.ProfitLoss(
		dec("20000"), models.CurrencySDG, models.CurrencyAED, dec("202"), dec("200"), dec("0")); !got.IsZero() {
		t.Fatalf("zero sell divisor: got %s, want 0", got)
	}
}
