package reporting_test

import (
	"testing"
	"time"

	"exchange-office-backend/internal/models"
	"exchange-office-backend/internal/services/reporting"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func transferAt(day time.Time, amount, rate string, status models.TransactionStatus) models.Transaction {
	confirmed := day
	return models.Transaction{
		Type:         models.TypeTransfer,
		Status:       status,
		Amount:       dec(amount),
		FromCurrency: models.CurrencyAED,
		ToCurrency:   models.CurrencySDG,
		ExchangeRate: dec(rate),
		CreatedAt:    day,
		ConfirmedAt:  &confirmed,
	}
}

func TestRealizedProfitCountsConfirmedTransfersOnly(t *testing.T) {
	day := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	txs := []models.Transaction{
		transferAt(day, "100", "200", models.StatusConfirmed),
		transferAt(day, "100", "200", models.StatusPending),
		transferAt(day, "100", "200", models.StatusCancelled),
		{
			Type:      models.TypeDeposit,
			Status:    models.StatusConfirmed,
			Amount:    dec("100"),
			Currency:  models.CurrencyAED,
			CreatedAt: day,
		},
	}

	// Settled at 200, valued at buy 205: only the confirmed transfer counts.
	got := reporting.RealizedProfit(txs, dec("205"), dec("207"))
	want := dec("100").Sub(dec("20000").Div(dec("205")))
	if !got.Equal(want) {
		t.Fatalf("RealizedProfit = %s, want %s", got, want)
	}
}

func TestDailyProfitSeries(t *testing.T) {
	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	var txs []models.Transaction
	for i := 0; i < 10; i++ {
		day := base.AddDate(0, 0, i)
		txs = append(txs, transferAt(day, "100", "200", models.StatusConfirmed))
		// Second transfer the same day lands in the same bucket.
		txs = append(txs, transferAt(day.Add(2*time.Hour), "50", "200", models.StatusConfirmed))
	}

	series := reporting.DailyProfitSeries(txs, dec("205"), dec("207"), 7)
	if len(series) != 7 {
		t.Fatalf("series length = %d, want trailing 7 of 10 days", len(series))
	}
	if series[0].Date != "2026-08-04" || series[6].Date != "2026-08-10" {
		t.Fatalf("series spans %s..%s, want 2026-08-04..2026-08-10", series[0].Date, series[6].Date)
	}
	for i := 1; i < len(series); i++ {
		if series[i-1].Date >= series[i].Date {
			t.Fatalf("series not chronological at %d: %s >= %s", i, series[i-1].Date, series[i].Date)
		}
	}

	perTx := func(amount string) decimal.Decimal {
		return dec(amount).Sub(dec(amount).Mul(dec("200")).Div(dec("205")))
	}
	want := perTx("100").Add(perTx("50"))
	for _, point := range series {
		if !point.Profit.Equal(want) {
			t.Fatalf("profit on %s = %s, want %s", point.Date, point.Profit, want)
		}
	}
}

func TestDailyProfitSeriesKeepsFlatDays(t *testing.T) {
	day := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	txs := []models.Transaction{
		// Valued at its own snapshot pair: a flat day, still charted.
		transferAt(day, "100", "200", models.StatusConfirmed),
		// No usable snapshot rate: skipped entirely.
		transferAt(day.AddDate(0, 0, 1), "100", "0", models.StatusConfirmed),
	}

	series := reporting.DailyProfitSeries(txs, dec("200"), dec("202"), 7)
	if len(series) != 1 {
		t.Fatalf("series length = %d, want the flat day kept and the rateless one dropped", len(series))
	}
	if series[0].Date != "2026-08-01" || !series[0].Profit.IsZero() {
		t.Fatalf("series[0] = %+v, want a zero point on 2026-08-01", series[0])
	}
}

func TestStoredProfitSeriesUsesRecordedFigures(t *testing.T) {
	day := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

	moved := transferAt(day, "100", "200", models.StatusConfirmed)
	moved.ProfitLoss = dec("2.5")
	flat := transferAt(day.AddDate(0, 0, 1), "100", "200", models.StatusConfirmed)
	flat.ProfitLoss = dec("0")
	pending := transferAt(day, "100", "200", models.StatusPending)
	pending.ProfitLoss = dec("9")

	series := reporting.StoredProfitSeries([]models.Transaction{moved, flat, pending}, 10)
	if len(series) != 1 {
		t.Fatalf("series length = %d, want only the confirmed day that moved the books", len(series))
	}
	if series[0].Date != "2026-08-01" || !series[0].Profit.Equal(dec("2.5")) {
		t.Fatalf("series[0] = %+v, want 2.5 on 2026-08-01", series[0])
	}
}
