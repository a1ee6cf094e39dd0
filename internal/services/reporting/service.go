// Package reporting computes the derived read-only views: vault totals,
// workflow counters, realized profit/loss and its daily series. Nothing
// here mutates state and nothing is cached; every call reads fresh.
package reporting

import (
	"context"
	"sort"
	"time"

	"exchange-office-backend/internal/models"
	"exchange-office-backend/internal/services/rates"
	"exchange-office-backend/internal/services/settlement"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	dashboardChartPoints = 7
	reportChartPoints    = 10
)

type Service struct {
	db    *gorm.DB
	rates *rates.Service
}

func NewService(db *gorm.DB, rateService *rates.Service) *Service {
	return &Service{db: db, rates: rateService}
}

type ProfitPoint struct {
	Date   string          `json:"date"`
	Profit decimal.Decimal `json:"profit"`
}

type Summary struct {
	TotalSDG        decimal.Decimal `json:"total_sdg"`
	TotalAED        decimal.Decimal `json:"total_aed"`
	TotalInAED      decimal.Decimal `json:"total_in_aed"`
	BuyRate         decimal.Decimal `json:"buy_rate"`
	SellRate        decimal.Decimal `json:"sell_rate"`
	ProfitLoss      decimal.Decimal `json:"profit_loss"`
	PendingCount    int64           `json:"pending_count"`
	InProgressCount int64           `json:"in_progress_count"`
	Chart           []ProfitPoint   `json:"chart"`
}

// Summary is the dashboard view. Profit/loss is recomputed live from the
// confirmed cross-currency transfers against the current rate pair rather
// than summed from the stored per-transaction figures.
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	rate, err := s.rates.Current(ctx)
	if err != nil {
		return nil, err
	}

	var vaults []models.Vault
	if err := s.db.WithContext(ctx).Find(&vaults).Error; err != nil {
		return nil, err
	}
	totalSDG := decimal.Zero
	totalAED := decimal.Zero
	for i := range vaults {
		totalSDG = totalSDG.Add(vaults[i].BalanceSDG)
		totalAED = totalAED.Add(vaults[i].BalanceAED)
	}
	totalInAED := totalAED
	if rate.BuyRate.IsPositive() {
		totalInAED = totalAED.Add(totalSDG.Div(rate.BuyRate))
	}

	var pending, inProgress int64
	if err := s.db.WithContext(ctx).Model(&models.Transaction{}).
		Where("status = ?", models.StatusPending).
		Count(&pending).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&models.Transaction{}).
		Where("status = ? AND approved_at IS NULL", models.StatusConfirmed).
		Count(&inProgress).Error; err != nil {
		return nil, err
	}

	transfers, err := s.confirmedTransfers(ctx, nil, nil)
	if err != nil {
		return nil, err
	}

	return &Summary{
		TotalSDG:        totalSDG,
		TotalAED:        totalAED,
		TotalInAED:      totalInAED,
		BuyRate:         rate.BuyRate,
		SellRate:        rate.SellRate,
		ProfitLoss:      RealizedProfit(transfers, rate.BuyRate, rate.SellRate),
		PendingCount:    pending,
		InProgressCount: inProgress,
		Chart:           DailyProfitSeries(transfers, rate.BuyRate, rate.SellRate, dashboardChartPoints),
	}, nil
}

type Report struct {
	Transactions   []models.Transaction `json:"transactions"`
	ConfirmedCount int                  `json:"confirmed_count"`
	TotalProfit    decimal.Decimal      `json:"total_profit"`
	TotalSDG       decimal.Decimal      `json:"total_sdg"`
	TotalAED       decimal.Decimal      `json:"total_aed"`
	Chart          []ProfitPoint        `json:"chart"`
}

// Report is the period view: confirmed transactions created in
// [start, end]. Both the total and the chart come from the stored
// per-transaction profit/loss, so the two figures always agree.
func (s *Service) Report(ctx context.Context, start, end *time.Time) (*Report, error) {
	query := s.db.WithContext(ctx).
		Where("status = ?", models.StatusConfirmed).
		Order("created_at DESC")
	if start != nil {
		query = query.Where("created_at >= ?", *start)
	}
	if end != nil {
		query = query.Where("created_at <= ?", *end)
	}
	var txs []models.Transaction
	if err := query.Find(&txs).Error; err != nil {
		return nil, err
	}

	totalProfit := decimal.Zero
	for i := range txs {
		totalProfit = totalProfit.Add(txs[i].ProfitLoss)
	}

	var vaults []models.Vault
	if err := s.db.WithContext(ctx).Find(&vaults).Error; err != nil {
		return nil, err
	}
	totalSDG := decimal.Zero
	totalAED := decimal.Zero
	for i := range vaults {
		totalSDG = totalSDG.Add(vaults[i].BalanceSDG)
		totalAED = totalAED.Add(vaults[i].BalanceAED)
	}

	return &Report{
		Transactions:   txs,
		ConfirmedCount: len(txs),
		TotalProfit:    totalProfit,
		TotalSDG:       totalSDG,
		TotalAED:       totalAED,
		Chart:          StoredProfitSeries(txs, reportChartPoints),
	}, nil
}

func (s *Service) confirmedTransfers(ctx context.Context, start, end *time.Time) ([]models.Transaction, error) {
	query := s.db.WithContext(ctx).
		Where("status = ? AND type = ?", models.StatusConfirmed, models.TypeTransfer)
	if start != nil {
		query = query.Where("created_at >= ?", *start)
	}
	if end != nil {
		query = query.Where("created_at <= ?", *end)
	}
	var txs []models.Transaction
	err := query.Find(&txs).Error
	return txs, err
}

// RealizedProfit values every confirmed cross-currency transfer against
// the given pair. It shares settlement's profit/loss arithmetic, so the
// aggregate and the per-transaction figure can never drift apart.
func RealizedProfit(txs []models.Transaction, buy, sell decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for i := range txs {
		tx := &txs[i]
		if tx.Status != models.StatusConfirmed || !tx.CrossCurrency() {
			continue
		}
		total = total.Add(settlement.ProfitLoss(
			tx.Amount, tx.FromCurrency, tx.ToCurrency, tx.ExchangeRate, buy, sell))
	}
	return total
}

// DailyProfitSeries buckets live-revalued transfer profit/loss by calendar
// day of the confirmation (falling back to creation). Flat days keep their
// zero point; only quotes without a usable snapshot rate are skipped.
func DailyProfitSeries(txs []models.Transaction, buy, sell decimal.Decimal, limit int) []ProfitPoint {
	buckets := make(map[string]decimal.Decimal)
	for i := range txs {
		tx := &txs[i]
		if tx.Status != models.StatusConfirmed || !tx.CrossCurrency() || tx.ExchangeRate.IsZero() {
			continue
		}
		profit := settlement.ProfitLoss(
			tx.Amount, tx.FromCurrency, tx.ToCurrency, tx.ExchangeRate, buy, sell)
		key := bucketDay(tx)
		buckets[key] = buckets[key].Add(profit)
	}
	return seriesFrom(buckets, limit)
}

// StoredProfitSeries buckets the per-transaction figures recorded at
// creation, the way the period report totals them. Zero figures are
// filtered out here; the report only charts days that moved the books.
func StoredProfitSeries(txs []models.Transaction, limit int) []ProfitPoint {
	buckets := make(map[string]decimal.Decimal)
	for i := range txs {
		tx := &txs[i]
		if tx.Status != models.StatusConfirmed || !tx.CrossCurrency() || tx.ProfitLoss.IsZero() {
			continue
		}
		key := bucketDay(tx)
		buckets[key] = buckets[key].Add(tx.ProfitLoss)
	}
	return seriesFrom(buckets, limit)
}

func bucketDay(tx *models.Transaction) string {
	day := tx.CreatedAt
	if tx.ConfirmedAt != nil {
		day = *tx.ConfirmedAt
	}
	return day.Format("2006-01-02")
}

// seriesFrom sorts the buckets chronologically and keeps the trailing
// limit points.
func seriesFrom(buckets map[string]decimal.Decimal, limit int) []ProfitPoint {
	days := make([]string, 0, len(buckets))
	for day := range buckets {
		days = append(days, day)
	}
	sort.Strings(days)
	if limit > 0 && len(days) > limit {
		days = days[len(days)-limit:]
	}

	series := make([]ProfitPoint, 0, len(days))
	for _, day := range days {
		series = append(series, ProfitPoint{Date: day, Profit: buckets[day]})
	}
	return series
}
