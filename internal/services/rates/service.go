// Package rates holds the current buy/sell quote and its append-only
// history. BuyRate prices a normal transfer (AED to SDG), SellRate a
// reverse one; the sell side must always quote above the buy side.
package rates

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"exchange-office-backend/internal/events"
	"exchange-office-backend/internal/models"
	"exchange-office-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrInvalidRate   = errors.New("rates must be positive numbers")
	ErrInvalidSpread = errors.New("sell rate must be greater than buy rate")
)

type Service struct {
	repo   *repository.RateRepository
	bus    *events.Bus
	logger *slog.Logger
}

func NewService(repo *repository.RateRepository, bus *events.Bus, logger *slog.Logger) *Service {
	return &Service{repo: repo, bus: bus, logger: logger}
}

// Current returns the head of the rate history, or a zero-valued pair when
// no rate has ever been set.
func (s *Service) Current(ctx context.Context) (models.ExchangeRate, error) {
	rate, err := s.repo.Current()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ExchangeRate{
				BuyRate:  decimal.Zero,
				SellRate: decimal.Zero,
			}, nil
		}
		return models.ExchangeRate{}, err
	}
	return *rate, nil
}

func (s *Service) History(ctx context.Context) ([]models.ExchangeRate, error) {
	return s.repo.History()
}

// Update prepends a new quote. The history is never edited in place.
func (s *Service) Update(ctx context.Context, buy, sell decimal.Decimal, actor uuid.UUID) (*models.ExchangeRate, error) {
	if !buy.IsPositive() || !sell.IsPositive() {
		return nil, ErrInvalidRate
	}
	if sell.LessThanOrEqual(buy) {
		return nil, ErrInvalidSpread
	}

	rate := &models.ExchangeRate{
		ID:        uuid.New(),
		BuyRate:   buy,
		SellRate:  sell,
		UpdatedAt: time.Now(),
		UpdatedBy: actor,
	}
	if err := s.repo.Create(rate); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "exchange rate updated",
		"buy", buy.String(), "sell", sell.String(), "actor", actor)
	s.bus.Publish(events.Event{
		Type:     events.RateUpdated,
		EntityID: rate.ID,
		Payload: map[string]any{
			"buy_rate":  rate.BuyRate.String(),
			"sell_rate": rate.SellRate.String(),
		},
	})
	return rate, nil
}
