package rates_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"exchange-office-backend/internal/events"
	"exchange-office-backend/internal/models"
	"exchange-office-backend/internal/repository"
	"exchange-office-backend/internal/services/rates"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Validation runs before any store access, so rejected updates need no
// database behind them.
func TestUpdateRejectsInvalidQuotes(t *testing.T) {
	service := rates.NewService(nil, nil, nil)
	ctx := context.Background()
	actor := uuid.New()

	tests := []struct {
		name string
		buy  string
		sell string
		want error
	}{
		{"zero buy", "0", "202", rates.ErrInvalidRate},
		{"negative buy", "-200", "202", rates.ErrInvalidRate},
		{"zero sell", "200", "0", rates.ErrInvalidRate},
		{"sell below buy", "202", "200", rates.ErrInvalidSpread},
		{"sell equal to buy", "200", "200", rates.ErrInvalidSpread},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Update(ctx, dec(tt.buy), dec(tt.sell), actor)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Update(%s, %s): err = %v, want %v", tt.buy, tt.sell, err, tt.want)
			}
		})
	}
}

func TestHistoryIsAppendOnly(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL is not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("db connection: %v", err)
	}
	if err := db.AutoMigrate(&models.ExchangeRate{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := db.Where("1 = 1").Delete(&models.ExchangeRate{}).Error; err != nil {
		t.Fatalf("reset: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := rates.NewService(repository.NewRateRepository(db), events.NewBus(), logger)
	ctx := context.Background()
	actor := uuid.New()

	// Empty history quotes a zero pair rather than failing.
	current, err := service.Current(ctx)
	if err != nil {
		t.Fatalf("current on empty history: %v", err)
	}
	if !current.BuyRate.IsZero() || !current.SellRate.IsZero() {
		t.Fatalf("empty history quote = %s/%s, want 0/0", current.BuyRate, current.SellRate)
	}

	if _, err := service.Update(ctx, dec("200"), dec("202"), actor); err != nil {
		t.Fatalf("first update: %v", err)
	}
	time.Sleep(10 * time.Millisecond) // distinct updated_at ordering
	if _, err := service.Update(ctx, dec("205"), dec("207"), actor); err != nil {
		t.Fatalf("second update: %v", err)
	}

	current, err = service.Current(ctx)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if !current.BuyRate.Equal(dec("205")) || !current.SellRate.Equal(dec("207")) {
		t.Fatalf("current quote = %s/%s, want 205/207", current.BuyRate, current.SellRate)
	}

	history, err := service.History(ctx)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("history length = %d, want 2: updates must append, never replace", len(history))
	}
	if !history[0].BuyRate.Equal(dec("205")) || !history[1].BuyRate.Equal(dec("200")) {
		t.Fatalf("history order = %s, %s, want newest first", history[0].BuyRate, history[1].BuyRate)
	}
}
