package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"portfoliotracker/src/model"
	"portfoliotracker/src/repository"
)

// helper to create a new in memory gorm DB and migrate schema
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in memory db: %v", err)
	}

	if err := db.AutoMigrate(
		&model.PriceAlert{},
		&model.WatchList{},
		&model.Transaction{},
	); err != nil {
		t.Fatalf("failed to automigrate: %v", err)
	}

	return db
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestPriceAlertLifecycle(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	repo := repository.NewPriceAlertRepository().WithDB(db)

	target := d("180.00")
	alert, err := model.PriceAlertCreate{
		UserID:      1,
		StockID:     2,
		AlertType:   model.AlertTypePriceBelow,
		TargetPrice: &target,
		Message:     "dip alert",
	}.Model()
	if err != nil {
		t.Fatalf("failed to build alert: %v", err)
	}
	if err := repo.Create(ctx, alert); err != nil {
		t.Fatalf("failed to create alert: %v", err)
	}

	// trigger it
	at := time.Date(2026, 2, 10, 16, 0, 0, 0, time.UTC)
	if err := repo.MarkTriggered(ctx, alert.ID, d("179.5"), at); err != nil {
		t.Fatalf("failed to trigger alert: %v", err)
	}

	stored, err := repo.FindByID(ctx, alert.ID)
	if err != nil || stored == nil {
		t.Fatalf("failed to reload alert: %v", err)
	}
	if stored.Status != model.AlertStatusTriggered {
		t.Fatalf("expected triggered status, got %s", stored.Status)
	}
	if stored.TriggeredPrice == nil || !stored.TriggeredPrice.Equal(d("179.5")) {
		t.Fatalf("triggered price not recorded: %v", stored.TriggeredPrice)
	}
	if stored.TriggeredAt == nil {
		t.Fatalf("triggered time not recorded")
	}

	// triggered is terminal, both transitions must be rejected
	if err := repo.MarkTriggered(ctx, alert.ID, d("170"), at); !errors.Is(err, repository.ErrAlertNotActive) {
		t.Fatalf("expected ErrAlertNotActive on second trigger, got %v", err)
	}
	if err := repo.Disable(ctx, alert.ID); !errors.Is(err, repository.ErrAlertNotActive) {
		t.Fatalf("expected ErrAlertNotActive disabling a triggered alert, got %v", err)
	}

	disabled := model.AlertStatusDisabled
	if _, err := repo.Update(ctx, alert.ID, model.PriceAlertUpdate{Status: &disabled}); !errors.Is(err, repository.ErrAlertNotActive) {
		t.Fatalf("expected ErrAlertNotActive on status update, got %v", err)
	}

	// non-status fields stay editable
	msg := "updated message"
	updated, err := repo.Update(ctx, alert.ID, model.PriceAlertUpdate{Message: &msg})
	if err != nil {
		t.Fatalf("message update should pass on a triggered alert: %v", err)
	}
	if updated.Message != msg {
		t.Fatalf("message not updated: %q", updated.Message)
	}
}

func TestWatchListSymbolsRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	repo := repository.NewWatchListRepository().WithDB(db)

	list, err := model.WatchListCreate{
		UserID:       1,
		Name:         "Tech",
		StockSymbols: []string{"AAPL", "MSFT", "NVDA"},
	}.Model()
	if err != nil {
		t.Fatalf("failed to build watch list: %v", err)
	}
	if err := repo.Create(ctx, list); err != nil {
		t.Fatalf("failed to create watch list: %v", err)
	}

	stored, err := repo.FindByID(ctx, list.ID)
	if err != nil || stored == nil {
		t.Fatalf("failed to reload watch list: %v", err)
	}
	if len(stored.StockSymbols) != 3 || stored.StockSymbols[0] != "AAPL" || stored.StockSymbols[2] != "NVDA" {
		t.Fatalf("symbol order lost through storage: %+v", stored.StockSymbols)
	}

	symbols := []string{"TSLA"}
	updated, err := repo.Update(ctx, list.ID, model.WatchListUpdate{StockSymbols: &symbols})
	if err != nil {
		t.Fatalf("failed to update watch list: %v", err)
	}
	if len(updated.StockSymbols) != 1 || updated.StockSymbols[0] != "TSLA" {
		t.Fatalf("symbols should be replaced wholesale: %+v", updated.StockSymbols)
	}
}

func TestTransactionDecimalScale(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	repo := repository.NewTransactionRepository().WithDB(db)

	tx, err := model.TransactionCreate{
		HoldingID:       1,
		TransactionType: model.TransactionTypeBuy,
		Quantity:        d("0.123456789"), // over quantity scale
		Price:           d("10.12345"),    // over price scale
		Fees:            d("0.999"),       // over money scale
	}.Model()
	if err != nil {
		t.Fatalf("failed to build transaction: %v", err)
	}
	if err := repo.Create(ctx, tx); err != nil {
		t.Fatalf("failed to create transaction: %v", err)
	}

	stored, err := repo.FindByID(ctx, tx.ID)
	if err != nil || stored == nil {
		t.Fatalf("failed to reload transaction: %v", err)
	}
	if !stored.Quantity.Equal(d("0.12345679")) {
		t.Fatalf("quantity not stored at 8 places: %s", stored.Quantity)
	}
	if !stored.Price.Equal(d("10.1235")) {
		t.Fatalf("price not stored at 4 places: %s", stored.Price)
	}
	if !stored.Fees.Equal(d("1.00")) {
		t.Fatalf("fees not stored at 2 places: %s", stored.Fees)
	}
}
