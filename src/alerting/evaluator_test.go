package alerting

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"portfoliotracker/src/model"
	"portfoliotracker/src/repository"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func dp(s string) *decimal.Decimal {
	v := decimal.RequireFromString(s)
	return &v
}

type fakeAlertSource struct {
	alerts    []model.PriceAlert
	triggered map[uint]decimal.Decimal
	failWith  error
}

func (f *fakeAlertSource) FindActive(context.Context) ([]model.PriceAlert, error) {
	return f.alerts, nil
}

func (f *fakeAlertSource) MarkTriggered(_ context.Context, id uint, price decimal.Decimal, _ time.Time) error {
	if f.failWith != nil {
		return f.failWith
	}
	if f.triggered == nil {
		f.triggered = map[uint]decimal.Decimal{}
	}
	f.triggered[id] = price
	return nil
}

type fakeStockSource map[uint]*model.Stock

func (f fakeStockSource) FindByID(_ context.Context, id uint) (*model.Stock, error) {
	return f[id], nil
}

func TestEvaluatorTriggersMatchingAlerts(t *testing.T) {
	stocks := fakeStockSource{
		1: {ID: 1, Symbol: "AAPL", CurrentPrice: d("205"), DayChangePercent: d("1.2")},
		2: {ID: 2, Symbol: "TSLA", CurrentPrice: d("180"), DayChangePercent: d("-6.5")},
	}

	alerts := &fakeAlertSource{alerts: []model.PriceAlert{
		{ID: 10, StockID: 1, AlertType: model.AlertTypePriceAbove, TargetPrice: dp("200")},  // fires, 205 >= 200
		{ID: 11, StockID: 1, AlertType: model.AlertTypePriceAbove, TargetPrice: dp("210")},  // holds
		{ID: 12, StockID: 1, AlertType: model.AlertTypePriceBelow, TargetPrice: dp("210")},  // fires, 205 <= 210
		{ID: 13, StockID: 2, AlertType: model.AlertTypePercentChange, TargetPercentage: dp("5")}, // fires, |-6.5| >= 5
		{ID: 14, StockID: 1, AlertType: model.AlertTypePercentChange, TargetPercentage: dp("5")}, // holds
		{ID: 15, StockID: 1, AlertType: model.AlertTypePriceAbove},                          // no target, never fires
		{ID: 16, StockID: 99, AlertType: model.AlertTypePriceAbove, TargetPrice: dp("1")},   // unknown stock, skipped
	}}

	evaluator := NewEvaluator(nil, alerts, stocks)
	result := evaluator.Evaluate(context.Background())

	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if result.Evaluated != 7 {
		t.Fatalf("expected 7 alerts evaluated, got %d", result.Evaluated)
	}
	if len(result.Triggered) != 3 {
		t.Fatalf("expected 3 alerts triggered, got %v", result.Triggered)
	}

	for _, id := range []uint{10, 12, 13} {
		if _, ok := alerts.triggered[id]; !ok {
			t.Fatalf("alert %d should have triggered, got %v", id, alerts.triggered)
		}
	}
	if !alerts.triggered[10].Equal(d("205")) {
		t.Fatalf("trigger must record the current price, got %s", alerts.triggered[10])
	}
}

func TestEvaluatorToleratesLostRace(t *testing.T) {
	stocks := fakeStockSource{
		1: {ID: 1, CurrentPrice: d("205")},
	}
	alerts := &fakeAlertSource{
		alerts: []model.PriceAlert{
			{ID: 10, StockID: 1, AlertType: model.AlertTypePriceAbove, TargetPrice: dp("200")},
		},
		failWith: repository.ErrAlertNotActive,
	}

	evaluator := NewEvaluator(nil, alerts, stocks)
	result := evaluator.Evaluate(context.Background())

	if len(result.Errors) != 0 {
		t.Fatalf("a lost trigger race is not an error: %v", result.Errors)
	}
	if len(result.Triggered) != 0 {
		t.Fatalf("lost race must not count as triggered: %v", result.Triggered)
	}
}

func TestEvaluatorStopsOnCanceledContext(t *testing.T) {
	stocks := fakeStockSource{1: {ID: 1, CurrentPrice: d("205")}}
	alerts := &fakeAlertSource{alerts: []model.PriceAlert{
		{ID: 10, StockID: 1, AlertType: model.AlertTypePriceAbove, TargetPrice: dp("200")},
	}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	evaluator := NewEvaluator(nil, alerts, stocks)
	result := evaluator.Evaluate(ctx)

	if len(result.Errors) == 0 {
		t.Fatalf("expected a cancellation error")
	}
	if len(result.Triggered) != 0 {
		t.Fatalf("nothing should trigger after cancellation: %v", result.Triggered)
	}
}
