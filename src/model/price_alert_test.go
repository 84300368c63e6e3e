package model

import (
	"testing"
)

func TestPriceAlertCreateModelDefaults(t *testing.T) {
	target := d("210.50")
	payload := PriceAlertCreate{UserID: 1, StockID: 2, TargetPrice: &target}

	alert, err := payload.Model()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if alert.AlertType != AlertTypePriceAbove {
		t.Fatalf("alert type should default to price_above, got %s", alert.AlertType)
	}
	if alert.Status != AlertStatusActive {
		t.Fatalf("new alerts must start active, got %s", alert.Status)
	}
}

func TestPriceAlertCreateModelRejectsUnknownType(t *testing.T) {
	payload := PriceAlertCreate{UserID: 1, StockID: 2, AlertType: "price_exactly"}
	if _, err := payload.Model(); err == nil {
		t.Fatalf("expected validation error for unknown alert type")
	}
}

func TestPriceAlertUpdateApply(t *testing.T) {
	target := d("150")
	alert := &PriceAlert{UserID: 1, StockID: 2, AlertType: AlertTypePriceAbove, TargetPrice: &target, Status: AlertStatusActive}

	newType := AlertTypePriceBelow
	newTarget := d("120")
	update := PriceAlertUpdate{AlertType: &newType, TargetPrice: &newTarget}
	update.Apply(alert)

	if alert.AlertType != AlertTypePriceBelow {
		t.Fatalf("alert type not applied: %s", alert.AlertType)
	}
	if alert.TargetPrice == nil || !alert.TargetPrice.Equal(newTarget) {
		t.Fatalf("target price not applied: %v", alert.TargetPrice)
	}
	if alert.Status != AlertStatusActive {
		t.Fatalf("status must stay untouched when not set: %s", alert.Status)
	}
}
