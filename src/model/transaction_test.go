package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestTransactionCreateModel(t *testing.T) {
	tests := []struct {
		name      string
		payload   TransactionCreate
		wantErr   bool
		wantTotal decimal.Decimal
	}{
		{
			name: "buy adds fees",
			payload: TransactionCreate{
				HoldingID:       1,
				TransactionType: TransactionTypeBuy,
				Quantity:        d("10"),
				Price:           d("150.25"),
				Fees:            d("4.95"),
			},
			wantTotal: d("1507.45"),
		},
		{
			name: "sell subtracts fees",
			payload: TransactionCreate{
				HoldingID:       1,
				TransactionType: TransactionTypeSell,
				Quantity:        d("10"),
				Price:           d("150.25"),
				Fees:            d("4.95"),
			},
			wantTotal: d("1497.55"),
		},
		{
			name: "fractional quantity",
			payload: TransactionCreate{
				HoldingID:       3,
				TransactionType: TransactionTypeBuy,
				Quantity:        d("0.5"),
				Price:           d("100"),
			},
			wantTotal: d("50"),
		},
		{
			name: "lowercase type rejected",
			payload: TransactionCreate{
				HoldingID:       1,
				TransactionType: "buy",
				Quantity:        d("10"),
				Price:           d("150.25"),
			},
			wantErr: true,
		},
		{
			name: "unknown type rejected",
			payload: TransactionCreate{
				HoldingID:       1,
				TransactionType: "TRANSFER",
				Quantity:        d("10"),
				Price:           d("150.25"),
			},
			wantErr: true,
		},
		{
			name: "zero quantity rejected",
			payload: TransactionCreate{
				HoldingID:       1,
				TransactionType: TransactionTypeBuy,
				Quantity:        decimal.Zero,
				Price:           d("150.25"),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx, err := tt.payload.Model()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected validation error, got %+v", tx)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tx.TotalAmount.Equal(tt.wantTotal) {
				t.Fatalf("total amount: want %s, got %s", tt.wantTotal, tx.TotalAmount)
			}
		})
	}
}

func TestTransactionCreateModelDefaultsDate(t *testing.T) {
	payload := TransactionCreate{
		HoldingID:       1,
		TransactionType: TransactionTypeBuy,
		Quantity:        d("1"),
		Price:           d("10"),
	}

	before := time.Now().UTC()
	tx, err := payload.Model()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tx.TransactionDate.Before(before) || tx.TransactionDate.After(time.Now().UTC()) {
		t.Fatalf("transaction date not defaulted to now: %s", tx.TransactionDate)
	}

	given := time.Date(2026, time.March, 2, 14, 30, 0, 0, time.UTC)
	payload.TransactionDate = &given
	tx, err = payload.Model()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !tx.TransactionDate.Equal(given) {
		t.Fatalf("explicit transaction date not kept: %s", tx.TransactionDate)
	}
}

func TestTransactionBeforeSaveRounding(t *testing.T) {
	tx := &Transaction{
		Quantity:    d("0.123456789"),
		Price:       d("10.12345"),
		TotalAmount: d("1.005"),
		Fees:        d("0.994"),
	}

	if err := tx.BeforeSave(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !tx.Quantity.Equal(d("0.12345679")) {
		t.Fatalf("quantity not rounded to 8 places: %s", tx.Quantity)
	}
	if !tx.Price.Equal(d("10.1235")) {
		t.Fatalf("price not rounded to 4 places: %s", tx.Price)
	}
	if !tx.TotalAmount.Equal(d("1.01")) {
		t.Fatalf("total amount not rounded to 2 places: %s", tx.TotalAmount)
	}
	if !tx.Fees.Equal(d("0.99")) {
		t.Fatalf("fees not rounded to 2 places: %s", tx.Fees)
	}
}
