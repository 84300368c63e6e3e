package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"

	"portfoliotracker/src/model"
)

func TestPriceAlertRepositoryMarkTriggered(t *testing.T) {
	mockDB, mock := newMockDB(t)
	repo := &PriceAlertRepository{db: mockDB}

	price := decimal.RequireFromString("212.3456")
	at := time.Date(2026, 2, 10, 16, 0, 0, 0, time.UTC)

	t.Run("active alert triggers once", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "price_alerts" SET`)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		if err := repo.MarkTriggered(context.Background(), 5, price, at); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("already triggered alert is rejected", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "price_alerts" SET`)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		err := repo.MarkTriggered(context.Background(), 5, price, at)
		if !errors.Is(err, ErrAlertNotActive) {
			t.Fatalf("expected ErrAlertNotActive, got %v", err)
		}
	})

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet sqlmock expectations: %v", err)
	}
}

func TestPriceAlertRepositoryDisable(t *testing.T) {
	mockDB, mock := newMockDB(t)
	repo := &PriceAlertRepository{db: mockDB}

	t.Run("active alert disables", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "price_alerts" SET`)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		if err := repo.Disable(context.Background(), 9); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("terminal alert stays terminal", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "price_alerts" SET`)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		err := repo.Disable(context.Background(), 9)
		if !errors.Is(err, ErrAlertNotActive) {
			t.Fatalf("expected ErrAlertNotActive, got %v", err)
		}
	})

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet sqlmock expectations: %v", err)
	}
}

func TestPriceAlertRepositoryFindActive(t *testing.T) {
	mockDB, mock := newMockDB(t)
	repo := &PriceAlertRepository{db: mockDB}

	rows := sqlmock.NewRows([]string{"id", "user_id", "stock_id", "alert_type", "status"}).
		AddRow(1, 1, 2, string(model.AlertTypePriceAbove), string(model.AlertStatusActive)).
		AddRow(2, 1, 3, string(model.AlertTypePriceBelow), string(model.AlertStatusActive))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "price_alerts" WHERE status = $1 ORDER BY created_at ASC, id ASC`)).
		WithArgs(string(model.AlertStatusActive)).
		WillReturnRows(rows)

	alerts, err := repo.FindActive(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(alerts) != 2 || alerts[0].ID != 1 {
		t.Fatalf("unexpected alerts: %+v", alerts)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet sqlmock expectations: %v", err)
	}
}
