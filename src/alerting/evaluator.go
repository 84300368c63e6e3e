package alerting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"portfoliotracker/src/model"
	"portfoliotracker/src/repository"
)

// AlertSource is the slice of the alert repository the evaluator needs.
type AlertSource interface {
	FindActive(ctx context.Context) ([]model.PriceAlert, error)
	MarkTriggered(ctx context.Context, id uint, price decimal.Decimal, at time.Time) error
}

// StockSource resolves the stocks alerts are armed against.
type StockSource interface {
	FindByID(ctx context.Context, id uint) (*model.Stock, error)
}

type Evaluator struct {
	logger *logrus.Entry
	alerts AlertSource
	stocks StockSource
	now    func() time.Time
}

func NewEvaluator(logger *logrus.Entry, alerts AlertSource, stocks StockSource) *Evaluator {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}

	return &Evaluator{logger: logger, alerts: alerts, stocks: stocks, now: time.Now}
}

type EvaluationResult struct {
	Evaluated int
	Triggered []uint
	Errors    []error
}

// Evaluate scans every armed alert against the latest stored quote and
// triggers the ones whose condition holds. Races with a concurrent trigger
// or disable are benign: the guarded UPDATE makes the loser a no-op.
func (e *Evaluator) Evaluate(ctx context.Context) EvaluationResult {
	if ctx == nil {
		ctx = context.Background()
	}

	result := EvaluationResult{}

	alerts, err := e.alerts.FindActive(ctx)
	if err != nil {
		result.Errors = append(result.Errors, err)
		return result
	}

	stockCache := map[uint]*model.Stock{}

	for i := range alerts {
		select {
		case <-ctx.Done():
			result.Errors = append(result.Errors, fmt.Errorf("evaluation canceled: %w", ctx.Err()))
			return result
		default:
		}

		alert := alerts[i]
		result.Evaluated++

		stock, ok := stockCache[alert.StockID]
		if !ok {
			stock, err = e.stocks.FindByID(ctx, alert.StockID)
			if err != nil {
				e.logger.WithError(err).WithFields(logrus.Fields{
					"alert_id": alert.ID,
					"stock_id": alert.StockID,
				}).Error("failed to resolve stock for alert")

				result.Errors = append(result.Errors, err)
				continue
			}
			stockCache[alert.StockID] = stock
		}
		if stock == nil {
			continue
		}

		if !conditionHolds(&alert, stock) {
			continue
		}

		if err := e.alerts.MarkTriggered(ctx, alert.ID, stock.CurrentPrice, e.now().UTC()); err != nil {
			if errors.Is(err, repository.ErrAlertNotActive) {
				// lost the race to another evaluator, nothing to do
				continue
			}
			result.Errors = append(result.Errors, err)
			continue
		}

		result.Triggered = append(result.Triggered, alert.ID)
		e.logger.WithFields(logrus.Fields{
			"alert_id": alert.ID,
			"stock_id": alert.StockID,
			"type":     alert.AlertType,
			"price":    stock.CurrentPrice,
		}).Info("price alert triggered")
	}

	return result
}

// conditionHolds checks one alert against the stock's latest quote. An alert
// missing the target its type needs never fires.
func conditionHolds(alert *model.PriceAlert, stock *model.Stock) bool {
	switch alert.AlertType {
	case model.AlertTypePriceAbove:
		return alert.TargetPrice != nil &&
			stock.CurrentPrice.GreaterThanOrEqual(*alert.TargetPrice)
	case model.AlertTypePriceBelow:
		return alert.TargetPrice != nil &&
			stock.CurrentPrice.LessThanOrEqual(*alert.TargetPrice)
	case model.AlertTypePercentChange:
		return alert.TargetPercentage != nil &&
			stock.DayChangePercent.Abs().GreaterThanOrEqual(alert.TargetPercentage.Abs())
	default:
		return false
	}
}
