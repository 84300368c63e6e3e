package alerting

import (
	"context"
	"time"

	logger "github.com/sirupsen/logrus"

	"portfoliotracker/src/marketcalendar"
	"portfoliotracker/src/repository"
)

// StartLoop runs the alert evaluator on a fixed period until the context is
// canceled. Outside regular trading hours the tick is skipped unless
// configured otherwise, stored quotes do not move while the market is closed.
func StartLoop(ctx context.Context) error {
	config := GetConfig()

	ticker := time.NewTicker(config.LoopPeriod)
	defer ticker.Stop()

	alertRep := repository.NewPriceAlertRepository()
	stockRep := repository.NewStockRepository()

	evaluator := NewEvaluator(
		logger.WithField("component", "AlertEvaluator"),
		alertRep,
		stockRep,
	)

	for {
		select {
		case <-ctx.Done():
			logger.Info("alert loop stopped")
			return nil

		case <-ticker.C:
			logger.Debug("alert loop tick")

			if config.MarketHoursOnly {
				session := marketcalendar.DetectSession(time.Now())
				if session != marketcalendar.SessionRegular {
					logger.WithField("session", session).Debug("market closed, skipping tick")
					continue
				}
			}

			result := evaluator.Evaluate(ctx)

			if len(result.Errors) > 0 {
				for _, err := range result.Errors {
					logger.WithError(err).Error("alert evaluation error")
				}
				if config.StopOnEvalFailure {
					return result.Errors[0]
				}
			}

			if len(result.Triggered) > 0 {
				logger.WithFields(logger.Fields{
					"evaluated": result.Evaluated,
					"triggered": len(result.Triggered),
				}).Info("alerts triggered this tick")
			}
		}
	}
}
