package repository

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"portfoliotracker/src/database"
	"portfoliotracker/src/model"
)

// MarketIndexRepository handles the standalone benchmark index rows.
type MarketIndexRepository struct {
	db *gorm.DB
}

func NewMarketIndexRepository() *MarketIndexRepository {
	logger.WithField("component", "MarketIndexRepository").
		Info("Creating new MarketIndexRepository with MainDB")

	return &MarketIndexRepository{
		db: database.MainDB,
	}
}

// WithDB allows overriding the underlying *gorm.DB instance.
func (r *MarketIndexRepository) WithDB(db *gorm.DB) *MarketIndexRepository {
	return &MarketIndexRepository{db: db}
}

func (r *MarketIndexRepository) Create(ctx context.Context, index *model.MarketIndex) error {
	if err := model.Validate(index); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(index).Error
}

func (r *MarketIndexRepository) FindBySymbol(ctx context.Context, symbol string) (*model.MarketIndex, error) {
	var m model.MarketIndex
	err := r.db.WithContext(ctx).
		Where("symbol = ?", symbol).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *MarketIndexRepository) List(ctx context.Context) ([]model.MarketIndex, error) {
	var indices []model.MarketIndex
	err := r.db.WithContext(ctx).
		Order("symbol ASC").
		Find(&indices).Error
	if err != nil {
		return nil, err
	}
	return indices, nil
}

// ApplyValue refreshes the value columns of one index from a connector
// snapshot. Day change derives from the snapshot.
func (r *MarketIndexRepository) ApplyValue(
	ctx context.Context,
	symbol string,
	currentValue, previousClose decimal.Decimal,
	asOf time.Time,
) error {

	dayChange := currentValue.Sub(previousClose)
	dayChangePercent := decimal.Zero
	if !previousClose.IsZero() {
		dayChangePercent = dayChange.Div(previousClose).Mul(decimal.NewFromInt(100)).Round(4)
	}

	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}

	result := r.db.WithContext(ctx).
		Model(&model.MarketIndex{}).
		Where("symbol = ?", symbol).
		Updates(map[string]interface{}{
			"current_value":      currentValue.Round(4),
			"previous_close":     previousClose.Round(4),
			"day_change":         dayChange.Round(4),
			"day_change_percent": dayChangePercent,
			"last_updated":       asOf,
		})

	if result.Error != nil {
		logger.WithFields(map[string]interface{}{
			"repo":   "MarketIndexRepository",
			"op":     "ApplyValue",
			"symbol": symbol,
		}).WithError(result.Error).Error("Failed to apply index value")
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
