package repository

import (
	"context"
	"errors"
	"time"

	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"portfoliotracker/src/database"
	"portfoliotracker/src/model"
)

// PriceHistoryRepository handles daily OHLCV bars.
type PriceHistoryRepository struct {
	db *gorm.DB
}

func NewPriceHistoryRepository() *PriceHistoryRepository {
	logger.WithField("component", "PriceHistoryRepository").
		Info("Creating new PriceHistoryRepository with MainDB")

	return &PriceHistoryRepository{
		db: database.MainDB,
	}
}

// WithDB allows overriding the underlying *gorm.DB instance.
func (r *PriceHistoryRepository) WithDB(db *gorm.DB) *PriceHistoryRepository {
	return &PriceHistoryRepository{db: db}
}

func (r *PriceHistoryRepository) Create(ctx context.Context, bar *model.StockPriceHistory) error {
	if err := model.Validate(bar); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(bar).Error
}

// Upsert replaces the bar for (stock, date) if one exists, otherwise inserts.
// The table carries no unique constraint on the pair, so the check runs in a
// transaction instead of ON CONFLICT.
func (r *PriceHistoryRepository) Upsert(ctx context.Context, bar *model.StockPriceHistory) error {
	if err := model.Validate(bar); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.StockPriceHistory
		err := tx.Where("stock_id = ? AND date = ?", bar.StockID, bar.Date).
			First(&existing).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(bar).Error
		}
		if err != nil {
			return err
		}

		bar.ID = existing.ID
		bar.CreatedAt = existing.CreatedAt
		return tx.Save(bar).Error
	})
}

// FindRange returns the bars of one stock inside [from, to], ascending by date.
func (r *PriceHistoryRepository) FindRange(
	ctx context.Context,
	stockID uint,
	from, to time.Time,
) ([]model.StockPriceHistory, error) {

	var bars []model.StockPriceHistory
	err := r.db.WithContext(ctx).
		Where("stock_id = ? AND date >= ? AND date <= ?", stockID, from, to).
		Order("date ASC").
		Find(&bars).Error
	if err != nil {
		return nil, err
	}
	return bars, nil
}

// FindRecent returns up to limit most recent bars in ascending chronological
// order for easier consumption by charting and indicators.
func (r *PriceHistoryRepository) FindRecent(
	ctx context.Context,
	stockID uint,
	limit int,
) ([]model.StockPriceHistory, error) {

	if limit <= 0 {
		limit = 200
	}

	var bars []model.StockPriceHistory
	err := r.db.WithContext(ctx).
		Where("stock_id = ?", stockID).
		Order("date DESC").
		Limit(limit).
		Find(&bars).Error
	if err != nil {
		return nil, err
	}

	// reverse to ascending chronological order
	for i, j := 0, len(bars)-1; i < j; i, j = i+1, j-1 {
		bars[i], bars[j] = bars[j], bars[i]
	}
	return bars, nil
}
