package repository

import (
	"context"
	"errors"

	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"portfoliotracker/src/database"
	"portfoliotracker/src/model"
)

// HoldingRepository handles positions inside portfolios.
type HoldingRepository struct {
	db *gorm.DB
}

func NewHoldingRepository() *HoldingRepository {
	logger.WithField("component", "HoldingRepository").
		Info("Creating new HoldingRepository with MainDB")

	return &HoldingRepository{
		db: database.MainDB,
	}
}

// WithDB allows overriding the underlying *gorm.DB instance.
func (r *HoldingRepository) WithDB(db *gorm.DB) *HoldingRepository {
	return &HoldingRepository{db: db}
}

func (r *HoldingRepository) Create(ctx context.Context, holding *model.PortfolioHolding) error {
	if err := model.Validate(holding); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(holding).Error
}

// FindByID returns (nil, nil) if the holding is not found.
func (r *HoldingRepository) FindByID(ctx context.Context, id uint) (*model.PortfolioHolding, error) {
	var h model.PortfolioHolding
	err := r.db.WithContext(ctx).First(&h, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &h, nil
}

// FindByPortfolio resolves the portfolio -> holdings back-reference.
func (r *HoldingRepository) FindByPortfolio(ctx context.Context, portfolioID uint) ([]model.PortfolioHolding, error) {
	var holdings []model.PortfolioHolding
	err := r.db.WithContext(ctx).
		Where("portfolio_id = ?", portfolioID).
		Order("id ASC").
		Find(&holdings).Error
	if err != nil {
		return nil, err
	}
	return holdings, nil
}

// FindByPortfolioAndStock returns the single position for a stock inside a
// portfolio, or (nil, nil) if none exists yet.
func (r *HoldingRepository) FindByPortfolioAndStock(
	ctx context.Context,
	portfolioID, stockID uint,
) (*model.PortfolioHolding, error) {

	var h model.PortfolioHolding
	err := r.db.WithContext(ctx).
		Where("portfolio_id = ? AND stock_id = ?", portfolioID, stockID).
		First(&h).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &h, nil
}

// FindByStock resolves the stock -> holdings back-reference across portfolios.
func (r *HoldingRepository) FindByStock(ctx context.Context, stockID uint) ([]model.PortfolioHolding, error) {
	var holdings []model.PortfolioHolding
	err := r.db.WithContext(ctx).
		Where("stock_id = ?", stockID).
		Find(&holdings).Error
	if err != nil {
		return nil, err
	}
	return holdings, nil
}

// Save persists a holding whose cached quantity/cost/value fields were
// recomputed by the service layer after a transaction or quote refresh.
func (r *HoldingRepository) Save(ctx context.Context, holding *model.PortfolioHolding) error {
	err := r.db.WithContext(ctx).Save(holding).Error
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "HoldingRepository",
			"op":   "Save",
			"id":   holding.ID,
		}).WithError(err).Error("Failed to save holding")
	}
	return err
}
