package repository

import (
	"context"
	"errors"

	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"portfoliotracker/src/database"
	"portfoliotracker/src/model"
)

const performerSlots = 3

// PortfolioRepository handles portfolios and their summary projection.
type PortfolioRepository struct {
	db *gorm.DB
}

func NewPortfolioRepository() *PortfolioRepository {
	logger.WithField("component", "PortfolioRepository").
		Info("Creating new PortfolioRepository with MainDB")

	return &PortfolioRepository{
		db: database.MainDB,
	}
}

// NewPortfolioRepositoryReadOnly serves summary projections from the read replica.
func NewPortfolioRepositoryReadOnly() *PortfolioRepository {
	logger.WithField("component", "PortfolioRepository").
		Info("Creating new PortfolioRepository with ReadOnlyDB")

	return &PortfolioRepository{
		db: database.ReadOnlyDB,
	}
}

// WithDB allows overriding the underlying *gorm.DB instance.
func (r *PortfolioRepository) WithDB(db *gorm.DB) *PortfolioRepository {
	return &PortfolioRepository{db: db}
}

func (r *PortfolioRepository) Create(ctx context.Context, portfolio *model.Portfolio) error {
	if err := model.Validate(portfolio); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(portfolio).Error
}

// FindByID returns (nil, nil) if the portfolio is not found.
func (r *PortfolioRepository) FindByID(ctx context.Context, id uint) (*model.Portfolio, error) {
	var p model.Portfolio
	err := r.db.WithContext(ctx).First(&p, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// FindByUser resolves the user -> portfolios back-reference as an explicit
// query; default portfolio first, then most recently created.
func (r *PortfolioRepository) FindByUser(ctx context.Context, userID uint) ([]model.Portfolio, error) {
	var portfolios []model.Portfolio
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_default DESC, created_at DESC").
		Find(&portfolios).Error
	if err != nil {
		return nil, err
	}
	return portfolios, nil
}

// Update applies a partial update and persists the merged record.
// Returns (nil, nil) if the portfolio does not exist.
func (r *PortfolioRepository) Update(
	ctx context.Context,
	id uint,
	payload model.PortfolioUpdate,
) (*model.Portfolio, error) {

	if err := model.Validate(payload); err != nil {
		return nil, err
	}

	portfolio, err := r.FindByID(ctx, id)
	if err != nil || portfolio == nil {
		return portfolio, err
	}

	payload.Apply(portfolio)
	if err := model.Validate(portfolio); err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Save(portfolio).Error; err != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "PortfolioRepository",
			"op":   "Update",
			"id":   id,
		}).WithError(err).Error("Failed to update portfolio")
		return nil, err
	}

	return portfolio, nil
}

// SaveTotals persists recomputed cached aggregates. The numbers come from the
// service layer; this module does not derive them.
func (r *PortfolioRepository) SaveTotals(ctx context.Context, portfolio *model.Portfolio) error {
	return r.db.WithContext(ctx).Save(portfolio).Error
}

// Summary assembles the read-only portfolio projection: cached totals plus
// the best and worst positions ranked by gain_loss_percent.
// Returns (nil, nil) if the portfolio does not exist.
func (r *PortfolioRepository) Summary(ctx context.Context, id uint) (*model.PortfolioSummary, error) {
	portfolio, err := r.FindByID(ctx, id)
	if err != nil || portfolio == nil {
		return nil, err
	}

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.PortfolioHolding{}).
		Where("portfolio_id = ?", id).
		Count(&count).Error; err != nil {
		return nil, err
	}

	top, err := r.rankedPerformers(ctx, id, "DESC")
	if err != nil {
		return nil, err
	}
	worst, err := r.rankedPerformers(ctx, id, "ASC")
	if err != nil {
		return nil, err
	}

	return &model.PortfolioSummary{
		PortfolioID:          portfolio.ID,
		PortfolioName:        portfolio.Name,
		TotalValue:           portfolio.TotalValue,
		TotalCost:            portfolio.TotalCost,
		TotalGainLoss:        portfolio.TotalGainLoss,
		TotalGainLossPercent: portfolio.TotalGainLossPercent,
		HoldingsCount:        int(count),
		TopPerformers:        top,
		WorstPerformers:      worst,
	}, nil
}

func (r *PortfolioRepository) rankedPerformers(
	ctx context.Context,
	portfolioID uint,
	direction string,
) ([]map[string]interface{}, error) {

	order := "portfolio_holdings.gain_loss_percent DESC"
	if direction == "ASC" {
		order = "portfolio_holdings.gain_loss_percent ASC"
	}

	rows := make([]map[string]interface{}, 0, performerSlots)
	err := r.db.WithContext(ctx).
		Model(&model.PortfolioHolding{}).
		Select("stocks.symbol AS symbol, stocks.name AS name, portfolio_holdings.gain_loss AS gain_loss, portfolio_holdings.gain_loss_percent AS gain_loss_percent").
		Joins("JOIN stocks ON stocks.id = portfolio_holdings.stock_id").
		Where("portfolio_holdings.portfolio_id = ?", portfolioID).
		Order(order).
		Limit(performerSlots).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}
