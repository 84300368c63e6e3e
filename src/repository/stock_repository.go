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

// StockRepository handles read/write operations for stocks and their quotes.
type StockRepository struct {
	db *gorm.DB
}

// NewStockRepository creates a new repository instance using the main read/write database.
func NewStockRepository() *StockRepository {
	logger.WithField("component", "StockRepository").
		Info("Creating new StockRepository with MainDB")

	return &StockRepository{
		db: database.MainDB,
	}
}

// NewStockRepositoryReadOnly serves quote lookups from the read replica.
func NewStockRepositoryReadOnly() *StockRepository {
	logger.WithField("component", "StockRepository").
		Info("Creating new StockRepository with ReadOnlyDB")

	return &StockRepository{
		db: database.ReadOnlyDB,
	}
}

// WithDB allows overriding the underlying *gorm.DB instance.
func (r *StockRepository) WithDB(db *gorm.DB) *StockRepository {
	return &StockRepository{db: db}
}

func (r *StockRepository) Create(ctx context.Context, stock *model.Stock) error {
	if err := model.Validate(stock); err != nil {
		return err
	}

	err := r.db.WithContext(ctx).Create(stock).Error
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo":   "StockRepository",
			"op":     "Create",
			"symbol": stock.Symbol,
		}).WithError(err).Error("Failed to create stock")
		return err
	}

	return nil
}

// FindByID returns (nil, nil) if the stock is not found.
func (r *StockRepository) FindByID(ctx context.Context, id uint) (*model.Stock, error) {
	var s model.Stock
	err := r.db.WithContext(ctx).First(&s, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *StockRepository) FindBySymbol(ctx context.Context, symbol string) (*model.Stock, error) {
	var s model.Stock
	err := r.db.WithContext(ctx).
		Where("symbol = ?", symbol).
		First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// StockSearchOptions narrows List results. Zero values mean "no filter".
type StockSearchOptions struct {
	Exchange string
	Sector   string
	Limit    int
	Offset   int
}

func (r *StockRepository) Search(ctx context.Context, opts StockSearchOptions) ([]model.Stock, error) {
	query := r.db.WithContext(ctx).Model(&model.Stock{})

	if opts.Exchange != "" {
		query = query.Where("exchange = ?", opts.Exchange)
	}
	if opts.Sector != "" {
		query = query.Where("sector = ?", opts.Sector)
	}

	query = query.Order("symbol ASC")
	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		query = query.Offset(opts.Offset)
	}

	var stocks []model.Stock
	if err := query.Find(&stocks).Error; err != nil {
		return nil, err
	}
	return stocks, nil
}

// Update applies a partial update and persists the merged record.
// Returns (nil, nil) if the stock does not exist.
func (r *StockRepository) Update(
	ctx context.Context,
	id uint,
	payload model.StockUpdate,
) (*model.Stock, error) {

	if err := model.Validate(payload); err != nil {
		return nil, err
	}

	stock, err := r.FindByID(ctx, id)
	if err != nil || stock == nil {
		return stock, err
	}

	payload.Apply(stock)
	if err := model.Validate(stock); err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Save(stock).Error; err != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "StockRepository",
			"op":   "Update",
			"id":   id,
		}).WithError(err).Error("Failed to update stock")
		return nil, err
	}

	return stock, nil
}

// QuoteUpdate is one refreshed market snapshot for a symbol, as produced by
// the quote connector.
type QuoteUpdate struct {
	CurrentPrice  decimal.Decimal
	PreviousClose decimal.Decimal
	Volume        int64
	AsOf          time.Time
}

// ApplyQuote refreshes the market-facing columns of one stock. Day change
// columns derive from the snapshot itself, not from holdings.
func (r *StockRepository) ApplyQuote(ctx context.Context, symbol string, q QuoteUpdate) error {
	dayChange := q.CurrentPrice.Sub(q.PreviousClose)
	dayChangePercent := decimal.Zero
	if !q.PreviousClose.IsZero() {
		dayChangePercent = dayChange.Div(q.PreviousClose).Mul(decimal.NewFromInt(100)).Round(4)
	}

	asOf := q.AsOf
	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}

	result := r.db.WithContext(ctx).
		Model(&model.Stock{}).
		Where("symbol = ?", symbol).
		Updates(map[string]interface{}{
			"current_price":      q.CurrentPrice.Round(4),
			"previous_close":     q.PreviousClose.Round(4),
			"day_change":         dayChange.Round(4),
			"day_change_percent": dayChangePercent,
			"volume":             q.Volume,
			"last_updated":       asOf,
		})

	if result.Error != nil {
		logger.WithFields(map[string]interface{}{
			"repo":   "StockRepository",
			"op":     "ApplyQuote",
			"symbol": symbol,
		}).WithError(result.Error).Error("Failed to apply quote")
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// Quote returns the flattened market view of one symbol.
// Returns (nil, nil) if the symbol is unknown.
func (r *StockRepository) Quote(ctx context.Context, symbol string) (*model.StockQuote, error) {
	stock, err := r.FindBySymbol(ctx, symbol)
	if err != nil || stock == nil {
		return nil, err
	}
	quote := stock.Quote()
	return &quote, nil
}
