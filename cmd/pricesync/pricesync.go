package pricesync

import (
	"context"
	"database/sql"
	"time"

	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"portfoliotracker/src/connectors"
	"portfoliotracker/src/model"
	"portfoliotracker/src/repository"
	"portfoliotracker/src/utils"
)

// PriceSync pulls quotes, daily bars and index values from the market data
// provider and writes them through the repositories.
type PriceSync struct {
	Log    *logger.Entry
	DB     *gorm.DB
	Config *Config

	client  *connectors.MarketDataClient
	stocks  *repository.StockRepository
	history *repository.PriceHistoryRepository
	indices *repository.MarketIndexRepository
}

func (p *PriceSync) Start() error {
	p.Config = GetConfig()

	p.client = connectors.NewMarketDataClient(connectors.GetConfig())
	p.stocks = repository.NewStockRepository().WithDB(p.DB)
	p.history = repository.NewPriceHistoryRepository().WithDB(p.DB)
	p.indices = repository.NewMarketIndexRepository().WithDB(p.DB)

	ctx := context.Background()

	for _, symbol := range p.Config.Symbols {
		if err := p.syncSymbol(ctx, symbol); err != nil {
			return err
		}
	}

	if p.Config.SyncIndices {
		if err := p.syncIndices(ctx); err != nil {
			return err
		}
	}

	return nil
}

func (p *PriceSync) syncSymbol(ctx context.Context, symbol string) error {
	stock, err := p.stocks.FindBySymbol(ctx, symbol)
	if err != nil {
		return err
	}
	if stock == nil {
		p.Log.WithField("symbol", symbol).Warn("Symbol not tracked, skipping")
		return nil
	}

	snap, err := p.client.GetQuote(ctx, symbol)
	if err != nil {
		return err
	}
	if err := p.stocks.ApplyQuote(ctx, symbol, repository.QuoteUpdate{
		CurrentPrice:  snap.Price,
		PreviousClose: snap.PreviousClose,
		Volume:        snap.Volume,
		AsOf:          snap.AsOf,
	}); err != nil {
		return err
	}

	from, to := p.Config.StartDt, p.Config.EndDt
	if p.Config.AutoMode {
		from, to = p.determineStartPoint(stock.ID)
	}

	bars, err := p.client.GetDailyBars(ctx, symbol, from, to)
	if err != nil {
		return err
	}

	for i := range bars {
		bar := bars[i]
		if err := p.history.Upsert(ctx, &model.StockPriceHistory{
			StockID:       stock.ID,
			Date:          utils.ResetTime(bar.Date, "day"),
			OpenPrice:     bar.Open,
			HighPrice:     bar.High,
			LowPrice:      bar.Low,
			ClosePrice:    bar.Close,
			Volume:        bar.Volume,
			AdjustedClose: bar.AdjustedClose,
		}); err != nil {
			p.Log.WithError(err).Error("syncSymbol, Upsert, ")
			return err
		}
	}

	p.Log.WithFields(logger.Fields{
		"Symbol": symbol,
		"Bars":   len(bars),
		"From":   from.Format("2006-01-02"),
		"To":     to.Format("2006-01-02"),
	}).Info("Price history synced")

	return nil
}

// determineStartPoint resumes from the latest stored bar so reruns only fetch
// the missing tail of the series.
func (p *PriceSync) determineStartPoint(stockID uint) (time.Time, time.Time) {
	from := p.Config.StartDt
	to := time.Now().UTC()

	var latest sql.NullTime
	result := p.DB.Model(&model.StockPriceHistory{}).
		Select("MAX(date)").
		Where("stock_id = ?", stockID).
		Take(&latest)

	if result.Error != nil {
		p.Log.WithError(result.Error).
			WithField("StartDt", from.String()).
			Warn("determineStartPoint failed, using configured StartDt")
		return from, to
	}

	if latest.Valid {
		from = latest.Time
	}

	p.Log.
		WithField("latest", latest).
		WithField("from", from.String()).
		Info("determineStartPoint")

	return from, to
}

func (p *PriceSync) syncIndices(ctx context.Context) error {
	tracked, err := p.indices.List(ctx)
	if err != nil {
		return err
	}

	for i := range tracked {
		idx := tracked[i]

		snap, err := p.client.GetIndexValue(ctx, idx.Symbol)
		if err != nil {
			return err
		}

		if err := p.indices.ApplyValue(ctx, idx.Symbol, snap.Value, snap.PreviousClose, snap.AsOf); err != nil {
			p.Log.WithError(err).Error("syncIndices, ApplyValue, ")
			return err
		}

		p.Log.WithFields(logger.Fields{
			"Symbol":    idx.Symbol,
			"Value":     snap.Value,
			"Timestamp": time.Now().UTC(),
		}).Info("Index value refreshed")
	}

	return nil
}
