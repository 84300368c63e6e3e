package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Stock is the market-facing record for one listed security. Quote fields
// (current_price, day_change, volume, ...) are refreshed by the market data
// connector; fundamentals (pe_ratio, dividend_yield) may be absent.
type Stock struct {
	ID                uint             `gorm:"primaryKey" json:"id"`
	Symbol            string           `gorm:"size:10;not null;uniqueIndex" json:"symbol" validate:"required,max=10"`
	Name              string           `gorm:"size:200;not null" json:"name" validate:"required,max=200"`
	Exchange          string           `gorm:"size:50;not null" json:"exchange" validate:"required,max=50"`
	Sector            string           `gorm:"size:100;not null;default:''" json:"sector" validate:"max=100"`
	Industry          string           `gorm:"size:100;not null;default:''" json:"industry" validate:"max=100"`
	MarketCap         *decimal.Decimal `gorm:"type:numeric(24,2)" json:"market_cap,omitempty"`
	CurrentPrice      decimal.Decimal  `gorm:"type:numeric(20,4);not null;default:0" json:"current_price"`
	PreviousClose     decimal.Decimal  `gorm:"type:numeric(20,4);not null;default:0" json:"previous_close"`
	DayChange         decimal.Decimal  `gorm:"type:numeric(20,4);not null;default:0" json:"day_change"`
	DayChangePercent  decimal.Decimal  `gorm:"type:numeric(20,4);not null;default:0" json:"day_change_percent"`
	Volume            int64            `gorm:"not null;default:0" json:"volume"`
	AvgVolume         int64            `gorm:"not null;default:0" json:"avg_volume"`
	PERatio           *decimal.Decimal `gorm:"type:numeric(20,2)" json:"pe_ratio,omitempty"`
	DividendYield     *decimal.Decimal `gorm:"type:numeric(20,4)" json:"dividend_yield,omitempty"`
	FiftyTwoWeekHigh  *decimal.Decimal `gorm:"type:numeric(20,4)" json:"fifty_two_week_high,omitempty"`
	FiftyTwoWeekLow   *decimal.Decimal `gorm:"type:numeric(20,4)" json:"fifty_two_week_low,omitempty"`
	LastUpdated       time.Time        `gorm:"autoCreateTime" json:"last_updated"`
	CreatedAt         time.Time        `json:"created_at"`

	Holdings     []PortfolioHolding  `gorm:"foreignKey:StockID" json:"holdings,omitempty"`
	PriceHistory []StockPriceHistory `gorm:"foreignKey:StockID" json:"price_history,omitempty"`
	PriceAlerts  []PriceAlert        `gorm:"foreignKey:StockID" json:"price_alerts,omitempty"`
}

func (Stock) TableName() string {
	return "stocks"
}

// BeforeSave quantizes the decimal columns to their declared scale.
func (s *Stock) BeforeSave(*gorm.DB) error {
	s.MarketCap = roundPtr(s.MarketCap, scaleMoney)
	s.CurrentPrice = s.CurrentPrice.Round(scalePrice)
	s.PreviousClose = s.PreviousClose.Round(scalePrice)
	s.DayChange = s.DayChange.Round(scalePrice)
	s.DayChangePercent = s.DayChangePercent.Round(scalePrice)
	s.PERatio = roundPtr(s.PERatio, scaleMoney)
	s.DividendYield = roundPtr(s.DividendYield, scalePrice)
	s.FiftyTwoWeekHigh = roundPtr(s.FiftyTwoWeekHigh, scalePrice)
	s.FiftyTwoWeekLow = roundPtr(s.FiftyTwoWeekLow, scalePrice)
	return nil
}

// Quote flattens the market-facing fields into a read-only projection.
func (s Stock) Quote() StockQuote {
	return StockQuote{
		Symbol:           s.Symbol,
		Name:             s.Name,
		CurrentPrice:     s.CurrentPrice,
		DayChange:        s.DayChange,
		DayChangePercent: s.DayChangePercent,
		Volume:           s.Volume,
		MarketCap:        s.MarketCap,
		PERatio:          s.PERatio,
		LastUpdated:      s.LastUpdated,
	}
}

// StockCreate is the request payload for listing a new stock.
type StockCreate struct {
	Symbol   string `json:"symbol" validate:"required,max=10"`
	Name     string `json:"name" validate:"required,max=200"`
	Exchange string `json:"exchange" validate:"required,max=50"`
	Sector   string `json:"sector" validate:"max=100"`
	Industry string `json:"industry" validate:"max=100"`
}

func (c StockCreate) Model() (*Stock, error) {
	if err := Validate(c); err != nil {
		return nil, err
	}
	return &Stock{
		Symbol:   c.Symbol,
		Name:     c.Name,
		Exchange: c.Exchange,
		Sector:   c.Sector,
		Industry: c.Industry,
	}, nil
}

// StockUpdate carries a partial update of the mutable stock fields.
type StockUpdate struct {
	Name         *string          `json:"name,omitempty" validate:"omitempty,max=200"`
	Sector       *string          `json:"sector,omitempty" validate:"omitempty,max=100"`
	Industry     *string          `json:"industry,omitempty" validate:"omitempty,max=100"`
	CurrentPrice *decimal.Decimal `json:"current_price,omitempty"`
	MarketCap    *decimal.Decimal `json:"market_cap,omitempty"`
}

func (u StockUpdate) Apply(stock *Stock) {
	if u.Name != nil {
		stock.Name = *u.Name
	}
	if u.Sector != nil {
		stock.Sector = *u.Sector
	}
	if u.Industry != nil {
		stock.Industry = *u.Industry
	}
	if u.CurrentPrice != nil {
		stock.CurrentPrice = *u.CurrentPrice
	}
	if u.MarketCap != nil {
		stock.MarketCap = u.MarketCap
	}
}

// StockQuote is a pure output contract with no backing table.
type StockQuote struct {
	Symbol           string           `json:"symbol"`
	Name             string           `json:"name"`
	CurrentPrice     decimal.Decimal  `json:"current_price"`
	DayChange        decimal.Decimal  `json:"day_change"`
	DayChangePercent decimal.Decimal  `json:"day_change_percent"`
	Volume           int64            `json:"volume"`
	MarketCap        *decimal.Decimal `json:"market_cap,omitempty"`
	PERatio          *decimal.Decimal `json:"pe_ratio,omitempty"`
	LastUpdated      time.Time        `json:"last_updated"`
}
