package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// StockPriceHistory is one daily OHLCV bar for a stock. Conceptually one row
// per (stock, date); the schema does not enforce it, the pricesync command
// upserts instead.
type StockPriceHistory struct {
	ID            uint             `gorm:"primaryKey" json:"id"`
	StockID       uint             `gorm:"not null;index" json:"stock_id" validate:"required"`
	Date          time.Time        `gorm:"not null;index" json:"date" validate:"required"`
	OpenPrice     decimal.Decimal  `gorm:"type:numeric(20,4);not null" json:"open_price" validate:"required"`
	HighPrice     decimal.Decimal  `gorm:"type:numeric(20,4);not null" json:"high_price" validate:"required"`
	LowPrice      decimal.Decimal  `gorm:"type:numeric(20,4);not null" json:"low_price" validate:"required"`
	ClosePrice    decimal.Decimal  `gorm:"type:numeric(20,4);not null" json:"close_price" validate:"required"`
	Volume        int64            `gorm:"not null;default:0" json:"volume"`
	AdjustedClose *decimal.Decimal `gorm:"type:numeric(20,4)" json:"adjusted_close,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`

	Stock *Stock `gorm:"constraint:OnDelete:CASCADE" json:"stock,omitempty"`
}

func (StockPriceHistory) TableName() string {
	return "stock_price_history"
}

func (h *StockPriceHistory) BeforeSave(*gorm.DB) error {
	h.OpenPrice = h.OpenPrice.Round(scalePrice)
	h.HighPrice = h.HighPrice.Round(scalePrice)
	h.LowPrice = h.LowPrice.Round(scalePrice)
	h.ClosePrice = h.ClosePrice.Round(scalePrice)
	h.AdjustedClose = roundPtr(h.AdjustedClose, scalePrice)
	return nil
}

// StockPriceHistoryCreate is the payload for ingesting one daily bar.
type StockPriceHistoryCreate struct {
	StockID       uint             `json:"stock_id" validate:"required"`
	Date          time.Time        `json:"date" validate:"required"`
	OpenPrice     decimal.Decimal  `json:"open_price" validate:"required"`
	HighPrice     decimal.Decimal  `json:"high_price" validate:"required"`
	LowPrice      decimal.Decimal  `json:"low_price" validate:"required"`
	ClosePrice    decimal.Decimal  `json:"close_price" validate:"required"`
	Volume        int64            `json:"volume"`
	AdjustedClose *decimal.Decimal `json:"adjusted_close,omitempty"`
}

func (c StockPriceHistoryCreate) Model() (*StockPriceHistory, error) {
	if err := Validate(c); err != nil {
		return nil, err
	}
	return &StockPriceHistory{
		StockID:       c.StockID,
		Date:          c.Date,
		OpenPrice:     c.OpenPrice,
		HighPrice:     c.HighPrice,
		LowPrice:      c.LowPrice,
		ClosePrice:    c.ClosePrice,
		Volume:        c.Volume,
		AdjustedClose: c.AdjustedClose,
	}, nil
}
