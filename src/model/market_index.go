package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MarketIndex is a standalone market benchmark (S&P 500, NASDAQ Composite).
// No foreign keys; the connector refreshes the value columns.
type MarketIndex struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	Symbol           string          `gorm:"size:10;not null;uniqueIndex" json:"symbol" validate:"required,max=10"`
	Name             string          `gorm:"size:100;not null" json:"name" validate:"required,max=100"`
	CurrentValue     decimal.Decimal `gorm:"type:numeric(20,4);not null;default:0" json:"current_value"`
	PreviousClose    decimal.Decimal `gorm:"type:numeric(20,4);not null;default:0" json:"previous_close"`
	DayChange        decimal.Decimal `gorm:"type:numeric(20,4);not null;default:0" json:"day_change"`
	DayChangePercent decimal.Decimal `gorm:"type:numeric(20,4);not null;default:0" json:"day_change_percent"`
	LastUpdated      time.Time       `gorm:"autoCreateTime" json:"last_updated"`
	CreatedAt        time.Time       `json:"created_at"`
}

func (MarketIndex) TableName() string {
	return "market_indices"
}

func (m *MarketIndex) BeforeSave(*gorm.DB) error {
	m.CurrentValue = m.CurrentValue.Round(scalePrice)
	m.PreviousClose = m.PreviousClose.Round(scalePrice)
	m.DayChange = m.DayChange.Round(scalePrice)
	m.DayChangePercent = m.DayChangePercent.Round(scalePrice)
	return nil
}
