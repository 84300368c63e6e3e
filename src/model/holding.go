package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PortfolioHolding is one position: a quantity of one stock inside one
// portfolio. Quantity keeps eight decimal places to allow fractional shares.
type PortfolioHolding struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	PortfolioID     uint            `gorm:"not null;index" json:"portfolio_id" validate:"required"`
	StockID         uint            `gorm:"not null;index" json:"stock_id" validate:"required"`
	Quantity        decimal.Decimal `gorm:"type:numeric(28,8);not null;default:0" json:"quantity"`
	AverageCost     decimal.Decimal `gorm:"type:numeric(20,4);not null;default:0" json:"average_cost"`
	TotalCost       decimal.Decimal `gorm:"type:numeric(20,2);not null;default:0" json:"total_cost"`
	CurrentValue    decimal.Decimal `gorm:"type:numeric(20,2);not null;default:0" json:"current_value"`
	GainLoss        decimal.Decimal `gorm:"type:numeric(20,2);not null;default:0" json:"gain_loss"`
	GainLossPercent decimal.Decimal `gorm:"type:numeric(20,4);not null;default:0" json:"gain_loss_percent"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`

	Portfolio    *Portfolio    `gorm:"constraint:OnDelete:CASCADE" json:"portfolio,omitempty"`
	Stock        *Stock        `gorm:"constraint:OnDelete:CASCADE" json:"stock,omitempty"`
	Transactions []Transaction `gorm:"foreignKey:HoldingID" json:"transactions,omitempty"`
}

func (PortfolioHolding) TableName() string {
	return "portfolio_holdings"
}

func (h *PortfolioHolding) BeforeSave(*gorm.DB) error {
	h.Quantity = h.Quantity.Round(scaleQuantity)
	h.AverageCost = h.AverageCost.Round(scalePrice)
	h.TotalCost = h.TotalCost.Round(scaleMoney)
	h.CurrentValue = h.CurrentValue.Round(scaleMoney)
	h.GainLoss = h.GainLoss.Round(scaleMoney)
	h.GainLossPercent = h.GainLossPercent.Round(scalePrice)
	return nil
}

// PortfolioHoldingCreate opens an empty position for a stock inside a
// portfolio. Quantity and cost basis grow through transactions.
type PortfolioHoldingCreate struct {
	PortfolioID uint `json:"portfolio_id" validate:"required"`
	StockID     uint `json:"stock_id" validate:"required"`
}

func (c PortfolioHoldingCreate) Model() (*PortfolioHolding, error) {
	if err := Validate(c); err != nil {
		return nil, err
	}
	return &PortfolioHolding{
		PortfolioID: c.PortfolioID,
		StockID:     c.StockID,
	}, nil
}
