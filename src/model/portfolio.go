package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Portfolio groups the holdings of one user. The total_* columns are cached
// aggregates maintained by the service layer; this module never recomputes
// them from holdings.
type Portfolio struct {
	ID                   uint            `gorm:"primaryKey" json:"id"`
	Name                 string          `gorm:"size:100;not null" json:"name" validate:"required,max=100"`
	Description          string          `gorm:"size:500;not null;default:''" json:"description" validate:"max=500"`
	UserID               uint            `gorm:"not null;index" json:"user_id" validate:"required"`
	TotalValue           decimal.Decimal `gorm:"type:numeric(20,2);not null;default:0" json:"total_value"`
	TotalCost            decimal.Decimal `gorm:"type:numeric(20,2);not null;default:0" json:"total_cost"`
	TotalGainLoss        decimal.Decimal `gorm:"type:numeric(20,2);not null;default:0" json:"total_gain_loss"`
	TotalGainLossPercent decimal.Decimal `gorm:"type:numeric(20,4);not null;default:0" json:"total_gain_loss_percent"`
	IsDefault            bool            `gorm:"not null;default:false" json:"is_default"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`

	User     *User              `gorm:"constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Holdings []PortfolioHolding `gorm:"foreignKey:PortfolioID" json:"holdings,omitempty"`
}

func (Portfolio) TableName() string {
	return "portfolios"
}

func (p *Portfolio) BeforeSave(*gorm.DB) error {
	p.TotalValue = p.TotalValue.Round(scaleMoney)
	p.TotalCost = p.TotalCost.Round(scaleMoney)
	p.TotalGainLoss = p.TotalGainLoss.Round(scaleMoney)
	p.TotalGainLossPercent = p.TotalGainLossPercent.Round(scalePrice)
	return nil
}

// PortfolioCreate is the request payload for opening a portfolio.
type PortfolioCreate struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
	UserID      uint   `json:"user_id" validate:"required"`
	IsDefault   bool   `json:"is_default"`
}

func (c PortfolioCreate) Model() (*Portfolio, error) {
	if err := Validate(c); err != nil {
		return nil, err
	}
	return &Portfolio{
		Name:        c.Name,
		Description: c.Description,
		UserID:      c.UserID,
		IsDefault:   c.IsDefault,
	}, nil
}

// PortfolioUpdate carries a partial update. Cached totals are not updatable
// through this shape.
type PortfolioUpdate struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
	IsDefault   *bool   `json:"is_default,omitempty"`
}

func (u PortfolioUpdate) Apply(p *Portfolio) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.IsDefault != nil {
		p.IsDefault = *u.IsDefault
	}
}

// PortfolioSummary is a read-only projection assembled by the portfolio
// repository. Performer entries stay opaque maps so callers do not couple
// to a holding schema.
type PortfolioSummary struct {
	PortfolioID          uint                     `json:"portfolio_id"`
	PortfolioName        string                   `json:"portfolio_name"`
	TotalValue           decimal.Decimal          `json:"total_value"`
	TotalCost            decimal.Decimal          `json:"total_cost"`
	TotalGainLoss        decimal.Decimal          `json:"total_gain_loss"`
	TotalGainLossPercent decimal.Decimal          `json:"total_gain_loss_percent"`
	HoldingsCount        int                      `json:"holdings_count"`
	TopPerformers        []map[string]interface{} `json:"top_performers"`
	WorstPerformers      []map[string]interface{} `json:"worst_performers"`
}
