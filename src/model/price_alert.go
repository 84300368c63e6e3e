package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PriceAlert is a user-defined trigger condition on a stock. New alerts are
// active; the repository moves them to triggered or disabled, never back.
type PriceAlert struct {
	ID               uint             `gorm:"primaryKey" json:"id"`
	UserID           uint             `gorm:"not null;index" json:"user_id" validate:"required"`
	StockID          uint             `gorm:"not null;index" json:"stock_id" validate:"required"`
	AlertType        AlertType        `gorm:"size:20;not null;default:price_above" json:"alert_type" validate:"required,oneof=price_above price_below percent_change"`
	TargetPrice      *decimal.Decimal `gorm:"type:numeric(20,4)" json:"target_price,omitempty"`
	TargetPercentage *decimal.Decimal `gorm:"type:numeric(20,2)" json:"target_percentage,omitempty"`
	Status           AlertStatus      `gorm:"size:20;not null;default:active;index" json:"status" validate:"required,oneof=active triggered disabled"`
	Message          string           `gorm:"size:500;not null;default:''" json:"message" validate:"max=500"`
	TriggeredAt      *time.Time       `json:"triggered_at,omitempty"`
	TriggeredPrice   *decimal.Decimal `gorm:"type:numeric(20,4)" json:"triggered_price,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`

	User  *User  `gorm:"constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Stock *Stock `gorm:"constraint:OnDelete:CASCADE" json:"stock,omitempty"`
}

func (PriceAlert) TableName() string {
	return "price_alerts"
}

func (a *PriceAlert) BeforeSave(*gorm.DB) error {
	a.TargetPrice = roundPtr(a.TargetPrice, scalePrice)
	a.TargetPercentage = roundPtr(a.TargetPercentage, scaleMoney)
	a.TriggeredPrice = roundPtr(a.TriggeredPrice, scalePrice)
	return nil
}

// PriceAlertCreate is the request payload for arming an alert. AlertType
// defaults to price_above and status always starts active.
type PriceAlertCreate struct {
	UserID           uint             `json:"user_id" validate:"required"`
	StockID          uint             `json:"stock_id" validate:"required"`
	AlertType        AlertType        `json:"alert_type" validate:"omitempty,oneof=price_above price_below percent_change"`
	TargetPrice      *decimal.Decimal `json:"target_price,omitempty"`
	TargetPercentage *decimal.Decimal `json:"target_percentage,omitempty"`
	Message          string           `json:"message" validate:"max=500"`
}

func (c PriceAlertCreate) Model() (*PriceAlert, error) {
	if err := Validate(c); err != nil {
		return nil, err
	}

	alertType := c.AlertType
	if alertType == "" {
		alertType = AlertTypePriceAbove
	}

	return &PriceAlert{
		UserID:           c.UserID,
		StockID:          c.StockID,
		AlertType:        alertType,
		TargetPrice:      c.TargetPrice,
		TargetPercentage: c.TargetPercentage,
		Status:           AlertStatusActive,
		Message:          c.Message,
	}, nil
}

// PriceAlertUpdate carries a partial update. Setting Status here only covers
// the active -> disabled transition; triggering goes through the repository
// so the trigger price and time land atomically.
type PriceAlertUpdate struct {
	AlertType        *AlertType       `json:"alert_type,omitempty" validate:"omitempty,oneof=price_above price_below percent_change"`
	TargetPrice      *decimal.Decimal `json:"target_price,omitempty"`
	TargetPercentage *decimal.Decimal `json:"target_percentage,omitempty"`
	Status           *AlertStatus     `json:"status,omitempty" validate:"omitempty,oneof=active triggered disabled"`
	Message          *string          `json:"message,omitempty" validate:"omitempty,max=500"`
}

func (u PriceAlertUpdate) Apply(a *PriceAlert) {
	if u.AlertType != nil {
		a.AlertType = *u.AlertType
	}
	if u.TargetPrice != nil {
		a.TargetPrice = u.TargetPrice
	}
	if u.TargetPercentage != nil {
		a.TargetPercentage = u.TargetPercentage
	}
	if u.Status != nil {
		a.Status = *u.Status
	}
	if u.Message != nil {
		a.Message = *u.Message
	}
}
