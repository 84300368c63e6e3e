package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction records one fill against a holding. The column stays a plain
// varchar, but construction only accepts BUY or SELL.
type Transaction struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	HoldingID       uint            `gorm:"not null;index" json:"holding_id" validate:"required"`
	TransactionType string          `gorm:"size:10;not null" json:"transaction_type" validate:"required,oneof=BUY SELL"`
	Quantity        decimal.Decimal `gorm:"type:numeric(28,8);not null" json:"quantity" validate:"required"`
	Price           decimal.Decimal `gorm:"type:numeric(20,4);not null" json:"price" validate:"required"`
	TotalAmount     decimal.Decimal `gorm:"type:numeric(20,2);not null" json:"total_amount"`
	Fees            decimal.Decimal `gorm:"type:numeric(20,2);not null;default:0" json:"fees"`
	Notes           string          `gorm:"size:500;not null;default:''" json:"notes" validate:"max=500"`
	TransactionDate time.Time       `gorm:"not null" json:"transaction_date"`
	CreatedAt       time.Time       `json:"created_at"`

	Holding *PortfolioHolding `gorm:"constraint:OnDelete:CASCADE" json:"holding,omitempty"`
}

func (Transaction) TableName() string {
	return "transactions"
}

func (t *Transaction) BeforeSave(*gorm.DB) error {
	t.Quantity = t.Quantity.Round(scaleQuantity)
	t.Price = t.Price.Round(scalePrice)
	t.TotalAmount = t.TotalAmount.Round(scaleMoney)
	t.Fees = t.Fees.Round(scaleMoney)
	return nil
}

// TransactionCreate is the request payload for recording a fill.
// TotalAmount is server-assigned: quantity * price plus fees on buys,
// minus fees on sells.
type TransactionCreate struct {
	HoldingID       uint            `json:"holding_id" validate:"required"`
	TransactionType string          `json:"transaction_type" validate:"required,oneof=BUY SELL"`
	Quantity        decimal.Decimal `json:"quantity" validate:"required"`
	Price           decimal.Decimal `json:"price" validate:"required"`
	Fees            decimal.Decimal `json:"fees"`
	Notes           string          `json:"notes" validate:"max=500"`
	TransactionDate *time.Time      `json:"transaction_date,omitempty"`
}

func (c TransactionCreate) Model() (*Transaction, error) {
	if err := Validate(c); err != nil {
		return nil, err
	}

	gross := c.Quantity.Mul(c.Price)
	total := gross.Add(c.Fees)
	if c.TransactionType == TransactionTypeSell {
		total = gross.Sub(c.Fees)
	}

	txDate := time.Now().UTC()
	if c.TransactionDate != nil {
		txDate = *c.TransactionDate
	}

	return &Transaction{
		HoldingID:       c.HoldingID,
		TransactionType: c.TransactionType,
		Quantity:        c.Quantity,
		Price:           c.Price,
		TotalAmount:     total,
		Fees:            c.Fees,
		Notes:           c.Notes,
		TransactionDate: txDate,
	}, nil
}
