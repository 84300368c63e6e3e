package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// SymbolList is an ordered list of stock symbols stored as one JSON blob.
// Order matters to the owner; the storage layer treats it as opaque.
type SymbolList []string

func (l SymbolList) Value() (driver.Value, error) {
	if l == nil {
		l = SymbolList{}
	}
	return json.Marshal(l)
}

func (l *SymbolList) Scan(value interface{}) error {
	if value == nil {
		*l = SymbolList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into SymbolList", value)
	}
}

func (SymbolList) GormDataType() string {
	return "jsonb"
}

// WatchList is a named list of symbols a user follows. Pure bookmarking,
// no holding semantics and no back-reference from User.
type WatchList struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	UserID       uint       `gorm:"not null;index" json:"user_id" validate:"required"`
	Name         string     `gorm:"size:100;not null" json:"name" validate:"required,max=100"`
	Description  string     `gorm:"size:500;not null;default:''" json:"description" validate:"max=500"`
	StockSymbols SymbolList `gorm:"type:jsonb" json:"stock_symbols"`
	IsDefault    bool       `gorm:"not null;default:false" json:"is_default"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (WatchList) TableName() string {
	return "watch_lists"
}

// WatchListCreate is the request payload for creating a watch list.
type WatchListCreate struct {
	UserID       uint     `json:"user_id" validate:"required"`
	Name         string   `json:"name" validate:"required,max=100"`
	Description  string   `json:"description" validate:"max=500"`
	StockSymbols []string `json:"stock_symbols"`
	IsDefault    bool     `json:"is_default"`
}

func (c WatchListCreate) Model() (*WatchList, error) {
	if err := Validate(c); err != nil {
		return nil, err
	}
	symbols := SymbolList(c.StockSymbols)
	if symbols == nil {
		symbols = SymbolList{}
	}
	return &WatchList{
		UserID:       c.UserID,
		Name:         c.Name,
		Description:  c.Description,
		StockSymbols: symbols,
		IsDefault:    c.IsDefault,
	}, nil
}

// WatchListUpdate carries a partial update. A present StockSymbols replaces
// the whole list; there is no element-level patching.
type WatchListUpdate struct {
	Name         *string   `json:"name,omitempty" validate:"omitempty,max=100"`
	Description  *string   `json:"description,omitempty" validate:"omitempty,max=500"`
	StockSymbols *[]string `json:"stock_symbols,omitempty"`
	IsDefault    *bool     `json:"is_default,omitempty"`
}

func (u WatchListUpdate) Apply(w *WatchList) {
	if u.Name != nil {
		w.Name = *u.Name
	}
	if u.Description != nil {
		w.Description = *u.Description
	}
	if u.StockSymbols != nil {
		w.StockSymbols = SymbolList(*u.StockSymbols)
	}
	if u.IsDefault != nil {
		w.IsDefault = *u.IsDefault
	}
}
