package model

import (
	"time"
)

// User owns portfolios, watch lists and price alerts. Username and email are
// unique at the storage layer; email format is checked at construction.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:50;not null;uniqueIndex" json:"username" validate:"required,max=50"`
	Email     string    `gorm:"size:255;not null;uniqueIndex" json:"email" validate:"required,max=255,email_pattern"`
	FullName  string    `gorm:"size:100;not null" json:"full_name" validate:"required,max=100"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// One-to-many relations. Loaded on demand by the repositories,
	// never eagerly as a live object graph.
	Portfolios  []Portfolio  `gorm:"foreignKey:UserID" json:"portfolios,omitempty"`
	PriceAlerts []PriceAlert `gorm:"foreignKey:UserID" json:"price_alerts,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// UserCreate is the request payload for registering a user.
type UserCreate struct {
	Username string `json:"username" validate:"required,max=50"`
	Email    string `json:"email" validate:"required,max=255,email_pattern"`
	FullName string `json:"full_name" validate:"required,max=100"`
}

// Model validates the payload and builds a User with defaults applied.
func (c UserCreate) Model() (*User, error) {
	if err := Validate(c); err != nil {
		return nil, err
	}
	return &User{
		Username: c.Username,
		Email:    c.Email,
		FullName: c.FullName,
		IsActive: true,
	}, nil
}

// UserUpdate carries a partial update. Nil fields leave the stored value
// untouched.
type UserUpdate struct {
	Username *string `json:"username,omitempty" validate:"omitempty,max=50"`
	Email    *string `json:"email,omitempty" validate:"omitempty,max=255,email_pattern"`
	FullName *string `json:"full_name,omitempty" validate:"omitempty,max=100"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// Apply copies the present fields onto the user.
func (u UserUpdate) Apply(user *User) {
	if u.Username != nil {
		user.Username = *u.Username
	}
	if u.Email != nil {
		user.Email = *u.Email
	}
	if u.FullName != nil {
		user.FullName = *u.FullName
	}
	if u.IsActive != nil {
		user.IsActive = *u.IsActive
	}
}
