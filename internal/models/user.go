package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User & subscription related models
type User struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	Username          string     `gorm:"size:150;unique;not null;index" json:"username"`
	Email             string     `gorm:"unique;not null;index" json:"email"`
	Password          string     `gorm:"not null" json:"-"` // bcrypt hash
	PlanID            *uint      `json:"plan_id,omitempty"`
	Plan              *Plan      `gorm:"foreignKey:PlanID" json:"plan,omitempty"`
	SubscriptionStart *time.Time `json:"subscription_start,omitempty"`
	SubscriptionEnd   *time.Time `json:"subscription_end,omitempty"`
	ActiveSubscriber  bool       `gorm:"not null;default:false" json:"is_active_subscriber"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// Plan is a subscription tier a user can be on.
type Plan struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Name         string          `gorm:"size:50;not null;unique" json:"name"`
	Price        decimal.Decimal `gorm:"type:decimal(8,2);not null" json:"price"`
	DurationDays int             `gorm:"not null" json:"duration_days"` // e.g. 30 for monthly
	Features     string          `json:"features,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
