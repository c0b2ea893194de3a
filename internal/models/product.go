package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product domain model. Stock is only ever mutated by invoice creation
// (a conditional decrement) and must never go negative.
type Product struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	StoreID   uint            `gorm:"not null;index" json:"store_id"`
	Store     Store           `gorm:"foreignKey:StoreID" json:"-"`
	Name      string          `gorm:"size:100;not null;index" json:"name"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Stock     int             `gorm:"not null;check:stock >= 0" json:"stock"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
