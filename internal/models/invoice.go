package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoicing models. An invoice and its items are created together in one
// transaction and are immutable afterwards; subtotal, tax amount and total
// are derived server-side with 2-digit precision.
type Invoice struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	StoreID       uint            `gorm:"not null;index" json:"store_id"`
	Store         Store           `gorm:"foreignKey:StoreID" json:"-"`
	CustomerID    uint            `gorm:"not null;index" json:"customer_id"`
	Customer      Customer        `gorm:"foreignKey:CustomerID" json:"customer"`
	TaxPercentage decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"tax_percentage"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	TaxAmount     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"tax_amount"`
	Total         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`
	Items         []InvoiceItem   `gorm:"foreignKey:InvoiceID" json:"items"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"-"`
}

type InvoiceItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	InvoiceID uint            `gorm:"not null;index" json:"-"`
	ProductID uint            `gorm:"not null" json:"product_id"`
	Product   Product         `gorm:"foreignKey:ProductID" json:"-"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"` // unit price at time of sale
}
