package models

import "time"

// Customer entity, scoped to a store. Created either explicitly via the
// customers endpoint or inline during invoice creation.
type Customer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StoreID   uint      `gorm:"not null;index" json:"store_id"`
	Store     Store     `gorm:"foreignKey:StoreID" json:"-"`
	Name      string    `gorm:"size:100;not null;index" json:"name"`
	Address   string    `json:"address,omitempty"`
	Phone     string    `gorm:"size:20" json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
