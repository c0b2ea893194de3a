package models

import "time"

// Store is the tenant boundary: every product, customer and invoice
// belongs to exactly one store, and every user owns at most one store.
type Store struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;uniqueIndex" json:"-"`
	User        User      `gorm:"foreignKey:UserID" json:"-"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Address     string    `json:"address,omitempty"`
	Contact     string    `gorm:"size:100" json:"contact,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
