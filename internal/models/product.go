package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a product in the store.
// AvailableQuantity is the stock that has not been reserved into any cart yet.
type Product struct {
	ID                uint            `json:"id" gorm:"primaryKey"`
	Name              string          `json:"name" gorm:"type:varchar(255);not null"`
	Description       string          `json:"description" gorm:"type:varchar(255)"`
	Price             decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	AvailableQuantity int             `json:"available_quantity" gorm:"not null;default:0;check:available_quantity >= 0"`
	CategoryID        uint            `json:"category_id" gorm:"index;not null"`
	Category          *Category       `json:"category,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}
