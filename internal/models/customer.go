package models

import "time"

// Customer is a buyer. Each customer owns at most one cart.
type Customer struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Name          string    `json:"name" gorm:"type:varchar(255);not null"`
	Email         string    `json:"email" gorm:"uniqueIndex;type:varchar(255);not null"`
	Address       string    `json:"address" gorm:"type:varchar(255)"`
	ContactNumber string    `json:"contact_number" gorm:"type:varchar(20)"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
