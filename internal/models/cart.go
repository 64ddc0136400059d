package models

import "time"

// Cart is the single active cart of a customer. The unique index on
// CustomerID keeps concurrent first adds from creating a second cart.
type Cart struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	CustomerID uint       `json:"customer_id" gorm:"uniqueIndex;not null"`
	Customer   *Customer  `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Items      []CartItem `json:"items,omitempty" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// CartItem is one product line of a cart. A product appears at most once per cart.
type CartItem struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CartID    uint      `json:"cart_id" gorm:"uniqueIndex:idx_cart_product;not null"`
	ProductID uint      `json:"product_id" gorm:"uniqueIndex:idx_cart_product;not null"`
	Product   *Product  `json:"product,omitempty"`
	Quantity  int       `json:"quantity" gorm:"not null;check:quantity > 0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
