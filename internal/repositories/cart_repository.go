package repositories

import "storefront/internal/models"

// CartRepository defines the interface for carts and their items.
type CartRepository interface {
	GetByCustomer(customerID uint) (*models.Cart, error)
	// FirstOrCreate returns the customer's cart, creating it when missing.
	FirstOrCreate(customerID uint) (*models.Cart, error)
	GetItem(id uint) (*models.CartItem, error)
	FindItem(cartID, productID uint) (*models.CartItem, error)
	CreateItem(item *models.CartItem) error
	IncrementItem(id uint, qty int) error
	DeleteItem(id uint) error
	// ListItems returns the cart's items in insertion order with products loaded.
	ListItems(cartID uint) ([]models.CartItem, error)
	ClearItems(cartID uint) error
}
