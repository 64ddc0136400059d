package repositories

import "storefront/internal/models"

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id uint) (*models.Product, error)
	// GetForUpdate reads a product and locks its row until the surrounding
	// transaction ends, where the driver supports row locks.
	GetForUpdate(id uint) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id uint) error
	// Reserve decrements available stock by qty, failing with
	// ErrInsufficientStock instead of going negative.
	Reserve(id uint, qty int) error
	// Release gives qty back to available stock.
	Release(id uint, qty int) error
}
