package repositories

import (
	"errors"
	"fmt"

	"storefront/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{db: db}
}

// GetByCustomer retrieves the customer's cart without its items.
func (r *GORMCartRepository) GetByCustomer(customerID uint) (*models.Cart, error) {
	var cart models.Cart
	if err := r.db.Where("customer_id = ?", customerID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Cart not found for this customer")
		}
		return nil, fmt.Errorf("failed to get cart for customer %d: %w", customerID, err)
	}
	return &cart, nil
}

// FirstOrCreate upserts the cart keyed by customer ID. A concurrent insert
// for the same customer hits the unique index and is ignored.
func (r *GORMCartRepository) FirstOrCreate(customerID uint) (*models.Cart, error) {
	cart := models.Cart{CustomerID: customerID}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "customer_id"}},
		DoNothing: true,
	}).Create(&cart).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create cart for customer %d: %w", customerID, err)
	}
	if cart.ID != 0 {
		return &cart, nil
	}
	return r.GetByCustomer(customerID)
}

// GetItem retrieves a cart item by ID with its product.
func (r *GORMCartRepository) GetItem(id uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.Preload("Product").First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Item with ID %d not found.", id)
		}
		return nil, fmt.Errorf("failed to get cart item %d: %w", id, err)
	}
	return &item, nil
}

// FindItem retrieves the line for a product in a cart.
func (r *GORMCartRepository) FindItem(cartID, productID uint) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.Preload("Product").
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Product %d is not in cart %d.", productID, cartID)
		}
		return nil, fmt.Errorf("failed to find cart item: %w", err)
	}
	return &item, nil
}

// CreateItem inserts a new cart line.
func (r *GORMCartRepository) CreateItem(item *models.CartItem) error {
	if err := r.db.Create(item).Error; err != nil {
		return fmt.Errorf("failed to create cart item: %w", err)
	}
	return nil
}

// IncrementItem adds qty to an existing line in a single statement.
func (r *GORMCartRepository) IncrementItem(id uint, qty int) error {
	res := r.db.Model(&models.CartItem{ID: id}).
		Update("quantity", gorm.Expr("quantity + ?", qty))
	if res.Error != nil {
		return fmt.Errorf("failed to update cart item %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return NotFound("Item with ID %d not found.", id)
	}
	return nil
}

// DeleteItem removes a single cart line.
func (r *GORMCartRepository) DeleteItem(id uint) error {
	res := r.db.Delete(&models.CartItem{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete cart item %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return NotFound("Item with ID %d not found.", id)
	}
	return nil
}

// ListItems returns a cart's lines ordered by creation.
func (r *GORMCartRepository) ListItems(cartID uint) ([]models.CartItem, error) {
	items := []models.CartItem{}
	err := r.db.Preload("Product").
		Where("cart_id = ?", cartID).
		Order("id").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list items of cart %d: %w", cartID, err)
	}
	return items, nil
}

// ClearItems deletes every line of the cart, leaving the cart row in place.
func (r *GORMCartRepository) ClearItems(cartID uint) error {
	if err := r.db.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error; err != nil {
		return fmt.Errorf("failed to clear cart %d: %w", cartID, err)
	}
	return nil
}
