package services

import (
	"errors"
	"fmt"

	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/go-playground/validator/v10"
)

// AddItemInput is the body of an add-to-cart request.
type AddItemInput struct {
	CustomerID uint `json:"customer_id" validate:"required"`
	ProductID  uint `json:"product_id" validate:"required"`
	Quantity   int  `json:"quantity" validate:"required,min=1"`
}

// CartService keeps one cart per customer and soft-reserves stock: units
// leave available_quantity as soon as they are added to a cart.
type CartService struct {
	store    repositories.Store
	validate *validator.Validate
}

// NewCartService creates a new CartService.
func NewCartService(store repositories.Store) *CartService {
	return &CartService{store: store, validate: newValidator()}
}

// AddItem adds quantity units of a product to the customer's cart, creating
// the cart on first use, and reserves the stock.
func (s *CartService) AddItem(in AddItemInput) (*models.CartItem, error) {
	verr := validateStruct(s.validate, in)
	if in.CustomerID != 0 {
		if err := checkExists(verr, "customer_id", func() error {
			_, err := s.store.Customers().GetByID(in.CustomerID)
			return err
		}); err != nil {
			return nil, err
		}
	}
	if in.ProductID != 0 {
		if err := checkExists(verr, "product_id", func() error {
			_, err := s.store.Products().GetByID(in.ProductID)
			return err
		}); err != nil {
			return nil, err
		}
	}
	if err := verr.orNil(); err != nil {
		return nil, err
	}

	var item *models.CartItem
	err := s.store.Transaction(func(tx repositories.Store) error {
		cart, err := tx.Carts().FirstOrCreate(in.CustomerID)
		if err != nil {
			return err
		}
		product, err := tx.Products().GetForUpdate(in.ProductID)
		if err != nil {
			return err
		}
		if product.AvailableQuantity < in.Quantity {
			return insufficientStock(product.AvailableQuantity)
		}

		var itemID uint
		existing, err := tx.Carts().FindItem(cart.ID, product.ID)
		switch {
		case err == nil:
			if err := tx.Carts().IncrementItem(existing.ID, in.Quantity); err != nil {
				return err
			}
			itemID = existing.ID
		case errors.Is(err, repositories.ErrNotFound):
			created := &models.CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: in.Quantity}
			if err := tx.Carts().CreateItem(created); err != nil {
				return err
			}
			itemID = created.ID
		default:
			return err
		}

		if err := tx.Products().Reserve(product.ID, in.Quantity); err != nil {
			if errors.Is(err, repositories.ErrInsufficientStock) {
				return insufficientStock(product.AvailableQuantity)
			}
			return err
		}

		item, err = tx.Carts().GetItem(itemID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// RemoveItem deletes a cart line and gives its units back to stock.
func (s *CartService) RemoveItem(cartItemID uint) (bool, error) {
	err := s.store.Transaction(func(tx repositories.Store) error {
		item, err := tx.Carts().GetItem(cartItemID)
		if err != nil {
			return err
		}
		if err := tx.Products().Release(item.ProductID, item.Quantity); err != nil {
			return err
		}
		return tx.Carts().DeleteItem(item.ID)
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// GetItems returns the customer's cart lines in the order they were added.
func (s *CartService) GetItems(customerID uint) ([]models.CartItem, error) {
	cart, err := s.store.Carts().GetByCustomer(customerID)
	if err != nil {
		return nil, err
	}
	return s.store.Carts().ListItems(cart.ID)
}

func insufficientStock(available int) error {
	return NewValidationError("quantity", fmt.Sprintf("Insufficient stock. Available stock: %d", available))
}
