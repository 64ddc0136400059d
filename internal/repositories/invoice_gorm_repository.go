package repositories

import (
	"errors"
	"fmt"

	"storefront/internal/models"

	"gorm.io/gorm"
)

// GORMInvoiceRepository is a GORM implementation of InvoiceRepository.
type GORMInvoiceRepository struct {
	db *gorm.DB
}

// NewGORMInvoiceRepository creates a new instance of GORMInvoiceRepository.
func NewGORMInvoiceRepository(db *gorm.DB) *GORMInvoiceRepository {
	return &GORMInvoiceRepository{db: db}
}

// Create inserts the invoice; GORM writes the Items association in the same call.
func (r *GORMInvoiceRepository) Create(invoice *models.Invoice) error {
	if err := r.db.Create(invoice).Error; err != nil {
		return fmt.Errorf("failed to create invoice: %w", err)
	}
	return nil
}

// GetByID retrieves an invoice with its items.
func (r *GORMInvoiceRepository) GetByID(id uint) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("id")
	}).First(&invoice, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Invoice with ID %d not found.", id)
		}
		return nil, fmt.Errorf("failed to get invoice %d: %w", id, err)
	}
	return &invoice, nil
}

// ListByCustomer returns a customer's invoices, newest first.
func (r *GORMInvoiceRepository) ListByCustomer(customerID uint) ([]models.Invoice, error) {
	invoices := []models.Invoice{}
	err := r.db.Preload("Items").
		Where("customer_id = ?", customerID).
		Order("created_at DESC, id DESC").
		Find(&invoices).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices for customer %d: %w", customerID, err)
	}
	return invoices, nil
}
