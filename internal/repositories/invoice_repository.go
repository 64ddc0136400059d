package repositories

import "storefront/internal/models"

// InvoiceRepository defines the interface for invoice data access.
// Invoices are immutable, so there is no Update or Delete.
type InvoiceRepository interface {
	// Create inserts the invoice together with its Items.
	Create(invoice *models.Invoice) error
	GetByID(id uint) (*models.Invoice, error)
	ListByCustomer(customerID uint) ([]models.Invoice, error)
}
