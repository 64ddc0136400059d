package repositories

import "gorm.io/gorm"

// Store groups the repositories that take part in multi-step writes so that
// services can run them inside one transaction.
type Store interface {
	Categories() CategoryRepository
	Products() ProductRepository
	Customers() CustomerRepository
	Carts() CartRepository
	Invoices() InvoiceRepository
	// Transaction runs fn against a Store bound to a single transaction.
	// Returning an error from fn rolls everything back.
	Transaction(fn func(tx Store) error) error
}

// GORMStore is a GORM implementation of Store.
type GORMStore struct {
	db *gorm.DB
}

// NewGORMStore creates a new instance of GORMStore.
func NewGORMStore(db *gorm.DB) *GORMStore {
	return &GORMStore{db: db}
}

func (s *GORMStore) Categories() CategoryRepository { return NewGORMCategoryRepository(s.db) }
func (s *GORMStore) Products() ProductRepository    { return NewGORMProductRepository(s.db) }
func (s *GORMStore) Customers() CustomerRepository  { return NewGORMCustomerRepository(s.db) }
func (s *GORMStore) Carts() CartRepository          { return NewGORMCartRepository(s.db) }
func (s *GORMStore) Invoices() InvoiceRepository    { return NewGORMInvoiceRepository(s.db) }

// Transaction implements Store.
func (s *GORMStore) Transaction(fn func(tx Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&GORMStore{db: tx})
	})
}
