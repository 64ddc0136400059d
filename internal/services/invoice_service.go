package services

import (
	"encoding/json"
	"log"
	"strings"
	"time"

	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TaxRate is applied to the sub-total after the flat discount.
var TaxRate = decimal.New(10, -2)

// CheckoutInput is the body of a checkout request. ItemWiseDiscounts maps a
// product ID to an amount taken off that product's unit price.
type CheckoutInput struct {
	CustomerID        uint                     `json:"customer_id" validate:"required"`
	FlatDiscount      decimal.Decimal          `json:"flat_discount" validate:"gte=0"`
	ItemWiseDiscounts map[uint]decimal.Decimal `json:"item_wise_discounts" validate:"omitempty,dive,gte=0"`
	PaymentMethod     models.PaymentMethod     `json:"payment_method" validate:"required,oneof=cash credit paypal"`
}

// InvoiceService turns carts into invoices.
type InvoiceService struct {
	store     repositories.Store
	publisher EventPublisher // nil disables events
	exchange  string
	validate  *validator.Validate
	now       func() time.Time
}

// NewInvoiceService creates a new InvoiceService.
func NewInvoiceService(store repositories.Store, publisher EventPublisher, exchange string) *InvoiceService {
	return &InvoiceService{
		store:     store,
		publisher: publisher,
		exchange:  exchange,
		validate:  newValidator(),
		now:       time.Now,
	}
}

// Checkout prices the customer's cart at current product prices, stores the
// invoice and empties the cart. Stock was reserved when items were added, so
// it is only re-checked here, never decremented again.
func (s *InvoiceService) Checkout(in CheckoutInput) (*models.Invoice, error) {
	verr := validateStruct(s.validate, in)
	var customer *models.Customer
	if in.CustomerID != 0 {
		if err := checkExists(verr, "customer_id", func() error {
			var err error
			customer, err = s.store.Customers().GetByID(in.CustomerID)
			return err
		}); err != nil {
			return nil, err
		}
	}
	if err := verr.orNil(); err != nil {
		return nil, err
	}

	var invoice *models.Invoice
	err := s.store.Transaction(func(tx repositories.Store) error {
		cart, err := tx.Carts().GetByCustomer(in.CustomerID)
		if err != nil {
			return err
		}
		items, err := tx.Carts().ListItems(cart.ID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return NewValidationError("cart", "The cart is empty.")
		}

		draft, err := priceItems(tx.Products(), items, in)
		if err != nil {
			return err
		}
		draft.Number = s.newNumber()
		if err := tx.Invoices().Create(draft); err != nil {
			return err
		}
		if err := tx.Carts().ClearItems(cart.ID); err != nil {
			return err
		}

		invoice, err = tx.Invoices().GetByID(draft.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Invoice %s created for customer %d: total %s", invoice.Number, invoice.CustomerID, invoice.TotalAmount.StringFixed(2))
	s.publishCreated(invoice, customer)
	return invoice, nil
}

// GetInvoice retrieves a single invoice with its items.
func (s *InvoiceService) GetInvoice(id uint) (*models.Invoice, error) {
	return s.store.Invoices().GetByID(id)
}

// ListCustomerInvoices returns the customer's invoices, newest first.
func (s *InvoiceService) ListCustomerInvoices(customerID uint) ([]models.Invoice, error) {
	if _, err := s.store.Customers().GetByID(customerID); err != nil {
		return nil, err
	}
	return s.store.Invoices().ListByCustomer(customerID)
}

// priceItems builds the unsaved invoice. Lines are priced in cart order;
// the first line whose product lacks stock aborts the checkout.
func priceItems(products repositories.ProductRepository, items []models.CartItem, in CheckoutInput) (*models.Invoice, error) {
	subTotal := decimal.Zero
	lines := make([]models.InvoiceItem, 0, len(items))
	for _, item := range items {
		product, err := products.GetForUpdate(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product.AvailableQuantity < item.Quantity {
			return nil, NewValidationError("quantity", "Not enough stock for "+product.Name)
		}

		discount := in.ItemWiseDiscounts[product.ID]
		lineTotal := product.Price.Sub(discount).Mul(decimal.NewFromInt(int64(item.Quantity)))
		subTotal = subTotal.Add(lineTotal)
		lines = append(lines, models.InvoiceItem{
			ProductID:  product.ID,
			Quantity:   item.Quantity,
			Price:      product.Price,
			Discount:   discount,
			TotalPrice: lineTotal,
		})
	}

	taxAmount, totalAmount := totals(subTotal, in.FlatDiscount)
	return &models.Invoice{
		CustomerID:    in.CustomerID,
		SubTotal:      subTotal,
		FlatDiscount:  in.FlatDiscount,
		TaxAmount:     taxAmount,
		TotalAmount:   totalAmount,
		PaymentMethod: in.PaymentMethod,
		Items:         lines,
	}, nil
}

// totals applies the flat discount and tax. The stored sub-total stays the
// pre-discount sum; only tax and total see the discount.
func totals(subTotal, flatDiscount decimal.Decimal) (taxAmount, totalAmount decimal.Decimal) {
	afterFlat := subTotal.Sub(flatDiscount)
	taxAmount = afterFlat.Mul(TaxRate).Round(2)
	return taxAmount, afterFlat.Add(taxAmount)
}

func (s *InvoiceService) newNumber() string {
	return "INV-" + s.now().Format("20060102150405") + "-" + strings.ToUpper(uuid.NewString()[:8])
}

func (s *InvoiceService) publishCreated(invoice *models.Invoice, customer *models.Customer) {
	if s.publisher == nil {
		log.Println("Event publisher is not configured. Skipping invoice.created publication.")
		return
	}
	event := InvoiceCreatedEvent{
		InvoiceID:     invoice.ID,
		Number:        invoice.Number,
		CustomerID:    invoice.CustomerID,
		PaymentMethod: string(invoice.PaymentMethod),
		SubTotal:      invoice.SubTotal,
		FlatDiscount:  invoice.FlatDiscount,
		TaxAmount:     invoice.TaxAmount,
		TotalAmount:   invoice.TotalAmount,
		ItemCount:     len(invoice.Items),
		CreatedAt:     invoice.CreatedAt,
	}
	if customer != nil {
		event.CustomerName = customer.Name
		event.CustomerEmail = customer.Email
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal invoice event to JSON: %v", err)
		return
	}
	if err := s.publisher.Publish(s.exchange, InvoiceCreatedKey, body); err != nil {
		log.Printf("Warning: Failed to publish invoice created event for invoice %s: %v", invoice.Number, err)
		return
	}
	log.Printf("Successfully published invoice created event for invoice %s", invoice.Number)
}
