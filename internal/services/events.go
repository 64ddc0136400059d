package services

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceCreatedKey is the routing key of the event published after checkout.
const InvoiceCreatedKey = "invoice.created"

// EventPublisher delivers a message to an exchange. pkg/rabbitmq.Client implements it.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// InvoiceCreatedEvent is the payload of InvoiceCreatedKey.
type InvoiceCreatedEvent struct {
	InvoiceID     uint            `json:"invoice_id"`
	Number        string          `json:"number"`
	CustomerID    uint            `json:"customer_id"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	PaymentMethod string          `json:"payment_method"`
	SubTotal      decimal.Decimal `json:"sub_total"`
	FlatDiscount  decimal.Decimal `json:"flat_discount"`
	TaxAmount     decimal.Decimal `json:"tax_amount"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	ItemCount     int             `json:"item_count"`
	CreatedAt     time.Time       `json:"created_at"`
}
