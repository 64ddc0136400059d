package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is how an invoice was settled.
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentCredit PaymentMethod = "credit"
	PaymentPaypal PaymentMethod = "paypal"
)

// Invoice is the immutable result of a checkout.
// SubTotal is the sum of line totals before the flat discount; TaxAmount and
// TotalAmount are computed after it.
type Invoice struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	Number        string          `json:"number" gorm:"uniqueIndex;type:varchar(64);not null"`
	CustomerID    uint            `json:"customer_id" gorm:"index;not null"`
	Customer      *Customer       `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	SubTotal      decimal.Decimal `json:"sub_total" gorm:"type:decimal(10,2);not null"`
	FlatDiscount  decimal.Decimal `json:"flat_discount" gorm:"type:decimal(10,2);not null;default:0"`
	TaxAmount     decimal.Decimal `json:"tax_amount" gorm:"type:decimal(10,2);not null"`
	TotalAmount   decimal.Decimal `json:"total_amount" gorm:"type:decimal(10,2);not null"`
	PaymentMethod PaymentMethod   `json:"payment_method" gorm:"type:varchar(10);not null;check:payment_method IN ('cash','credit','paypal')"`
	Items         []InvoiceItem   `json:"items" gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// InvoiceItem is a point-in-time copy of a cart line's pricing.
type InvoiceItem struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	InvoiceID  uint            `json:"invoice_id" gorm:"index;not null"`
	ProductID  uint            `json:"product_id" gorm:"index;not null"`
	Quantity   int             `json:"quantity" gorm:"not null"`
	Price      decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Discount   decimal.Decimal `json:"discount" gorm:"type:decimal(10,2);not null;default:0"`
	TotalPrice decimal.Decimal `json:"total_price" gorm:"type:decimal(10,2);not null"`
	CreatedAt  time.Time       `json:"created_at"`
}
