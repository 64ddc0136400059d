package repositories

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// ProductSales is the invoiced volume of one product.
type ProductSales struct {
	ProductID   uint            `db:"product_id" json:"product_id"`
	ProductName string          `db:"product_name" json:"product_name"`
	Quantity    int             `db:"quantity" json:"quantity"`
	Revenue     decimal.Decimal `db:"revenue" json:"revenue"`
}

// SalesSummary aggregates every invoice.
type SalesSummary struct {
	InvoiceCount  int             `db:"invoice_count" json:"invoice_count"`
	SubTotal      decimal.Decimal `db:"sub_total" json:"sub_total"`
	FlatDiscounts decimal.Decimal `db:"flat_discounts" json:"flat_discounts"`
	TaxAmount     decimal.Decimal `db:"tax_amount" json:"tax_amount"`
	TotalAmount   decimal.Decimal `db:"total_amount" json:"total_amount"`
}

// ReportRepository reads aggregates over invoices.
type ReportRepository interface {
	ProductSales(limit int) ([]ProductSales, error)
	Summary() (*SalesSummary, error)
}

const productSalesQuery = `
	SELECT ii.product_id, p.name AS product_name,
	       COALESCE(SUM(ii.quantity), 0) AS quantity,
	       COALESCE(SUM(ii.total_price), 0) AS revenue
	FROM invoice_items ii
	JOIN products p ON p.id = ii.product_id
	GROUP BY ii.product_id, p.name
	ORDER BY revenue DESC, ii.product_id
	LIMIT ?`

const summaryQuery = `
	SELECT COUNT(*) AS invoice_count,
	       COALESCE(SUM(sub_total), 0) AS sub_total,
	       COALESCE(SUM(flat_discount), 0) AS flat_discounts,
	       COALESCE(SUM(tax_amount), 0) AS tax_amount,
	       COALESCE(SUM(total_amount), 0) AS total_amount
	FROM invoices`

// SQLXReportRepository runs the report queries with sqlx.
type SQLXReportRepository struct {
	db *sqlx.DB
}

// NewSQLXReportRepository creates a new instance of SQLXReportRepository.
func NewSQLXReportRepository(db *sqlx.DB) *SQLXReportRepository {
	return &SQLXReportRepository{db: db}
}

// ProductSales returns the best selling products by revenue.
func (r *SQLXReportRepository) ProductSales(limit int) ([]ProductSales, error) {
	if limit <= 0 {
		limit = 100
	}
	out := []ProductSales{}
	if err := r.db.Select(&out, r.db.Rebind(productSalesQuery), limit); err != nil {
		return nil, fmt.Errorf("failed to load product sales: %w", err)
	}
	return out, nil
}

// Summary returns totals across all invoices.
func (r *SQLXReportRepository) Summary() (*SalesSummary, error) {
	var s SalesSummary
	if err := r.db.Get(&s, summaryQuery); err != nil {
		return nil, fmt.Errorf("failed to load sales summary: %w", err)
	}
	return &s, nil
}
