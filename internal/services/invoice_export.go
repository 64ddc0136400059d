package services

import (
	"fmt"
	"io"

	"storefront/internal/models"

	"github.com/tealeg/xlsx"
)

// ExportInvoice writes the invoice as an XLSX workbook with a single
// "Invoice" sheet: a header block, one row per line, then the totals.
func (s *InvoiceService) ExportInvoice(id uint, w io.Writer) (*models.Invoice, error) {
	invoice, err := s.store.Invoices().GetByID(id)
	if err != nil {
		return nil, err
	}
	file, err := InvoiceWorkbook(invoice)
	if err != nil {
		return nil, err
	}
	if err := file.Write(w); err != nil {
		return nil, fmt.Errorf("failed to write invoice workbook: %w", err)
	}
	return invoice, nil
}

// InvoiceWorkbook renders an invoice into a new workbook.
func InvoiceWorkbook(invoice *models.Invoice) (*xlsx.File, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Invoice")
	if err != nil {
		return nil, fmt.Errorf("failed to create invoice sheet: %w", err)
	}

	addRow(sheet, "Invoice", invoice.Number)
	addRow(sheet, "Customer ID", invoice.CustomerID)
	addRow(sheet, "Payment Method", string(invoice.PaymentMethod))
	addRow(sheet, "Date", invoice.CreatedAt.Format("2006-01-02 15:04:05"))
	sheet.AddRow()

	addRow(sheet, "Product ID", "Quantity", "Unit Price", "Discount", "Line Total")
	for _, item := range invoice.Items {
		addRow(sheet,
			item.ProductID,
			item.Quantity,
			item.Price.StringFixed(2),
			item.Discount.StringFixed(2),
			item.TotalPrice.StringFixed(2),
		)
	}
	sheet.AddRow()

	addRow(sheet, "Sub Total", invoice.SubTotal.StringFixed(2))
	addRow(sheet, "Flat Discount", invoice.FlatDiscount.StringFixed(2))
	addRow(sheet, "Tax", invoice.TaxAmount.StringFixed(2))
	addRow(sheet, "Total", invoice.TotalAmount.StringFixed(2))
	return file, nil
}

func addRow(sheet *xlsx.Sheet, values ...interface{}) {
	row := sheet.AddRow()
	for _, v := range values {
		row.AddCell().SetValue(v)
	}
}
