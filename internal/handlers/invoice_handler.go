package handlers

import (
	"bytes"
	"fmt"

	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// InvoiceHandler handles HTTP requests for invoices.
type InvoiceHandler struct {
	service *services.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(service *services.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{service: service}
}

// RegisterRoutes registers the invoice routes with the Fiber app.
func (h *InvoiceHandler) RegisterRoutes(router fiber.Router) {
	invoiceRoutes := router.Group("/invoices")
	invoiceRoutes.Get("/:id", h.HandleGetInvoice)
	invoiceRoutes.Get("/:id/export", h.HandleExportInvoice)
	router.Get("/customers/:id/invoices", h.HandleGetCustomerInvoices)
}

// HandleGetInvoice retrieves a single invoice with its lines.
func (h *InvoiceHandler) HandleGetInvoice(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "Invoice")
	if err != nil {
		return respondError(c, "invoice.get", err)
	}
	invoice, err := h.service.GetInvoice(id)
	if err != nil {
		return respondError(c, "invoice.get", err)
	}
	return c.JSON(fiber.Map{"invoice": invoice})
}

// HandleExportInvoice sends the invoice as an XLSX attachment.
func (h *InvoiceHandler) HandleExportInvoice(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "Invoice")
	if err != nil {
		return respondError(c, "invoice.export", err)
	}
	var buf bytes.Buffer
	invoice, err := h.service.ExportInvoice(id, &buf)
	if err != nil {
		return respondError(c, "invoice.export", err)
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s.xlsx"`, invoice.Number))
	return c.Send(buf.Bytes())
}

// HandleGetCustomerInvoices lists a customer's invoices, newest first.
func (h *InvoiceHandler) HandleGetCustomerInvoices(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "Customer")
	if err != nil {
		return respondError(c, "invoice.list", err)
	}
	invoices, err := h.service.ListCustomerInvoices(id)
	if err != nil {
		return respondError(c, "invoice.list", err)
	}
	return c.JSON(fiber.Map{"invoices": invoices})
}
