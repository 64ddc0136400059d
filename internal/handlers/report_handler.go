package handlers

import (
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ReportHandler serves sales aggregates.
type ReportHandler struct {
	service *services.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(service *services.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// RegisterRoutes registers the report routes with the Fiber app.
func (h *ReportHandler) RegisterRoutes(router fiber.Router) {
	reportRoutes := router.Group("/reports")
	reportRoutes.Get("/product-sales", h.HandleProductSales)
	reportRoutes.Get("/summary", h.HandleSummary)
}

// HandleProductSales lists products by invoiced revenue. ?limit= caps the rows.
func (h *ReportHandler) HandleProductSales(c *fiber.Ctx) error {
	rows, err := h.service.ProductSales(c.QueryInt("limit", 0))
	if err != nil {
		return respondError(c, "report.product_sales", err)
	}
	return c.JSON(fiber.Map{"products": rows})
}

func (h *ReportHandler) HandleSummary(c *fiber.Ctx) error {
	summary, err := h.service.Summary()
	if err != nil {
		return respondError(c, "report.summary", err)
	}
	return c.JSON(fiber.Map{"summary": summary})
}
