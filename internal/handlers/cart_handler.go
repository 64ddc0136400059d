package handlers

import (
	"storefront/internal/applog"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for carts and checkout.
type CartHandler struct {
	carts    *services.CartService
	invoices *services.InvoiceService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(carts *services.CartService, invoices *services.InvoiceService) *CartHandler {
	return &CartHandler{carts: carts, invoices: invoices}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Post("/add-item", h.HandleAddItem)
	cartRoutes.Delete("/delete-item/:cartItemId", h.HandleDeleteItem)
	cartRoutes.Get("/items/:customerId", h.HandleGetItems)
	cartRoutes.Post("/checkout", h.HandleCheckout)
}

// HandleAddItem puts a product into the customer's cart and reserves its stock.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var in services.AddItemInput
	if err := parseBody(c, &in); err != nil {
		return respondError(c, "cart.add", err)
	}
	item, err := h.carts.AddItem(in)
	if err != nil {
		return respondError(c, "cart.add", err)
	}
	applog.Audit(c, "cart.add", map[string]any{
		"customer_id": in.CustomerID,
		"product_id":  in.ProductID,
		"quantity":    in.Quantity,
	})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"cart_item": item, "status": "success"})
}

// HandleDeleteItem removes a line from a cart and returns its units to stock.
func (h *CartHandler) HandleDeleteItem(c *fiber.Ctx) error {
	id, err := paramID(c, "cartItemId", "Item")
	if err != nil {
		return respondError(c, "cart.delete", err)
	}
	deleted, err := h.carts.RemoveItem(id)
	if err != nil {
		return respondError(c, "cart.delete", err)
	}
	applog.Audit(c, "cart.delete", map[string]any{"cart_item_id": id})
	return c.JSON(fiber.Map{"deleted": deleted, "status": "success"})
}

// HandleGetItems lists the lines of a customer's cart.
func (h *CartHandler) HandleGetItems(c *fiber.Ctx) error {
	id, err := paramID(c, "customerId", "Customer")
	if err != nil {
		return respondError(c, "cart.items", err)
	}
	items, err := h.carts.GetItems(id)
	if err != nil {
		return respondError(c, "cart.items", err)
	}
	return c.JSON(fiber.Map{"items": items})
}

// HandleCheckout turns the customer's cart into an invoice.
func (h *CartHandler) HandleCheckout(c *fiber.Ctx) error {
	var in services.CheckoutInput
	if err := parseBody(c, &in); err != nil {
		return respondError(c, "cart.checkout", err)
	}
	invoice, err := h.invoices.Checkout(in)
	if err != nil {
		return respondError(c, "cart.checkout", err)
	}
	applog.Audit(c, "cart.checkout", map[string]any{
		"customer_id": invoice.CustomerID,
		"invoice":     invoice.Number,
		"total":       invoice.TotalAmount.StringFixed(2),
	})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"invoice": invoice, "status": "success"})
}
