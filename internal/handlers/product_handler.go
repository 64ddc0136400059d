package handlers

import (
	"storefront/internal/applog"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// RegisterRoutes registers the product routes. Guards run before every
// write route only.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, guards ...fiber.Handler) {
	r := router.Group("/products")
	r.Get("/", h.HandleGetProducts)
	r.Get("/:id", h.HandleGetProduct)
	r.Post("/", guarded(guards, h.HandleCreateProduct)...)
	r.Put("/:id", guarded(guards, h.HandleUpdateProduct)...)
	r.Delete("/:id", guarded(guards, h.HandleDeleteProduct)...)
}

// HandleGetProducts lists every product.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		return respondError(c, "product.list", err)
	}
	return c.JSON(fiber.Map{"products": products, "status": "success"})
}

// HandleGetProduct returns one product.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "Product")
	if err != nil {
		return respondError(c, "product.get", err)
	}
	product, err := h.service.GetProductByID(id)
	if err != nil {
		return respondError(c, "product.get", err)
	}
	return c.JSON(fiber.Map{"product": product, "status": "success"})
}

// HandleCreateProduct creates a product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var in services.ProductInput
	if err := parseBody(c, &in); err != nil {
		return respondError(c, "product.create", err)
	}
	product, err := h.service.CreateProduct(in)
	if err != nil {
		return respondError(c, "product.create", err)
	}
	applog.Audit(c, "product.create", map[string]any{"product_id": product.ID})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"product": product, "status": "success"})
}

// HandleUpdateProduct replaces a product's fields.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "Product")
	if err != nil {
		return respondError(c, "product.update", err)
	}
	var in services.ProductInput
	if err := parseBody(c, &in); err != nil {
		return respondError(c, "product.update", err)
	}
	product, err := h.service.UpdateProduct(id, in)
	if err != nil {
		return respondError(c, "product.update", err)
	}
	applog.Audit(c, "product.update", map[string]any{"product_id": id})
	return c.JSON(fiber.Map{"product": product, "status": "success"})
}

// HandleDeleteProduct deletes a product.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "Product")
	if err != nil {
		return respondError(c, "product.delete", err)
	}
	if err := h.service.DeleteProduct(id); err != nil {
		return respondError(c, "product.delete", err)
	}
	applog.Audit(c, "product.delete", map[string]any{"product_id": id})
	return c.JSON(fiber.Map{"deleted": true, "status": "success"})
}
