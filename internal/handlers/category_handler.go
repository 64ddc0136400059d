package handlers

import (
	"storefront/internal/applog"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CategoryHandler handles HTTP requests for categories.
type CategoryHandler struct {
	service *services.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(service *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// RegisterRoutes registers the category routes. Guards run before every
// write route only.
func (h *CategoryHandler) RegisterRoutes(router fiber.Router, guards ...fiber.Handler) {
	r := router.Group("/categories")
	r.Get("/", h.HandleGetCategories)
	r.Get("/:id", h.HandleGetCategory)
	r.Post("/", guarded(guards, h.HandleCreateCategory)...)
	r.Put("/:id", guarded(guards, h.HandleUpdateCategory)...)
	r.Delete("/:id", guarded(guards, h.HandleDeleteCategory)...)
}

// HandleGetCategories lists every category.
func (h *CategoryHandler) HandleGetCategories(c *fiber.Ctx) error {
	categories, err := h.service.GetAllCategories()
	if err != nil {
		return respondError(c, "category.list", err)
	}
	return c.JSON(fiber.Map{"categories": categories, "status": "success"})
}

// HandleGetCategory returns one category.
func (h *CategoryHandler) HandleGetCategory(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "Category")
	if err != nil {
		return respondError(c, "category.get", err)
	}
	category, err := h.service.GetCategoryByID(id)
	if err != nil {
		return respondError(c, "category.get", err)
	}
	return c.JSON(fiber.Map{"category": category, "status": "success"})
}

// HandleCreateCategory creates a category.
func (h *CategoryHandler) HandleCreateCategory(c *fiber.Ctx) error {
	var in services.CategoryInput
	if err := parseBody(c, &in); err != nil {
		return respondError(c, "category.create", err)
	}
	category, err := h.service.CreateCategory(in)
	if err != nil {
		return respondError(c, "category.create", err)
	}
	applog.Audit(c, "category.create", map[string]any{"category_id": category.ID})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"category": category, "status": "success"})
}

// HandleUpdateCategory replaces a category's fields.
func (h *CategoryHandler) HandleUpdateCategory(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "Category")
	if err != nil {
		return respondError(c, "category.update", err)
	}
	var in services.CategoryInput
	if err := parseBody(c, &in); err != nil {
		return respondError(c, "category.update", err)
	}
	category, err := h.service.UpdateCategory(id, in)
	if err != nil {
		return respondError(c, "category.update", err)
	}
	applog.Audit(c, "category.update", map[string]any{"category_id": id})
	return c.JSON(fiber.Map{"category": category, "status": "success"})
}

// HandleDeleteCategory deletes a category.
func (h *CategoryHandler) HandleDeleteCategory(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "Category")
	if err != nil {
		return respondError(c, "category.delete", err)
	}
	if err := h.service.DeleteCategory(id); err != nil {
		return respondError(c, "category.delete", err)
	}
	applog.Audit(c, "category.delete", map[string]any{"category_id": id})
	return c.JSON(fiber.Map{"deleted": true, "status": "success"})
}
