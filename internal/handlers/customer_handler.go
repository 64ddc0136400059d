package handlers

import (
	"storefront/internal/applog"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CustomerHandler handles HTTP requests for customers.
type CustomerHandler struct {
	service *services.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(service *services.CustomerService) *CustomerHandler {
	return &CustomerHandler{service: service}
}

// RegisterRoutes registers the customer routes.
func (h *CustomerHandler) RegisterRoutes(router fiber.Router) {
	r := router.Group("/customers")
	r.Get("/", h.HandleGetCustomers)
	r.Get("/:id", h.HandleGetCustomer)
	r.Post("/", h.HandleCreateCustomer)
	r.Put("/:id", h.HandleUpdateCustomer)
	r.Delete("/:id", h.HandleDeleteCustomer)
}

func (h *CustomerHandler) HandleGetCustomers(c *fiber.Ctx) error {
	customers, err := h.service.GetAllCustomers()
	if err != nil {
		return respondError(c, "customer.list", err)
	}
	return c.JSON(fiber.Map{"customers": customers, "status": "success"})
}

func (h *CustomerHandler) HandleGetCustomer(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "Customer")
	if err != nil {
		return respondError(c, "customer.get", err)
	}
	customer, err := h.service.GetCustomerByID(id)
	if err != nil {
		return respondError(c, "customer.get", err)
	}
	return c.JSON(fiber.Map{"customer": customer, "status": "success"})
}

// HandleCreateCustomer creates a customer.
func (h *CustomerHandler) HandleCreateCustomer(c *fiber.Ctx) error {
	var in services.CustomerInput
	if err := parseBody(c, &in); err != nil {
		return respondError(c, "customer.create", err)
	}
	customer, err := h.service.CreateCustomer(in)
	if err != nil {
		return respondError(c, "customer.create", err)
	}
	applog.Audit(c, "customer.create", map[string]any{"customer_id": customer.ID})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"customer": customer, "status": "success"})
}

// HandleUpdateCustomer replaces a customer's fields.
func (h *CustomerHandler) HandleUpdateCustomer(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "Customer")
	if err != nil {
		return respondError(c, "customer.update", err)
	}
	var in services.CustomerInput
	if err := parseBody(c, &in); err != nil {
		return respondError(c, "customer.update", err)
	}
	customer, err := h.service.UpdateCustomer(id, in)
	if err != nil {
		return respondError(c, "customer.update", err)
	}
	return c.JSON(fiber.Map{"customer": customer, "status": "success"})
}

// HandleDeleteCustomer deletes a customer.
func (h *CustomerHandler) HandleDeleteCustomer(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "Customer")
	if err != nil {
		return respondError(c, "customer.delete", err)
	}
	if err := h.service.DeleteCustomer(id); err != nil {
		return respondError(c, "customer.delete", err)
	}
	applog.Audit(c, "customer.delete", map[string]any{"customer_id": id})
	return c.JSON(fiber.Map{"deleted": true, "status": "success"})
}
