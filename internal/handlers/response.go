package handlers

import (
	"errors"
	"strconv"

	"storefront/internal/applog"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// respondError maps a service error onto the JSON failure envelope.
func respondError(c *fiber.Ctx, action string, err error) error {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"status":  "failed",
			"message": verr.Error(),
			"errors":  verr.Fields,
		})
	case errors.Is(err, repositories.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "failed",
			"message": err.Error(),
		})
	case errors.Is(err, services.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"status":  "failed",
			"message": err.Error(),
		})
	case errors.Is(err, services.ErrInvalidCredentials):
		applog.Security(c, action+".denied", nil)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  "failed",
			"message": "Authentication failed",
		})
	}
	applog.Error(c, action, err, nil)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"status": "failed",
		"error":  "Internal server error",
	})
}

// parseBody decodes the JSON body into out. A malformed body is reported
// like any other invalid input.
func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return services.NewValidationError("body", "The request body must be valid JSON.")
	}
	return nil
}

// paramID reads a positive numeric route parameter. Anything else cannot name
// a stored row, so it is reported as not found.
func paramID(c *fiber.Ctx, name, resource string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, repositories.NotFound("%s with ID %s not found.", resource, c.Params(name))
	}
	return uint(id), nil
}

// guarded prepends guards to h without touching the caller's slice.
func guarded(guards []fiber.Handler, h fiber.Handler) []fiber.Handler {
	out := make([]fiber.Handler, 0, len(guards)+1)
	out = append(out, guards...)
	return append(out, h)
}
