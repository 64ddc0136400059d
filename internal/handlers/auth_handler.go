package handlers

import (
	"storefront/internal/applog"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for operator authentication.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/login", h.HandleLogin)
}

// HandleRegister handles new operator registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var in services.RegisterInput
	if err := parseBody(c, &in); err != nil {
		return respondError(c, "auth.register", err)
	}

	operator, err := h.authService.RegisterOperator(in)
	if err != nil {
		return respondError(c, "auth.register", err)
	}

	applog.Audit(c, "auth.register", map[string]any{"username": operator.Username})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Operator registered successfully",
		"operator": operator,
		"status":   "success",
	})
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// HandleLogin checks operator credentials and issues a JWT token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, "auth.login", err)
	}
	if req.Username == "" || req.Password == "" {
		verr := &services.ValidationError{}
		if req.Username == "" {
			verr.Add("username", "The username field is required.")
		}
		if req.Password == "" {
			verr.Add("password", "The password field is required.")
		}
		return respondError(c, "auth.login", verr)
	}

	token, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		return respondError(c, "auth.login", err)
	}

	applog.Audit(c, "auth.login", map[string]any{"username": req.Username})
	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
	})
}
