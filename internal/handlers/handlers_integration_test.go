package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"storefront/internal/database"
	"storefront/internal/handlers"
	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
)

// setupApp sets up a Fiber app for testing with in-memory SQLite and all handlers/services.
func setupApp(t *testing.T, authRequired bool) (*fiber.App, *services.AuthService) {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := database.Open("sqlite", "file:"+name+"?mode=memory&cache=shared")
	require.NoError(t, err, "failed to connect to in-memory database")
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	sqlxDB, err := database.SQLX(db)
	require.NoError(t, err)

	// Initialize Repositories
	store := repositories.NewGORMStore(db)
	operatorRepo := repositories.NewGORMOperatorRepository(db)

	// Initialize Services
	authService := services.NewAuthService(operatorRepo, "test_jwt_secret")
	invoiceService := services.NewInvoiceService(store, nil, "invoices")

	app := fiber.New()
	api := app.Group("/api")

	var guards []fiber.Handler
	if authRequired {
		guards = append(guards, middleware.RequireOperator(authService))
	}
	handlers.NewAuthHandler(authService).RegisterRoutes(api)
	handlers.NewCategoryHandler(services.NewCategoryService(store.Categories())).RegisterRoutes(api, guards...)
	handlers.NewProductHandler(services.NewProductService(store.Products(), store.Categories())).RegisterRoutes(api, guards...)
	handlers.NewCustomerHandler(services.NewCustomerService(store.Customers())).RegisterRoutes(api)
	handlers.NewCartHandler(services.NewCartService(store), invoiceService).RegisterRoutes(api)
	handlers.NewInvoiceHandler(invoiceService).RegisterRoutes(api)
	handlers.NewReportHandler(services.NewReportService(repositories.NewSQLXReportRepository(sqlxDB))).RegisterRoutes(api)

	return app, authService
}

// TestMain runs setup and teardown for all tests
func TestMain(m *testing.M) {
	// Suppress logging during tests for cleaner output
	log.SetOutput(io.Discard)
	code := m.Run()
	os.Exit(code)
}

// call sends a JSON request and decodes the JSON response into out when out is not nil.
func call(t *testing.T, app *fiber.App, method, path string, body interface{}, token string, out interface{}) int {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		jsonBody, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1) // -1 for no timeout
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

type failure struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
	Error   string            `json:"error"`
}

type catalog struct {
	categoryID uint
	productID  uint
	customerID uint
}

func seedCatalog(t *testing.T, app *fiber.App, token string) catalog {
	t.Helper()
	var c catalog

	var categoryResp struct {
		Category models.Category `json:"category"`
		Status   string          `json:"status"`
	}
	status := call(t, app, http.MethodPost, "/api/categories", map[string]string{"name": "Peripherals"}, token, &categoryResp)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "success", categoryResp.Status)
	c.categoryID = categoryResp.Category.ID

	var productResp struct {
		Product models.Product `json:"product"`
	}
	status = call(t, app, http.MethodPost, "/api/products", map[string]interface{}{
		"name":               "Keyboard",
		"description":        "Mechanical keyboard",
		"price":              50,
		"available_quantity": 10,
		"category_id":        c.categoryID,
	}, token, &productResp)
	require.Equal(t, http.StatusCreated, status)
	c.productID = productResp.Product.ID

	var customerResp struct {
		Customer models.Customer `json:"customer"`
	}
	status = call(t, app, http.MethodPost, "/api/customers", map[string]string{
		"name":           "Alice",
		"email":          "alice@example.com",
		"address":        "1 Main St",
		"contact_number": "555-0101",
	}, "", &customerResp)
	require.Equal(t, http.StatusCreated, status)
	c.customerID = customerResp.Customer.ID
	return c
}

func TestAuthRegisterAndLogin(t *testing.T) {
	app, authService := setupApp(t, true)

	// Test Registration
	operator := map[string]string{
		"username": "testuser",
		"email":    "test@example.com",
		"password": "password123",
	}
	var registerResp map[string]interface{}
	status := call(t, app, http.MethodPost, "/api/auth/register", operator, "", &registerResp)
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Operator registered successfully", registerResp["message"])
	assert.NotContains(t, registerResp["operator"], "password")

	// Test Duplicate Registration (username)
	status = call(t, app, http.MethodPost, "/api/auth/register", operator, "", nil)
	assert.Equal(t, http.StatusConflict, status)

	// Test Login
	var loginResp map[string]string
	status = call(t, app, http.MethodPost, "/api/auth/login", map[string]string{"username": "testuser", "password": "password123"}, "", &loginResp)
	assert.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, loginResp["token"])

	claims, err := authService.ValidateToken(loginResp["token"])
	assert.NoError(t, err)
	assert.Equal(t, "testuser", claims["username"])
	assert.Contains(t, claims, "operator_id")

	// Test wrong password
	var fail failure
	status = call(t, app, http.MethodPost, "/api/auth/login", map[string]string{"username": "testuser", "password": "nope"}, "", &fail)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "failed", fail.Status)
}

func TestCatalogWritesRequireOperator(t *testing.T) {
	app, _ := setupApp(t, true)

	// Reads are public
	status := call(t, app, http.MethodGet, "/api/products", nil, "", nil)
	assert.Equal(t, http.StatusOK, status)

	// Writes without a token are rejected
	status = call(t, app, http.MethodPost, "/api/categories", map[string]string{"name": "X"}, "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	status = call(t, app, http.MethodDelete, "/api/products/1", nil, "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	// Customers are not guarded
	status = call(t, app, http.MethodGet, "/api/customers", nil, "", nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestProductEndpoints(t *testing.T) {
	app, authService := setupApp(t, true)
	_, err := authService.RegisterOperator(services.RegisterInput{Username: "authuser", Email: "auth@example.com", Password: "securepassword"})
	require.NoError(t, err)
	token, err := authService.Login("authuser", "securepassword")
	require.NoError(t, err)

	c := seedCatalog(t, app, token)
	productPath := fmt.Sprintf("/api/products/%d", c.productID)

	// --- GET /products ---
	var listResp struct {
		Products []models.Product `json:"products"`
	}
	status := call(t, app, http.MethodGet, "/api/products", nil, "", &listResp)
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, listResp.Products, 1)

	// --- PUT /products/:id ---
	var updateResp struct {
		Product models.Product `json:"product"`
	}
	status = call(t, app, http.MethodPut, productPath, map[string]interface{}{
		"name":               "Keyboard Pro",
		"description":        "Mechanical keyboard pro edition",
		"price":              "59.90",
		"available_quantity": 0,
		"category_id":        c.categoryID,
	}, token, &updateResp)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Keyboard Pro", updateResp.Product.Name)
	assert.True(t, decimal.RequireFromString("59.9").Equal(updateResp.Product.Price))
	assert.Equal(t, 0, updateResp.Product.AvailableQuantity)

	// --- POST /products with invalid input ---
	var fail failure
	status = call(t, app, http.MethodPost, "/api/products", map[string]interface{}{
		"name":               "",
		"price":              -5,
		"available_quantity": 1,
		"category_id":        999,
	}, token, &fail)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "failed", fail.Status)
	assert.Equal(t, "The selected category id is invalid.", fail.Errors["category_id"])
	assert.Contains(t, fail.Errors, "name")
	assert.Contains(t, fail.Errors, "price")

	// --- DELETE /products/:id ---
	var deleteResp map[string]interface{}
	status = call(t, app, http.MethodDelete, productPath, nil, token, &deleteResp)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, deleteResp["deleted"])
	assert.Equal(t, "success", deleteResp["status"])

	// Verify deletion
	fail = failure{}
	status = call(t, app, http.MethodGet, productPath, nil, "", &fail)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, fmt.Sprintf("Product with ID %d not found.", c.productID), fail.Message)

	// Non-numeric IDs cannot exist
	status = call(t, app, http.MethodGet, "/api/products/abc", nil, "", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestMalformedBody(t *testing.T) {
	app, _ := setupApp(t, false)

	var fail failure
	status := call(t, app, http.MethodPost, "/api/categories", "{not json", "", &fail)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, fail.Errors, "body")
}

func TestCartAndCheckoutFlow(t *testing.T) {
	app, _ := setupApp(t, false)
	c := seedCatalog(t, app, "")

	// --- Add to cart twice ---
	var addResp struct {
		CartItem models.CartItem `json:"cart_item"`
		Status   string          `json:"status"`
	}
	status := call(t, app, http.MethodPost, "/api/cart/add-item", map[string]interface{}{
		"customer_id": c.customerID, "product_id": c.productID, "quantity": 1,
	}, "", &addResp)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "success", addResp.Status)

	status = call(t, app, http.MethodPost, "/api/cart/add-item", map[string]interface{}{
		"customer_id": c.customerID, "product_id": c.productID, "quantity": 1,
	}, "", &addResp)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, 2, addResp.CartItem.Quantity)

	// --- Over-stock add ---
	var fail failure
	status = call(t, app, http.MethodPost, "/api/cart/add-item", map[string]interface{}{
		"customer_id": c.customerID, "product_id": c.productID, "quantity": 9,
	}, "", &fail)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "Insufficient stock. Available stock: 8", fail.Errors["quantity"])

	// --- List items ---
	var itemsResp struct {
		Items []models.CartItem `json:"items"`
	}
	status = call(t, app, http.MethodGet, fmt.Sprintf("/api/cart/items/%d", c.customerID), nil, "", &itemsResp)
	assert.Equal(t, http.StatusOK, status)
	require.Len(t, itemsResp.Items, 1)
	assert.Equal(t, 8, itemsResp.Items[0].Product.AvailableQuantity)

	// --- Checkout ---
	var checkoutResp struct {
		Invoice models.Invoice `json:"invoice"`
		Status  string         `json:"status"`
	}
	status = call(t, app, http.MethodPost, "/api/cart/checkout", map[string]interface{}{
		"customer_id":    c.customerID,
		"flat_discount":  10,
		"payment_method": "cash",
	}, "", &checkoutResp)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "success", checkoutResp.Status)
	invoice := checkoutResp.Invoice
	assert.True(t, decimal.NewFromInt(100).Equal(invoice.SubTotal))
	assert.True(t, decimal.NewFromInt(9).Equal(invoice.TaxAmount))
	assert.True(t, decimal.NewFromInt(99).Equal(invoice.TotalAmount))
	require.Len(t, invoice.Items, 1)

	// Cart is now empty but still there
	itemsResp.Items = nil
	status = call(t, app, http.MethodGet, fmt.Sprintf("/api/cart/items/%d", c.customerID), nil, "", &itemsResp)
	assert.Equal(t, http.StatusOK, status)
	assert.NotNil(t, itemsResp.Items)
	assert.Empty(t, itemsResp.Items)

	// --- Invoice lookups ---
	status = call(t, app, http.MethodGet, fmt.Sprintf("/api/invoices/%d", invoice.ID), nil, "", nil)
	assert.Equal(t, http.StatusOK, status)

	var listResp struct {
		Invoices []models.Invoice `json:"invoices"`
	}
	status = call(t, app, http.MethodGet, fmt.Sprintf("/api/customers/%d/invoices", c.customerID), nil, "", &listResp)
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, listResp.Invoices, 1)

	// --- Export ---
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/invoices/%d/export", invoice.ID), nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), invoice.Number+".xlsx")
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	workbook, err := xlsx.OpenBinary(raw)
	require.NoError(t, err)
	assert.Contains(t, workbook.Sheet, "Invoice")

	// --- Reports ---
	var salesResp struct {
		Products []repositories.ProductSales `json:"products"`
	}
	status = call(t, app, http.MethodGet, "/api/reports/product-sales?limit=5", nil, "", &salesResp)
	assert.Equal(t, http.StatusOK, status)
	require.Len(t, salesResp.Products, 1)
	assert.Equal(t, 2, salesResp.Products[0].Quantity)

	var summaryResp struct {
		Summary repositories.SalesSummary `json:"summary"`
	}
	status = call(t, app, http.MethodGet, "/api/reports/summary", nil, "", &summaryResp)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, summaryResp.Summary.InvoiceCount)
	assert.True(t, decimal.NewFromInt(99).Equal(summaryResp.Summary.TotalAmount))
}

func TestCartErrors(t *testing.T) {
	app, _ := setupApp(t, false)
	c := seedCatalog(t, app, "")

	// No cart yet
	var fail failure
	status := call(t, app, http.MethodGet, fmt.Sprintf("/api/cart/items/%d", c.customerID), nil, "", &fail)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Cart not found for this customer", fail.Message)

	fail = failure{}
	status = call(t, app, http.MethodPost, "/api/cart/checkout", map[string]interface{}{
		"customer_id": c.customerID, "payment_method": "cash",
	}, "", &fail)
	assert.Equal(t, http.StatusNotFound, status)

	// Unknown cart item
	fail = failure{}
	status = call(t, app, http.MethodDelete, "/api/cart/delete-item/999", nil, "", &fail)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Item with ID 999 not found.", fail.Message)

	// Remove restores stock
	var addResp struct {
		CartItem models.CartItem `json:"cart_item"`
	}
	status = call(t, app, http.MethodPost, "/api/cart/add-item", map[string]interface{}{
		"customer_id": c.customerID, "product_id": c.productID, "quantity": 4,
	}, "", &addResp)
	require.Equal(t, http.StatusCreated, status)

	var deleteResp map[string]interface{}
	status = call(t, app, http.MethodDelete, fmt.Sprintf("/api/cart/delete-item/%d", addResp.CartItem.ID), nil, "", &deleteResp)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, deleteResp["deleted"])

	var productResp struct {
		Product models.Product `json:"product"`
	}
	call(t, app, http.MethodGet, fmt.Sprintf("/api/products/%d", c.productID), nil, "", &productResp)
	assert.Equal(t, 10, productResp.Product.AvailableQuantity)

	// Invalid checkout input
	fail = failure{}
	status = call(t, app, http.MethodPost, "/api/cart/checkout", map[string]interface{}{
		"customer_id": c.customerID, "payment_method": "barter", "flat_discount": -1,
	}, "", &fail)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, fail.Errors, "payment_method")
	assert.Equal(t, "The flat discount field must not be negative.", fail.Errors["flat_discount"])
}
