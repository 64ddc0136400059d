package services_test

import (
	"strconv"
	"strings"
	"testing"

	"storefront/internal/database"
	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fixture is an in-memory database seeded with one category, two products
// and two customers.
type fixture struct {
	db       *gorm.DB
	store    *repositories.GORMStore
	keyboard *models.Product
	mouse    *models.Product
	alice    *models.Customer
	bob      *models.Customer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.Open("sqlite", "file:"+name+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	f := &fixture{db: db, store: repositories.NewGORMStore(db)}
	category := &models.Category{Name: "Peripherals"}
	require.NoError(t, f.store.Categories().Create(category))

	f.keyboard = &models.Product{Name: "Keyboard", Description: "Mechanical keyboard", Price: decimal.NewFromInt(50), AvailableQuantity: 10, CategoryID: category.ID}
	f.mouse = &models.Product{Name: "Mouse", Description: "Wireless mouse", Price: decimal.RequireFromString("12.5"), AvailableQuantity: 4, CategoryID: category.ID}
	require.NoError(t, f.store.Products().Create(f.keyboard))
	require.NoError(t, f.store.Products().Create(f.mouse))

	f.alice = &models.Customer{Name: "Alice", Email: "alice@example.com", Address: "1 Main St", ContactNumber: "555-0101"}
	f.bob = &models.Customer{Name: "Bob", Email: "bob@example.com", Address: "2 Main St", ContactNumber: "555-0102"}
	require.NoError(t, f.store.Customers().Create(f.alice))
	require.NoError(t, f.store.Customers().Create(f.bob))
	return f
}

func (f *fixture) stock(t *testing.T, id uint) int {
	t.Helper()
	p, err := f.store.Products().GetByID(id)
	require.NoError(t, err)
	return p.AvailableQuantity
}

func (f *fixture) setStock(t *testing.T, id uint, qty int) {
	t.Helper()
	require.NoError(t, f.db.Model(&models.Product{}).Where("id = ?", id).Update("available_quantity", qty).Error)
}

func (f *fixture) count(t *testing.T, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(model).Count(&n).Error)
	return n
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
