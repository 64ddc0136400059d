package database_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"storefront/internal/database"
	"storefront/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type bufferWriter struct {
	buf bytes.Buffer
}

func (w *bufferWriter) Printf(format string, args ...interface{}) {
	fmt.Fprintf(&w.buf, format+"\n", args...)
}

func openSQLite(t *testing.T) *gorm.DB {
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := database.Open("sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func TestOpen_MigratesSchema(t *testing.T) {
	db := openSQLite(t)
	for _, table := range []string{"categories", "products", "customers", "carts", "cart_items", "invoices", "invoice_items", "operators"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := database.Open("mysql", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported DB_DRIVER")
}

func TestOpen_DoesNotLogMisses(t *testing.T) {
	w := &bufferWriter{}
	original := database.Logger
	database.Logger = database.NewLogger(w)
	t.Cleanup(func() { database.Logger = original })

	db := openSQLite(t)
	w.buf.Reset()

	var customer models.Customer
	err := db.Where("email = ?", "nobody@example.com").First(&customer).Error
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Empty(t, w.buf.String())

	// Real failures are still logged.
	require.Error(t, db.Exec("SELECT * FROM missing_table").Error)
	assert.Contains(t, w.buf.String(), "missing_table")
}

func TestSQLX_UsesSQLiteDriverName(t *testing.T) {
	db := openSQLite(t)
	sqlxDB, err := database.SQLX(db)
	require.NoError(t, err)
	assert.Equal(t, "sqlite3", sqlxDB.DriverName())
}
