package cartControllers

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/zarib-ali-wasif/ecommerce-api/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
	))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, id uint, price float64) models.Product {
	t.Helper()
	product := models.Product{
		ID:           id,
		Title:        fmt.Sprintf("Product %d", id),
		Price:        price,
		Category:     "general",
		DiscountName: models.NoDiscount,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func intPtr(v int) *int { return &v }

// assertInvariants checks the two cart invariants: the total equals the sum
// of line subtotals, and every line subtotal equals price x quantity.
func assertInvariants(t *testing.T, cart *models.Cart) {
	t.Helper()
	var sum float64
	for _, item := range cart.Items {
		assert.InDelta(t, item.Price*float64(item.Quantity), item.SubTotalPrice, 0.001)
		sum += item.SubTotalPrice
	}
	assert.InDelta(t, sum, cart.TotalPrice, 0.001)
}

func TestAddItemToEmptyCart(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, 1, 10)

	cart, err := AddItem(db, "user-1", 1, intPtr(2))
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, uint(1), cart.Items[0].ProductID)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, 20.0, cart.Items[0].SubTotalPrice)
	assert.Equal(t, 20.0, cart.TotalPrice)
	assertInvariants(t, cart)
}

func TestAddItemMergesExistingLine(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, 1, 10)

	_, err := AddItem(db, "user-1", 1, intPtr(2))
	require.NoError(t, err)

	cart, err := AddItem(db, "user-1", 1, intPtr(3))
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.Equal(t, 50.0, cart.Items[0].SubTotalPrice)
	assert.Equal(t, 50.0, cart.TotalPrice)
	assertInvariants(t, cart)
}

func TestAddItemQuantityClampsToOne(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, 1, 10)

	cases := []struct {
		name string
		qty  *int
	}{
		{"omitted", nil},
		{"zero", intPtr(0)},
		{"negative", intPtr(-4)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			userID := "user-" + tc.name
			cart, err := AddItem(db, userID, 1, tc.qty)
			require.NoError(t, err)
			require.Len(t, cart.Items, 1)
			assert.Equal(t, 1, cart.Items[0].Quantity)
			assert.Equal(t, 10.0, cart.TotalPrice)
		})
	}
}

func TestAddItemUnknownProduct(t *testing.T) {
	db := newTestDB(t)

	_, err := AddItem(db, "user-1", 42, intPtr(1))
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestAddItemKeepsCapturedPrice(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, 1, 10)

	_, err := AddItem(db, "user-1", 1, intPtr(1))
	require.NoError(t, err)

	// A later catalog price change must not affect the existing line.
	require.NoError(t, db.Model(&product).Update("price", 99).Error)

	cart, err := AddItem(db, "user-1", 1, intPtr(1))
	require.NoError(t, err)
	assert.Equal(t, 10.0, cart.Items[0].Price)
	assert.Equal(t, 20.0, cart.TotalPrice)
}

func TestUpdateQuantityOverwritesLine(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, 1, 10)

	_, err := AddItem(db, "user-1", 1, intPtr(2))
	require.NoError(t, err)

	cart, err := UpdateQuantity(db, "user-1", 1, intPtr(7))
	require.NoError(t, err)
	assert.Equal(t, 7, cart.Items[0].Quantity)
	assert.Equal(t, 70.0, cart.TotalPrice)
	assertInvariants(t, cart)

	// Same update twice yields the same state.
	again, err := UpdateQuantity(db, "user-1", 1, intPtr(7))
	require.NoError(t, err)
	assert.Equal(t, cart.TotalPrice, again.TotalPrice)
	assert.Equal(t, cart.Items[0].Quantity, again.Items[0].Quantity)
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, 1, 10)
	seedProduct(t, db, 2, 30)

	_, err := AddItem(db, "user-1", 1, intPtr(2))
	require.NoError(t, err)
	_, err = AddItem(db, "user-1", 2, intPtr(1))
	require.NoError(t, err)

	cart, err := UpdateQuantity(db, "user-1", 1, intPtr(0))
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, uint(2), cart.Items[0].ProductID)
	assert.Equal(t, 30.0, cart.TotalPrice)
	assertInvariants(t, cart)
}

func TestUpdateQuantityNegativeRemovesLine(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, 1, 10)

	_, err := AddItem(db, "user-1", 1, intPtr(2))
	require.NoError(t, err)

	cart, err := UpdateQuantity(db, "user-1", 1, intPtr(-5))
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Equal(t, 0.0, cart.TotalPrice)
}

func TestUpdateQuantityNilIsNoOp(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, 1, 10)

	_, err := AddItem(db, "user-1", 1, intPtr(2))
	require.NoError(t, err)

	cart, err := UpdateQuantity(db, "user-1", 1, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, 20.0, cart.TotalPrice)
}

func TestUpdateQuantityErrors(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, 1, 10)

	// No cart at all.
	_, err := UpdateQuantity(db, "nobody", 1, intPtr(1))
	assert.ErrorIs(t, err, ErrCartNotFound)

	// Cart exists, item does not: signaled distinctly.
	_, err = AddItem(db, "user-1", 1, intPtr(1))
	require.NoError(t, err)
	_, err = UpdateQuantity(db, "user-1", 99, intPtr(1))
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestRemoveItemKeepsEmptyCartRecord(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, 1, 10)

	_, err := AddItem(db, "user-1", 1, intPtr(2))
	require.NoError(t, err)

	cart, err := RemoveItem(db, "user-1", 1)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Equal(t, 0.0, cart.TotalPrice)

	// The emptied cart record survives; only an explicit delete removes it.
	var stored models.Cart
	require.NoError(t, db.Where("user_id = ?", "user-1").First(&stored).Error)
}

func TestRemoveItemErrors(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, 1, 10)

	_, err := RemoveItem(db, "nobody", 1)
	assert.ErrorIs(t, err, ErrCartNotFound)

	_, err = AddItem(db, "user-1", 1, intPtr(1))
	require.NoError(t, err)
	_, err = RemoveItem(db, "user-1", 99)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestTotalAlwaysSumOfSubtotals(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, 1, 9.99)
	seedProduct(t, db, 2, 24.5)
	seedProduct(t, db, 3, 3.75)

	cart, err := AddItem(db, "user-1", 1, intPtr(3))
	require.NoError(t, err)
	assertInvariants(t, cart)

	cart, err = AddItem(db, "user-1", 2, intPtr(2))
	require.NoError(t, err)
	assertInvariants(t, cart)

	cart, err = AddItem(db, "user-1", 3, nil)
	require.NoError(t, err)
	assertInvariants(t, cart)

	cart, err = UpdateQuantity(db, "user-1", 2, intPtr(5))
	require.NoError(t, err)
	assertInvariants(t, cart)

	cart, err = RemoveItem(db, "user-1", 1)
	require.NoError(t, err)
	assertInvariants(t, cart)
}
