package productcontroller

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
	require.NoError(t, db.AutoMigrate(&models.Product{}))
	return db
}

func floatPtr(v float64) *float64 { return &v }

func seedCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()
	products := []models.Product{
		{ID: 1, Title: "Phone", Category: "electronics", Price: 500, DiscountName: models.NoDiscount},
		{ID: 2, Title: "Laptop", Category: "electronics", Price: 1200, DiscountName: "Clearance", DiscountPercent: 5},
		{ID: 3, Title: "Mug", Category: "kitchen", Price: 8, DiscountName: models.NoDiscount},
	}
	require.NoError(t, db.Create(&products).Error)
}

func fetch(t *testing.T, db *gorm.DB, id uint) models.Product {
	t.Helper()
	var p models.Product
	require.NoError(t, db.First(&p, id).Error)
	return p
}

func TestApplyDiscountGlobal(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)

	affected, err := ApplyDiscount(db, ApplyDiscountInput{
		Name: "Summer", Percent: floatPtr(20), Override: true,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), affected)

	for _, id := range []uint{1, 2, 3} {
		p := fetch(t, db, id)
		assert.Equal(t, "Summer", p.DiscountName)
		assert.Equal(t, 20.0, p.DiscountPercent)
	}
}

func TestApplyDiscountCategoryWithoutOverride(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)

	affected, err := ApplyDiscount(db, ApplyDiscountInput{
		Name: "Summer", Percent: floatPtr(20), Category: "electronics", Override: false,
	})
	require.NoError(t, err)
	// Only the undiscounted electronics product is touched.
	assert.Equal(t, int64(1), affected)

	assert.Equal(t, 20.0, fetch(t, db, 1).DiscountPercent)
	assert.Equal(t, 5.0, fetch(t, db, 2).DiscountPercent) // existing discount preserved
	assert.Equal(t, 0.0, fetch(t, db, 3).DiscountPercent) // other category untouched
}

func TestApplyDiscountIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)

	input := ApplyDiscountInput{Name: "Summer", Percent: floatPtr(20), Override: true}
	_, err := ApplyDiscount(db, input)
	require.NoError(t, err)
	_, err = ApplyDiscount(db, input)
	require.NoError(t, err)

	assert.Equal(t, 20.0, fetch(t, db, 1).DiscountPercent)
}

func TestRemoveDiscountByName(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)

	affected, err := RemoveDiscount(db, RemoveDiscountInput{Name: "Clearance"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	p := fetch(t, db, 2)
	assert.Equal(t, models.NoDiscount, p.DiscountName)
	assert.Equal(t, 0.0, p.DiscountPercent)
}

func TestRemoveDiscountByCategory(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)

	_, err := ApplyDiscount(db, ApplyDiscountInput{Name: "Summer", Percent: floatPtr(15), Override: true})
	require.NoError(t, err)

	affected, err := RemoveDiscount(db, RemoveDiscountInput{Category: "kitchen"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	assert.Equal(t, 15.0, fetch(t, db, 1).DiscountPercent)
	assert.Equal(t, 0.0, fetch(t, db, 3).DiscountPercent)
}
