package catalog

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"smartshop/internal/model"
	"smartshop/internal/pricing"
)

var memDBSeq int

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	memDBSeq++
	dsn := fmt.Sprintf("file:catalog_test_%d?mode=memory&cache=shared", memDBSeq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&model.Category{}, &model.Product{}))
	return db
}

func seedCategory(t *testing.T, db *gorm.DB, name string) *model.Category {
	t.Helper()
	cat := &model.Category{Name: name}
	require.NoError(t, db.Create(cat).Error)
	return cat
}

func cents(v int64) *int64 { return &v }

func TestParseListFilter(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		f, err := ParseListFilter("", "", 0)
		require.NoError(t, err)
		assert.Equal(t, pricing.Platform(""), f.Platform)
		assert.Equal(t, SortNewest, f.Sort)
		assert.Equal(t, 1, f.Page)
	})

	t.Run("valid values", func(t *testing.T) {
		f, err := ParseListFilter("ebay", "price_high", 3)
		require.NoError(t, err)
		assert.Equal(t, pricing.PlatformEbay, f.Platform)
		assert.Equal(t, SortPriceHigh, f.Sort)
		assert.Equal(t, 3, f.Page)
	})

	t.Run("unknown platform", func(t *testing.T) {
		_, err := ParseListFilter("walmart", "", 1)
		assert.ErrorIs(t, err, ErrBadPlatformFilter)
	})

	t.Run("unknown sort", func(t *testing.T) {
		_, err := ParseListFilter("", "cheapest", 1)
		assert.ErrorIs(t, err, ErrBadSort)
	})
}

func TestListProducts(t *testing.T) {
	t.Run("platform filter keeps available products only", func(t *testing.T) {
		db := openTestDB(t)
		cat := seedCategory(t, db, "Audio")
		require.NoError(t, db.Create(&model.Product{
			Title: "Amazon Only", CategoryID: cat.ID, BasePriceCents: 100,
			AmazonAvailable: true, EbayAvailable: false,
		}).Error)
		require.NoError(t, db.Create(&model.Product{
			Title: "Ebay Only", CategoryID: cat.ID, BasePriceCents: 100,
			AmazonAvailable: false, EbayAvailable: true,
		}).Error)

		page, err := ListProducts(db, cat.ID, ListFilter{Platform: pricing.PlatformAmazon, Page: 1})
		require.NoError(t, err)
		require.Len(t, page.Products, 1)
		assert.Equal(t, "Amazon Only", page.Products[0].Title)

		page, err = ListProducts(db, cat.ID, ListFilter{Platform: pricing.PlatformEbay, Page: 1})
		require.NoError(t, err)
		require.Len(t, page.Products, 1)
		assert.Equal(t, "Ebay Only", page.Products[0].Title)
	})

	t.Run("price sorts order by base price", func(t *testing.T) {
		db := openTestDB(t)
		cat := seedCategory(t, db, "Audio")
		for i, price := range []int64{300, 100, 200} {
			require.NoError(t, db.Create(&model.Product{
				Title: fmt.Sprintf("P%d", i), CategoryID: cat.ID, BasePriceCents: price,
			}).Error)
		}

		page, err := ListProducts(db, cat.ID, ListFilter{Sort: SortPriceLow, Page: 1})
		require.NoError(t, err)
		require.Len(t, page.Products, 3)
		assert.Equal(t, int64(100), page.Products[0].BasePriceCents)
		assert.Equal(t, int64(300), page.Products[2].BasePriceCents)

		page, err = ListProducts(db, cat.ID, ListFilter{Sort: SortPriceHigh, Page: 1})
		require.NoError(t, err)
		assert.Equal(t, int64(300), page.Products[0].BasePriceCents)
	})

	t.Run("popular keeps featured only", func(t *testing.T) {
		db := openTestDB(t)
		cat := seedCategory(t, db, "Audio")
		require.NoError(t, db.Create(&model.Product{
			Title: "Featured", CategoryID: cat.ID, BasePriceCents: 100, IsFeatured: true,
		}).Error)
		require.NoError(t, db.Create(&model.Product{
			Title: "Plain", CategoryID: cat.ID, BasePriceCents: 100,
		}).Error)

		page, err := ListProducts(db, cat.ID, ListFilter{Sort: SortPopular, Page: 1})
		require.NoError(t, err)
		require.Len(t, page.Products, 1)
		assert.Equal(t, "Featured", page.Products[0].Title)
	})

	t.Run("pages of twelve", func(t *testing.T) {
		db := openTestDB(t)
		cat := seedCategory(t, db, "Audio")
		for i := 0; i < 15; i++ {
			require.NoError(t, db.Create(&model.Product{
				Title: fmt.Sprintf("Item %02d", i), CategoryID: cat.ID, BasePriceCents: int64(i),
			}).Error)
		}

		page, err := ListProducts(db, cat.ID, ListFilter{Page: 1})
		require.NoError(t, err)
		assert.Len(t, page.Products, 12)
		assert.Equal(t, int64(15), page.TotalCount)
		assert.Equal(t, 2, page.TotalPages)

		page, err = ListProducts(db, cat.ID, ListFilter{Page: 2})
		require.NoError(t, err)
		assert.Len(t, page.Products, 3)

		page, err = ListProducts(db, cat.ID, ListFilter{Page: 3})
		require.NoError(t, err)
		assert.Len(t, page.Products, 0)
	})

	t.Run("scoped to the category", func(t *testing.T) {
		db := openTestDB(t)
		cat1 := seedCategory(t, db, "Audio")
		cat2 := seedCategory(t, db, "Video")
		require.NoError(t, db.Create(&model.Product{
			Title: "Speaker", CategoryID: cat1.ID, BasePriceCents: 100,
		}).Error)

		page, err := ListProducts(db, cat2.ID, ListFilter{Page: 1})
		require.NoError(t, err)
		assert.Len(t, page.Products, 0)
	})
}

func TestRelated(t *testing.T) {
	db := openTestDB(t)
	cat := seedCategory(t, db, "Audio")
	other := seedCategory(t, db, "Video")

	self := &model.Product{Title: "Self", CategoryID: cat.ID, BasePriceCents: 100}
	require.NoError(t, db.Create(self).Error)
	for i := 0; i < 6; i++ {
		require.NoError(t, db.Create(&model.Product{
			Title: fmt.Sprintf("Sibling %d", i), CategoryID: cat.ID, BasePriceCents: 100,
		}).Error)
	}
	require.NoError(t, db.Create(&model.Product{
		Title: "Unrelated", CategoryID: other.ID, BasePriceCents: 100,
	}).Error)

	related, err := Related(db, self)
	require.NoError(t, err)
	assert.Len(t, related, RelatedLimit)
	for _, r := range related {
		assert.NotEqual(t, self.ID, r.ID)
		assert.Equal(t, cat.ID, r.CategoryID)
	}
}

func TestHome(t *testing.T) {
	db := openTestDB(t)
	cat := seedCategory(t, db, "Audio")

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 10; i++ {
		p := &model.Product{
			Title:          fmt.Sprintf("Item %02d", i),
			CategoryID:     cat.ID,
			BasePriceCents: 100,
			IsFeatured:     i < 7,
		}
		if i%2 == 0 {
			// amazon strictly cheaper on even items
			p.AmazonPriceCents = cents(100)
			p.EbayPriceCents = cents(200)
		} else {
			p.AmazonPriceCents = cents(300)
			p.EbayPriceCents = cents(200)
		}
		require.NoError(t, db.Create(p).Error)
		// distinct created_at so "latest" ordering is well defined
		require.NoError(t, db.Model(p).Update("created_at", base.Add(time.Duration(i)*time.Minute)).Error)
	}

	data, err := Home(db)
	require.NoError(t, err)
	assert.Len(t, data.Featured, 6)
	assert.Len(t, data.Latest, 8)
	assert.Len(t, data.Categories, 1)
	assert.Equal(t, int64(10), data.TotalProducts)
	assert.Equal(t, int64(5), data.AmazonWins)
	assert.Equal(t, "Item 09", data.Latest[0].Title)
}
