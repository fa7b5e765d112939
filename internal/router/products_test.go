package router

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"smartshop/internal/model"
)

var memDBSeq int

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	memDBSeq++
	dsn := fmt.Sprintf("file:router_test_%d?mode=memory&cache=shared", memDBSeq)
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

func TestCreateProductDeliveryDays(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := openTestDB(t)

	cat := &model.Category{Name: "Audio"}
	require.NoError(t, db.Create(cat).Error)

	r := gin.New()
	r.POST("/api/products", createProduct(db))

	post := func(t *testing.T, body string) *model.Product {
		t.Helper()
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var p model.Product
		require.NoError(t, db.Order("id desc").First(&p).Error)
		return &p
	}

	t.Run("absent delivery days fall back to platform defaults", func(t *testing.T) {
		p := post(t, fmt.Sprintf(`{
			"title": "Speaker A",
			"category_id": %d,
			"base_price_cents": 4999
		}`, cat.ID))
		assert.Equal(t, 2, p.AmazonDeliveryDays)
		assert.Equal(t, 5, p.EbayDeliveryDays)
	})

	t.Run("explicit zero means same-day and is kept", func(t *testing.T) {
		p := post(t, fmt.Sprintf(`{
			"title": "Speaker B",
			"category_id": %d,
			"base_price_cents": 4999,
			"amazon_delivery_days": 0,
			"ebay_delivery_days": 0
		}`, cat.ID))
		assert.Equal(t, 0, p.AmazonDeliveryDays)
		assert.Equal(t, 0, p.EbayDeliveryDays)
	})

	t.Run("explicit values pass through", func(t *testing.T) {
		p := post(t, fmt.Sprintf(`{
			"title": "Speaker C",
			"category_id": %d,
			"base_price_cents": 4999,
			"amazon_delivery_days": 1,
			"ebay_delivery_days": 9
		}`, cat.ID))
		assert.Equal(t, 1, p.AmazonDeliveryDays)
		assert.Equal(t, 9, p.EbayDeliveryDays)
	})
}
