package router

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	rd "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"smartshop/internal/catalog"
	"smartshop/internal/model"
)

// home serves the landing page aggregates.
func home(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, err := catalog.Home(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"code": 500, "msg": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"code": 0, "data": data})
	}
}

// productDetail returns one product with its pricing computations, vote
// stats and related products.
func productDetail(db *gorm.DB, rdb *rd.Client, statsTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := c.Param("slug")

		var p model.Product
		if err := db.Where("slug = ?", slug).First(&p).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"code": 404, "msg": "product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"code": 500, "msg": err.Error()})
			return
		}

		related, err := catalog.Related(db, &p)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"code": 500, "msg": err.Error()})
			return
		}

		stats, err := loadVoteStats(c, db, rdb, p.ID, statsTTL)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"code": 500, "msg": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"code": 0, "data": gin.H{
			"product":          p,
			"best_price":       p.BestPrice(),
			"price_difference": p.PriceDifference(),
			"vote_stats":       stats,
			"related":          related,
		}})
	}
}

// createProduct is the operator entry point for new catalog entries.
// Money fields arrive as integer cents.
func createProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Title            string `json:"title" binding:"required"`
			Slug             string `json:"slug"`
			CategoryID       uint   `json:"category_id" binding:"required,min=1"`
			Description      string `json:"description"`
			ShortDescription string `json:"short_description" binding:"max=200"`
			ImageURL         string `json:"image_url"`
			BasePriceCents   int64  `json:"base_price_cents" binding:"required,min=0"`

			AmazonPriceCents    *int64   `json:"amazon_price_cents" binding:"omitempty,min=0"`
			AmazonLink          string   `json:"amazon_link"`
			AmazonAvailable     *bool    `json:"amazon_available"`
			AmazonRating        *float64 `json:"amazon_rating" binding:"omitempty,min=0,max=5"`
			AmazonReviews       int      `json:"amazon_reviews" binding:"min=0"`
			AmazonShippingCents int64    `json:"amazon_shipping_cents" binding:"min=0"`
			AmazonDeliveryDays  *int     `json:"amazon_delivery_days" binding:"omitempty,min=0"`

			EbayPriceCents    *int64   `json:"ebay_price_cents" binding:"omitempty,min=0"`
			EbayLink          string   `json:"ebay_link"`
			EbayAvailable     *bool    `json:"ebay_available"`
			EbayRating        *float64 `json:"ebay_rating" binding:"omitempty,min=0,max=5"`
			EbayReviews       int      `json:"ebay_reviews" binding:"min=0"`
			EbayShippingCents int64    `json:"ebay_shipping_cents" binding:"min=0"`
			EbayDeliveryDays  *int     `json:"ebay_delivery_days" binding:"omitempty,min=0"`

			IsFeatured bool   `json:"is_featured"`
			Keywords   string `json:"keywords"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"code": 400, "msg": err.Error()})
			return
		}

		var cat model.Category
		if err := db.First(&cat, req.CategoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"code": 404, "msg": "category not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"code": 500, "msg": err.Error()})
			return
		}

		p := &model.Product{
			Title:            req.Title,
			Slug:             req.Slug,
			CategoryID:       req.CategoryID,
			Description:      req.Description,
			ShortDescription: req.ShortDescription,
			ImageURL:         req.ImageURL,
			BasePriceCents:   req.BasePriceCents,

			AmazonPriceCents:    req.AmazonPriceCents,
			AmazonLink:          req.AmazonLink,
			AmazonAvailable:     boolOr(req.AmazonAvailable, true),
			AmazonRating:        req.AmazonRating,
			AmazonReviews:       req.AmazonReviews,
			AmazonShippingCents: req.AmazonShippingCents,
			AmazonDeliveryDays:  intOr(req.AmazonDeliveryDays, 2),

			EbayPriceCents:    req.EbayPriceCents,
			EbayLink:          req.EbayLink,
			EbayAvailable:     boolOr(req.EbayAvailable, true),
			EbayRating:        req.EbayRating,
			EbayReviews:       req.EbayReviews,
			EbayShippingCents: req.EbayShippingCents,
			EbayDeliveryDays:  intOr(req.EbayDeliveryDays, 5),

			IsFeatured: req.IsFeatured,
			Keywords:   req.Keywords,
		}
		if err := db.Create(p).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"code": 500, "msg": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"code": 0, "data": p})
	}
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}

func intOr(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}

// parseProductID reads the numeric product id path param.
func parseProductID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("product_id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"code": 400, "msg": "invalid product id"})
		return 0, false
	}
	return uint(id), true
}
