// Package router wires the HTTP surface: catalog browsing, admin writes
// and vote submission, all as handler closures over injected dependencies.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	rd "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"smartshop/internal/config"
	"smartshop/internal/middleware"
)

// Setup registers all HTTP routes.
func Setup(r *gin.Engine, db *gorm.DB, rdb *rd.Client, cfg config.AppConfig) {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"msg": "pong"})
	})

	// Catalog (read)
	r.GET("/api/home", home(db))
	r.GET("/api/categories", listCategories(db))
	r.GET("/api/categories/:slug/products", listCategoryProducts(db))
	r.GET("/api/products/:slug", productDetail(db, rdb, cfg.StatsCacheTTL))

	// Catalog (operator writes)
	r.POST("/api/categories", requireAdmin(cfg.AdminToken), createCategory(db))
	r.DELETE("/api/categories/:category_id", requireAdmin(cfg.AdminToken), deleteCategory(db))
	r.POST("/api/products", requireAdmin(cfg.AdminToken), createProduct(db))

	// Votes
	r.POST("/api/vote/:product_id",
		middleware.RedisRateLimit(rdb, cfg.VoteRateLimit, cfg.VoteRateWindow),
		submitVote(db, rdb, cfg))
	r.GET("/api/vote/:product_id/stats", voteStats(db, rdb, cfg.StatsCacheTTL))
}

// requireAdmin guards operator endpoints with a shared token header.
func requireAdmin(adminToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("X-Admin-Token") != adminToken {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": 401, "msg": "invalid admin token"})
			return
		}
		c.Next()
	}
}
