package router

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"smartshop/internal/catalog"
	"smartshop/internal/model"
)

// listCategories returns every category, name order.
func listCategories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categories []model.Category
		if err := db.Order("name asc").Find(&categories).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"code": 500, "msg": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"code": 0, "data": categories})
	}
}

// listCategoryProducts serves a filtered, sorted, paginated product listing
// for one category. Unknown filter or sort values are 400s, not silently
// ignored.
func listCategoryProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var cat model.Category
		if err := db.Where("slug = ?", c.Param("slug")).First(&cat).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"code": 404, "msg": "category not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"code": 500, "msg": err.Error()})
			return
		}

		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		filter, err := catalog.ParseListFilter(c.Query("platform"), c.Query("sort"), page)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"code": 400, "msg": err.Error()})
			return
		}

		listing, err := catalog.ListProducts(db, cat.ID, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"code": 500, "msg": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"code": 0, "data": gin.H{
			"category": cat,
			"listing":  listing,
		}})
	}
}

// createCategory is the operator entry point for new categories.
func createCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Name            string `json:"name" binding:"required,max=200"`
			Slug            string `json:"slug" binding:"max=200"`
			Description     string `json:"description"`
			MetaDescription string `json:"meta_description" binding:"max=160"`
			Icon            string `json:"icon" binding:"max=50"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"code": 400, "msg": err.Error()})
			return
		}

		cat := &model.Category{
			Name:            req.Name,
			Slug:            req.Slug,
			Description:     req.Description,
			MetaDescription: req.MetaDescription,
			Icon:            req.Icon,
		}
		if err := db.Create(cat).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"code": 500, "msg": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"code": 0, "data": cat})
	}
}

// deleteCategory removes a category and, since the category exclusively owns
// its products, every product in it. One transaction so a partial cascade
// never survives.
func deleteCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("category_id"), 10, 32)
		if err != nil || id == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"code": 400, "msg": "invalid category id"})
			return
		}

		var cat model.Category
		if err := db.First(&cat, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"code": 404, "msg": "category not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"code": 500, "msg": err.Error()})
			return
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("category_id = ?", cat.ID).Delete(&model.Product{}).Error; err != nil {
				return err
			}
			return tx.Delete(&cat).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"code": 500, "msg": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"code": 0, "msg": "deleted"})
	}
}
