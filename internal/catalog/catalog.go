// Package catalog implements product browsing: filtered, sorted, paginated
// listings plus the aggregates the home and detail pages consume.
package catalog

import (
	"gorm.io/gorm"

	"smartshop/internal/model"
	"smartshop/internal/pricing"
)

// ProductPage is one page of a product listing.
type ProductPage struct {
	Products   []model.Product `json:"products"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalCount int64           `json:"total_count"`
	TotalPages int             `json:"total_pages"`
}

// HomeData is everything the landing page shows in one query batch.
type HomeData struct {
	Featured      []model.Product  `json:"featured"`
	Latest        []model.Product  `json:"latest"`
	Categories    []model.Category `json:"categories"`
	TotalProducts int64            `json:"total_products"`
	// AmazonWins counts products where the amazon price undercuts ebay's.
	AmazonWins int64 `json:"amazon_wins"`
}

// ListProducts returns one page of a category's products per the filter.
func ListProducts(db *gorm.DB, categoryID uint, f ListFilter) (ProductPage, error) {
	// fresh chain per finisher; gorm chains must not be reused after Count
	base := func() *gorm.DB {
		return applyFilter(db.Model(&model.Product{}).Where("category_id = ?", categoryID), f)
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return ProductPage{}, err
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	var products []model.Product
	err := applyOrder(base(), f).
		Offset((page - 1) * PageSize).
		Limit(PageSize).
		Find(&products).Error
	if err != nil {
		return ProductPage{}, err
	}

	totalPages := int((total + PageSize - 1) / PageSize)
	return ProductPage{
		Products:   products,
		Page:       page,
		PageSize:   PageSize,
		TotalCount: total,
		TotalPages: totalPages,
	}, nil
}

func applyFilter(q *gorm.DB, f ListFilter) *gorm.DB {
	switch f.Platform {
	case pricing.PlatformAmazon:
		q = q.Where("amazon_available = ?", true)
	case pricing.PlatformEbay:
		q = q.Where("ebay_available = ?", true)
	}
	if f.Sort == SortPopular {
		q = q.Where("is_featured = ?", true)
	}
	return q
}

func applyOrder(q *gorm.DB, f ListFilter) *gorm.DB {
	switch f.Sort {
	case SortPriceLow:
		return q.Order("base_price_cents asc")
	case SortPriceHigh:
		return q.Order("base_price_cents desc")
	default:
		// newest first, also the "popular" order within featured
		return q.Order("created_at desc")
	}
}

// Related returns up to RelatedLimit products from the same category,
// excluding the product itself.
func Related(db *gorm.DB, p *model.Product) ([]model.Product, error) {
	var related []model.Product
	err := db.Where("category_id = ? AND id <> ?", p.CategoryID, p.ID).
		Order("created_at desc").
		Limit(RelatedLimit).
		Find(&related).Error
	return related, err
}

// Home gathers the landing page aggregates.
func Home(db *gorm.DB) (HomeData, error) {
	var data HomeData

	err := db.Where("is_featured = ?", true).
		Order("created_at desc").Limit(6).
		Find(&data.Featured).Error
	if err != nil {
		return HomeData{}, err
	}

	err = db.Order("created_at desc").Limit(8).Find(&data.Latest).Error
	if err != nil {
		return HomeData{}, err
	}

	err = db.Order("name asc").Find(&data.Categories).Error
	if err != nil {
		return HomeData{}, err
	}

	err = db.Model(&model.Product{}).Count(&data.TotalProducts).Error
	if err != nil {
		return HomeData{}, err
	}

	err = db.Model(&model.Product{}).
		Where("amazon_price_cents IS NOT NULL AND ebay_price_cents IS NOT NULL").
		Where("amazon_price_cents < ebay_price_cents").
		Count(&data.AmazonWins).Error
	if err != nil {
		return HomeData{}, err
	}

	return data, nil
}
