package model

import (
	"fmt"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"

	"smartshop/internal/pricing"
)

// Product is a catalog entry compared across Amazon and eBay.
// All money columns are integer cents; a nil price means no current offer.
type Product struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Title            string   `gorm:"size:300;not null" json:"title"`
	Slug             string   `gorm:"size:300;uniqueIndex;not null" json:"slug"`
	CategoryID       uint     `gorm:"not null;index" json:"category_id"`
	Category         Category `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Description      string   `gorm:"type:text" json:"description"`
	ShortDescription string   `gorm:"size:200" json:"short_description"`
	ImageURL         string   `gorm:"size:500" json:"image_url"`

	// BasePriceCents is the operator's reference price, used for list sorting.
	BasePriceCents int64 `gorm:"not null" json:"base_price_cents"`

	AmazonPriceCents    *int64   `json:"amazon_price_cents"`
	AmazonLink          string   `gorm:"size:500" json:"amazon_link"`
	AmazonAvailable     bool     `gorm:"not null;default:true" json:"amazon_available"`
	AmazonRating        *float64 `json:"amazon_rating"`
	AmazonReviews       int      `gorm:"not null;default:0" json:"amazon_reviews"`
	AmazonShippingCents int64    `gorm:"not null;default:0" json:"amazon_shipping_cents"`
	AmazonDeliveryDays  int      `gorm:"not null;default:2" json:"amazon_delivery_days"`

	EbayPriceCents    *int64   `json:"ebay_price_cents"`
	EbayLink          string   `gorm:"size:500" json:"ebay_link"`
	EbayAvailable     bool     `gorm:"not null;default:true" json:"ebay_available"`
	EbayRating        *float64 `json:"ebay_rating"`
	EbayReviews       int      `gorm:"not null;default:0" json:"ebay_reviews"`
	EbayShippingCents int64    `gorm:"not null;default:0" json:"ebay_shipping_cents"`
	EbayDeliveryDays  int      `gorm:"not null;default:5" json:"ebay_delivery_days"`

	IsFeatured bool `gorm:"not null;default:false;index" json:"is_featured"`

	MetaTitle       string `gorm:"size:70" json:"meta_title"`
	MetaDescription string `gorm:"size:160" json:"meta_description"`
	Keywords        string `gorm:"size:200" json:"keywords"`
}

func (Product) TableName() string { return "products" }

// BeforeSave fills the slug and SEO fields from the title when blank.
func (p *Product) BeforeSave(tx *gorm.DB) error {
	if p.Slug == "" {
		p.Slug = Slugify(p.Title)
	}
	if p.MetaTitle == "" {
		p.MetaTitle = truncate(fmt.Sprintf("%s - Amazon vs eBay comparison", p.Title), 70)
	}
	if p.MetaDescription == "" {
		p.MetaDescription = truncate(fmt.Sprintf("Compare %s prices on Amazon and eBay. Find the best deal!", p.Title), 160)
	}
	return nil
}

// AmazonQuote maps the flat amazon columns onto a pricing engine input.
func (p *Product) AmazonQuote() pricing.Quote {
	return pricing.Quote{
		PriceCents:    p.AmazonPriceCents,
		ShippingCents: p.AmazonShippingCents,
		Available:     p.AmazonAvailable,
	}
}

// EbayQuote maps the flat ebay columns onto a pricing engine input.
func (p *Product) EbayQuote() pricing.Quote {
	return pricing.Quote{
		PriceCents:    p.EbayPriceCents,
		ShippingCents: p.EbayShippingCents,
		Available:     p.EbayAvailable,
	}
}

// BestPrice runs the pricing engine over this product's quotes.
func (p *Product) BestPrice() *pricing.Winner {
	return pricing.BestPrice(p.AmazonQuote(), p.EbayQuote())
}

// PriceDifference runs the price gap computation over this product's quotes.
func (p *Product) PriceDifference() *pricing.Diff {
	return pricing.PriceDifference(p.AmazonQuote(), p.EbayQuote())
}

// truncate cuts s to at most max bytes without splitting a multi-byte rune.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
