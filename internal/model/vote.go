package model

import (
	"time"

	"smartshop/internal/pricing"
)

// ComparisonVote is one visitor's pick of their preferred platform for a product.
// The composite unique index is the dedup guarantee: at most one row per
// (product, address), enforced by the storage layer, never by application locks.
// Rows are append-only; the first vote from an address is sticky.
type ComparisonVote struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	ProductID uint             `gorm:"not null;uniqueIndex:idx_votes_product_ip" json:"product_id"`
	Product   Product          `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Platform  pricing.Platform `gorm:"size:10;not null" json:"platform"`
	IPAddress string           `gorm:"size:45;not null;uniqueIndex:idx_votes_product_ip" json:"ip_address"`
}

func (ComparisonVote) TableName() string { return "comparison_votes" }
