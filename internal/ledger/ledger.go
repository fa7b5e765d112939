// Package ledger owns the append-only community vote set and its aggregates.
// Dedup relies on the (product_id, ip_address) unique index: concurrent votes
// from one address race on the insert and the storage layer lets exactly one
// through; the losers are reported as AlreadyVoted, never as faults.
package ledger

import (
	"strings"

	"gorm.io/gorm"

	"smartshop/internal/model"
	"smartshop/internal/pricing"
)

// VoteOutcome is the result of a vote submission.
type VoteOutcome int

const (
	// Recorded means a new ledger entry was created for this (product, address).
	Recorded VoteOutcome = iota
	// AlreadyVoted means the address had voted on this product before;
	// the existing entry is untouched (first vote is sticky).
	AlreadyVoted
)

// VoteStats is the read model consumed by the presentation layer.
// Percentages are omitted entirely when there are no votes.
type VoteStats struct {
	Amazon        int64    `json:"amazon"`
	Ebay          int64    `json:"ebay"`
	Total         int64    `json:"total"`
	AmazonPercent *float64 `json:"amazon_percent,omitempty"`
	EbayPercent   *float64 `json:"ebay_percent,omitempty"`
}

// RecordVote atomically inserts a vote for (productID, addr). An unrecognized
// platform yields ErrInvalidPlatform and no entry. A unique-index conflict is
// the expected repeat/race outcome and maps to AlreadyVoted.
func RecordVote(db *gorm.DB, productID uint, platform pricing.Platform, addr string) (VoteOutcome, error) {
	if !platform.Valid() {
		return 0, pricing.ErrInvalidPlatform
	}

	vote := &model.ComparisonVote{
		ProductID: productID,
		Platform:  platform,
		IPAddress: addr,
	}
	if err := db.Create(vote).Error; err != nil {
		if isUniqueViolation(err) {
			return AlreadyVoted, nil
		}
		return 0, err
	}
	return Recorded, nil
}

// AggregateVotes groups the product's ledger entries by platform.
func AggregateVotes(db *gorm.DB, productID uint) (VoteStats, error) {
	type row struct {
		Platform pricing.Platform
		Count    int64
	}
	var rows []row
	err := db.Model(&model.ComparisonVote{}).
		Select("platform, count(*) as count").
		Where("product_id = ?", productID).
		Group("platform").
		Scan(&rows).Error
	if err != nil {
		return VoteStats{}, err
	}

	var amazon, ebay int64
	for _, r := range rows {
		switch r.Platform {
		case pricing.PlatformAmazon:
			amazon = r.Count
		case pricing.PlatformEbay:
			ebay = r.Count
		}
	}
	return StatsFromCounts(amazon, ebay), nil
}

// StatsFromCounts builds the read model from raw per-platform counts.
// Also used when the counts come from the Redis cache instead of the DB.
func StatsFromCounts(amazon, ebay int64) VoteStats {
	stats := VoteStats{Amazon: amazon, Ebay: ebay, Total: amazon + ebay}
	if stats.Total > 0 {
		ap := float64(stats.Amazon) / float64(stats.Total) * 100
		ep := float64(stats.Ebay) / float64(stats.Total) * 100
		stats.AmazonPercent = &ap
		stats.EbayPercent = &ep
	}
	return stats
}

// isUniqueViolation matches unique-constraint errors across sqlite builds.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "UNIQUE") || strings.Contains(s, "unique")
}
