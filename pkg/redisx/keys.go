package redisx

import "fmt"

// VoteGuardKey marks that an address has (probably) already voted on a product.
// Best-effort fast path; the DB unique index stays authoritative.
func VoteGuardKey(productID uint, addr string) string {
	return fmt.Sprintf("smartshop:vote:guard:%d:%s", productID, addr)
}

// VoteStatsKey caches a product's aggregated vote stats.
func VoteStatsKey(productID uint) string {
	return fmt.Sprintf("smartshop:vote:stats:%d", productID)
}
