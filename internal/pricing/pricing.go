package pricing

import "math"

// Quote is one platform's offer for a product. Money is integer cents.
// A missing price (nil) means the platform has no current offer.
type Quote struct {
	PriceCents    *int64 `json:"price_cents"`
	ShippingCents int64  `json:"shipping_cents"`
	Available     bool   `json:"available"`
}

// Total returns price + shipping. Only meaningful when the price is present.
func (q Quote) Total() int64 {
	if q.PriceCents == nil {
		return 0
	}
	return *q.PriceCents + q.ShippingCents
}

// priced reports whether the quote can compete for best price.
func (q Quote) priced() bool {
	return q.Available && q.PriceCents != nil
}

// Winner describes the platform with the lowest landed total.
type Winner struct {
	Platform      Platform `json:"platform"`
	PriceCents    int64    `json:"price_cents"`
	ShippingCents int64    `json:"shipping_cents"`
	TotalCents    int64    `json:"total_cents"`
}

// Diff describes how far apart the two platform totals are.
type Diff struct {
	DifferenceCents int64    `json:"difference_cents"`
	Percentage      float64  `json:"percentage"`
	Cheaper         Platform `json:"cheaper"`
}

// BestPrice picks the cheapest available, priced quote by total (price + shipping).
// Exact ties go to Amazon: candidates are scanned in amazon, ebay order and a later
// candidate only wins with a strictly lower total. Returns nil when neither quote
// is a candidate.
func BestPrice(amazon, ebay Quote) *Winner {
	var best *Winner
	for _, c := range []struct {
		platform Platform
		quote    Quote
	}{
		{PlatformAmazon, amazon},
		{PlatformEbay, ebay},
	} {
		if !c.quote.priced() {
			continue
		}
		total := c.quote.Total()
		if best != nil && total >= best.TotalCents {
			continue
		}
		best = &Winner{
			Platform:      c.platform,
			PriceCents:    *c.quote.PriceCents,
			ShippingCents: c.quote.ShippingCents,
			TotalCents:    total,
		}
	}
	return best
}

// PriceDifference compares the two landed totals. Both prices must be present;
// availability is intentionally ignored here (a listed price still tells the
// visitor how far apart the platforms are, even while out of stock). When the
// totals are exactly equal Cheaper resolves to eBay via the strict comparison.
// Returns nil when either price is missing.
func PriceDifference(amazon, ebay Quote) *Diff {
	if amazon.PriceCents == nil || ebay.PriceCents == nil {
		return nil
	}
	amazonTotal := amazon.Total()
	ebayTotal := ebay.Total()

	diff := amazonTotal - ebayTotal
	if diff < 0 {
		diff = -diff
	}
	minTotal := amazonTotal
	if ebayTotal < minTotal {
		minTotal = ebayTotal
	}

	var pct float64
	if minTotal > 0 {
		pct = round1(float64(diff) / float64(minTotal) * 100)
	}

	cheaper := PlatformEbay
	if amazonTotal < ebayTotal {
		cheaper = PlatformAmazon
	}

	return &Diff{
		DifferenceCents: diff,
		Percentage:      pct,
		Cheaper:         cheaper,
	}
}

// round1 rounds to one decimal place.
func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
