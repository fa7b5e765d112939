package catalog

import (
	"errors"

	"smartshop/internal/pricing"
)

// PageSize is the fixed product listing page size.
const PageSize = 12

// RelatedLimit caps the related products block on the detail page.
const RelatedLimit = 4

var (
	ErrBadPlatformFilter = errors.New("unknown platform filter")
	ErrBadSort           = errors.New("unknown sort")
)

// Sort enumerates the supported listing orders.
type Sort string

const (
	SortNewest    Sort = "newest"
	SortPriceLow  Sort = "price_low"
	SortPriceHigh Sort = "price_high"
	// SortPopular narrows the listing to featured products.
	SortPopular Sort = "popular"
)

// ListFilter is the typed query configuration for product listings.
// Zero value: no platform filter, newest first, first page.
type ListFilter struct {
	// Platform, when set, keeps only products available on that platform.
	Platform pricing.Platform
	Sort     Sort
	// Page is 1-based; values below 1 are treated as 1.
	Page int
}

// ParseListFilter validates raw query parameters into a ListFilter.
// Empty strings select the defaults; anything unrecognized is an error
// rather than being silently ignored.
func ParseListFilter(platform, sort string, page int) (ListFilter, error) {
	f := ListFilter{Sort: SortNewest, Page: page}
	if f.Page < 1 {
		f.Page = 1
	}

	if platform != "" {
		p, err := pricing.ParsePlatform(platform)
		if err != nil {
			return ListFilter{}, ErrBadPlatformFilter
		}
		f.Platform = p
	}

	if sort != "" {
		switch Sort(sort) {
		case SortNewest, SortPriceLow, SortPriceHigh, SortPopular:
			f.Sort = Sort(sort)
		default:
			return ListFilter{}, ErrBadSort
		}
	}

	return f, nil
}
