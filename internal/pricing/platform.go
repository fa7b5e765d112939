package pricing

import "errors"

// ErrInvalidPlatform is returned when a platform value is outside the fixed set.
var ErrInvalidPlatform = errors.New("invalid platform")

// Platform is one of the two retail platforms products are compared across.
type Platform string

const (
	PlatformAmazon Platform = "amazon"
	PlatformEbay   Platform = "ebay"
)

// ParsePlatform validates a raw platform value (e.g. from a request body).
func ParsePlatform(s string) (Platform, error) {
	switch Platform(s) {
	case PlatformAmazon:
		return PlatformAmazon, nil
	case PlatformEbay:
		return PlatformEbay, nil
	default:
		return "", ErrInvalidPlatform
	}
}

// Valid reports whether p is one of the known platforms.
func (p Platform) Valid() bool {
	return p == PlatformAmazon || p == PlatformEbay
}
