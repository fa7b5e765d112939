package queue

import (
	"fmt"
	"time"

	"smartshop/internal/pricing"
)

// VoteMessage is the vote event carried through the outbox stream and Kafka.
type VoteMessage struct {
	EventID   string           `json:"event_id"`
	ProductID uint             `json:"product_id"`
	Platform  pricing.Platform `json:"platform"`
	IPAddress string           `json:"ip_address"`
	VotedAt   time.Time        `json:"voted_at"`
}

// Validate does minimal field checks so the consumer never processes
// malformed events.
func (m VoteMessage) Validate() error {
	if m.EventID == "" {
		return fmt.Errorf("event_id is required")
	}
	if m.ProductID == 0 {
		return fmt.Errorf("product_id is required")
	}
	if !m.Platform.Valid() {
		return fmt.Errorf("platform %q is not valid", m.Platform)
	}
	if m.IPAddress == "" {
		return fmt.Errorf("ip_address is required")
	}
	if m.VotedAt.IsZero() {
		return fmt.Errorf("voted_at is required")
	}
	return nil
}
