package model

import (
	"time"

	"smartshop/internal/pricing"
)

// VoteEvent is the analytics audit row written by the Kafka consumer.
// EventID is the idempotency key: redelivered messages hit the unique index
// and are skipped. The ledger, not this table, is the source of truth for
// vote counts.
type VoteEvent struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	EventID   string           `gorm:"size:64;uniqueIndex;not null" json:"event_id"`
	ProductID uint             `gorm:"not null;index" json:"product_id"`
	Platform  pricing.Platform `gorm:"size:10;not null;index" json:"platform"`
	IPAddress string           `gorm:"size:45;not null" json:"ip_address"`
	VotedAt   time.Time        `gorm:"not null" json:"voted_at"`
}

func (VoteEvent) TableName() string { return "vote_events" }
