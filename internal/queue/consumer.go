package queue

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/segmentio/kafka-go"
	"gorm.io/gorm"

	"smartshop/internal/model"
)

// Consumer persists vote events from Kafka into the vote_events analytics
// table. Redelivered events hit the event_id unique index and are skipped.
type Consumer struct {
	r  *kafka.Reader
	db *gorm.DB
}

func NewConsumer(brokers []string, topic, groupID string, db *gorm.DB) *Consumer {
	return &Consumer{
		r: kafka.NewReader(kafka.ReaderConfig{
			Brokers:  brokers,
			Topic:    topic,
			GroupID:  groupID,
			MinBytes: 1e3,
			MaxBytes: 1e6,
		}),
		db: db,
	}
}

func (c *Consumer) Close() error { return c.r.Close() }

func (c *Consumer) Run(ctx context.Context) {
	for {
		m, err := c.r.ReadMessage(ctx)
		if err != nil {
			return // ctx cancel / broker gone
		}

		var msg VoteMessage
		if err := json.Unmarshal(m.Value, &msg); err != nil {
			log.Printf("vote consumer unmarshal: %v", err)
			continue
		}
		if err := msg.Validate(); err != nil {
			log.Printf("vote consumer invalid event: %v", err)
			continue
		}

		if err := persistEvent(c.db, msg); err != nil {
			log.Printf("vote consumer db create: %v", err)
			continue
		}
	}
}

// persistEvent writes one vote event. A duplicate event_id means the
// delivery was already processed and is silently skipped.
func persistEvent(db *gorm.DB, msg VoteMessage) error {
	event := &model.VoteEvent{
		EventID:   msg.EventID,
		ProductID: msg.ProductID,
		Platform:  msg.Platform,
		IPAddress: msg.IPAddress,
		VotedAt:   msg.VotedAt,
	}
	if err := db.Create(event).Error; err != nil {
		if errorsLikeUnique(err) {
			return nil
		}
		return err
	}
	return nil
}

func errorsLikeUnique(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "UNIQUE") || strings.Contains(s, "unique")
}
