package queue

import (
	"context"
	"strconv"
	"time"

	rd "github.com/redis/go-redis/v9"
)

// AppendVoteEvent writes the event to the Redis Stream outbox. The vote
// handler calls this after a recorded vote; the relay forwards entries to
// Kafka out of band, so a slow broker never blocks a request.
func AppendVoteEvent(ctx context.Context, rdb *rd.Client, stream string, msg VoteMessage) error {
	return rdb.XAdd(ctx, &rd.XAddArgs{
		Stream: stream,
		Values: map[string]interface{}{
			"event_id":   msg.EventID,
			"product_id": strconv.FormatUint(uint64(msg.ProductID), 10),
			"platform":   string(msg.Platform),
			"ip_address": msg.IPAddress,
			"voted_at":   strconv.FormatInt(msg.VotedAt.Unix(), 10),
		},
	}).Err()
}

// voteMessageFromUnix rebuilds the timestamp from the stream encoding.
func voteMessageFromUnix(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}
