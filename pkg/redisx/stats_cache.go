package redisx

import (
	"context"
	"strconv"
	"time"

	rd "github.com/redis/go-redis/v9"
)

// CachedStats mirrors the vote aggregate in a Redis hash so hot detail pages
// skip the GROUP BY. Percentages are recomputed by the reader from counts.
type CachedStats struct {
	Amazon int64
	Ebay   int64
}

// GetVoteStats reads the cached aggregate. found=false on miss.
func GetVoteStats(ctx context.Context, rdb *rd.Client, productID uint) (CachedStats, bool, error) {
	m, err := rdb.HGetAll(ctx, VoteStatsKey(productID)).Result()
	if err != nil {
		return CachedStats{}, false, err
	}
	if len(m) == 0 {
		return CachedStats{}, false, nil
	}

	amazon, err := strconv.ParseInt(m["amazon"], 10, 64)
	if err != nil {
		return CachedStats{}, false, nil
	}
	ebay, err := strconv.ParseInt(m["ebay"], 10, 64)
	if err != nil {
		return CachedStats{}, false, nil
	}
	return CachedStats{Amazon: amazon, Ebay: ebay}, true, nil
}

// PutVoteStats writes the aggregate and refreshes the TTL in one pipeline.
func PutVoteStats(ctx context.Context, rdb *rd.Client, productID uint, stats CachedStats, ttl time.Duration) error {
	key := VoteStatsKey(productID)
	pipe := rdb.TxPipeline()
	pipe.HSet(ctx, key,
		"amazon", strconv.FormatInt(stats.Amazon, 10),
		"ebay", strconv.FormatInt(stats.Ebay, 10),
	)
	if ttl > 0 {
		pipe.Expire(ctx, key, ttl)
	}
	_, err := pipe.Exec(ctx)
	return err
}
