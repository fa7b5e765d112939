package router

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	rd "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"smartshop/internal/config"
	"smartshop/internal/ledger"
	"smartshop/internal/model"
	"smartshop/internal/pricing"
	"smartshop/internal/queue"
	"smartshop/pkg/redisx"
)

// voteGuardTTL bounds how long the Redis fast-path remembers an address.
// After expiry the DB unique index still rejects repeats.
const voteGuardTTL = 24 * time.Hour

// submitVote records a visitor's platform pick.
// Flow:
// 1. validate platform and resolve the product
// 2. best-effort Redis guard to skip the DB round trip on obvious repeats
// 3. constrained insert into the ledger (the actual dedup)
// 4. on success: append the analytics event to the outbox, refresh the
//    stats cache, respond with updated stats
// The voting address comes from the transport, never from the client body.
func submitVote(db *gorm.DB, rdb *rd.Client, cfg config.AppConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, ok := parseProductID(c)
		if !ok {
			return
		}

		var req struct {
			Platform string `json:"platform" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"code": 400, "msg": err.Error()})
			return
		}
		platform, err := pricing.ParsePlatform(req.Platform)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"code": 400, "msg": "invalid platform"})
			return
		}

		var product model.Product
		if err := db.First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"code": 404, "msg": "product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"code": 500, "msg": err.Error()})
			return
		}

		addr := c.ClientIP()
		token := uuid.New().String()

		// Guard failures fall through to the DB; only a held guard
		// short-circuits.
		guarded, guardErr := redisx.AcquireVoteGuard(c.Request.Context(), rdb, productID, addr, token, voteGuardTTL)
		if guardErr == nil && !guarded {
			c.JSON(http.StatusBadRequest, gin.H{"code": 400, "msg": "already voted"})
			return
		}

		outcome, err := ledger.RecordVote(db, productID, platform, addr)
		if err != nil {
			if guardErr == nil {
				// Let the visitor retry after a server-side failure.
				_ = redisx.ReleaseVoteGuardIfMatch(c.Request.Context(), rdb, productID, addr, token)
			}
			c.JSON(http.StatusInternalServerError, gin.H{"code": 500, "msg": err.Error()})
			return
		}
		if outcome == ledger.AlreadyVoted {
			c.JSON(http.StatusBadRequest, gin.H{"code": 400, "msg": "already voted"})
			return
		}

		// Analytics is best-effort: a full outbox never fails the vote.
		msg := queue.VoteMessage{
			EventID:   token,
			ProductID: productID,
			Platform:  platform,
			IPAddress: addr,
			VotedAt:   time.Now().UTC(),
		}
		if err := queue.AppendVoteEvent(c.Request.Context(), rdb, cfg.VoteEventStream, msg); err != nil {
			log.Printf("vote outbox append: %v", err)
		}

		stats, err := ledger.AggregateVotes(db, productID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"code": 500, "msg": err.Error()})
			return
		}
		if err := redisx.PutVoteStats(c.Request.Context(), rdb, productID,
			redisx.CachedStats{Amazon: stats.Amazon, Ebay: stats.Ebay}, cfg.StatsCacheTTL); err != nil {
			log.Printf("vote stats cache put: %v", err)
		}

		c.JSON(http.StatusOK, gin.H{"code": 0, "data": gin.H{
			"recorded":   true,
			"platform":   platform,
			"vote_stats": stats,
		}})
	}
}

// voteStats serves a product's aggregate on its own endpoint.
func voteStats(db *gorm.DB, rdb *rd.Client, statsTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, ok := parseProductID(c)
		if !ok {
			return
		}

		var product model.Product
		if err := db.First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"code": 404, "msg": "product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"code": 500, "msg": err.Error()})
			return
		}

		stats, err := loadVoteStats(c, db, rdb, productID, statsTTL)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"code": 500, "msg": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"code": 0, "data": stats})
	}
}

// loadVoteStats reads the aggregate from the cache when possible and falls
// back to the ledger, repopulating the cache on a miss. Cache errors degrade
// to the DB.
func loadVoteStats(c *gin.Context, db *gorm.DB, rdb *rd.Client, productID uint, ttl time.Duration) (ledger.VoteStats, error) {
	cached, found, err := redisx.GetVoteStats(c.Request.Context(), rdb, productID)
	if err == nil && found {
		return ledger.StatsFromCounts(cached.Amazon, cached.Ebay), nil
	}

	stats, err := ledger.AggregateVotes(db, productID)
	if err != nil {
		return ledger.VoteStats{}, err
	}
	if err := redisx.PutVoteStats(c.Request.Context(), rdb, productID,
		redisx.CachedStats{Amazon: stats.Amazon, Ebay: stats.Ebay}, ttl); err != nil {
		log.Printf("vote stats cache put: %v", err)
	}
	return stats, nil
}
