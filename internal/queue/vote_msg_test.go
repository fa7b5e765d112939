package queue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartshop/internal/pricing"
)

func validMessage() VoteMessage {
	return VoteMessage{
		EventID:   "4f3a9d2e-0000-0000-0000-000000000001",
		ProductID: 7,
		Platform:  pricing.PlatformAmazon,
		IPAddress: "203.0.113.9",
		VotedAt:   time.Unix(1756500000, 0).UTC(),
	}
}

func TestVoteMessageValidate(t *testing.T) {
	assert.NoError(t, validMessage().Validate())

	t.Run("missing event id", func(t *testing.T) {
		m := validMessage()
		m.EventID = ""
		assert.Error(t, m.Validate())
	})

	t.Run("missing product", func(t *testing.T) {
		m := validMessage()
		m.ProductID = 0
		assert.Error(t, m.Validate())
	})

	t.Run("bad platform", func(t *testing.T) {
		m := validMessage()
		m.Platform = "paypal"
		assert.Error(t, m.Validate())
	})

	t.Run("missing address", func(t *testing.T) {
		m := validMessage()
		m.IPAddress = ""
		assert.Error(t, m.Validate())
	})

	t.Run("zero timestamp", func(t *testing.T) {
		m := validMessage()
		m.VotedAt = time.Time{}
		assert.Error(t, m.Validate())
	})
}

func TestParseVoteEvent(t *testing.T) {
	t.Run("round trip through stream values", func(t *testing.T) {
		want := validMessage()
		values := map[string]interface{}{
			"event_id":   want.EventID,
			"product_id": "7",
			"platform":   "amazon",
			"ip_address": want.IPAddress,
			"voted_at":   "1756500000",
		}

		got, err := parseVoteEvent(values)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("missing field", func(t *testing.T) {
		_, err := parseVoteEvent(map[string]interface{}{"event_id": "x"})
		assert.Error(t, err)
	})

	t.Run("garbage product id", func(t *testing.T) {
		values := map[string]interface{}{
			"event_id":   "x",
			"product_id": "seven",
			"platform":   "amazon",
			"ip_address": "1.2.3.4",
			"voted_at":   "1756500000",
		}
		_, err := parseVoteEvent(values)
		assert.Error(t, err)
	})

	t.Run("invalid platform fails validation", func(t *testing.T) {
		values := map[string]interface{}{
			"event_id":   "x",
			"product_id": "7",
			"platform":   "walmart",
			"ip_address": "1.2.3.4",
			"voted_at":   "1756500000",
		}
		_, err := parseVoteEvent(values)
		assert.Error(t, err)
	})
}
