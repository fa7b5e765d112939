package redisx

import (
	"context"
	"time"

	rd "github.com/redis/go-redis/v9"
)

// luaReleaseGuardIfMatch deletes the guard only while it still holds our
// token, so a release never clobbers a guard taken by a later request.
const luaReleaseGuardIfMatch = `
local guardKey = KEYS[1]
local token = ARGV[1]
if redis.call('GET', guardKey) == token then
  return redis.call('DEL', guardKey)
end
return 0
`

// AcquireVoteGuard takes the per-(product, address) guard via SETNX.
// Returns false when the guard is already held, which almost always means
// the address has voted before; callers use this to short-circuit the DB
// round trip, not to decide correctness.
func AcquireVoteGuard(ctx context.Context, rdb *rd.Client, productID uint, addr, token string, ttl time.Duration) (bool, error) {
	return rdb.SetNX(ctx, VoteGuardKey(productID, addr), token, ttl).Result()
}

// ReleaseVoteGuardIfMatch frees the guard after a failed insert so the
// visitor can retry. No-op when the guard holds a different token.
func ReleaseVoteGuardIfMatch(ctx context.Context, rdb *rd.Client, productID uint, addr, token string) error {
	_, err := rdb.Eval(ctx, luaReleaseGuardIfMatch, []string{VoteGuardKey(productID, addr)}, token).Int()
	return err
}
