package identity

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

const sessionKeyPrefix = "identity:session:"

// SessionCache memoizes token→user-id for already-verified credentials so a
// hot client does not pay verification plus reconciliation on every request.
// Entries are short-lived; nothing here is a source of truth.
type SessionCache struct {
	rdb *redis.Client
	ttl time.Duration
	log *slog.Logger
}

func NewSessionCache(rdb *redis.Client, ttl time.Duration, log *slog.Logger) *SessionCache {
	return &SessionCache{rdb: rdb, ttl: ttl, log: log}
}

func sessionKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return sessionKeyPrefix + hex.EncodeToString(sum[:])
}

func (c *SessionCache) Get(ctx context.Context, token string) (uint, bool) {
	val, err := c.rdb.Get(ctx, sessionKey(token)).Result()
	if err == redis.Nil {
		return 0, false
	}
	if err != nil {
		c.log.Warn("session cache read failed", "err", err)
		return 0, false
	}
	id, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func (c *SessionCache) Put(ctx context.Context, token string, userID uint) {
	if err := c.rdb.Set(ctx, sessionKey(token), strconv.FormatUint(uint64(userID), 10), c.ttl).Err(); err != nil {
		c.log.Warn("session cache write failed", "err", err)
	}
}
