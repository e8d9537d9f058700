package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// advanceScript stores max(current, seq) and refreshes the TTL.
var advanceScript = redis.NewScript(`
local cur = tonumber(redis.call('GET', KEYS[1]) or '0')
local seq = tonumber(ARGV[1])
if seq > cur then
  redis.call('SET', KEYS[1], ARGV[1])
  cur = seq
end
local ttl = tonumber(ARGV[2])
if ttl > 0 then
  redis.call('PEXPIRE', KEYS[1], ttl)
end
return cur
`)

// SequenceTracker is a telemetry.SequenceTracker shared by every replica.
type SequenceTracker struct {
	rdb redis.UniversalClient
	ttl time.Duration
}

func NewSequenceTracker(rdb redis.UniversalClient, ttl time.Duration) *SequenceTracker {
	return &SequenceTracker{rdb: rdb, ttl: ttl}
}

func (t *SequenceTracker) Advance(ctx context.Context, key string, seq int64) (int64, error) {
	latest, err := advanceScript.Run(ctx, t.rdb, []string{key}, seq, t.ttl.Milliseconds()).Int64()
	if err != nil {
		return 0, fmt.Errorf("advance sequence %s: %w", key, err)
	}
	return latest, nil
}

func (t *SequenceTracker) Latest(ctx context.Context, key string) (int64, error) {
	v, err := t.rdb.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read sequence %s: %w", key, err)
	}
	return v, nil
}
