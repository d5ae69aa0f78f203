package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	subscriptionStatusKey = "salon:subscription_status:%d"
	// bumped by every Invalidate so a reader can tell its copy went stale
	generationKey = "salon:subscription_status_gen:%d"
	generationTTL = 24 * time.Hour
)

var errStaleGeneration = errors.New("status generation changed")

// StatusCache keeps each company's derived subscription status in Redis so the
// dashboard's usage card does not hit the database on every page load.
type StatusCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStatusCache(client *redis.Client, ttl time.Duration) *StatusCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &StatusCache{client: client, ttl: ttl}
}

// Get decodes the cached status of companyID into dest. A miss reports false with a nil error.
func (c *StatusCache) Get(ctx context.Context, companyID int64, dest interface{}) (bool, error) {
	data, err := c.client.Get(ctx, key(companyID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, err
	}

	if err := json.Unmarshal(data, dest); err != nil {
		// treat a stale or foreign payload as a miss
		c.client.Del(ctx, key(companyID))
		return false, nil
	}
	return true, nil
}

// Generation returns the invalidation counter of companyID. Read it before
// loading the status that will be passed to Set.
func (c *StatusCache) Generation(ctx context.Context, companyID int64) (int64, error) {
	gen, err := c.client.Get(ctx, genKey(companyID)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return gen, err
}

// Set stores status unless companyID was invalidated since generation gen was
// read. It reports whether the entry was written.
func (c *StatusCache) Set(ctx context.Context, companyID, gen int64, status interface{}) (bool, error) {
	data, err := json.Marshal(status)
	if err != nil {
		return false, fmt.Errorf("failed to marshal status: %w", err)
	}

	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, genKey(companyID)).Int64()
		if err != nil && err != redis.Nil {
			return err
		}
		if current != gen {
			return errStaleGeneration
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key(companyID), data, c.ttl)
			return nil
		})
		return err
	}, genKey(companyID))

	if errors.Is(err, errStaleGeneration) || errors.Is(err, redis.TxFailedErr) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Invalidate drops the cached status and moves the generation on, so a read
// that started earlier cannot write its copy back.
func (c *StatusCache) Invalidate(ctx context.Context, companyID int64) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, genKey(companyID))
		pipe.Expire(ctx, genKey(companyID), generationTTL)
		pipe.Del(ctx, key(companyID))
		return nil
	})
	return err
}

func key(companyID int64) string {
	return fmt.Sprintf(subscriptionStatusKey, companyID)
}

func genKey(companyID int64) string {
	return fmt.Sprintf(generationKey, companyID)
}
