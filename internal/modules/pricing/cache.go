// README: Redis cache for catalog schedules, shared across API instances.
package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"farefloor/internal/types"
)

const scheduleKeyPrefix = "pricing:schedule:%s"

type Cache struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewCache(redis *redis.Client, ttl time.Duration) *Cache {
	return &Cache{redis: redis, ttl: ttl}
}

// Get returns the cached schedule and whether it was present.
func (c *Cache) Get(ctx context.Context, tenant types.ID) (RateSchedule, bool, error) {
	val, err := c.redis.Get(ctx, scheduleKey(tenant)).Bytes()
	if err == redis.Nil {
		return RateSchedule{}, false, nil
	}
	if err != nil {
		return RateSchedule{}, false, err
	}
	sched, ok := decodeSchedule(val)
	return sched, ok, nil
}

// decodeSchedule reports a corrupt entry (bad JSON or an invalid schedule) as
// a miss; the catalog answer then overwrites it through Set.
func decodeSchedule(raw []byte) (RateSchedule, bool) {
	var sched RateSchedule
	if err := json.Unmarshal(raw, &sched); err != nil {
		return RateSchedule{}, false
	}
	if sched.Validate() != nil {
		return RateSchedule{}, false
	}
	return sched, true
}

func (c *Cache) Set(ctx context.Context, tenant types.ID, sched RateSchedule) error {
	raw, err := json.Marshal(sched)
	if err != nil {
		return err
	}
	return c.redis.Set(ctx, scheduleKey(tenant), raw, c.ttl).Err()
}

func scheduleKey(tenant types.ID) string {
	return fmt.Sprintf(scheduleKeyPrefix, string(tenant))
}
