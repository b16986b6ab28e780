package lib

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"bookingapi/src/logger"

	"github.com/redis/go-redis/v9"
)

func NewRedisClient(redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	return redis.NewClient(opt), nil
}

// CachedPlaces is a read-through cache in front of a PlacesProvider. Failed
// lookups are not cached and cache errors never fail a lookup.
type CachedPlaces struct {
	next PlacesProvider
	rdb  *redis.Client
	ttl  time.Duration
	log  logger.Logger
}

func NewCachedPlaces(next PlacesProvider, rdb *redis.Client, ttl time.Duration, log logger.Logger) *CachedPlaces {
	return &CachedPlaces{next: next, rdb: rdb, ttl: ttl, log: log}
}

func placeCacheKey(placeID string) string {
	return "place:" + placeID
}

func (c *CachedPlaces) PlaceDetails(ctx context.Context, placeID string) (*PlaceDetails, error) {
	key := placeCacheKey(placeID)
	val, err := c.rdb.Get(ctx, key).Result()
	switch {
	case err == nil:
		var details PlaceDetails
		if err := json.Unmarshal([]byte(val), &details); err == nil {
			return &details, nil
		}
		c.log.Warn("discarding unreadable cached place", "key", key)
	case !errors.Is(err, redis.Nil):
		c.log.Warn("place cache read failed", "key", key, "error", err)
	}

	details, err := c.next.PlaceDetails(ctx, placeID)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(details)
	if err != nil {
		return details, nil
	}
	if err := c.rdb.Set(ctx, key, string(payload), c.ttl).Err(); err != nil {
		c.log.Warn("place cache write failed", "key", key, "error", err)
	}
	return details, nil
}
