// Package cache memoizes resolution answers in Redis. Keys are geohash
// cells, so nearby queries collapse onto one entry and a map pin dragged a
// few meters does not trigger another remote round trip. The cache is
// strictly optional: a nil *ResolutionCache is valid and does nothing.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"geozone/geo"
	"geozone/internal/env"
	"geozone/models"

	geohash "github.com/TomiHiltunen/geohash-golang"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix        = "georesolve:"
	defaultTTL       = 10 * time.Minute
	defaultPrecision = 7 // geohash cells of roughly 150m, tight enough for zone borders
)

// Entry is one cached resolution answer. A nil Zone records a legitimate
// no-coverage answer so repeated misses stay cheap too.
type Entry struct {
	Zone   *models.Zone  `json:"zone"`
	Source models.Source `json:"source"`
}

// ResolutionCache wraps a Redis client with the encoding and keying rules of
// the resolver.
type ResolutionCache struct {
	rdb       *redis.Client
	ttl       time.Duration
	precision int
}

// New builds a cache over the given client. Nil clients yield a nil cache,
// which every method tolerates.
func New(rdb *redis.Client, ttl time.Duration, precision int) *ResolutionCache {
	if rdb == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if precision < 1 || precision > 12 {
		precision = defaultPrecision
	}
	return &ResolutionCache{rdb: rdb, ttl: ttl, precision: precision}
}

// NewFromEnv builds the cache from REDIS_HOST, REDIS_PORT, REDIS_PASS and
// REDIS_DB, honoring RESOLVE_CACHE_TTL and RESOLVE_GEOHASH_PRECISION.
// Without REDIS_HOST the cache is disabled and nil is returned.
func NewFromEnv() *ResolutionCache {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", host, env.GetEnv("REDIS_PORT", "6379")),
		Password: os.Getenv("REDIS_PASS"),
		DB:       env.GetInt("REDIS_DB", 0),
	})
	return New(rdb,
		env.GetDuration("RESOLVE_CACHE_TTL", defaultTTL),
		env.GetInt("RESOLVE_GEOHASH_PRECISION", defaultPrecision))
}

// Key returns the cache key of the geohash cell containing the point.
func (c *ResolutionCache) Key(p geo.Point) string {
	return keyPrefix + geohash.EncodeWithPrecision(p.Lat, p.Lon, c.precision)
}

// Get returns the cached answer for the point's cell. Any Redis failure is
// logged and reported as a miss; the cache must never fail a resolution.
func (c *ResolutionCache) Get(ctx context.Context, p geo.Point) (Entry, bool) {
	if c == nil {
		return Entry{}, false
	}
	raw, err := c.rdb.Get(ctx, c.Key(p)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("Resolution cache read failed: %v", err)
		}
		return Entry{}, false
	}
	var e Entry
	if err := json.Unmarshal(raw, &e); err != nil {
		log.Printf("Resolution cache entry undecodable, dropping: %v", err)
		return Entry{}, false
	}
	return e, true
}

// Put stores the answer for the point's cell under the configured TTL.
func (c *ResolutionCache) Put(ctx context.Context, p geo.Point, e Entry) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(e)
	if err != nil {
		log.Printf("Resolution cache encode failed: %v", err)
		return
	}
	if err := c.rdb.Set(ctx, c.Key(p), raw, c.ttl).Err(); err != nil {
		log.Printf("Resolution cache write failed: %v", err)
	}
}
