package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"
)

const (
	tagSetPrefix = "tag:"
	tagGenPrefix = "gen:"
)

// invalidateScript advances the generation and drops the tag members in one
// atomic step. KEYS[1] is the tag set, KEYS[2] the generation counter.
var invalidateScript = redis.NewScript(`
local gen = redis.call('INCR', KEYS[2])
local members = redis.call('SMEMBERS', KEYS[1])
for _, key in ipairs(members) do
	redis.call('DEL', key)
end
redis.call('DEL', KEYS[1])
return gen
`)

type redisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) TaggedCache {
	return &redisCache{client: client}
}

func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	log.Info().Str("addr", addr).Int("db", db).Msg("connected to redis")
	return client, nil
}

func (c *redisCache) Get(ctx context.Context, key string, value any) error {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrMiss
	}
	if err != nil {
		return fmt.Errorf("get cache value: %w", err)
	}

	if err := json.Unmarshal(raw, value); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to unmarshal cache value")
		return fmt.Errorf("unmarshal cache value: %w", err)
	}
	return nil
}

// Save writes the value and registers key in each tag set in one MULTI block.
// Tag sets live as long as their newest member; a non-positive ttl stores the
// entry without expiry and makes its tag sets persistent too.
func (c *redisCache) Save(ctx context.Context, key string, value any, ttl time.Duration, tags ...string) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal cache value: %w", err)
	}

	_, err = c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, key, raw, ttl)
		for _, tag := range tags {
			pipe.SAdd(ctx, tagSetPrefix+tag, key)
			if ttl > 0 {
				pipe.Expire(ctx, tagSetPrefix+tag, ttl)
			} else {
				pipe.Persist(ctx, tagSetPrefix+tag)
			}
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to set cache value")
		return fmt.Errorf("set cache value: %w", err)
	}
	return nil
}

func (c *redisCache) InvalidateTag(ctx context.Context, tag string) error {
	gen, err := invalidateScript.Run(ctx, c.client, []string{tagSetPrefix + tag, tagGenPrefix + tag}).Int64()
	if err != nil {
		return fmt.Errorf("invalidate tag %q: %w", tag, err)
	}

	log.Debug().Str("tag", tag).Int64("generation", gen).Msg("cache tag invalidated")
	return nil
}

func (c *redisCache) Generation(ctx context.Context, tag string) (uint64, error) {
	gen, err := c.client.Get(ctx, tagGenPrefix+tag).Uint64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read generation of tag %q: %w", tag, err)
	}
	return gen, nil
}
