package barber

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/BruksfildServices01/barbershop-booking/internal/cache"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/barber"
	"github.com/BruksfildServices01/barbershop-booking/internal/metrics"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

const cacheListBarbers = "barbers:public"

// ListPublicBarbers serves the public barber listing through the tagged cache.
// Keys embed the generation of the barbers tag read before the database, so a
// listing computed before another process invalidated the tag is saved under
// a key nobody reads. Concurrent misses for the same key share one database
// read.
type ListPublicBarbers struct {
	barbers     domain.Repository
	cache       cache.TaggedCache
	invalidator *cache.Invalidator
	ttl         time.Duration
	metrics     *metrics.Metrics

	group singleflight.Group
}

func NewListPublicBarbers(
	barbers domain.Repository,
	c cache.TaggedCache,
	invalidator *cache.Invalidator,
	ttl time.Duration,
	m *metrics.Metrics,
) *ListPublicBarbers {
	return &ListPublicBarbers{
		barbers:     barbers,
		cache:       c,
		invalidator: invalidator,
		ttl:         ttl,
		metrics:     m,
	}
}

func listingKey(filter domain.ListFilter, gen uint64) string {
	if filter.Featured == nil {
		return cache.BuildKey(cacheListBarbers, gen, "all")
	}
	return cache.BuildKey(cacheListBarbers, gen, "featured", *filter.Featured)
}

func (uc *ListPublicBarbers) Execute(
	ctx context.Context,
	filter domain.ListFilter,
) ([]models.Barber, error) {

	if !uc.invalidator.Usable(ctx, cache.TagBarbers) {
		uc.metrics.CacheResult("bypass")
		return uc.barbers.ListActiveBarbers(ctx, filter)
	}

	gen, err := uc.cache.Generation(ctx, cache.TagBarbers)
	if err != nil {
		log.Warn().Err(err).Msg("cache generation unavailable, falling back to database")
		uc.metrics.CacheResult("bypass")
		return uc.barbers.ListActiveBarbers(ctx, filter)
	}

	key := listingKey(filter, gen)

	var out []models.Barber
	err = uc.cache.Get(ctx, key, &out)
	if err == nil {
		uc.metrics.CacheResult("hit")
		return out, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		log.Warn().Err(err).Str("key", key).Msg("cache read failed, falling back to database")
	}
	uc.metrics.CacheResult("miss")

	v, err, _ := uc.group.Do(key, func() (any, error) {
		// shared by every waiter, so not tied to this caller's cancellation
		ctx := context.WithoutCancel(ctx)

		list, err := uc.barbers.ListActiveBarbers(ctx, filter)
		if err != nil {
			return nil, err
		}

		if err := uc.cache.Save(ctx, key, list, uc.ttl, cache.TagBarbers); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("cache write failed")
		}
		return list, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]models.Barber), nil
}
