package cache

import (
	"context"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/barbershop-booking/internal/metrics"
)

// Invalidator drops tags with bounded retries. A tag whose invalidation
// finally fails is marked dirty; Usable keeps this process's readers off the
// cache for that tag until an invalidation succeeds. Other processes are
// covered by the shared generation once any invalidation lands.
type Invalidator struct {
	cache       TaggedCache
	metrics     *metrics.Metrics
	maxAttempts int
	newBackOff  func() backoff.BackOff

	mu    sync.Mutex
	dirty map[string]struct{}
}

func NewInvalidator(c TaggedCache, m *metrics.Metrics) *Invalidator {
	return &Invalidator{
		cache:       c,
		metrics:     m,
		maxAttempts: 3,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 50 * time.Millisecond
			b.MaxInterval = time.Second
			return b
		},
		dirty: map[string]struct{}{},
	}
}

// WithBackOff replaces the retry schedule.
func (i *Invalidator) WithBackOff(maxAttempts int, newBackOff func() backoff.BackOff) *Invalidator {
	i.maxAttempts = maxAttempts
	i.newBackOff = newBackOff
	return i
}

// Invalidate runs even if ctx is cancelled afterwards: it is called after a
// commit and must not be abandoned with the request.
func (i *Invalidator) Invalidate(ctx context.Context, tag string) error {
	ctx = context.WithoutCancel(ctx)

	attempt := 0
	err := backoff.Retry(func() error {
		attempt++
		err := i.cache.InvalidateTag(ctx, tag)
		if err != nil {
			log.Warn().Err(err).Str("tag", tag).Int("attempt", attempt).Msg("cache invalidation failed")
		}
		return err
	}, backoff.WithMaxRetries(i.newBackOff(), uint64(i.maxAttempts-1)))

	if err != nil {
		i.markDirty(tag)
		i.metrics.InvalidationFailed(tag)
		log.Error().Err(err).Str("tag", tag).Msg("cache invalidation gave up; bypassing cache for tag")
		return err
	}

	i.clearDirty(tag)
	return nil
}

// Usable reports whether readers may use entries under tag. A dirty tag gets
// one more invalidation attempt first.
func (i *Invalidator) Usable(ctx context.Context, tag string) bool {
	if !i.IsDirty(tag) {
		return true
	}
	if err := i.cache.InvalidateTag(ctx, tag); err != nil {
		return false
	}
	i.clearDirty(tag)
	log.Info().Str("tag", tag).Msg("dirty cache tag recovered")
	return true
}

// Heal retries dirty tags every interval until ctx is done, so a recovered
// backend gets its generation advanced without waiting for a reader.
func (i *Invalidator) Heal(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, tag := range i.dirtyTags() {
				i.Usable(ctx, tag)
			}
		}
	}
}

func (i *Invalidator) dirtyTags() []string {
	i.mu.Lock()
	defer i.mu.Unlock()

	out := make([]string, 0, len(i.dirty))
	for tag := range i.dirty {
		out = append(out, tag)
	}
	return out
}

func (i *Invalidator) IsDirty(tag string) bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	_, ok := i.dirty[tag]
	return ok
}

func (i *Invalidator) markDirty(tag string) {
	i.mu.Lock()
	i.dirty[tag] = struct{}{}
	i.mu.Unlock()
}

func (i *Invalidator) clearDirty(tag string) {
	i.mu.Lock()
	delete(i.dirty, tag)
	i.mu.Unlock()
}
