// Package cache is a tagged key/value cache. Every entry may carry tags, and
// InvalidateTag drops every entry saved under a tag in one call.
//
// Each tag also has a generation shared by every process using the same
// backend. InvalidateTag advances it atomically with the drop, so readers that
// build keys from the current generation never see entries saved under an
// older one, even when those entries were written after the invalidation.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cache miss")

type TaggedCache interface {
	Get(ctx context.Context, key string, value any) error
	Save(ctx context.Context, key string, value any, ttl time.Duration, tags ...string) error
	InvalidateTag(ctx context.Context, tag string) error
	// Generation is 0 for a tag that was never invalidated.
	Generation(ctx context.Context, tag string) (uint64, error)
}

// TagBarbers covers every cached public barber listing.
const TagBarbers = "barbers"

// BuildKey joins parts into a namespaced cache key.
func BuildKey(prefix string, parts ...any) string {
	var b strings.Builder
	b.WriteString(prefix)
	for _, p := range parts {
		b.WriteByte(':')
		b.WriteString(fmt.Sprint(p))
	}
	return b.String()
}
