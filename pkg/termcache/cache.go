package termcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/membergate/pkg/restriction"
)

// redisClient is the subset of the go-redis API the cache uses. Satisfied
// by *redis.Client.
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// Store is a read-through cache over a restriction.Store. Term restrictions
// change rarely and are read on every gated render, so they are cached with
// a TTL; term-to-content assignments pass straight through because content
// edits must take effect immediately.
//
// Cache failures never fail a lookup. The underlying store is always
// authoritative and errors from Redis are logged and ignored.
type Store struct {
	next   restriction.Store
	client redisClient
	ttl    time.Duration
	prefix string
	log    *slog.Logger
}

// New wraps next with a Redis read-through cache. Panics if next or client
// is nil to fail fast during initialization.
func New(next restriction.Store, client redisClient, opts ...Option) *Store {
	if next == nil {
		panic("termcache: restriction.Store is required")
	}
	if client == nil {
		panic("termcache: redis client is required")
	}

	s := &Store{
		next:   next,
		client: client,
		ttl:    5 * time.Minute,
		prefix: "term_restriction:",
		log:    slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// GetTermsFor delegates directly to the underlying store.
func (s *Store) GetTermsFor(ctx context.Context, contentID int64, taxonomy string) ([]int64, error) {
	return s.next.GetTermsFor(ctx, contentID, taxonomy)
}

// GetTermRestriction serves from cache when possible and falls back to the
// underlying store, populating the cache on the way back. Not-found from
// the underlying store propagates uncached.
func (s *Store) GetTermRestriction(ctx context.Context, termID int64) (*restriction.TermRestriction, error) {
	key := fmt.Sprintf("%s%d", s.prefix, termID)

	cached, err := s.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		var r restriction.TermRestriction
		if jsonErr := json.Unmarshal([]byte(cached), &r); jsonErr == nil {
			return &r, nil
		}
		s.log.WarnContext(ctx, "discarding undecodable cache entry", slog.String("key", key))
	case !errors.Is(err, redis.Nil):
		s.log.WarnContext(ctx, "term restriction cache read failed",
			slog.String("key", key), slog.Any("error", err))
	}

	r, err := s.next.GetTermRestriction(ctx, termID)
	if err != nil {
		return nil, err
	}

	if encoded, jsonErr := json.Marshal(r); jsonErr == nil {
		if setErr := s.client.Set(ctx, key, encoded, s.ttl).Err(); setErr != nil {
			s.log.WarnContext(ctx, "term restriction cache write failed",
				slog.String("key", key), slog.Any("error", setErr))
		}
	}

	return r, nil
}

// Option configures the cache.
type Option func(*Store)

// WithTTL sets how long cached restrictions stay valid.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithKeyPrefix sets the cache key prefix.
func WithKeyPrefix(prefix string) Option {
	return func(s *Store) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// WithLogger sets the cache logger. Nil loggers are ignored.
func WithLogger(log *slog.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}
