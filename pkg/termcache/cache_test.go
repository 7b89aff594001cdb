package termcache_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/membergate/pkg/restriction"
	"github.com/dmitrymomot/membergate/pkg/termcache"
)

type fakeRedis struct {
	values map[string]string
	getErr error
	setErr error

	gets int
	sets int
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{values: make(map[string]string)}
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	f.gets++
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	v, ok := f.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value any, _ time.Duration) *redis.StatusCmd {
	f.sets++
	if f.setErr != nil {
		return redis.NewStatusResult("", f.setErr)
	}
	f.values[key] = string(value.([]byte))
	return redis.NewStatusResult("OK", nil)
}

type countingStore struct {
	inner *restriction.MemoryStore
	reads int
}

func (c *countingStore) GetTermsFor(ctx context.Context, contentID int64, taxonomy string) ([]int64, error) {
	return c.inner.GetTermsFor(ctx, contentID, taxonomy)
}

func (c *countingStore) GetTermRestriction(ctx context.Context, termID int64) (*restriction.TermRestriction, error) {
	c.reads++
	return c.inner.GetTermRestriction(ctx, termID)
}

func seededStore() *countingStore {
	inner := restriction.NewMemoryStore()
	inner.SetRestriction(restriction.TermRestriction{TermID: 7, PaidOnly: true})
	inner.AttachTerms(100, "category", 7)
	return &countingStore{inner: inner}
}

func TestStore_GetTermRestriction(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("miss loads and populates", func(t *testing.T) {
		t.Parallel()

		client := newFakeRedis()
		next := seededStore()
		cache := termcache.New(next, client)

		r, err := cache.GetTermRestriction(ctx, 7)
		require.NoError(t, err)
		assert.True(t, r.PaidOnly)
		assert.Equal(t, 1, next.reads)
		assert.Equal(t, 1, client.sets)
	})

	t.Run("second read is served from cache", func(t *testing.T) {
		t.Parallel()

		client := newFakeRedis()
		next := seededStore()
		cache := termcache.New(next, client)

		_, err := cache.GetTermRestriction(ctx, 7)
		require.NoError(t, err)

		r, err := cache.GetTermRestriction(ctx, 7)
		require.NoError(t, err)
		assert.True(t, r.PaidOnly)
		assert.Equal(t, 1, next.reads, "underlying store must not be hit again")
	})

	t.Run("redis failure falls through to the store", func(t *testing.T) {
		t.Parallel()

		client := newFakeRedis()
		client.getErr = errors.New("connection refused")
		client.setErr = errors.New("connection refused")
		next := seededStore()
		cache := termcache.New(next, client)

		r, err := cache.GetTermRestriction(ctx, 7)
		require.NoError(t, err)
		assert.True(t, r.PaidOnly)
	})

	t.Run("corrupt cache entry is discarded", func(t *testing.T) {
		t.Parallel()

		client := newFakeRedis()
		client.values["term_restriction:7"] = "{not json"
		next := seededStore()
		cache := termcache.New(next, client)

		r, err := cache.GetTermRestriction(ctx, 7)
		require.NoError(t, err)
		assert.True(t, r.PaidOnly)
		assert.Equal(t, 1, next.reads)

		var stored restriction.TermRestriction
		require.NoError(t, json.Unmarshal([]byte(client.values["term_restriction:7"]), &stored))
		assert.True(t, stored.PaidOnly)
	})

	t.Run("not found is not cached", func(t *testing.T) {
		t.Parallel()

		client := newFakeRedis()
		next := seededStore()
		cache := termcache.New(next, client)

		_, err := cache.GetTermRestriction(ctx, 999)
		require.ErrorIs(t, err, restriction.ErrTermNotFound)
		assert.Zero(t, client.sets)
	})
}

func TestStore_GetTermsFor(t *testing.T) {
	t.Parallel()

	client := newFakeRedis()
	cache := termcache.New(seededStore(), client)

	terms, err := cache.GetTermsFor(context.Background(), 100, "category")
	require.NoError(t, err)
	assert.Equal(t, []int64{7}, terms)
	assert.Zero(t, client.gets, "term assignments bypass the cache")
}
