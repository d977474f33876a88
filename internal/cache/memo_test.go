package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory Store recording writes, standing in for Redis.
type fakeStore struct {
	data   map[string]string
	gets   int
	sets   int
	getErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: make(map[string]string)}
}

func (s *fakeStore) Get(_ context.Context, key string) (string, bool, error) {
	s.gets++
	if s.getErr != nil {
		return "", false, s.getErr
	}
	val, ok := s.data[key]
	return val, ok, nil
}

func (s *fakeStore) Set(_ context.Context, key, value string, _ time.Duration) (bool, error) {
	s.sets++
	s.data[key] = value
	return true, nil
}

type searchResult struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

func TestDoComputesOnMissAndStores(t *testing.T) {
	store := newFakeStore()
	calls := 0

	opts := Options{Namespace: "test", TTL: time.Hour}
	result, err := Do(context.Background(), store, opts, []any{5}, nil, func(ctx context.Context) (map[string]int, error) {
		calls++
		return map[string]int{"result": 10}, nil
	})

	require.NoError(t, err)
	assert.Equal(t, map[string]int{"result": 10}, result)
	assert.Equal(t, 1, calls)
	require.Equal(t, 1, store.sets)

	stored := store.data[BuildKey("test", []any{5}, nil, false)]
	var decoded map[string]int
	require.NoError(t, json.Unmarshal([]byte(stored), &decoded))
	assert.Equal(t, map[string]int{"result": 10}, decoded)
}

func TestDoHitShortCircuitsComputation(t *testing.T) {
	store := newFakeStore()
	key := BuildKey("test", []any{5}, nil, false)
	store.data[key] = `{"result":10}`

	calls := 0
	opts := Options{Namespace: "test", TTL: time.Hour}
	result, err := Do(context.Background(), store, opts, []any{5}, nil, func(ctx context.Context) (map[string]int, error) {
		calls++
		return map[string]int{"result": 99}, nil
	})

	require.NoError(t, err)
	assert.Equal(t, map[string]int{"result": 10}, result)
	assert.Zero(t, calls, "hit must not invoke the wrapped operation")
	assert.Equal(t, 1, store.sets, "hit must not rewrite the entry")
}

func TestDoSkipsCachingEmptyResults(t *testing.T) {
	store := newFakeStore()
	opts := Options{Namespace: "test", TTL: time.Hour}

	result, err := Do(context.Background(), store, opts, []any{"q"}, nil, func(ctx context.Context) ([]searchResult, error) {
		return []searchResult{}, nil
	})
	require.NoError(t, err)
	assert.Empty(t, result)
	assert.Zero(t, store.sets, "empty results must not be written")

	_, err = Do(context.Background(), store, opts, []any{"q2"}, nil, func(ctx context.Context) (map[string]int, error) {
		return map[string]int{}, nil
	})
	require.NoError(t, err)
	assert.Zero(t, store.sets)

	_, err = Do(context.Background(), store, opts, []any{"q3"}, nil, func(ctx context.Context) (*searchResult, error) {
		return nil, nil
	})
	require.NoError(t, err)
	assert.Zero(t, store.sets)
}

func TestDoCorruptPayloadFallsThroughAndOverwrites(t *testing.T) {
	store := newFakeStore()
	key := BuildKey("test", []any{5}, nil, false)
	store.data[key] = `{not json`

	calls := 0
	opts := Options{Namespace: "test", TTL: time.Hour}
	result, err := Do(context.Background(), store, opts, []any{5}, nil, func(ctx context.Context) (map[string]int, error) {
		calls++
		return map[string]int{"result": 10}, nil
	})

	require.NoError(t, err)
	assert.Equal(t, map[string]int{"result": 10}, result)
	assert.Equal(t, 1, calls)
	assert.JSONEq(t, `{"result":10}`, store.data[key], "corrupt entry must be overwritten")
}

func TestDoOperationErrorPropagatesUncached(t *testing.T) {
	store := newFakeStore()
	opErr := errors.New("upstream down")

	opts := Options{Namespace: "test", TTL: time.Hour}
	_, err := Do(context.Background(), store, opts, []any{1}, nil, func(ctx context.Context) ([]searchResult, error) {
		return nil, opErr
	})

	assert.ErrorIs(t, err, opErr)
	assert.Zero(t, store.sets, "failed computations must not be cached")
}

func TestDoStoreFaultInvisibleToCaller(t *testing.T) {
	store := newFakeStore()
	store.getErr = errors.New("connection lost")

	opts := Options{Namespace: "test", TTL: time.Hour}
	result, err := Do(context.Background(), store, opts, []any{1}, nil, func(ctx context.Context) ([]searchResult, error) {
		return []searchResult{{Title: "t", Link: "l"}}, nil
	})

	require.NoError(t, err, "store faults must never fail the call")
	assert.Len(t, result, 1)
}

func TestWrap1NormalizedQueriesShareOneEntry(t *testing.T) {
	store := newFakeStore()
	calls := 0

	search := Wrap1(store, Options{Namespace: "t1d:search", TTL: time.Hour, NormalizeStrings: true},
		func(ctx context.Context, query string) ([]searchResult, error) {
			calls++
			return []searchResult{{Title: "cached blog", Link: "http://example.com"}}, nil
		})

	first, err := search(context.Background(), "저혈당을 간식")
	require.NoError(t, err)
	require.Len(t, first, 1)
	require.Equal(t, 1, calls)

	// Particle-only variation: same normalized key, so served from cache.
	second, err := search(context.Background(), "저혈당 간식")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls, "equivalent query must hit the cache")
	assert.Equal(t, 1, store.sets)
}

func TestWrap1AgainstRealStore(t *testing.T) {
	c, _ := newTestClient(t)
	calls := 0

	search := Wrap1[[]searchResult](c, Options{Namespace: "t1d:search", TTL: time.Hour, NormalizeStrings: true},
		func(ctx context.Context, query string) ([]searchResult, error) {
			calls++
			return []searchResult{{Title: "naver blog", Link: "http://blog.naver.com"}}, nil
		})

	ctx := context.Background()
	first, err := search(ctx, "저혈당 간식 추천")
	require.NoError(t, err)

	second, err := search(ctx, "저혈당을 간식 추천")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)
}

func TestIsEmptyResult(t *testing.T) {
	assert.True(t, isEmptyResult(nil))
	assert.True(t, isEmptyResult([]string{}))
	assert.True(t, isEmptyResult(map[string]int{}))
	assert.True(t, isEmptyResult(""))
	assert.True(t, isEmptyResult((*searchResult)(nil)))

	assert.False(t, isEmptyResult(0))
	assert.False(t, isEmptyResult(false))
	assert.False(t, isEmptyResult([]string{"a"}))
	assert.False(t, isEmptyResult(map[string]int{"a": 1}))
	assert.False(t, isEmptyResult("a"))
}
