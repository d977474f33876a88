package cache

import (
	"context"
	"encoding/json"
	"log"
	"reflect"
	"time"
)

// Options configures a memoized operation. Each distinct operation gets its
// own Namespace so its entries can be evicted together with ClearNamespace.
type Options struct {
	Namespace string
	TTL       time.Duration

	// NormalizeStrings canonicalizes string arguments before key
	// derivation so that similar queries share one cache entry.
	NormalizeStrings bool
}

// Do interposes the cache around one invocation of compute. On a hit the
// stored payload is decoded and returned without running compute; a corrupt
// payload counts as a miss. On a miss compute runs exactly once and its
// result is written back unless it is empty - empty results usually reflect
// an upstream hiccup, not a true answer worth pinning for the TTL.
//
// compute errors propagate unchanged and are never cached. Store failures on
// either side degrade silently: caching is an optimization, never a reason
// for the call to fail.
//
// Two concurrent callers that miss on the same key both run compute and both
// write; last write wins at the store. There is no in-flight de-duplication.
func Do[T any](ctx context.Context, store Store, opts Options, args []any, kwargs map[string]any, compute func(ctx context.Context) (T, error)) (T, error) {
	key := BuildKey(opts.Namespace, args, kwargs, opts.NormalizeStrings)

	if payload, found, _ := store.Get(ctx, key); found {
		var cached T
		if err := json.Unmarshal([]byte(payload), &cached); err == nil {
			return cached, nil
		}
		// Corrupt or incompatible payload: treat as a miss and overwrite.
	}

	result, err := compute(ctx)
	if err != nil {
		return result, err
	}

	if !isEmptyResult(result) {
		if payload, err := json.Marshal(result); err != nil {
			log.Printf("[Cache] serialize %s: %v", key, err)
		} else {
			_, _ = store.Set(ctx, key, string(payload), opts.TTL)
		}
	}

	return result, nil
}

// Wrap1 memoizes an operation taking a single string argument, the shape of
// every lookup this service caches.
func Wrap1[T any](store Store, opts Options, fn func(ctx context.Context, arg string) (T, error)) func(ctx context.Context, arg string) (T, error) {
	return func(ctx context.Context, arg string) (T, error) {
		return Do(ctx, store, opts, []any{arg}, nil, func(ctx context.Context) (T, error) {
			return fn(ctx, arg)
		})
	}
}

// isEmptyResult reports whether v is a degenerate value not worth caching:
// nil, a nil pointer, or an empty sequence/mapping/string.
func isEmptyResult(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array, reflect.String:
		return rv.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
