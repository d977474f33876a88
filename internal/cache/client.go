package cache

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// scanBatch is the SCAN page size used by DeleteByPattern. SCAN is used
// instead of KEYS because KEYS blocks a live shared store.
const scanBatch = 100

// ErrDisabled reports that the client was constructed without a reachable
// Redis and every operation degrades to its neutral result.
var ErrDisabled = errors.New("cache: store disabled")

// Store is the read/write surface the memoizer needs. *Client implements it;
// tests substitute an in-memory double.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
}

// Config holds connection parameters for the backing store.
type Config struct {
	Addr           string
	Password       string
	DB             int
	ConnectTimeout time.Duration
	OpTimeout      time.Duration
}

// Client is a thin adapter over an optional Redis store. Construction probes
// the store once; if the probe fails the client stays disabled for its whole
// lifetime and every operation returns a neutral miss/no-op result. An
// enabled client that later hits faults likewise degrades per call - errors
// never reach beyond the returned diagnostic value.
//
// The client is safe for concurrent use; it holds no per-key state.
type Client struct {
	rdb *redis.Client
}

// New creates a cache client. It never fails: when Redis is unreachable the
// returned client is disabled and only a diagnostic line is logged.
func New(cfg Config) *Client {
	connectTimeout := cfg.ConnectTimeout
	if connectTimeout <= 0 {
		connectTimeout = 2 * time.Second
	}
	opTimeout := cfg.OpTimeout
	if opTimeout <= 0 {
		opTimeout = 2 * time.Second
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  connectTimeout,
		ReadTimeout:  opTimeout,
		WriteTimeout: opTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("[CacheClient] Redis unavailable, caching disabled: %v", err)
		rdb.Close()
		return &Client{}
	}

	log.Printf("[CacheClient] Connected to Redis at %s (db %d)", cfg.Addr, cfg.DB)
	return &Client{rdb: rdb}
}

// NewWithRedis wraps an existing Redis client. Used by tests.
func NewWithRedis(rdb *redis.Client) *Client {
	return &Client{rdb: rdb}
}

// Enabled reports whether a usable store handle was obtained at construction.
func (c *Client) Enabled() bool {
	return c.rdb != nil
}

// Get retrieves a value. A missing key, a disabled client and a store fault
// all report found=false; the error carries the cause for diagnostics and is
// safe to ignore.
func (c *Client) Get(ctx context.Context, key string) (string, bool, error) {
	if c.rdb == nil {
		return "", false, ErrDisabled
	}
	val, err := c.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		log.Printf("[CacheClient] get %s: %v", key, err)
		return "", false, err
	}
	return val, true, nil
}

// Set stores a value with the given TTL (SETEX). Returns false without
// writing anything when the client is disabled or the store faults.
func (c *Client) Set(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	if c.rdb == nil {
		return false, ErrDisabled
	}
	if err := c.rdb.SetEx(ctx, key, value, ttl).Err(); err != nil {
		log.Printf("[CacheClient] set %s: %v", key, err)
		return false, err
	}
	return true, nil
}

// DeleteByPattern removes every key matching a glob pattern using an
// incremental cursor scan and returns the number of keys removed. Disabled
// clients and store faults report 0.
func (c *Client) DeleteByPattern(ctx context.Context, pattern string) (int, error) {
	if c.rdb == nil {
		return 0, ErrDisabled
	}

	var cursor uint64
	deleted := 0
	for {
		keys, next, err := c.rdb.Scan(ctx, cursor, pattern, scanBatch).Result()
		if err != nil {
			log.Printf("[CacheClient] scan %s: %v", pattern, err)
			return deleted, err
		}
		if len(keys) > 0 {
			n, err := c.rdb.Del(ctx, keys...).Result()
			if err != nil {
				log.Printf("[CacheClient] del %s: %v", pattern, err)
				return deleted, err
			}
			deleted += int(n)
		}
		cursor = next
		if cursor == 0 {
			return deleted, nil
		}
	}
}

// ClearNamespace removes every entry under a namespace.
func (c *Client) ClearNamespace(ctx context.Context, namespace string) (int, error) {
	return c.DeleteByPattern(ctx, namespace+":*")
}

// Close releases the store handle. Safe on a disabled client.
func (c *Client) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
