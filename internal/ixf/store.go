package ixf

import (
	"context"
	"errors"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/redis/go-redis/v9"
)

var ErrCacheMiss = errors.New("ix-f snapshot not cached")

// Store holds raw IX-F documents keyed by cache key. Get returns ErrCacheMiss
// for absent or expired entries.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, doc []byte, ttl time.Duration) error
}

// CacheKey is the key a member list exported at url is stored under.
func CacheKey(prefix, url string) string {
	return prefix + url
}

// RedisStore shares snapshots between every node using the same redis.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	doc, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return doc, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, doc []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, key, doc, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

type localEntry struct {
	doc     []byte
	expires time.Time
}

// LocalStore keeps snapshots in process memory. It backs single-node setups
// without redis and the test suites.
type LocalStore struct {
	entries *lru.Cache[string, localEntry]
	now     func() time.Time
}

func NewLocalStore(size int) (*LocalStore, error) {
	entries, err := lru.New[string, localEntry](size)
	if err != nil {
		return nil, fmt.Errorf("create local snapshot store: %w", err)
	}
	return &LocalStore{entries: entries, now: time.Now}, nil
}

func (s *LocalStore) Get(_ context.Context, key string) ([]byte, error) {
	entry, ok := s.entries.Get(key)
	if !ok {
		return nil, ErrCacheMiss
	}
	if !entry.expires.IsZero() && s.now().After(entry.expires) {
		s.entries.Remove(key)
		return nil, ErrCacheMiss
	}
	return entry.doc, nil
}

func (s *LocalStore) Set(_ context.Context, key string, doc []byte, ttl time.Duration) error {
	entry := localEntry{doc: append([]byte(nil), doc...)}
	if ttl > 0 {
		entry.expires = s.now().Add(ttl)
	}
	s.entries.Add(key, entry)
	return nil
}
