package store

import (
	"context"
	"encoding/json"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
)

var ErrCacheMiss = errors.New("cache miss")

// LRUCache is an in-process cache of JSON-encoded values.
// Values are stored encoded so callers never share memory with the cache.
type LRUCache struct {
	items *lru.Cache[string, []byte]
}

func NewLRUCache(size int) (*LRUCache, error) {
	items, err := lru.New[string, []byte](size)
	if err != nil {
		return nil, errors.Wrap(err, "newLRUCache couldn't create cache")
	}
	return &LRUCache{items: items}, nil
}

func (c *LRUCache) Get(ctx context.Context, key string, v interface{}) error {
	value, ok := c.items.Get(key)
	if !ok {
		return ErrCacheMiss
	}
	return json.Unmarshal(value, v)
}

func (c *LRUCache) Set(ctx context.Context, key string, v interface{}) error {
	value, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "cache couldn't encode value")
	}
	c.items.Add(key, value)
	return nil
}
