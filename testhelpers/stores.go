package testhelpers

import (
	"context"
	"testing"
)

type CacheStore struct {
	GetFunc func(ctx context.Context, key string, v interface{}) error
	SetFunc func(ctx context.Context, key string, v interface{}) error
}

func NewCacheStore(t *testing.T) *CacheStore {
	return &CacheStore{
		GetFunc: func(ctx context.Context, key string, v interface{}) error {
			t.Error("Get should not be called")
			return nil
		},
		SetFunc: func(ctx context.Context, key string, v interface{}) error {
			t.Error("Set should not be called")
			return nil
		},
	}
}

func (cs *CacheStore) Get(ctx context.Context, key string, v interface{}) error {
	return cs.GetFunc(ctx, key, v)
}

func (cs *CacheStore) Set(ctx context.Context, key string, v interface{}) error {
	return cs.SetFunc(ctx, key, v)
}

type PersistentStore struct {
	GetOpaqueFunc func(ctx context.Context, kind, key string, v interface{}) error
	SetOpaqueFunc func(ctx context.Context, kind, key string, v interface{}) error
}

func NewPersistentStore(t *testing.T) *PersistentStore {
	return &PersistentStore{
		GetOpaqueFunc: func(ctx context.Context, kind, key string, v interface{}) error {
			t.Error("GetOpaque should not be called")
			return nil
		},
		SetOpaqueFunc: func(ctx context.Context, kind, key string, v interface{}) error {
			t.Error("SetOpaque should not be called")
			return nil
		},
	}
}

func (ps *PersistentStore) GetOpaque(ctx context.Context, kind, key string, v interface{}) error {
	return ps.GetOpaqueFunc(ctx, kind, key, v)
}

func (ps *PersistentStore) SetOpaque(ctx context.Context, kind, key string, v interface{}) error {
	return ps.SetOpaqueFunc(ctx, kind, key, v)
}
