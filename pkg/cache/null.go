package cache

import (
	"context"
	"time"
)

// NullCache stores nothing: every Get misses and writes are dropped. It
// backs --no-cache and is the fallback when the user cache directory is
// unavailable, so layouts and artifacts are always recomputed.
type NullCache struct{}

// NewNullCache returns a cache that never hits.
func NewNullCache() Cache {
	return NullCache{}
}

func (NullCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, nil
}

func (NullCache) Set(context.Context, string, []byte, time.Duration) error {
	return nil
}

func (NullCache) Delete(context.Context, string) error {
	return nil
}

func (NullCache) Close() error {
	return nil
}

var _ Cache = NullCache{}
