package observability

import (
	"context"
	"testing"
	"time"
)

type countingCache struct {
	NoopCacheHooks
	hits, misses int
}

func (c *countingCache) OnCacheHit(context.Context, string)  { c.hits++ }
func (c *countingCache) OnCacheMiss(context.Context, string) { c.misses++ }

func TestCustomHooksReceiveEvents(t *testing.T) {
	Reset()
	defer Reset()

	h := &countingCache{}
	SetCacheHooks(h)

	ctx := context.Background()
	Cache().OnCacheMiss(ctx, "layout")
	Cache().OnCacheHit(ctx, "layout")
	Cache().OnCacheHit(ctx, "artifact")
	Pipeline().OnLayoutComplete(ctx, "stacked", time.Millisecond, nil)

	if h.hits != 2 || h.misses != 1 {
		t.Errorf("hits=%d misses=%d, want 2 and 1", h.hits, h.misses)
	}
}
