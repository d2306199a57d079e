package cache

import (
	"testing"
	"time"

	qt "github.com/frankban/quicktest"

	pkgcache "productos-api/pkg/cache"
)

func TestMemoryCache(t *testing.T) {
	c := qt.New(t)
	mc := NewMemoryCache(time.Minute, time.Minute)

	key := pkgcache.ProductKey(7)
	c.Assert(key, qt.Equals, "product:id:7")

	_, ok := mc.Get(key)
	c.Assert(ok, qt.IsFalse)

	mc.Set(key, "mesa", 0)
	v, ok := mc.Get(key)
	c.Assert(ok, qt.IsTrue)
	c.Assert(v, qt.Equals, "mesa")

	mc.Delete(key)
	_, ok = mc.Get(key)
	c.Assert(ok, qt.IsFalse)

	mc.Set(key, "mesa", time.Millisecond)
	time.Sleep(5 * time.Millisecond)
	_, ok = mc.Get(key)
	c.Assert(ok, qt.IsFalse)
}

func TestNoopCacheNeverHits(t *testing.T) {
	c := qt.New(t)
	nc := NewNoopCache()
	nc.Set("k", 1, time.Minute)
	_, ok := nc.Get("k")
	c.Assert(ok, qt.IsFalse)
}
