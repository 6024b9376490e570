package probe

import (
	"time"

	"github.com/metafates/gache"
	"github.com/samber/mo"
	"github.com/vidplay/vidplay/filesystem"
	"github.com/vidplay/vidplay/where"
)

func newCacher() *gache.Cache[map[string]*Result] {
	return gache.New[map[string]*Result](
		&gache.Options{
			Path:       where.Probes(),
			FileSystem: &filesystem.CacheFs{},
		},
	)
}

// Lookup returns the cached result for u unless it is older than lifetime.
func Lookup(u string, lifetime time.Duration) mo.Option[*Result] {
	cached, expired, err := newCacher().Get()
	if err != nil || expired || cached == nil {
		return mo.None[*Result]()
	}

	r, ok := cached[u]
	if !ok || time.Since(r.ProbedAt) > lifetime {
		return mo.None[*Result]()
	}
	return mo.Some(r)
}

// Remember stores r, dropping entries that outlived lifetime.
func Remember(r *Result, lifetime time.Duration) error {
	c := newCacher()

	cached, expired, err := c.Get()
	if err != nil || expired || cached == nil {
		cached = make(map[string]*Result)
	}

	for u, old := range cached {
		if time.Since(old.ProbedAt) > lifetime {
			delete(cached, u)
		}
	}

	cached[r.URI] = r
	return c.Set(cached)
}
