package secretstore

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

// Cached wraps a Store and keeps retrieved secrets in memory for a TTL,
// so a display loop does not spawn a credential tool every tick.
// Concurrent lookups for the same key share one call to the inner store.
// That call is not cancelled with any single caller; each caller stops
// waiting when its own context is done. Failures are not cached.
type Cached struct {
	inner Store
	ttl   time.Duration
	c     *gocache.Cache
	group singleflight.Group
}

// NewCached wraps inner with a cache of the given TTL. A non-positive TTL
// disables caching; lookups still share in-flight calls.
func NewCached(inner Store, ttl time.Duration) *Cached {
	return &Cached{
		inner: inner,
		ttl:   ttl,
		c:     gocache.New(ttl, time.Minute),
	}
}

func cacheKey(account, service string) string {
	// Names are alphanumeric, so "/" cannot collide.
	return service + "/" + account
}

// Get returns the cached secret or fetches it from the inner store.
func (s *Cached) Get(ctx context.Context, account, service string) (string, error) {
	if err := validateNames(account, service); err != nil {
		return "", err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	key := cacheKey(account, service)
	if s.ttl > 0 {
		if v, ok := s.c.Get(key); ok {
			return v.(string), nil
		}
	}

	shared := context.WithoutCancel(ctx)
	ch := s.group.DoChan(key, func() (any, error) {
		secret, err := s.inner.Get(shared, account, service)
		if err != nil {
			return "", err
		}
		if s.ttl > 0 {
			s.c.Set(key, secret, s.ttl)
		}
		return secret, nil
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

// Forget drops the cached secret for account and service.
func (s *Cached) Forget(account, service string) {
	s.c.Delete(cacheKey(account, service))
}

// Flush drops every cached secret.
func (s *Cached) Flush() {
	s.c.Flush()
}
