// Package uniqueness serialises writes of unique keys (usernames, emails,
// per-user words) between the conflict probe and the insert.
package uniqueness

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrClaimed is returned when another request currently holds the key.
var ErrClaimed = errors.New("key already claimed")

// Guard hands out short-lived exclusive claims on keys. The returned release
// func must be called once the write has completed.
type Guard interface {
	Claim(ctx context.Context, key string) (release func(), err error)
}

// LocalGuard is an in-process Guard for single-instance deployments.
type LocalGuard struct {
	mu     sync.Mutex
	ttl    time.Duration
	now    func() time.Time
	claims map[string]claim
	seq    uint64
}

type claim struct {
	token   uint64
	expires time.Time
}

// NewLocalGuard creates a LocalGuard whose claims lapse after ttl even if
// they are never released.
func NewLocalGuard(ttl time.Duration) *LocalGuard {
	return &LocalGuard{
		ttl:    ttl,
		now:    time.Now,
		claims: make(map[string]claim),
	}
}

func (g *LocalGuard) Claim(_ context.Context, key string) (func(), error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	if c, ok := g.claims[key]; ok && now.Before(c.expires) {
		return nil, ErrClaimed
	}
	g.seq++
	token := g.seq
	g.claims[key] = claim{token: token, expires: now.Add(g.ttl)}

	return func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		if c, ok := g.claims[key]; ok && c.token == token {
			delete(g.claims, key)
		}
	}, nil
}
