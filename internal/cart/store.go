package cart

import (
	"sync"
	"time"
)

// Store maps session tokens to carts. Tokens are minted by the cart-session
// middleware and travel in the X-Cart-Token header, so guests get a cart
// without logging in.
type Store struct {
	mu        sync.Mutex
	carts     map[string]*Cart
	noticeTTL time.Duration
}

func NewStore() *Store {
	return &Store{
		carts:     make(map[string]*Cart),
		noticeTTL: NoticeTTL,
	}
}

// Get returns the cart for a session token, creating it on first use.
func (s *Store) Get(token string) *Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carts[token]
	if !ok {
		c = newCart(s.noticeTTL)
		s.carts[token] = c
	}
	return c
}

// Len reports how many carts are currently held.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.carts)
}

// Purge drops carts that have not been touched within maxIdle and returns
// how many were removed. The background worker calls this periodically so
// abandoned guest sessions do not accumulate forever.
func (s *Store) Purge(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-maxIdle)
	purged := 0
	for token, c := range s.carts {
		if c.IdleSince().Before(cutoff) {
			delete(s.carts, token)
			purged++
		}
	}
	return purged
}
