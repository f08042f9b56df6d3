package cart

import "sync"

// Sessions hands out one cart per storefront session. Carts live in memory
// only; an API restart empties every cart, exactly like closing the browser
// tab did in the original storefront.
type Sessions struct {
	mu    sync.Mutex
	carts map[string]*Cart
}

// NewSessions returns an empty session registry.
func NewSessions() *Sessions {
	return &Sessions{carts: make(map[string]*Cart)}
}

// Get returns the cart for the session id, creating it on first use.
func (s *Sessions) Get(id string) *Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[id]
	if !ok {
		c = New()
		s.carts[id] = c
	}
	return c
}
