// Package service holds the stateful stores of the storefront: cart,
// wishlist and language preference. Each store keeps its collection in
// memory, serializes operations with a mutex and writes the whole
// collection back to its repository after every change.
package service

import "time"

type settings struct {
	now func() time.Time
}

// Option configures a store.
type Option func(*settings)

// WithClock overrides the time source used for item timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		s.now = now
	}
}

func newSettings(opts []Option) settings {
	s := settings{now: func() time.Time { return time.Now().UTC() }}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}
