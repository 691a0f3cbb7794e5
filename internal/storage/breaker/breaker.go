// Package breaker guards a Storage backend with a circuit breaker so a
// failing remote store fails fast instead of stalling every request.
package breaker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sony/gobreaker/v2"

	"github.com/utafrali/storefront/internal/storage"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

var breakerState = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: "storefront",
		Name:      "storage_breaker_state",
		Help:      "Current state of the storage circuit breaker (0=closed, 1=half-open, 2=open)",
	},
	[]string{"name"},
)

// stateToFloat maps gobreaker states to prometheus gauge values.
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// Config holds circuit breaker settings.
type Config struct {
	Name string
	// MaxRequests is the number of trial calls allowed while half-open.
	MaxRequests uint32
	// Interval clears counts while closed; 0 never clears.
	Interval time.Duration
	// Timeout is how long the breaker stays open before going half-open.
	Timeout time.Duration
	// FailureRatio trips the breaker once MinRequests have been seen.
	FailureRatio float64
	MinRequests  uint32
}

// DefaultConfig returns the settings used by the storefront process.
func DefaultConfig(name string) Config {
	return Config{
		Name:         name,
		MaxRequests:  1,
		Interval:     60 * time.Second,
		Timeout:      30 * time.Second,
		FailureRatio: 0.5,
		MinRequests:  5,
	}
}

// Store decorates a Storage with a breaker. Not-found and invalid-key
// results count as successes.
type Store struct {
	next    storage.Storage
	breaker *gobreaker.CircuitBreaker[[]byte]
	name    string
}

// New wraps next.
func New(next storage.Storage, cfg Config, logger *slog.Logger) *Store {
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= cfg.FailureRatio
		},
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, apperrors.ErrNotFound) ||
				errors.Is(err, apperrors.ErrInvalidInput)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("storage breaker state change",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
			breakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
	}

	breakerState.WithLabelValues(cfg.Name).Set(0)

	return &Store{
		next:    next,
		breaker: gobreaker.NewCircuitBreaker[[]byte](settings),
		name:    cfg.Name,
	}
}

// State returns the breaker state.
func (s *Store) State() gobreaker.State {
	return s.breaker.State()
}

func (s *Store) execute(fn func() ([]byte, error)) ([]byte, error) {
	v, err := s.breaker.Execute(fn)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, apperrors.Unavailable("storage is temporarily unavailable", err)
	}
	return v, err
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	return s.execute(func() ([]byte, error) {
		return s.next.Get(ctx, key)
	})
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.execute(func() ([]byte, error) {
		return nil, s.next.Set(ctx, key, value)
	})
	return err
}

func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.execute(func() ([]byte, error) {
		return nil, s.next.Delete(ctx, key)
	})
	return err
}

// Ping bypasses the breaker so readiness reflects the backend itself.
func (s *Store) Ping(ctx context.Context) error {
	return s.next.Ping(ctx)
}

func (s *Store) Close() error {
	return s.next.Close()
}
