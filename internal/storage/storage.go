// Package storage defines the local key/value store the storefront keeps
// its state in, the analogue of a browser profile's local storage.
package storage

import (
	"context"
	"fmt"
	"regexp"

	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// ErrNotFound is returned by Get when a key holds no value.
var ErrNotFound = apperrors.ErrNotFound

// Storage stores opaque values under string keys. Implementations must be
// safe for concurrent use.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}

// Backend names accepted by configuration.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,127}$`)

// ValidateKey rejects keys that are empty, too long, or would be unsafe as
// a file name.
func ValidateKey(key string) error {
	if !keyPattern.MatchString(key) {
		return fmt.Errorf("storage key %q: %w", key, apperrors.ErrInvalidInput)
	}
	return nil
}
