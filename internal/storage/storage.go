// Package storage keeps the current value of each calculator session so a
// session survives eviction and restarts. Only the latest value is stored.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/XJIeI5/calcengine/internal/config"
	op "github.com/XJIeI5/calcengine/internal/operation"
)

var ErrNotFound = errors.New("session not found")

// Store persists one current value per session id.
type Store interface {
	Save(ctx context.Context, id string, value float32) error
	// Load returns ErrNotFound for unknown ids.
	Load(ctx context.Context, id string) (float32, error)
	Delete(ctx context.Context, id string) error
	Close() error
}

// New opens the store selected by c.Driver.
func New(ctx context.Context, c *config.Storage) (Store, error) {
	switch c.Driver {
	case "", "memory":
		return NewMemory(), nil
	case "sqlite":
		return NewSQLite(ctx, c.Path)
	case "redis":
		return NewRedis(ctx, c)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", c.Driver)
	}
}

// values are stored as text so NaN and infinities round-trip.
func encodeValue(v float32) string {
	return op.FormatNumber(v)
}

func decodeValue(s string) (float32, error) {
	v, ok := op.ParseNumber(s)
	if !ok {
		return 0, fmt.Errorf("stored value %q is not a number", s)
	}
	return v, nil
}
