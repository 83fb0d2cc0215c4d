// Package pending is a short-lived key-value store for registrations
// awaiting email verification. Records live only until their TTL runs
// out or verification promotes them into a durable user row. The store
// is injected as a dependency so production can use redis while tests
// use the deterministic in-memory implementation.
package pending

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned for unknown or expired registrations.
var ErrNotFound = errors.New("pending registration not found or expired")

// Registration is a transient, unpersisted placeholder for a user that
// submitted registration data but has not completed verification.
type Registration struct {
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	MemberType   string    `json:"memberType"`
	Name         string    `json:"name"`
	Token        string    `json:"token"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Store holds pending registrations keyed by temporary id, with a
// secondary lookup by verification token.
type Store interface {
	Put(ctx context.Context, tempID string, reg Registration, ttl time.Duration) error
	Get(ctx context.Context, tempID string) (Registration, error)
	GetByToken(ctx context.Context, token string) (string, Registration, error)
	Delete(ctx context.Context, tempID string) error
}
