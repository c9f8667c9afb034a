// Package session keeps per-visitor UI state, keyed by an opaque session id.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound indicates the session does not exist or has expired.
var ErrNotFound = errors.New("session: not found")

// State is what the dashboard remembers about one visitor.
type State struct {
	Page            string    `json:"page"`
	EffectTriggered bool      `json:"effect_triggered"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Store persists session state.
type Store interface {
	// Get returns ErrNotFound for unknown or expired ids.
	Get(ctx context.Context, id string) (State, error)
	// Update applies fn to the stored state, or to a zero State for a new id,
	// and saves the result atomically.
	Update(ctx context.Context, id string, fn func(*State)) (State, error)
	Delete(ctx context.Context, id string) error
}

// NewID returns a fresh session id.
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id looks like one produced by NewID.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil && len(id) == 36
}
