package driven

import (
	"context"
	"errors"

	"github.com/Juliorubiodev/inku-go/internal/domain/model"
)

// ErrEncryptionKeyNotSet is returned by SessionStore implementations that
// encrypt tokens at rest when no encryption key is configured. Callers
// treat it as "no persistence available", not as a hard failure.
var ErrEncryptionKeyNotSet = errors.New("session encryption key not set")

// SessionStore is the driven port for persisting the identity session
// between runs. At most one session is stored. The ID and refresh tokens
// are long-lived credentials and are never written in plaintext.
type SessionStore interface {
	// Save stores or replaces the persisted session.
	Save(ctx context.Context, sess model.Session) error

	// Load returns the persisted session, or (nil, nil) when none exists.
	Load(ctx context.Context) (*model.Session, error)

	// Clear removes any persisted session. Clearing an empty store is
	// not an error.
	Clear(ctx context.Context) error
}
