package driven

import (
	"context"

	"github.com/Juliorubiodev/inku-go/internal/domain/model"
)

// TokenSource is the driven port for the identity provider's session.
// Implementations hold the one authoritative session view shared by every
// request pipeline; pipelines receive a TokenSource by injection, never
// through package state.
type TokenSource interface {
	// Token returns the last-issued ID token without any network I/O,
	// or "" when signed out. The token may already be expired.
	Token(ctx context.Context) (string, error)

	// Refresh exchanges the refresh token for a fresh ID token. It always
	// performs a round trip to the identity provider (concurrent callers
	// may be coalesced into one) and never returns a previously issued
	// value. Fails with an auth-kind RequestError when no session exists
	// or the provider rejects the refresh.
	Refresh(ctx context.Context) (string, error)
}

// SessionSource extends TokenSource with the session lifecycle the CLI
// needs: sign-in/out, profile updates, and state-change notification.
type SessionSource interface {
	TokenSource

	// SignIn authenticates with email and password, replacing any
	// current session.
	SignIn(ctx context.Context, email, password string) (*model.AuthUser, error)

	// SignUp registers a new account and signs it in.
	SignUp(ctx context.Context, email, password string) (*model.AuthUser, error)

	// SignOut drops the current session. Safe to call when signed out.
	SignOut()

	// UpdateProfile sets the display name on the signed-in account.
	UpdateProfile(ctx context.Context, displayName string) (*model.AuthUser, error)

	// CurrentUser returns the signed-in user or nil.
	CurrentUser() *model.AuthUser

	// Session snapshots the durable session state for persistence, or
	// nil when signed out.
	Session() *model.Session

	// Restore resumes a previously persisted session without a network
	// round trip. The restored ID token may be expired; the next Refresh
	// fixes that or invalidates the session.
	Restore(sess model.Session)

	// OnAuthStateChanged registers the single listener invoked
	// synchronously on every session transition, including Restore.
	// Registering replaces any previous listener.
	OnAuthStateChanged(fn func(*model.AuthUser))
}
