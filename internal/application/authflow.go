// Package application orchestrates the driven ports into the operations
// the CLI exposes.
package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Juliorubiodev/inku-go/internal/domain/model"
	"github.com/Juliorubiodev/inku-go/internal/domain/port/driven"
)

// AuthFlow ties the identity session to its persisted copy so a sign-in
// survives across CLI invocations, the way the web client's session
// survives page loads.
type AuthFlow struct {
	sessions driven.SessionSource
	store    driven.SessionStore
	authAPI  driven.AuthClient
	log      *slog.Logger
}

// NewAuthFlow creates an AuthFlow and registers the auth state listener.
func NewAuthFlow(sessions driven.SessionSource, store driven.SessionStore, authAPI driven.AuthClient) *AuthFlow {
	f := &AuthFlow{
		sessions: sessions,
		store:    store,
		authAPI:  authAPI,
		log:      slog.Default(),
	}
	f.sessions.OnAuthStateChanged(func(user *model.AuthUser) {
		if user == nil {
			f.log.Debug("auth state changed", "signed_in", false)
			return
		}
		f.log.Debug("auth state changed", "signed_in", true, "uid", user.UID)
	})
	return f
}

// Bootstrap restores the persisted session, if any. Called once at
// startup before any command runs. A store with no encryption key simply
// means nothing was persisted.
func (f *AuthFlow) Bootstrap(ctx context.Context) error {
	sess, err := f.store.Load(ctx)
	if errors.Is(err, driven.ErrEncryptionKeyNotSet) {
		f.log.Debug("session persistence disabled, no encryption key")
		return nil
	}
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	if sess != nil {
		f.sessions.Restore(*sess)
	}
	return nil
}

// Sync writes the current session state back to the store. Refreshes
// rotate the refresh token, so this runs after every command to keep the
// persisted copy usable.
func (f *AuthFlow) Sync(ctx context.Context) error {
	sess := f.sessions.Session()
	if sess == nil {
		return f.store.Clear(ctx)
	}
	return f.store.Save(ctx, *sess)
}

// Login signs in with email and password and persists the session.
func (f *AuthFlow) Login(ctx context.Context, email, password string) (*model.AuthUser, error) {
	user, err := f.sessions.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := f.Sync(ctx); err != nil {
		f.log.Warn("session not persisted, sign-in valid for this run only", "error", err)
	}
	return user, nil
}

// Register creates an account, signs it in, and persists the session.
func (f *AuthFlow) Register(ctx context.Context, email, password string) (*model.AuthUser, error) {
	user, err := f.sessions.SignUp(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := f.Sync(ctx); err != nil {
		f.log.Warn("session not persisted, sign-in valid for this run only", "error", err)
	}
	return user, nil
}

// Logout signs out and clears the persisted session.
func (f *AuthFlow) Logout(ctx context.Context) error {
	f.sessions.SignOut()
	return f.store.Clear(ctx)
}

// CurrentUser returns the signed-in user or nil.
func (f *AuthFlow) CurrentUser() *model.AuthUser {
	return f.sessions.CurrentUser()
}

// SetDisplayName updates the profile display name and persists the
// refreshed session.
func (f *AuthFlow) SetDisplayName(ctx context.Context, displayName string) (*model.AuthUser, error) {
	user, err := f.sessions.UpdateProfile(ctx, displayName)
	if err != nil {
		return nil, err
	}
	if err := f.Sync(ctx); err != nil {
		f.log.Warn("profile change not persisted", "error", err)
	}
	return user, nil
}

// Me asks the auth backend who the bearer token belongs to. Unlike
// CurrentUser this exercises the full request pipeline.
func (f *AuthFlow) Me(ctx context.Context) (*model.AuthUser, error) {
	return f.authAPI.Me(ctx)
}

// adoptDevCredentials installs a token pair minted by the auth service's
// dev helpers as the active session.
func (f *AuthFlow) adoptDevCredentials(ctx context.Context, creds *driven.DevCredentials) {
	f.sessions.Restore(model.Session{
		User:         model.AuthUser{UID: creds.UID, Email: creds.Email},
		IDToken:      creds.IDToken,
		RefreshToken: creds.RefreshToken,
		ExpiresAt:    time.Now().Add(time.Hour),
		UpdatedAt:    time.Now(),
	})
	if err := f.Sync(ctx); err != nil {
		f.log.Warn("session not persisted, sign-in valid for this run only", "error", err)
	}
}

// DevLogin signs in through the auth service's dev endpoint instead of
// the identity provider. Local environments only.
func (f *AuthFlow) DevLogin(ctx context.Context, email, password string) (*model.AuthUser, error) {
	creds, err := f.authAPI.DevLogin(ctx, email, password)
	if err != nil {
		return nil, err
	}
	f.adoptDevCredentials(ctx, creds)
	return f.sessions.CurrentUser(), nil
}

// DevRegister creates an account through the auth service's dev endpoint
// and signs it in. Local environments only.
func (f *AuthFlow) DevRegister(ctx context.Context, email, password string) (*model.AuthUser, error) {
	creds, err := f.authAPI.DevRegister(ctx, email, password)
	if err != nil {
		return nil, err
	}
	f.adoptDevCredentials(ctx, creds)
	return f.sessions.CurrentUser(), nil
}
