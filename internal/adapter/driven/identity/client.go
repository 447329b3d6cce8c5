// Package identity implements the SessionSource port against the
// Firebase Auth REST surface. It holds the one authoritative session view
// shared by every request pipeline.
package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Juliorubiodev/inku-go/internal/domain/model"
	"github.com/Juliorubiodev/inku-go/internal/domain/port/driven"
)

const (
	defaultIdentityBaseURL    = "https://identitytoolkit.googleapis.com"
	defaultSecureTokenBaseURL = "https://securetoken.googleapis.com"
)

// Compile-time interface satisfaction check.
var _ driven.SessionSource = (*Client)(nil)

// Client talks to the identity provider over its REST endpoints. Session
// state transitions are Unauthenticated -> Authenticated on SignIn/SignUp
// (or Restore) and back on SignOut or refresh revocation; a single
// registered listener observes every transition synchronously.
type Client struct {
	apiKey      string
	identityURL string
	tokenURL    string
	http        *http.Client
	log         *slog.Logger

	mu       sync.RWMutex
	sess     *model.Session
	listener func(*model.AuthUser)

	// Concurrent Refresh callers share one provider round trip. Each
	// still observes a freshly issued token, never a cached one.
	refreshGroup singleflight.Group
}

// NewClient creates a Client against the production Firebase endpoints.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:      apiKey,
		identityURL: defaultIdentityBaseURL,
		tokenURL:    defaultSecureTokenBaseURL,
		http:        &http.Client{Timeout: 15 * time.Second},
		log:         slog.Default(),
	}
}

// NewClientWithBaseURLs creates a Client with custom endpoints and
// http.Client. This constructor is intended for testing against httptest
// servers.
func NewClientWithBaseURLs(httpClient *http.Client, apiKey, identityBaseURL, secureTokenBaseURL string) *Client {
	return &Client{
		apiKey:      apiKey,
		identityURL: strings.TrimRight(identityBaseURL, "/"),
		tokenURL:    strings.TrimRight(secureTokenBaseURL, "/"),
		http:        httpClient,
		log:         slog.Default(),
	}
}

// providerError is the Firebase error envelope:
// {"error": {"code": 400, "message": "EMAIL_NOT_FOUND"}}.
type providerError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func authError(detail, message string, err error) error {
	return &driven.RequestError{
		Kind:    driven.FailureAuth,
		Detail:  detail,
		Message: message,
		Err:     err,
	}
}

// post sends a JSON or form body to an identity endpoint and decodes the
// response, translating provider rejections into auth-kind errors.
func (c *Client) post(ctx context.Context, endpoint string, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return fmt.Errorf("build identity request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.http.Do(req)
	if err != nil {
		return authError("", "not authorized, please sign in again", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return authError("", "not authorized, please sign in again", err)
	}

	if resp.StatusCode >= 400 {
		var pe providerError
		_ = json.Unmarshal(raw, &pe)
		detail := pe.Error.Message
		c.log.Debug("identity provider rejected request", "status", resp.StatusCode, "detail", detail)
		return authError(detail, "not authorized, please sign in again", nil)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode identity response: %w", err)
	}
	return nil
}

// signInResponse covers accounts:signInWithPassword, accounts:signUp, and
// accounts:update, which share field names.
type signInResponse struct {
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
	DisplayName  string `json:"displayName"`
	PhotoURL     string `json:"photoUrl"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
}

func (c *Client) accountsEndpoint(action string) string {
	return fmt.Sprintf("%s/v1/accounts:%s?key=%s", c.identityURL, action, url.QueryEscape(c.apiKey))
}

func (c *Client) credentialCall(ctx context.Context, action string, payload map[string]any) (*model.AuthUser, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", action, err)
	}

	var out signInResponse
	if err := c.post(ctx, c.accountsEndpoint(action), "application/json", strings.NewReader(string(body)), &out); err != nil {
		return nil, err
	}

	user := model.AuthUser{
		UID:         out.LocalID,
		Email:       out.Email,
		DisplayName: out.DisplayName,
		PhotoURL:    out.PhotoURL,
	}
	sess := model.Session{
		User:         user,
		IDToken:      out.IDToken,
		RefreshToken: out.RefreshToken,
		ExpiresAt:    expiryFrom(out.ExpiresIn),
		UpdatedAt:    time.Now(),
	}
	c.setSession(&sess, true)
	return &user, nil
}

// SignIn authenticates with email and password, replacing any current session.
func (c *Client) SignIn(ctx context.Context, email, password string) (*model.AuthUser, error) {
	return c.credentialCall(ctx, "signInWithPassword", map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	})
}

// SignUp registers a new account and signs it in.
func (c *Client) SignUp(ctx context.Context, email, password string) (*model.AuthUser, error) {
	return c.credentialCall(ctx, "signUp", map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	})
}

// UpdateProfile sets the display name on the signed-in account. The
// session stays authenticated, so the state listener is not invoked.
func (c *Client) UpdateProfile(ctx context.Context, displayName string) (*model.AuthUser, error) {
	c.mu.RLock()
	sess := c.sess
	c.mu.RUnlock()
	if sess == nil {
		return nil, authError("", "no user signed in", nil)
	}

	body, err := json.Marshal(map[string]any{
		"idToken":           sess.IDToken,
		"displayName":       displayName,
		"returnSecureToken": true,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal profile payload: %w", err)
	}

	var out signInResponse
	if err := c.post(ctx, c.accountsEndpoint("update"), "application/json", strings.NewReader(string(body)), &out); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sess != nil {
		c.sess.User.DisplayName = out.DisplayName
		c.sess.UpdatedAt = time.Now()
		user := c.sess.User
		return &user, nil
	}
	return &model.AuthUser{UID: out.LocalID, Email: out.Email, DisplayName: out.DisplayName}, nil
}

// SignOut drops the current session and notifies the listener.
func (c *Client) SignOut() {
	c.setSession(nil, true)
}

// Restore resumes a persisted session. The restored ID token may already
// be expired; the next Refresh either fixes that or invalidates the
// session.
func (c *Client) Restore(sess model.Session) {
	copied := sess
	c.setSession(&copied, true)
}

// CurrentUser returns the signed-in user or nil.
func (c *Client) CurrentUser() *model.AuthUser {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.sess == nil {
		return nil
	}
	user := c.sess.User
	return &user
}

// Session snapshots the durable session state, or nil when signed out.
func (c *Client) Session() *model.Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.sess == nil {
		return nil
	}
	copied := *c.sess
	return &copied
}

// OnAuthStateChanged registers the single state listener, replacing any
// previous one.
func (c *Client) OnAuthStateChanged(fn func(*model.AuthUser)) {
	c.mu.Lock()
	c.listener = fn
	c.mu.Unlock()
}

// Token returns the last-issued ID token without network I/O, or ""
// when signed out.
func (c *Client) Token(_ context.Context) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.sess == nil {
		return "", nil
	}
	return c.sess.IDToken, nil
}

// refreshResponse is the secure-token endpoint's snake_case envelope.
type refreshResponse struct {
	IDToken      string `json:"id_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    string `json:"expires_in"`
	UserID       string `json:"user_id"`
}

// Refresh exchanges the refresh token for a fresh ID token. Concurrent
// callers are coalesced into one provider round trip; a provider
// rejection (revoked or expired refresh token) invalidates the session.
func (c *Client) Refresh(ctx context.Context) (string, error) {
	token, err, _ := c.refreshGroup.Do("refresh", func() (any, error) {
		c.mu.RLock()
		var refreshToken string
		if c.sess != nil {
			refreshToken = c.sess.RefreshToken
		}
		c.mu.RUnlock()

		if refreshToken == "" {
			return "", authError("", "no user signed in", nil)
		}

		form := url.Values{
			"grant_type":    {"refresh_token"},
			"refresh_token": {refreshToken},
		}
		endpoint := fmt.Sprintf("%s/v1/token?key=%s", c.tokenURL, url.QueryEscape(c.apiKey))

		var out refreshResponse
		if err := c.post(ctx, endpoint, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()), &out); err != nil {
			var reqErr *driven.RequestError
			// Provider said no: the refresh token is dead, so the session is too.
			if errors.As(err, &reqErr) && reqErr.Detail != "" {
				c.log.Warn("session invalidated by identity provider", "detail", reqErr.Detail)
				c.setSession(nil, true)
			}
			return "", err
		}

		c.mu.Lock()
		if c.sess != nil {
			c.sess.IDToken = out.IDToken
			c.sess.RefreshToken = out.RefreshToken
			c.sess.ExpiresAt = expiryFrom(out.ExpiresIn)
			c.sess.UpdatedAt = time.Now()
		}
		c.mu.Unlock()

		return out.IDToken, nil
	})
	if err != nil {
		return "", err
	}
	return token.(string), nil
}

// setSession replaces the session and, when notify is set, invokes the
// registered listener synchronously with the new user (nil on sign-out).
func (c *Client) setSession(sess *model.Session, notify bool) {
	c.mu.Lock()
	c.sess = sess
	listener := c.listener
	c.mu.Unlock()

	if notify && listener != nil {
		if sess == nil {
			listener(nil)
			return
		}
		user := sess.User
		listener(&user)
	}
}

func expiryFrom(expiresIn string) time.Time {
	secs, err := strconv.Atoi(expiresIn)
	if err != nil || secs <= 0 {
		secs = 3600
	}
	return time.Now().Add(time.Duration(secs) * time.Second)
}
