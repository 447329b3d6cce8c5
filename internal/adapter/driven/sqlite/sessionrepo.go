package sqlite

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/Juliorubiodev/inku-go/internal/domain/model"
	"github.com/Juliorubiodev/inku-go/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.SessionStore = (*SessionRepo)(nil)

// SessionRepo is the SQLite implementation of the SessionStore port.
// The session table holds at most one row (id = 1). The ID and refresh
// tokens are encrypted with AES-256-GCM before write and decrypted after
// read; profile fields stay plain so a lost key never hides who was
// signed in.
type SessionRepo struct {
	db  *DB
	key []byte // 32-byte AES-256 key; nil when encryption is disabled.
}

// NewSessionRepo creates a new SessionRepo. key must be 32 bytes for
// AES-256-GCM, or nil to disable session persistence (Save and Load
// return driven.ErrEncryptionKeyNotSet).
func NewSessionRepo(db *DB, key []byte) *SessionRepo {
	return &SessionRepo{db: db, key: key}
}

// Save stores or replaces the persisted session.
func (r *SessionRepo) Save(ctx context.Context, sess model.Session) error {
	idToken, err := r.encrypt(sess.IDToken)
	if err != nil {
		return err
	}
	refreshToken, err := r.encrypt(sess.RefreshToken)
	if err != nil {
		return err
	}

	const query = `INSERT OR REPLACE INTO session
		(id, uid, email, display_name, photo_url, id_token, refresh_token, expires_at, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = r.db.Writer.ExecContext(ctx, query,
		sess.User.UID,
		sess.User.Email,
		sess.User.DisplayName,
		sess.User.PhotoURL,
		idToken,
		refreshToken,
		sess.ExpiresAt.UTC().Format(time.RFC3339Nano),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save session for %q: %w", sess.User.UID, err)
	}
	return nil
}

// Load returns the persisted session, or (nil, nil) when none exists.
func (r *SessionRepo) Load(ctx context.Context) (*model.Session, error) {
	if r.key == nil {
		return nil, driven.ErrEncryptionKeyNotSet
	}

	const query = `SELECT uid, email, display_name, photo_url, id_token, refresh_token, expires_at, updated_at
		FROM session WHERE id = 1`

	var sess model.Session
	var idToken, refreshToken, expiresAt, updatedAt string
	err := r.db.Reader.QueryRowContext(ctx, query).Scan(
		&sess.User.UID,
		&sess.User.Email,
		&sess.User.DisplayName,
		&sess.User.PhotoURL,
		&idToken,
		&refreshToken,
		&expiresAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	if sess.IDToken, err = r.decrypt(idToken); err != nil {
		return nil, fmt.Errorf("decrypt id token: %w", err)
	}
	if sess.RefreshToken, err = r.decrypt(refreshToken); err != nil {
		return nil, fmt.Errorf("decrypt refresh token: %w", err)
	}
	if sess.ExpiresAt, err = parseTime(expiresAt); err != nil {
		return nil, fmt.Errorf("session expires_at: %w", err)
	}
	if sess.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("session updated_at: %w", err)
	}
	return &sess, nil
}

// Clear removes any persisted session. Works without a key so a sign-out
// can always wipe stale credentials.
func (r *SessionRepo) Clear(ctx context.Context) error {
	if _, err := r.db.Writer.ExecContext(ctx, `DELETE FROM session`); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// encrypt encrypts plaintext using AES-256-GCM and returns a base64-encoded
// string containing the nonce (12 bytes) prepended to the ciphertext.
func (r *SessionRepo) encrypt(plaintext string) (string, error) {
	if r.key == nil {
		return "", driven.ErrEncryptionKeyNotSet
	}

	block, err := aes.NewCipher(r.key)
	if err != nil {
		return "", fmt.Errorf("aes.NewCipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("cipher.NewGCM: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("rand nonce: %w", err)
	}

	// Seal appends the ciphertext to nonce, producing: nonce || ciphertext || tag.
	ciphertext := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// decrypt decrypts a base64-encoded AES-256-GCM ciphertext.
func (r *SessionRepo) decrypt(encoded string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("base64 decode: %w", err)
	}

	block, err := aes.NewCipher(r.key)
	if err != nil {
		return "", fmt.Errorf("aes.NewCipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("cipher.NewGCM: %w", err)
	}

	nonceSize := gcm.NonceSize()
	if len(data) < nonceSize {
		return "", errors.New("ciphertext too short")
	}

	nonce, ciphertext := data[:nonceSize], data[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("gcm.Open: %w", err)
	}

	return string(plaintext), nil
}
