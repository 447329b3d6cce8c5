package model

import "time"

// AuthUser is the signed-in identity projected from the identity
// provider's session. A nil *AuthUser means signed out.
type AuthUser struct {
	UID         string `json:"uid"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	PhotoURL    string `json:"photo_url,omitempty"`
}

// Session is the durable identity state persisted between runs. IDToken
// may be expired when restored; the refresh token is what keeps the
// session alive.
type Session struct {
	User         AuthUser
	IDToken      string
	RefreshToken string
	ExpiresAt    time.Time
	UpdatedAt    time.Time
}
