package driven

import (
	"context"

	"github.com/Juliorubiodev/inku-go/internal/domain/model"
)

// DevCredentials is the token pair minted by the auth service's dev-only
// register/login helpers.
type DevCredentials struct {
	IDToken      string `json:"id_token"`
	RefreshToken string `json:"refresh_token"`
	UID          string `json:"uid"`
	Email        string `json:"email"`
}

// AuthClient is the driven port for the auth service. The dev endpoints
// exist for local environments without a browser sign-in flow; Me echoes
// the identity the backend derived from the bearer token.
type AuthClient interface {
	DevRegister(ctx context.Context, email, password string) (*DevCredentials, error)
	DevLogin(ctx context.Context, email, password string) (*DevCredentials, error)
	Me(ctx context.Context) (*model.AuthUser, error)
}
