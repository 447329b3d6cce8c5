package rest_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	restadapter "github.com/Juliorubiodev/inku-go/internal/adapter/driven/rest"
	"github.com/Juliorubiodev/inku-go/internal/domain/model"
	"github.com/Juliorubiodev/inku-go/internal/domain/port/driven"
)

func newAuth(t *testing.T, handler http.Handler) *restadapter.AuthService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return restadapter.NewAuthService(
		restadapter.NewClientWithHTTPClient(server.Client(), server.URL, &fakeTokens{}),
	)
}

func TestAuth_DevLogin(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/auth/dev/login", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "reader@example.com", body["email"])
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(driven.DevCredentials{
			IDToken:      "id-token",
			RefreshToken: "refresh-token",
			UID:          "uid-1",
			Email:        "reader@example.com",
		})
	})
	auth := newAuth(t, handler)

	creds, err := auth.DevLogin(context.Background(), "reader@example.com", "hunter22")

	require.NoError(t, err)
	assert.Equal(t, "uid-1", creds.UID)
	assert.Equal(t, "refresh-token", creds.RefreshToken)
}

func TestAuth_DevLoginBadCredentials(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"INVALID_CREDENTIALS"}`))
	})
	auth := newAuth(t, handler)

	_, err := auth.DevLogin(context.Background(), "reader@example.com", "wrong")

	require.Error(t, err)
	assert.Equal(t, driven.FailureAuth, driven.KindOf(err))
}

func TestAuth_Me(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/me", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(model.AuthUser{
			UID:         "uid-1",
			Email:       "reader@example.com",
			DisplayName: "Reader",
		})
	})
	auth := newAuth(t, handler)

	user, err := auth.Me(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Reader", user.DisplayName)
}
