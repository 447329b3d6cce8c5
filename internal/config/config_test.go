package config

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// allConfigKeys lists every INKU_ env var that Load() reads.
var allConfigKeys = []string{
	"INKU_API_BASE_URL",
	"INKU_AUTH_API_URL",
	"INKU_LIST_API_URL",
	"INKU_FIREBASE_API_KEY",
	"INKU_SECRET_KEY",
	"INKU_DB_PATH",
	"INKU_HTTP_TIMEOUT",
}

// isolateConfigEnv saves and unsets all INKU_ env vars so tests don't
// inherit values from the host environment. t.Cleanup restores original
// values after the test.
func isolateConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range allConfigKeys {
		if orig, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, orig) })
		} else {
			t.Cleanup(func() { os.Unsetenv(key) })
		}
		os.Unsetenv(key)
	}
}

const validAPIKey = "AIzaSyTest0123456789abcdef"

func TestLoad_Success(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("INKU_API_BASE_URL", "http://localhost:8000")
	t.Setenv("INKU_FIREBASE_API_KEY", validAPIKey)
	t.Setenv("INKU_DB_PATH", "/tmp/inku-test.db")
	t.Setenv("INKU_HTTP_TIMEOUT", "45s")

	cfg, err := Load()

	require.NoError(t, err)
	require.NoError(t, cfg.Configured())
	assert.Equal(t, "http://localhost:8000", cfg.APIBaseURL)
	assert.Equal(t, "/tmp/inku-test.db", cfg.DBPath)
	assert.Equal(t, 45*time.Second, cfg.HTTPTimeout)
}

func TestLoad_Defaults(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("INKU_API_BASE_URL", "http://localhost:8000")
	t.Setenv("INKU_FIREBASE_API_KEY", validAPIKey)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "inku.db", cfg.DBPath)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
}

func TestLoad_AuthAndListURLsDefaultToAPIBase(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("INKU_API_BASE_URL", "http://localhost:8000")
	t.Setenv("INKU_FIREBASE_API_KEY", validAPIKey)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", cfg.AuthAPIURL)
	assert.Equal(t, "http://localhost:8000", cfg.ListAPIURL)
}

func TestLoad_SplitBackends(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("INKU_API_BASE_URL", "http://localhost:8000")
	t.Setenv("INKU_AUTH_API_URL", "http://localhost:8001")
	t.Setenv("INKU_LIST_API_URL", "http://localhost:8002")
	t.Setenv("INKU_FIREBASE_API_KEY", validAPIKey)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8001", cfg.AuthAPIURL)
	assert.Equal(t, "http://localhost:8002", cfg.ListAPIURL)
}

func TestLoad_AggregatesEveryMissingVariable(t *testing.T) {
	isolateConfigEnv(t)

	cfg, err := Load()

	require.NoError(t, err, "missing variables are reported by Configured, not Load")
	err = cfg.Configured()
	require.Error(t, err)
	var notConfigured *NotConfiguredError
	require.ErrorAs(t, err, &notConfigured)
	assert.Contains(t, notConfigured.Missing, "INKU_API_BASE_URL")
	assert.Contains(t, notConfigured.Missing, "INKU_FIREBASE_API_KEY")
}

func TestLoad_PlaceholderValuesCountAsUnset(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("INKU_API_BASE_URL", "http://localhost:8000")
	t.Setenv("INKU_FIREBASE_API_KEY", "your-firebase-api-key")

	cfg, err := Load()

	require.NoError(t, err)
	err = cfg.Configured()
	require.Error(t, err)
	var notConfigured *NotConfiguredError
	require.ErrorAs(t, err, &notConfigured)
	assert.Contains(t, notConfigured.Missing, "INKU_FIREBASE_API_KEY")
}

func TestLoad_RejectsMalformedAPIKey(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("INKU_API_BASE_URL", "http://localhost:8000")
	t.Setenv("INKU_FIREBASE_API_KEY", "short-key")

	cfg, err := Load()

	require.NoError(t, err)
	err = cfg.Configured()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INKU_FIREBASE_API_KEY")
}

func TestLoad_InvalidTimeout(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("INKU_API_BASE_URL", "http://localhost:8000")
	t.Setenv("INKU_HTTP_TIMEOUT", "not-a-duration")

	_, err := Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "INKU_HTTP_TIMEOUT")
}

func TestLoad_SecretKey_Absent(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("INKU_API_BASE_URL", "http://localhost:8000")
	t.Setenv("INKU_FIREBASE_API_KEY", validAPIKey)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Nil(t, cfg.SecretKey)
}

func TestLoad_SecretKey_Valid(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("INKU_API_BASE_URL", "http://localhost:8000")
	t.Setenv("INKU_FIREBASE_API_KEY", validAPIKey)
	// 64 hex chars = 32 bytes
	t.Setenv("INKU_SECRET_KEY", "0102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f20")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Len(t, cfg.SecretKey, 32)
}

func TestLoad_SecretKey_TooShort(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("INKU_API_BASE_URL", "http://localhost:8000")
	t.Setenv("INKU_SECRET_KEY", "deadbeef")

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INKU_SECRET_KEY")
}

func TestLoad_SecretKey_NotHex(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("INKU_API_BASE_URL", "http://localhost:8000")
	t.Setenv("INKU_SECRET_KEY", strings.Repeat("z", 64))

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INKU_SECRET_KEY")
}
