package rest_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	restadapter "github.com/Juliorubiodev/inku-go/internal/adapter/driven/rest"
	"github.com/Juliorubiodev/inku-go/internal/domain/port/driven"
)

// fakeTokens implements driven.TokenSource, handing out "token-1",
// "token-2", ... on successive Refresh calls.
type fakeTokens struct {
	mu           sync.Mutex
	refreshCalls int
	refreshErr   error
}

func (f *fakeTokens) Token(context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.refreshCalls == 0 {
		return "", nil
	}
	return fmt.Sprintf("token-%d", f.refreshCalls), nil
}

func (f *fakeTokens) Refresh(context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.refreshErr != nil {
		return "", f.refreshErr
	}
	f.refreshCalls++
	return fmt.Sprintf("token-%d", f.refreshCalls), nil
}

func (f *fakeTokens) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.refreshCalls
}

func newCatalog(t *testing.T, handler http.Handler, tokens driven.TokenSource) *restadapter.CatalogService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return restadapter.NewCatalogService(
		restadapter.NewClientWithHTTPClient(server.Client(), server.URL, tokens),
	)
}

func TestRetryOnce_401ThenSuccess(t *testing.T) {
	var hits atomic.Int32
	var mu sync.Mutex
	var retryAuth string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		mu.Lock()
		retryAuth = r.Header.Get("Authorization")
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]any{})
	})

	tokens := &fakeTokens{}
	catalog := newCatalog(t, handler, tokens)

	mangas, err := catalog.GetMangas(context.Background())

	require.NoError(t, err)
	assert.Empty(t, mangas)
	assert.Equal(t, int32(2), hits.Load(), "exactly one resubmission")
	// One forced refresh at attach time, one more for the retry.
	assert.Equal(t, 2, tokens.calls())
	mu.Lock()
	assert.Equal(t, "Bearer token-2", retryAuth, "retry must carry the refreshed token")
	mu.Unlock()
}

func TestRetryOnce_Persistent401StopsAfterTwoCalls(t *testing.T) {
	var hits atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	})

	tokens := &fakeTokens{}
	catalog := newCatalog(t, handler, tokens)

	_, err := catalog.GetMangas(context.Background())

	require.Error(t, err)
	assert.Equal(t, driven.FailureAuth, driven.KindOf(err))
	assert.Equal(t, int32(2), hits.Load(), "no infinite loop under persistent 401")
}

func TestRetryOnce_MutatingRequestNeverRetried(t *testing.T) {
	var hits atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	})

	tokens := &fakeTokens{}
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	lists := restadapter.NewListService(
		restadapter.NewClientWithHTTPClient(server.Client(), server.URL, tokens),
	)

	// A POST that partially succeeded server-side must not be replayed.
	_, err := lists.AddItem(context.Background(), "list-1", "one-piece")

	require.Error(t, err)
	assert.Equal(t, driven.FailureAuth, driven.KindOf(err))
	assert.Equal(t, int32(1), hits.Load())
}

func TestRetryState_IndependentAcrossConcurrentRequests(t *testing.T) {
	var mu sync.Mutex
	firstSeen := map[string]bool{}
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		first := !firstSeen[r.URL.Path]
		firstSeen[r.URL.Path] = true
		mu.Unlock()

		if first {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"id": r.URL.Path})
	})

	catalog := newCatalog(t, handler, &fakeTokens{})

	var wg sync.WaitGroup
	errs := make([]error, 5)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = catalog.GetManga(context.Background(), fmt.Sprintf("manga-%d", i))
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "request %d must retry on its own flag", i)
	}
}

func TestAttach_FailsOpenWhenRefreshFails(t *testing.T) {
	var mu sync.Mutex
	var gotAuth string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		gotAuth = r.Header.Get("Authorization")
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]any{})
	})

	tokens := &fakeTokens{refreshErr: &driven.RequestError{Kind: driven.FailureAuth, Message: "no user signed in"}}
	catalog := newCatalog(t, handler, tokens)

	_, err := catalog.GetMangas(context.Background())

	// Public endpoints work without a bearer token.
	require.NoError(t, err)
	mu.Lock()
	assert.Empty(t, gotAuth)
	mu.Unlock()
}

func TestErrorNormalization(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantKind    driven.FailureKind
		wantMessage string
		wantDetail  string
	}{
		{"forbidden", http.StatusForbidden, `{"detail":"NOT_OWNER"}`, driven.FailureForbidden, "access denied", "NOT_OWNER"},
		{"not found", http.StatusNotFound, `{"detail":"MANGA_NOT_FOUND"}`, driven.FailureNotFound, "resource not found", "MANGA_NOT_FOUND"},
		{"validation", http.StatusConflict, `{"detail":"MANGA_ALREADY_EXISTS"}`, driven.FailureValidation, "MANGA_ALREADY_EXISTS", "MANGA_ALREADY_EXISTS"},
		{"unknown passes message through", http.StatusBadGateway, `{"message":"upstream exploded"}`, driven.FailureUnknown, "upstream exploded", ""},
		{"unknown without body", http.StatusInternalServerError, ``, driven.FailureUnknown, "Internal Server Error", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			catalog := newCatalog(t, handler, &fakeTokens{})

			_, err := catalog.GetManga(context.Background(), "x")

			require.Error(t, err)
			var reqErr *driven.RequestError
			require.ErrorAs(t, err, &reqErr)
			assert.Equal(t, tt.wantKind, reqErr.Kind)
			assert.Equal(t, tt.wantMessage, reqErr.Message)
			assert.Equal(t, tt.wantDetail, reqErr.Detail)
			assert.Equal(t, tt.status, reqErr.StatusCode)
		})
	}
}

func TestConnectionErrorWhenBackendUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	client := server.Client()
	url := server.URL
	server.Close() // nothing listens anymore

	catalog := restadapter.NewCatalogService(
		restadapter.NewClientWithHTTPClient(client, url, &fakeTokens{}),
	)

	_, err := catalog.GetMangas(context.Background())

	require.Error(t, err)
	var reqErr *driven.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, driven.FailureConnection, reqErr.Kind)
	assert.Equal(t, 0, reqErr.StatusCode)
	assert.Contains(t, reqErr.Message, "connection error")
}

func TestIdempotentReadsReturnEqualResults(t *testing.T) {
	payload := `[{"id":"one-piece","title":"One Piece","description":"","cover_path":"","tags":["shonen"]}]`
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(payload))
	})

	catalog := newCatalog(t, handler, &fakeTokens{})

	first, err := catalog.GetMangas(context.Background())
	require.NoError(t, err)
	second, err := catalog.GetMangas(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
