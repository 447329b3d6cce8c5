// Package rest implements the backend client ports over the Inku REST
// services. One Client exists per logical backend (catalog, list, auth);
// each attaches a bearer token before every request and retries
// unauthorized idempotent requests once after a forced token refresh.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gregjones/httpcache"

	"github.com/Juliorubiodev/inku-go/internal/domain/port/driven"
)

// DefaultTimeout bounds a single request attempt, retry included.
const DefaultTimeout = 30 * time.Second

// Client is a request pipeline bound to one backend base URL. It is safe
// for concurrent use; retry state is local to each request invocation.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  driven.TokenSource
	log     *slog.Logger
}

// NewClient creates a Client with the default transport stack:
//  1. httpcache (ETag-based conditional request caching)
//  2. net/http with a hard timeout
//
// tokens supplies the bearer credential; it is injected per client so
// tests can substitute a fake source.
func NewClient(baseURL string, tokens driven.TokenSource, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Transport: httpcache.NewMemoryCacheTransport(),
			Timeout:   timeout,
		},
		tokens: tokens,
		log:    slog.Default(),
	}
}

// NewClientWithHTTPClient creates a Client with a custom http.Client.
// This constructor is intended for testing, allowing injection of an
// httptest server's client and URL.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL string, tokens driven.TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		tokens:  tokens,
		log:     slog.Default(),
	}
}

// retryOn401 reports whether a method may be resubmitted after a forced
// token refresh. Mutating methods are excluded: a POST that partially
// succeeded server-side would be applied twice.
func retryOn401(method string) bool {
	return method == http.MethodGet || method == http.MethodHead
}

// do runs one request through the pipeline: marshal the body once,
// attach a freshly refreshed token (fail-open when refresh fails, since
// some endpoints are public), submit, and on a 401 refresh-and-resubmit
// exactly once for idempotent methods. Failures are normalized into
// driven.RequestError; nothing is swallowed.
func (c *Client) do(ctx context.Context, method, path string, params url.Values, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal %s %s body: %w", method, path, err)
		}
	}

	target := c.baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	newRequest := func(token string) (*http.Request, error) {
		var rd io.Reader
		if payload != nil {
			rd = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, target, rd)
		if err != nil {
			return nil, fmt.Errorf("build %s %s: %w", method, path, err)
		}
		req.Header.Set("Accept", "application/json")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		return req, nil
	}

	// Always force a refresh before sending so a freshly-expired token is
	// never used when a refresh would have succeeded. Refresh failure is
	// deliberately non-fatal here.
	token, err := c.tokens.Refresh(ctx)
	if err != nil {
		c.log.Debug("no auth token available", "method", method, "path", path, "error", err)
		token = ""
	}

	req, err := newRequest(token)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return connectionError(err)
	}

	// One-shot unauthorized retry. The "retried" state is this local
	// block: there is no path back here, so a persistent 401 can never
	// loop. Concurrent requests each run their own pipeline invocation
	// and therefore carry independent retry state.
	if resp.StatusCode == http.StatusUnauthorized && retryOn401(method) {
		drain(resp)
		fresh, refreshErr := c.tokens.Refresh(ctx)
		if refreshErr != nil || fresh == "" {
			c.log.Debug("token refresh after 401 failed", "method", method, "path", path, "error", refreshErr)
			return &driven.RequestError{
				Kind:       driven.FailureAuth,
				StatusCode: http.StatusUnauthorized,
				Message:    "not authorized, please sign in again",
				Err:        refreshErr,
			}
		}

		c.log.Debug("401 received, retrying with refreshed token", "method", method, "path", path)
		req, err = newRequest(fresh)
		if err != nil {
			return err
		}
		resp, err = c.http.Do(req)
		if err != nil {
			return connectionError(err)
		}
	}

	defer drain(resp)

	if resp.StatusCode >= 400 {
		return c.errorFromResponse(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// drain consumes and closes a response body so the underlying connection
// can be reused.
func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))
	_ = resp.Body.Close()
}

func connectionError(err error) error {
	return &driven.RequestError{
		Kind:    driven.FailureConnection,
		Message: "connection error, check that the backend is reachable",
		Err:     err,
	}
}

// errorBody is the error envelope the backend services use. FastAPI-style
// responses put a string code or structured payload in "detail"; a few
// proxies use "message" instead.
type errorBody struct {
	Detail  json.RawMessage `json:"detail"`
	Message string          `json:"message"`
}

// errorFromResponse maps a non-2xx response to a driven.RequestError with
// a fixed user-visible message per status class. Statuses outside the
// known classes pass the backend's own message through.
func (c *Client) errorFromResponse(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))

	var detail, message string
	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil {
		_ = json.Unmarshal(body.Detail, &detail) // non-string detail stays empty
		message = body.Message
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return &driven.RequestError{
			Kind:       driven.FailureAuth,
			StatusCode: resp.StatusCode,
			Detail:     detail,
			Message:    "not authorized, please sign in again",
		}
	case resp.StatusCode == http.StatusForbidden:
		return &driven.RequestError{
			Kind:       driven.FailureForbidden,
			StatusCode: resp.StatusCode,
			Detail:     detail,
			Message:    "access denied",
		}
	case resp.StatusCode == http.StatusNotFound:
		return &driven.RequestError{
			Kind:       driven.FailureNotFound,
			StatusCode: resp.StatusCode,
			Detail:     detail,
			Message:    "resource not found",
		}
	case resp.StatusCode < 500 && detail != "":
		return &driven.RequestError{
			Kind:       driven.FailureValidation,
			StatusCode: resp.StatusCode,
			Detail:     detail,
			Message:    detail,
		}
	default:
		if message == "" {
			message = detail
		}
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}
		return &driven.RequestError{
			Kind:       driven.FailureUnknown,
			StatusCode: resp.StatusCode,
			Detail:     detail,
			Message:    message,
		}
	}
}
