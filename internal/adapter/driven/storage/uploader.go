// Package storage uploads object bytes directly to presigned URLs. The
// presigned URL itself is the credential, so these requests bypass the
// backend's bearer-token auth entirely.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Juliorubiodev/inku-go/internal/domain/port/driven"
)

// Uploader PUTs file bytes to presigned object-storage URLs.
type Uploader struct {
	http *http.Client
}

// NewUploader creates an Uploader. Uploads can be large, so the timeout
// is generous compared to API calls.
func NewUploader() *Uploader {
	return &Uploader{http: &http.Client{Timeout: 5 * time.Minute}}
}

// NewUploaderWithHTTPClient creates an Uploader with a custom http.Client,
// intended for testing.
func NewUploaderWithHTTPClient(httpClient *http.Client) *Uploader {
	return &Uploader{http: httpClient}
}

// PutPDF uploads chapter PDF bytes to a presigned URL.
func (u *Uploader) PutPDF(ctx context.Context, presignedURL string, data []byte) error {
	return u.put(ctx, presignedURL, "application/pdf", data)
}

// PutThumbnail uploads thumbnail image bytes to a presigned URL.
func (u *Uploader) PutThumbnail(ctx context.Context, presignedURL string, data []byte) error {
	return u.put(ctx, presignedURL, "image/jpeg", data)
}

func (u *Uploader) put(ctx context.Context, presignedURL, contentType string, data []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, presignedURL, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.ContentLength = int64(len(data))

	resp, err := u.http.Do(req)
	if err != nil {
		return &driven.RequestError{
			Kind:    driven.FailureConnection,
			Message: "connection error, check that the backend is reachable",
			Err:     err,
		}
	}
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= 400 {
		return &driven.RequestError{
			Kind:       driven.FailureUnknown,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("object storage rejected upload: %s", resp.Status),
		}
	}
	return nil
}
