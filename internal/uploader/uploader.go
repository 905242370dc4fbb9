// Package uploader delivers run artifacts to the audit evidence store
// over HTTP. The base client is single-shot; retry policy is layered on
// with the WithRetry decorator so attempts and delay stay configurable
// at the call site.
package uploader

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/auditgrid/shadowmap/internal/report"
	"github.com/auditgrid/shadowmap/pkg/constants"
	"github.com/auditgrid/shadowmap/pkg/errors"
)

// Uploader delivers one artifact to the evidence store.
type Uploader interface {
	Upload(ctx context.Context, artifact report.Artifact) error
}

// Client PUTs artifact bytes to a destination URL with bearer auth.
type Client struct {
	http    *http.Client
	baseURL string
	folder  string
	token   string
}

// NewClient creates an uploader for the given destination. The folder is
// a path segment under the base URL, the token is sent as a bearer
// credential when set.
func NewClient(baseURL, folder, token string) (*Client, error) {
	if baseURL == "" {
		return nil, errors.NewConfigError("uploader", "upload URL is required", nil)
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, errors.NewConfigError("uploader", "invalid upload URL", err)
	}
	return &Client{
		http:    &http.Client{Timeout: constants.UploadTimeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		folder:  strings.Trim(folder, "/"),
		token:   token,
	}, nil
}

// Upload PUTs the artifact once. Content-Type comes from the artifact's
// MIME type, falling back to octet-stream when the manifest carries none.
func (c *Client) Upload(ctx context.Context, artifact report.Artifact) error {
	data, err := os.ReadFile(artifact.Path)
	if err != nil {
		return errors.WrapIO("read", artifact.Path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.destination(artifact.Name), bytes.NewReader(data))
	if err != nil {
		return errors.WrapResource("create", "request", artifact.Name, err)
	}
	mime := artifact.MIME
	if mime == "" {
		mime = constants.MIMEOctetStream
	}
	req.Header.Set("Content-Type", mime)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	return nil
}

func (c *Client) destination(name string) string {
	if c.folder == "" {
		return c.baseURL + "/" + name
	}
	return c.baseURL + "/" + c.folder + "/" + name
}

// retryUploader decorates an Uploader with bounded fixed-delay retry.
type retryUploader struct {
	next     Uploader
	attempts int
	delay    time.Duration
}

// WithRetry wraps an uploader so each artifact gets up to attempts
// tries with a fixed delay between them. Non-positive arguments fall
// back to the defaults. The final failure carries every attempt in an
// upload error.
func WithRetry(u Uploader, attempts int, delay time.Duration) Uploader {
	if attempts <= 0 {
		attempts = constants.MaxUploadAttempts
	}
	if delay <= 0 {
		delay = constants.UploadRetryDelay
	}
	return &retryUploader{next: u, attempts: attempts, delay: delay}
}

// Upload retries the wrapped uploader until success or attempts are
// exhausted. Context cancellation interrupts the delay.
func (r *retryUploader) Upload(ctx context.Context, artifact report.Artifact) error {
	var lastErr error
	for attempt := 1; attempt <= r.attempts; attempt++ {
		lastErr = r.next.Upload(ctx, artifact)
		if lastErr == nil {
			return nil
		}
		if attempt == r.attempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.delay):
		}
	}
	return errors.NewUploadError(artifact.Name, r.attempts, lastErr)
}
