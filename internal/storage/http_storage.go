package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	apperrors "go-photo-validator/internal/errors"
)

// DefaultMaxImageBytes bounds a fetched photo.
const DefaultMaxImageBytes = 10 * 1024 * 1024

const userAgent = "Go-Photo-Validator/1.0"

// ImageFetcher downloads encoded photo bytes by URL.
type ImageFetcher interface {
	FetchImage(ctx context.Context, imageURL string) ([]byte, error)
}

// HTTPImageFetcher implements ImageFetcher with a single attempt per call.
type HTTPImageFetcher struct {
	client   *http.Client
	maxBytes int64
}

// NewHTTPImageFetcher creates an HTTP image fetcher. timeout <= 0 uses 30s and
// maxBytes <= 0 uses DefaultMaxImageBytes.
func NewHTTPImageFetcher(timeout time.Duration, maxBytes int64) *HTTPImageFetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxImageBytes
	}
	return &HTTPImageFetcher{
		client:   newHTTPClient(timeout),
		maxBytes: maxBytes,
	}
}

func newHTTPClient(timeout time.Duration) *http.Client {
	// Connection pooling tuned for single downloads
	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     30 * time.Second,

		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,

		MaxResponseHeaderBytes: 4096,
	}

	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 3 {
				return fmt.Errorf("too many redirects (limit: 3)")
			}
			return nil
		},
	}
}

// FetchImage implements ImageFetcher.
func (h *HTTPImageFetcher) FetchImage(ctx context.Context, imageURL string) ([]byte, error) {
	return download(ctx, h.client, imageURL, "image/jpeg, image/png, image/webp, image/gif, */*", h.maxBytes)
}

// download performs one GET and reads at most limit bytes of a 200 response.
func download(ctx context.Context, client *http.Client, rawURL, accept string, limit int64) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid URL", err)
	}
	req.Header.Set("Accept", accept)
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, apperrors.NewTimeoutError("download cancelled", err)
		}
		return nil, apperrors.NewNetworkError("download failed", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("client error: status code %d", resp.StatusCode), nil)
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return nil, apperrors.NewNetworkError(fmt.Sprintf("client error: status code %d", resp.StatusCode), nil)
	default:
		return nil, apperrors.NewNetworkError(fmt.Sprintf("server error: status code %d", resp.StatusCode), nil)
	}

	if resp.ContentLength > limit {
		return nil, apperrors.NewTooLargeError(
			fmt.Sprintf("response is %d bytes, limit is %d", resp.ContentLength, limit), nil)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, apperrors.NewNetworkError("failed to read response body", err)
	}
	if int64(len(data)) > limit {
		return nil, apperrors.NewTooLargeError(fmt.Sprintf("response exceeds %d bytes", limit), nil)
	}
	return data, nil
}
