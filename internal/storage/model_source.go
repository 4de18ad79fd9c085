package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	apperrors "go-photo-validator/internal/errors"
)

// DefaultMaxModelBytes bounds a downloaded model file.
const DefaultMaxModelBytes = 64 * 1024 * 1024

// ModelSource provides face-detection model files by name.
type ModelSource interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// FileModelSource reads models from a local directory.
type FileModelSource struct {
	dir string
}

// NewFileModelSource creates a source rooted at dir.
func NewFileModelSource(dir string) *FileModelSource {
	return &FileModelSource{dir: dir}
}

// Fetch implements ModelSource. name must be a plain file name.
func (s *FileModelSource) Fetch(_ context.Context, name string) ([]byte, error) {
	if err := checkModelName(name); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("model %s not found in %s", name, s.dir), err)
		}
		return nil, apperrors.NewInternalError("failed to read model", err)
	}
	return data, nil
}

// HTTPModelSource downloads models relative to a base URL.
type HTTPModelSource struct {
	base     *url.URL
	client   *http.Client
	maxBytes int64
}

// NewHTTPModelSource creates a source that fetches baseURL/<name>.
func NewHTTPModelSource(baseURL string, timeout time.Duration) (*HTTPModelSource, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid model base URL %q", baseURL)
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return &HTTPModelSource{
		base:     u,
		client:   newHTTPClient(timeout),
		maxBytes: DefaultMaxModelBytes,
	}, nil
}

// Fetch implements ModelSource.
func (s *HTTPModelSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := checkModelName(name); err != nil {
		return nil, err
	}
	target := s.base.ResolveReference(&url.URL{Path: name})
	return download(ctx, s.client, target.String(), "application/xml, application/octet-stream, */*", s.maxBytes)
}

func checkModelName(name string) error {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return apperrors.NewValidationError(fmt.Sprintf("invalid model name %q", name), nil)
	}
	return nil
}
