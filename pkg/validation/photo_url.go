package validation

import (
	"net/url"
	"strings"

	apperrors "go-photo-validator/internal/errors"
)

// PhotoURLValidator checks remote photo URLs before the service fetches them.
type PhotoURLValidator struct {
	allowedSchemes []string
	allowedHosts   []string
}

// NewPhotoURLValidator accepts any http(s) host.
func NewPhotoURLValidator() *PhotoURLValidator {
	return &PhotoURLValidator{
		allowedSchemes: []string{"http", "https"},
	}
}

// NewPhotoURLValidatorWithHosts restricts fetches to the given hosts. An entry
// of the form "*.example.com" matches any subdomain of example.com.
func NewPhotoURLValidatorWithHosts(hosts []string) *PhotoURLValidator {
	v := NewPhotoURLValidator()
	for _, h := range hosts {
		h = strings.ToLower(strings.TrimSpace(h))
		if h != "" {
			v.allowedHosts = append(v.allowedHosts, h)
		}
	}
	return v
}

// Validate returns a validation AppError describing the first problem found.
func (v *PhotoURLValidator) Validate(rawURL string) error {
	if strings.TrimSpace(rawURL) == "" {
		return apperrors.NewValidationError("URL cannot be empty", nil)
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return apperrors.NewValidationError("Invalid URL format", err)
	}

	if !v.schemeAllowed(parsed.Scheme) {
		return apperrors.NewValidationError("URL scheme not allowed", nil)
	}

	host := strings.ToLower(parsed.Hostname())
	if host == "" {
		return apperrors.NewValidationError("URL must have a valid host", nil)
	}

	if parsed.User != nil {
		return apperrors.NewValidationError("URL must not contain credentials", nil)
	}

	if !v.hostAllowed(host) {
		return apperrors.NewValidationError("URL host not allowed", nil)
	}

	return nil
}

func (v *PhotoURLValidator) schemeAllowed(scheme string) bool {
	scheme = strings.ToLower(scheme)
	for _, allowed := range v.allowedSchemes {
		if scheme == allowed {
			return true
		}
	}
	return false
}

func (v *PhotoURLValidator) hostAllowed(host string) bool {
	if len(v.allowedHosts) == 0 {
		return true
	}
	for _, allowed := range v.allowedHosts {
		if suffix, ok := strings.CutPrefix(allowed, "*."); ok {
			if strings.HasSuffix(host, "."+suffix) {
				return true
			}
			continue
		}
		if host == allowed {
			return true
		}
	}
	return false
}
