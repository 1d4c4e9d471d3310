// Package validation holds the platform URL allow-list and struct validation
// for download requests.
package validation

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ytget/youtomp3/internal/model"
)

// PlatformURLTag is the validator tag bound to IsPlatformURL
const PlatformURLTag = "platform_url"

// AllowedHosts lists the accepted hostnames, compared case-insensitively
var AllowedHosts = []string{
	"youtube.com",
	"www.youtube.com",
	"m.youtube.com",
	"music.youtube.com",
	"youtu.be",
}

// Request validation failures, matched with errors.Is
var (
	ErrInvalidURL     = errors.New("invalid URL")
	ErrInvalidRequest = errors.New("invalid download request")
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation(PlatformURLTag, validatePlatformURL)
}

// IsPlatformURL reports whether s parses as a URL whose host is on the allow-list.
// It is a syntactic check only and never touches the network.
func IsPlatformURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return false
	}

	host := strings.ToLower(u.Hostname())
	if host == "" {
		return false
	}

	for _, allowed := range AllowedHosts {
		if host == allowed {
			return true
		}
	}
	return false
}

// ValidateRequest checks the URL allow-list, then the remaining struct tags.
// URL failures wrap ErrInvalidURL, all others wrap ErrInvalidRequest.
func ValidateRequest(req model.DownloadRequest) error {
	if err := validate.Var(req.URL, "required,"+PlatformURLTag); err != nil {
		return fmt.Errorf("%w %q: %w", ErrInvalidURL, req.URL, err)
	}
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	return nil
}

// Struct exposes the shared validator for other packages' config structs
func Struct(v any) error {
	return validate.Struct(v)
}

func validatePlatformURL(fl validator.FieldLevel) bool {
	return IsPlatformURL(fl.Field().String())
}
