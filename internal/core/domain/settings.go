package domain

import (
	"net/url"
	"strings"
	"time"
)

// DefaultBackendURL is the backend origin used when none is configured.
const DefaultBackendURL = "http://localhost:5000"

// BackendSettings holds how the client reaches the backend.
type BackendSettings struct {
	// URL is the backend base origin.
	URL string

	// Timeout bounds each request. Zero means no client-imposed timeout.
	Timeout time.Duration

	// RateLimit caps requests per second. Zero means unlimited.
	RateLimit float64
}

// Validate checks the backend settings.
func (b BackendSettings) Validate() error {
	if _, err := ValidateURL(b.URL); err != nil {
		return &ValidationError{Reason: "Backend URL must be an absolute http(s) URL", kind: ErrInvalidURL}
	}
	if b.Timeout < 0 {
		return &ValidationError{Reason: "Backend timeout must not be negative"}
	}
	if b.RateLimit < 0 {
		return &ValidationError{Reason: "Backend rate limit must not be negative"}
	}
	return nil
}

// Endpoint joins a path onto the base URL.
func (b BackendSettings) Endpoint(path string) string {
	base := strings.TrimRight(b.URL, "/")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}

// Host returns the host portion of the base URL for display.
func (b BackendSettings) Host() string {
	u, err := url.Parse(b.URL)
	if err != nil || u.Host == "" {
		return b.URL
	}
	return u.Host
}

// ChatSettings holds chat presentation preferences.
type ChatSettings struct {
	// FallbackMessage is shown when a reply fails without a server reason.
	FallbackMessage string
}

// AppSettings holds all application settings.
type AppSettings struct {
	Backend BackendSettings
	Chat    ChatSettings
}

// DefaultAppSettings returns settings with sensible defaults.
// No timeout and no rate limit are applied unless configured.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Backend: BackendSettings{
			URL: DefaultBackendURL,
		},
		Chat: ChatSettings{
			FallbackMessage: DefaultChatFallback,
		},
	}
}

// Validate checks all settings.
func (s AppSettings) Validate() error {
	return s.Backend.Validate()
}
