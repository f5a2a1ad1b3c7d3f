package services

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/siteassist/internal/core/domain"
	"github.com/custodia-labs/siteassist/internal/core/ports/driven"
	"github.com/custodia-labs/siteassist/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyBackendURL      = "backend.url"
	keyBackendTimeout  = "backend.timeout"
	keyBackendRate     = "backend.rate_limit"
	keyChatFallbackMsg = "chat.fallback_message"
)

var settingKeys = []string{keyBackendURL, keyBackendTimeout, keyBackendRate, keyChatFallbackMsg}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore

	mu          sync.RWMutex
	urlOverride string
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// OverrideBackendURL pins the backend URL for this process, ahead of
// whatever the config file says. An empty value clears the override.
func (s *SettingsService) OverrideBackendURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw != "" {
		if _, err := domain.ValidateURL(raw); err != nil {
			return err
		}
	}
	s.mu.Lock()
	s.urlOverride = raw
	s.mu.Unlock()
	return nil
}

// Get retrieves current application settings.
// Malformed stored values fall back to their defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Backend: domain.BackendSettings{
			URL:       s.getURL(defaults.Backend.URL),
			Timeout:   s.getDuration(keyBackendTimeout, defaults.Backend.Timeout),
			RateLimit: s.getRate(defaults.Backend.RateLimit),
		},
		Chat: domain.ChatSettings{
			FallbackMessage: s.getString(keyChatFallbackMsg, defaults.Chat.FallbackMessage),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	if err := s.configStore.Set(keyBackendURL, settings.Backend.URL); err != nil {
		return fmt.Errorf("save backend url: %w", err)
	}
	timeout := ""
	if settings.Backend.Timeout > 0 {
		timeout = settings.Backend.Timeout.String()
	}
	if err := s.configStore.Set(keyBackendTimeout, timeout); err != nil {
		return fmt.Errorf("save backend timeout: %w", err)
	}
	if err := s.configStore.Set(keyBackendRate, settings.Backend.RateLimit); err != nil {
		return fmt.Errorf("save backend rate_limit: %w", err)
	}
	if err := s.configStore.Set(keyChatFallbackMsg, settings.Chat.FallbackMessage); err != nil {
		return fmt.Errorf("save chat fallback_message: %w", err)
	}

	return nil
}

// Set parses and stores one setting by key.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	value = strings.TrimSpace(value)

	switch key {
	case keyBackendURL:
		settings.Backend.URL = value
	case keyBackendTimeout:
		d, err := parseTimeout(value)
		if err != nil {
			return err
		}
		settings.Backend.Timeout = d
	case keyBackendRate:
		r, err := parseRate(value)
		if err != nil {
			return err
		}
		settings.Backend.RateLimit = r
	case keyChatFallbackMsg:
		settings.Chat.FallbackMessage = value
	default:
		return &domain.ValidationError{
			Reason: fmt.Sprintf("Unknown setting %q (want one of %s)", key, strings.Join(settingKeys, ", ")),
		}
	}

	// The override is process-local; persisting it would leak a flag into the file.
	if key != keyBackendURL {
		settings.Backend.URL = s.getString(keyBackendURL, domain.DefaultBackendURL)
	}
	return s.Save(settings)
}

// Keys returns the recognised setting keys.
func (s *SettingsService) Keys() []string {
	keys := make([]string, len(settingKeys))
	copy(keys, settingKeys)
	return keys
}

// Backend returns the effective backend settings. It is read on every
// request, so edits to the config file apply without a restart.
func (s *SettingsService) Backend() domain.BackendSettings {
	settings, err := s.Get()
	if err != nil {
		return domain.DefaultAppSettings().Backend
	}
	return settings.Backend
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getURL(defaultVal string) string {
	s.mu.RLock()
	override := s.urlOverride
	s.mu.RUnlock()
	if override != "" {
		return override
	}
	val := s.configStore.GetString(keyBackendURL)
	if _, err := domain.ValidateURL(val); err != nil {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	d, err := parseTimeout(s.configStore.GetString(key))
	if err != nil || d == 0 {
		return defaultVal
	}
	return d
}

func (s *SettingsService) getRate(defaultVal float64) float64 {
	r := s.configStore.GetFloat(keyBackendRate)
	if r <= 0 {
		return defaultVal
	}
	return r
}

func parseTimeout(value string) (time.Duration, error) {
	if value == "" || value == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil || d < 0 {
		return 0, &domain.ValidationError{Reason: fmt.Sprintf("Invalid timeout %q (e.g. 30s, 2m)", value)}
	}
	return d, nil
}

func parseRate(value string) (float64, error) {
	if value == "" {
		return 0, nil
	}
	r, err := strconv.ParseFloat(value, 64)
	if err != nil || r < 0 {
		return 0, &domain.ValidationError{Reason: fmt.Sprintf("Invalid rate limit %q (requests per second, 0 for none)", value)}
	}
	return r, nil
}
