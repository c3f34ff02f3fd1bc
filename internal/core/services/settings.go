package services

import (
	"sort"

	"github.com/feezz8/toll-aggregation/internal/core/domain"
	"github.com/feezz8/toll-aggregation/internal/core/ports/driven"
	"github.com/feezz8/toll-aggregation/internal/core/ports/driving"
	"github.com/feezz8/toll-aggregation/internal/logger"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// SettingsService manages the local configuration.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Client resolves the dispatcher settings.
// Stored values override defaults and overrides (environment, flags)
// override stored values. A bad stored value is logged and ignored so a
// hand-edited file never locks the user out; a bad override is an error.
func (s *SettingsService) Client(overrides map[string]string) (domain.ClientSettings, error) {
	settings := domain.DefaultClientSettings()

	for _, key := range domain.SettingKeys() {
		value, ok := s.configStore.Get(key)
		if !ok {
			continue
		}
		if err := settings.Apply(key, value); err != nil {
			logger.Warn("ignoring stored %s: %v", key, err)
		}
	}

	keys := make([]string, 0, len(overrides))
	for key := range overrides {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if err := settings.Apply(key, overrides[key]); err != nil {
			return domain.ClientSettings{}, err
		}
	}

	logger.Debug("client settings: base_url=%s auth_header=%s insecure=%t timeout=%s 401=%s",
		settings.BaseURL, settings.AuthHeader, settings.InsecureSkipVerify, settings.Timeout, settings.UnauthorizedPolicy)
	return settings, nil
}

// Get returns a stored value.
func (s *SettingsService) Get(key string) (string, bool) {
	return s.configStore.Get(key)
}

// Set validates and stores a value.
// The credential is stored verbatim; every other key must parse.
func (s *SettingsService) Set(key, value string) error {
	if key != domain.KeyAPIKey {
		scratch := domain.DefaultClientSettings()
		if err := scratch.Apply(key, value); err != nil {
			return err
		}
		// Store the normalised form, e.g. a base URL without its trailing slash.
		value, _ = scratch.Value(key)
	}
	return s.configStore.Set(key, value)
}

// Unset removes a stored value.
func (s *SettingsService) Unset(key string) error {
	return s.configStore.Unset(key)
}

// All returns every stored value.
func (s *SettingsService) All() map[string]string {
	return s.configStore.All()
}

// Path returns the config file location.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}
