package file

import (
	"time"

	"github.com/quickcast-app/quickcast/internal/core/domain"
	"github.com/quickcast-app/quickcast/internal/core/ports/driven"
)

// Config keys for query core settings.
const (
	keyProviderTimeoutMS = "query.provider_timeout_ms"
	keyConfirmationTTLS  = "query.confirmation_ttl_s"
	keyResultLimit       = "query.result_limit"
	keyDisabledProviders = "query.disabled_providers"
	keyWeights           = "weights"
)

// LoadSettings builds domain settings from the config store, falling
// back to defaults for anything unset. Invalid weights or timeouts in
// the file surface as a validation error rather than being silently
// corrected.
func LoadSettings(store driven.ConfigStore) (domain.Settings, error) {
	settings := domain.DefaultSettings()

	if ms := store.GetInt(keyProviderTimeoutMS); ms > 0 {
		settings.ProviderTimeout = time.Duration(ms) * time.Millisecond
	}
	if s := store.GetInt(keyConfirmationTTLS); s > 0 {
		settings.ConfirmationTTL = time.Duration(s) * time.Second
	}
	if limit := store.GetInt(keyResultLimit); limit > 0 {
		settings.ResultLimit = limit
	}
	if disabled := store.GetStringSlice(keyDisabledProviders); disabled != nil {
		settings.DisabledProviders = disabled
	}
	for label, weight := range store.GetFloatMap(keyWeights) {
		settings.CategoryWeights[domain.Category(label)] = weight
	}

	if err := settings.Validate(); err != nil {
		return domain.Settings{}, err
	}
	return settings, nil
}

// SaveSettings persists domain settings into the config store.
func SaveSettings(store driven.ConfigStore, settings domain.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	if err := store.Set(keyProviderTimeoutMS, settings.ProviderTimeout.Milliseconds()); err != nil {
		return err
	}
	if err := store.Set(keyConfirmationTTLS, int64(settings.ConfirmationTTL.Seconds())); err != nil {
		return err
	}
	if err := store.Set(keyResultLimit, settings.ResultLimit); err != nil {
		return err
	}
	disabled := settings.DisabledProviders
	if disabled == nil {
		disabled = []string{}
	}
	if err := store.Set(keyDisabledProviders, disabled); err != nil {
		return err
	}
	for cat, weight := range settings.CategoryWeights {
		if err := store.Set(keyWeights+"."+string(cat), weight); err != nil {
			return err
		}
	}
	return nil
}
