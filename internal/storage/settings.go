package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"time"

	"github.com/mmynk/producttracker/internal/models"
)

// Setting returns the stored value for key, or its built-in default.
func (r *Repository) Setting(ctx context.Context, key string) (json.RawMessage, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	settings, err := read[map[string]json.RawMessage](ctx, r, SettingsKey)
	if err != nil {
		return nil, false, err
	}
	if value, ok := settings[key]; ok {
		return value, true, nil
	}
	def, ok := models.DefaultSettings()[key]
	if !ok {
		return nil, false, nil
	}
	value, err := json.Marshal(def)
	if err != nil {
		return nil, false, fmt.Errorf("failed to encode default for %s: %w", key, err)
	}
	return value, true, nil
}

// SetSetting stores value under key. The last write wins.
func (r *Repository) SetSetting(ctx context.Context, key string, value any) (err error) {
	start := time.Now()
	defer func() { r.observe("SetSetting", start, err, "key", key) }()

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode setting %s: %w", key, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	settings, err := read[map[string]json.RawMessage](ctx, r, SettingsKey)
	if err != nil {
		return err
	}
	if settings == nil {
		settings = make(map[string]json.RawMessage)
	}
	settings[key] = raw
	return r.write(ctx, SettingsKey, settings)
}

// Settings returns every stored setting, with defaults for the ones never written.
func (r *Repository) Settings(ctx context.Context) (map[string]json.RawMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.settings(ctx)
}

func (r *Repository) settings(ctx context.Context) (map[string]json.RawMessage, error) {
	stored, err := read[map[string]json.RawMessage](ctx, r, SettingsKey)
	if err != nil {
		return nil, err
	}

	settings := make(map[string]json.RawMessage)
	for key, def := range models.DefaultSettings() {
		raw, err := json.Marshal(def)
		if err != nil {
			return nil, fmt.Errorf("failed to encode default for %s: %w", key, err)
		}
		settings[key] = raw
	}
	maps.Copy(settings, stored)
	return settings, nil
}

// GetSetting decodes the setting under key into a T. It returns def when the
// setting is absent or does not decode as a T.
func GetSetting[T any](ctx context.Context, s Store, key string, def T) (T, error) {
	raw, found, err := s.Setting(ctx, key)
	if err != nil {
		return def, err
	}
	if !found {
		return def, nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return def, nil
	}
	return v, nil
}
