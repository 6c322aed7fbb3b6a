package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"backend/internal/model"
	"backend/internal/storage"

	"go.uber.org/zap"
)

// SettingsService owns the single settings record. The record is loaded once
// at construction by merging stored overrides onto the hard-coded defaults;
// every update persists the full record immediately.
type SettingsService interface {
	Get(ctx context.Context) model.Settings
	Update(ctx context.Context, key string, value interface{}) (model.Settings, error)
	Reset(ctx context.Context) model.Settings
	// Replace swaps in a whole record (import path).
	Replace(ctx context.Context, settings model.Settings)
}

type settingsService struct {
	mu       sync.RWMutex
	store    storage.Store
	hub      Notifier
	log      *zap.Logger
	settings model.Settings
}

// NewSettingsService loads the persisted settings, merged over defaults.
// Stored data never removes a default key: absent fields keep their default.
func NewSettingsService(store storage.Store, hub Notifier, log *zap.Logger) SettingsService {
	s := &settingsService{
		store:    store,
		hub:      hub,
		log:      log,
		settings: model.DefaultSettings(),
	}

	if blob, ok := store.Load(storage.KeySettings); ok {
		// Unmarshalling into the defaults overlays only the stored keys.
		if err := json.Unmarshal(blob, &s.settings); err != nil {
			log.Warn("persisted settings unreadable, using defaults", zap.Error(err))
			s.settings = model.DefaultSettings()
		}
	}

	return s
}

func (s *settingsService) Get(ctx context.Context) model.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Update sets one field by its JSON key. Nested notification flags are
// addressed as "notifications.<flag>". Unknown keys and wrong value types are
// rejected without touching the record.
func (s *settingsService) Update(ctx context.Context, key string, value interface{}) (model.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.applyLocked(key, value); err != nil {
		return model.Settings{}, err
	}

	s.persistLocked()
	s.log.Info("setting updated", zap.String("key", key))
	s.publish(EventSettingsUpdated, s.settings)
	return s.settings, nil
}

func (s *settingsService) applyLocked(key string, value interface{}) error {
	switch key {
	case "theme":
		return setString(&s.settings.Theme, key, value)
	case "density":
		str, ok := value.(string)
		if !ok || (str != model.DensityCozy && str != model.DensityCompact) {
			return fmt.Errorf("%w: %s must be COZY or COMPACT", model.ErrInvalidSettingValue, key)
		}
		s.settings.Density = str
		return nil
	case "default_view":
		return setString(&s.settings.DefaultView, key, value)
	case "items_per_page":
		return setInt(&s.settings.ItemsPerPage, key, value)
	case "default_currency":
		return setString(&s.settings.DefaultCurrency, key, value)
	case "default_language":
		return setString(&s.settings.DefaultLanguage, key, value)
	case "autosave_interval":
		return setInt(&s.settings.AutosaveInterval, key, value)
	case "session_timeout":
		return setInt(&s.settings.SessionTimeout, key, value)
	case "notifications.email":
		return setBool(&s.settings.Notifications.Email, key, value)
	case "notifications.push":
		return setBool(&s.settings.Notifications.Push, key, value)
	case "notifications.approval_reminders":
		return setBool(&s.settings.Notifications.ApprovalReminders, key, value)
	case "notifications.status_updates":
		return setBool(&s.settings.Notifications.StatusUpdates, key, value)
	default:
		return fmt.Errorf("%w: %q", model.ErrUnknownSettingKey, key)
	}
}

func (s *settingsService) Reset(ctx context.Context) model.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings = model.DefaultSettings()
	s.persistLocked()
	s.log.Info("settings reset to defaults")
	s.publish(EventSettingsReset, s.settings)
	return s.settings
}

func (s *settingsService) Replace(ctx context.Context, settings model.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings = settings
	s.persistLocked()
	s.publish(EventSettingsUpdated, s.settings)
}

func (s *settingsService) persistLocked() {
	blob, err := json.Marshal(s.settings)
	if err != nil {
		s.log.Error("marshal settings failed", zap.Error(err))
		return
	}
	if !s.store.Save(storage.KeySettings, blob) {
		s.log.Warn("settings not persisted, record is memory-only")
	}
}

func (s *settingsService) publish(event string, payload interface{}) {
	if s.hub != nil {
		s.hub.Publish(event, payload)
	}
}

func setString(dst *string, key string, value interface{}) error {
	str, ok := value.(string)
	if !ok {
		return fmt.Errorf("%w: %s must be a string", model.ErrInvalidSettingValue, key)
	}
	*dst = str
	return nil
}

// setInt accepts both int and float64 because JSON numbers decode as float64.
func setInt(dst *int, key string, value interface{}) error {
	switch v := value.(type) {
	case int:
		*dst = v
	case float64:
		if v != float64(int(v)) {
			return fmt.Errorf("%w: %s must be an integer", model.ErrInvalidSettingValue, key)
		}
		*dst = int(v)
	default:
		return fmt.Errorf("%w: %s must be an integer", model.ErrInvalidSettingValue, key)
	}
	return nil
}

func setBool(dst *bool, key string, value interface{}) error {
	b, ok := value.(bool)
	if !ok {
		return fmt.Errorf("%w: %s must be a boolean", model.ErrInvalidSettingValue, key)
	}
	*dst = b
	return nil
}
