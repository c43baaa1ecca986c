package store

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/launchmat/launchmat/internal/errors"
)

// Settings is the process-wide configuration record. Folders and Mappings
// are redundant caches of the dedicated keys, refreshed on every persist so
// the record stays self-contained for export/import/reset.
type Settings struct {
	Folders       []Folder          `json:"folders,omitempty"`
	Mappings      map[string]string `json:"mappings,omitempty"`
	LastFullScan  *time.Time        `json:"last_full_scan,omitempty"`
	SchemaVersion int               `json:"schema_version"`
}

// Mappings returns the application-id → folder-id table. Missing or corrupt
// records degrade to an empty table.
func (s *Store) Mappings() map[string]string {
	data, ok, err := s.backend.Get(keyMappings)
	if err != nil {
		slog.Warn("mapping read failed, using empty table", "error", err)
		return map[string]string{}
	}
	if !ok {
		return map[string]string{}
	}

	var mappings map[string]string
	if err := json.Unmarshal(data, &mappings); err != nil {
		slog.Warn("mapping record corrupt, using empty table", "error", err)
		return map[string]string{}
	}
	if mappings == nil {
		return map[string]string{}
	}
	return mappings
}

// SaveMappings replaces the mapping table.
func (s *Store) SaveMappings(mappings map[string]string) error {
	return s.persistMappings(mappings)
}

func (s *Store) persistMappings(mappings map[string]string) error {
	data, err := json.Marshal(mappings)
	if err != nil {
		return errors.NewInternal(err)
	}
	if err := s.backend.Set(keyMappings, data); err != nil {
		return errors.NewStorageWrite("mappings", err)
	}
	s.refreshSettings(nil, mappings)
	return nil
}

// LastScan returns the last full-scan timestamp, if one is recorded.
func (s *Store) LastScan() (time.Time, bool) {
	data, ok, err := s.backend.Get(keyLastScan)
	if err != nil || !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, string(data))
	if err != nil {
		slog.Warn("last-scan record corrupt", "error", err)
		return time.Time{}, false
	}
	return t, true
}

// SetLastScan records the full-scan timestamp.
func (s *Store) SetLastScan(t time.Time) error {
	if err := s.backend.Set(keyLastScan, []byte(t.Format(time.RFC3339))); err != nil {
		return errors.NewStorageWrite("last-scan timestamp", err)
	}
	s.refreshSettings(nil, nil)
	return nil
}

// Settings returns the persisted settings record, degrading to a fresh
// record with the current schema version.
func (s *Store) Settings() Settings {
	data, ok, err := s.backend.Get(keySettings)
	if err != nil || !ok {
		return Settings{SchemaVersion: SchemaVersion}
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		slog.Warn("settings record corrupt, using defaults", "error", err)
		return Settings{SchemaVersion: SchemaVersion}
	}
	return settings
}

// SaveSettings replaces the settings record.
func (s *Store) SaveSettings(settings Settings) error {
	settings.SchemaVersion = SchemaVersion
	data, err := json.Marshal(settings)
	if err != nil {
		return errors.NewInternal(err)
	}
	if err := s.backend.Set(keySettings, data); err != nil {
		return errors.NewStorageWrite("settings", err)
	}
	return nil
}

// refreshSettings rebuilds the redundant caches inside the settings record.
// Either argument may be nil to reuse the currently persisted value. Failures
// are logged only: the dedicated keys are the source of truth.
func (s *Store) refreshSettings(folders []Folder, mappings map[string]string) {
	settings := s.Settings()
	if folders != nil {
		settings.Folders = folders
	}
	if mappings != nil {
		settings.Mappings = mappings
	}
	if last, ok := s.LastScan(); ok {
		settings.LastFullScan = &last
	}
	if err := s.SaveSettings(settings); err != nil {
		slog.Warn("settings cache refresh failed", "error", err)
	}
}
