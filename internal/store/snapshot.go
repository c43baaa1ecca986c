package store

import (
	"encoding/json"
	"time"

	"github.com/launchmat/launchmat/internal/errors"
)

// Snapshot is the export/import format. Import accepts any subset of the
// three restorable sections.
type Snapshot struct {
	Folders    []Folder          `json:"folders,omitempty"`
	Settings   *Settings         `json:"settings,omitempty"`
	Mappings   map[string]string `json:"mappings,omitempty"`
	ExportedAt time.Time         `json:"exportedAt"`
	Version    int               `json:"version"`
}

// ExportSettings captures folders, settings, and mappings into a snapshot.
func (s *Store) ExportSettings() *Snapshot {
	settings := s.Settings()
	return &Snapshot{
		Folders:    s.LoadFolders(),
		Settings:   &settings,
		Mappings:   s.Mappings(),
		ExportedAt: time.Now().UTC(),
		Version:    SchemaVersion,
	}
}

// snapshotIn mirrors Snapshot with pointer sections so import can tell an
// absent key from an empty one.
type snapshotIn struct {
	Folders  *[]Folder          `json:"folders"`
	Settings *Settings          `json:"settings"`
	Mappings *map[string]string `json:"mappings"`
}

// ImportSettings restores each section present in the snapshot. Sections are
// applied independently; a malformed document is rejected before anything is
// written, so existing state is never partially corrupted by a bad snapshot.
func (s *Store) ImportSettings(data []byte) error {
	var snapshot snapshotIn
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return errors.NewImportFormat("snapshot is not valid JSON: " + err.Error())
	}
	if snapshot.Folders == nil && snapshot.Settings == nil && snapshot.Mappings == nil {
		return errors.NewImportFormat("snapshot contains none of folders, settings, mappings")
	}

	if snapshot.Folders != nil {
		if err := s.persistFolders(*snapshot.Folders); err != nil {
			return err
		}
	}
	if snapshot.Mappings != nil {
		mappings := *snapshot.Mappings
		if mappings == nil {
			mappings = map[string]string{}
		}
		if err := s.persistMappings(mappings); err != nil {
			return err
		}
	}
	if snapshot.Settings != nil {
		if err := s.SaveSettings(*snapshot.Settings); err != nil {
			return err
		}
	}
	return nil
}

// ClearAllData removes all four persisted keys, returning the store to an
// empty, unseeded state. The next LoadFolders call reseeds the defaults.
func (s *Store) ClearAllData() error {
	for _, key := range []string{keyFolders, keyMappings, keySettings, keyLastScan} {
		if err := s.backend.Delete(key); err != nil {
			return errors.NewStorageWrite("reset", err)
		}
	}
	return nil
}
