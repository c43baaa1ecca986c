// Package store owns the durable state: folders, the application→folder
// mapping table, settings, and the last-scan timestamp. Reads degrade to safe
// defaults so startup always has something to present; writes surface
// STORAGE_WRITE to the caller.
package store

import (
	"crypto/rand"
	"encoding/json"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/launchmat/launchmat/internal/errors"
	"github.com/launchmat/launchmat/internal/kvstore"
)

// The four persisted keys.
const (
	keyFolders  = "launchmat.folders"
	keyMappings = "launchmat.mappings"
	keySettings = "launchmat.settings"
	keyLastScan = "launchmat.lastScan"
)

// SchemaVersion is stamped into the settings record and export snapshots.
const SchemaVersion = 1

// Store is the repository for all persisted Launchmat state.
type Store struct {
	backend kvstore.Backend
}

// New creates a Store over the given backend.
func New(backend kvstore.Backend) *Store {
	return &Store{backend: backend}
}

// LoadFolders returns persisted folders sorted by position. A fresh or
// unreadable store seeds the eight defaults and persists them; read failures
// never propagate.
func (s *Store) LoadFolders() []Folder {
	data, ok, err := s.backend.Get(keyFolders)
	if err != nil {
		slog.Warn("folder read failed, reseeding defaults", "error", err)
		return s.seedDefaults()
	}
	if !ok {
		return s.seedDefaults()
	}

	var folders []Folder
	if err := json.Unmarshal(data, &folders); err != nil {
		slog.Warn("folder record corrupt, reseeding defaults", "error", err)
		return s.seedDefaults()
	}

	sortByPosition(folders)
	return folders
}

// seedDefaults persists and returns the default folder set. A persist failure
// is logged but the defaults are still returned: the read path must always
// yield a usable folder list.
func (s *Store) seedDefaults() []Folder {
	folders := defaultFolders(time.Now())
	if err := s.persistFolders(folders); err != nil {
		slog.Warn("could not persist seeded defaults", "error", err)
	}
	return folders
}

// SaveFolders atomically replaces the full folder collection.
func (s *Store) SaveFolders(folders []Folder) error {
	return s.persistFolders(folders)
}

// CreateFolder appends a new folder placed last, with a fresh time-based id
// and an empty application list, and persists immediately.
func (s *Store) CreateFolder(name, color, icon string) (*Folder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.NewInvalidRequest("folder name must not be empty")
	}
	if color == "" {
		color = "blue"
	}
	if !ValidColor(color) {
		return nil, errors.NewInvalidRequest("color must be one of: " + strings.Join(Palette, ", "))
	}
	if icon == "" {
		icon = "folder"
	}

	folders := s.LoadFolders()
	folder := Folder{
		ID:        newFolderID(),
		Name:      name,
		Color:     color,
		Icon:      icon,
		AppIDs:    []string{},
		Position:  len(folders),
		CreatedAt: time.Now(),
	}
	folders = append(folders, folder)

	if err := s.persistFolders(folders); err != nil {
		return nil, err
	}
	return &folder, nil
}

// FolderUpdate carries the optional fields for UpdateFolder.
type FolderUpdate struct {
	Name  *string
	Color *string
	Icon  *string
}

// UpdateFolder merges the provided fields into the folder and stamps
// UpdatedAt. An unknown id is a no-op, not an error.
func (s *Store) UpdateFolder(id string, update FolderUpdate) error {
	if update.Color != nil && !ValidColor(*update.Color) {
		return errors.NewInvalidRequest("color must be one of: " + strings.Join(Palette, ", "))
	}

	folders := s.LoadFolders()
	for i := range folders {
		if folders[i].ID != id {
			continue
		}
		if update.Name != nil && strings.TrimSpace(*update.Name) != "" {
			folders[i].Name = strings.TrimSpace(*update.Name)
		}
		if update.Color != nil {
			folders[i].Color = *update.Color
		}
		if update.Icon != nil && *update.Icon != "" {
			folders[i].Icon = *update.Icon
		}
		now := time.Now()
		folders[i].UpdatedAt = &now
		return s.persistFolders(folders)
	}
	return nil
}

// DeleteFolder reassigns the folder's applications to the catch-all folder,
// updates their mappings, removes the record, and persists both collections.
// Deleting an unknown id is a no-op. Deleting the catch-all folder is
// rejected: it is the reassignment target everything else relies on.
func (s *Store) DeleteFolder(id string) error {
	if id == CatchAllFolderID {
		return errors.NewCatchAllProtected(id)
	}

	folders := s.LoadFolders()
	index := -1
	for i := range folders {
		if folders[i].ID == id {
			index = i
			break
		}
	}
	if index == -1 {
		return nil
	}

	mappings := s.Mappings()
	orphaned := folders[index].AppIDs
	folders = append(folders[:index], folders[index+1:]...)

	for i := range folders {
		if folders[i].ID != CatchAllFolderID {
			continue
		}
		for _, appID := range orphaned {
			if !folders[i].Contains(appID) {
				folders[i].AppIDs = append(folders[i].AppIDs, appID)
			}
			mappings[appID] = CatchAllFolderID
		}
	}

	// Keep positions dense after removal.
	renumber(folders)

	if err := s.persistFolders(folders); err != nil {
		return err
	}
	return s.persistMappings(mappings)
}

// ReorderFolders sets each folder's position to its index in orderedIDs and
// persists the collection sorted by the new positions. The list must cover
// the complete folder set; a partial list would leave stale positions and
// break density, so it is rejected.
func (s *Store) ReorderFolders(orderedIDs []string) error {
	folders := s.LoadFolders()
	if len(orderedIDs) != len(folders) {
		return errors.NewInvalidRequest("reorder requires the complete folder id set")
	}

	positions := make(map[string]int, len(orderedIDs))
	for i, id := range orderedIDs {
		if _, dup := positions[id]; dup {
			return errors.NewInvalidRequest("reorder list contains duplicate id: " + id)
		}
		positions[id] = i
	}

	for i := range folders {
		pos, ok := positions[folders[i].ID]
		if !ok {
			return errors.NewInvalidRequest("reorder list is missing folder id: " + folders[i].ID)
		}
		folders[i].Position = pos
	}

	sortByPosition(folders)
	return s.persistFolders(folders)
}

// MoveAppToFolder removes appID from the source folder (when given and
// present), adds it to the destination (idempotently), updates the mapping
// entry, and persists folders and mappings together.
func (s *Store) MoveAppToFolder(appID, fromFolderID, toFolderID string) error {
	if appID == "" {
		return errors.NewInvalidRequest("application id must not be empty")
	}

	folders := s.LoadFolders()
	destination := -1
	for i := range folders {
		if folders[i].ID == toFolderID {
			destination = i
			break
		}
	}
	if destination == -1 {
		return errors.NewNotFound(toFolderID)
	}

	for i := range folders {
		if fromFolderID != "" && folders[i].ID == fromFolderID {
			folders[i].AppIDs = removeID(folders[i].AppIDs, appID)
		}
	}
	if !folders[destination].Contains(appID) {
		folders[destination].AppIDs = append(folders[destination].AppIDs, appID)
	}

	mappings := s.Mappings()
	mappings[appID] = toFolderID

	if err := s.persistFolders(folders); err != nil {
		return err
	}
	return s.persistMappings(mappings)
}

// RemoveApp drops the application from whichever folder holds it and deletes
// its mapping entry. Unknown ids are a no-op.
func (s *Store) RemoveApp(appID string) error {
	folders := s.LoadFolders()
	mappings := s.Mappings()

	changed := false
	for i := range folders {
		before := len(folders[i].AppIDs)
		folders[i].AppIDs = removeID(folders[i].AppIDs, appID)
		if len(folders[i].AppIDs) != before {
			changed = true
		}
	}
	if _, mapped := mappings[appID]; mapped {
		delete(mappings, appID)
		changed = true
	}
	if !changed {
		return nil
	}

	if err := s.persistFolders(folders); err != nil {
		return err
	}
	return s.persistMappings(mappings)
}

// persistFolders writes the folder collection and refreshes the redundant
// settings cache in the same logical transaction.
func (s *Store) persistFolders(folders []Folder) error {
	data, err := json.Marshal(folders)
	if err != nil {
		return errors.NewInternal(err)
	}
	if err := s.backend.Set(keyFolders, data); err != nil {
		return errors.NewStorageWrite("folders", err)
	}
	s.refreshSettings(folders, nil)
	return nil
}

func removeID(ids []string, id string) []string {
	result := ids[:0]
	for _, existing := range ids {
		if existing != id {
			result = append(result, existing)
		}
	}
	return result
}

func sortByPosition(folders []Folder) {
	sort.SliceStable(folders, func(i, j int) bool {
		return folders[i].Position < folders[j].Position
	})
}

// renumber assigns dense positions 0..N-1 preserving the current order.
func renumber(folders []Folder) {
	sortByPosition(folders)
	for i := range folders {
		folders[i].Position = i
	}
}

// newFolderID generates a time-based folder id.
func newFolderID() string {
	id := ulid.MustNew(ulid.Timestamp(time.Now()), ulid.Monotonic(rand.Reader, 0))
	return "folder_" + strings.ToLower(id.String())
}
