package store

import (
	"log/slog"

	"github.com/launchmat/launchmat/internal/bundle"
)

// AutoCategorizeNewApps files every not-yet-mapped application into the
// folder matching its category label, falling back to the catch-all folder
// when the label is unmapped or the target folder no longer exists. Mapped
// applications are left untouched even if their folder was since deleted.
// Running it twice with the same application set is a no-op the second time.
func (s *Store) AutoCategorizeNewApps(apps []bundle.Application, folders []Folder) ([]Folder, error) {
	mappings := s.Mappings()

	byID := make(map[string]int, len(folders))
	for i := range folders {
		byID[folders[i].ID] = i
	}

	assigned := 0
	for _, app := range apps {
		if _, mapped := mappings[app.ID]; mapped {
			continue
		}

		target, ok := categoryFolder[app.Category]
		if !ok {
			target = CatchAllFolderID
		}
		index, exists := byID[target]
		if !exists {
			target = CatchAllFolderID
			index, exists = byID[target]
			if !exists {
				slog.Warn("catch-all folder missing, skipping assignment", "app", app.Name)
				continue
			}
		}

		if !folders[index].Contains(app.ID) {
			folders[index].AppIDs = append(folders[index].AppIDs, app.ID)
		}
		mappings[app.ID] = target
		assigned++
	}

	if assigned == 0 {
		return folders, nil
	}
	slog.Debug("auto-categorized new applications", "count", assigned)

	if err := s.persistFolders(folders); err != nil {
		return folders, err
	}
	if err := s.persistMappings(mappings); err != nil {
		return folders, err
	}
	return folders, nil
}
