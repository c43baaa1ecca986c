package session

import (
	"context"
	"strings"

	"github.com/launchmat/launchmat/internal/bundle"
	"github.com/launchmat/launchmat/internal/errors"
	"github.com/launchmat/launchmat/internal/launcher"
	"github.com/launchmat/launchmat/internal/store"
)

// Mutations forward to the store first; only after the durable write
// succeeds is the in-memory view patched. A failed write therefore leaves
// the view on its pre-mutation state and the error with the caller.

// CreateFolder creates a folder and appends it to the session view.
func (s *Session) CreateFolder(name, color, icon string) (*store.Folder, error) {
	folder, err := s.store.CreateFolder(name, color, icon)
	if err != nil {
		return nil, err
	}
	s.folders = append(s.folders, *folder)
	return folder, nil
}

// UpdateFolder renames or restyles a folder and patches the view.
func (s *Session) UpdateFolder(id string, update store.FolderUpdate) error {
	if err := s.store.UpdateFolder(id, update); err != nil {
		return err
	}
	for i := range s.folders {
		if s.folders[i].ID != id {
			continue
		}
		if update.Name != nil && strings.TrimSpace(*update.Name) != "" {
			s.folders[i].Name = strings.TrimSpace(*update.Name)
		}
		if update.Color != nil {
			s.folders[i].Color = *update.Color
		}
		if update.Icon != nil && *update.Icon != "" {
			s.folders[i].Icon = *update.Icon
		}
	}
	return nil
}

// DeleteFolder deletes a folder and mirrors the store's reassignment in the
// session view.
func (s *Session) DeleteFolder(id string) error {
	if err := s.store.DeleteFolder(id); err != nil {
		return err
	}

	var orphaned []string
	kept := s.folders[:0]
	for _, f := range s.folders {
		if f.ID == id {
			orphaned = f.AppIDs
			continue
		}
		kept = append(kept, f)
	}
	s.folders = kept
	for i := range s.folders {
		s.folders[i].Position = i
		if s.folders[i].ID == store.CatchAllFolderID {
			for _, appID := range orphaned {
				if !s.folders[i].Contains(appID) {
					s.folders[i].AppIDs = append(s.folders[i].AppIDs, appID)
				}
			}
		}
	}
	if s.openFolderID == id {
		s.openFolderID = ""
	}
	return nil
}

// ReorderFolders applies a complete new ordering.
func (s *Session) ReorderFolders(orderedIDs []string) error {
	if err := s.store.ReorderFolders(orderedIDs); err != nil {
		return err
	}
	position := make(map[string]int, len(orderedIDs))
	for i, id := range orderedIDs {
		position[id] = i
	}
	reordered := make([]store.Folder, len(s.folders))
	for _, f := range s.folders {
		f.Position = position[f.ID]
		reordered[f.Position] = f
	}
	s.folders = reordered
	return nil
}

// MoveApp moves an application to a folder. The source folder is derived
// from the mapping table, so callers only name the destination.
func (s *Session) MoveApp(appID, toFolderID string) error {
	from := s.store.Mappings()[appID]
	if err := s.store.MoveAppToFolder(appID, from, toFolderID); err != nil {
		return err
	}
	for i := range s.folders {
		switch s.folders[i].ID {
		case from:
			s.folders[i].AppIDs = removeID(s.folders[i].AppIDs, appID)
		case toFolderID:
			if !s.folders[i].Contains(appID) {
				s.folders[i].AppIDs = append(s.folders[i].AppIDs, appID)
			}
		}
	}
	return nil
}

// RemoveApp removes an application from the organizer.
func (s *Session) RemoveApp(appID string) error {
	if err := s.store.RemoveApp(appID); err != nil {
		return err
	}
	for i := range s.folders {
		s.folders[i].AppIDs = removeID(s.folders[i].AppIDs, appID)
	}
	return nil
}

// Launch opens an application by id.
func (s *Session) Launch(ctx context.Context, appID string) error {
	app, err := s.lookup(appID)
	if err != nil {
		return err
	}
	return launcher.Launch(ctx, app)
}

// Reveal shows an application in the file browser.
func (s *Session) Reveal(ctx context.Context, appID string) error {
	app, err := s.lookup(appID)
	if err != nil {
		return err
	}
	return launcher.Reveal(ctx, app)
}

// ShowInfo opens the information window for an application.
func (s *Session) ShowInfo(ctx context.Context, appID string) error {
	app, err := s.lookup(appID)
	if err != nil {
		return err
	}
	return launcher.ShowInfo(ctx, app)
}

func (s *Session) lookup(appID string) (bundle.Application, error) {
	app, ok := s.Application(appID)
	if !ok {
		return bundle.Application{}, errors.NewNotFound(appID)
	}
	return app, nil
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
