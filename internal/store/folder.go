package store

import (
	"time"

	"github.com/launchmat/launchmat/internal/bundle"
)

// Folder is a user-organized group of applications.
type Folder struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Color     string     `json:"color"`
	Icon      string     `json:"icon"`
	AppIDs    []string   `json:"application_ids"`
	Position  int        `json:"position"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// Contains reports whether the folder holds the given application id.
func (f Folder) Contains(appID string) bool {
	for _, id := range f.AppIDs {
		if id == appID {
			return true
		}
	}
	return false
}

// Well-known folder ids. System-default folders use fixed ids so the
// category → folder table survives renames.
const (
	FolderProductivity  = "folder_productivity"
	FolderDevelopment   = "folder_development"
	FolderGraphics      = "folder_graphics"
	FolderEntertainment = "folder_entertainment"
	FolderUtilities     = "folder_utilities"
	FolderGames         = "folder_games"
	FolderCommunication = "folder_communication"

	// CatchAllFolderID receives applications with no better category match
	// and the contents of deleted folders. It cannot be deleted.
	CatchAllFolderID = "folder_other"
)

// Palette is the fixed set of folder colors.
var Palette = []string{"blue", "green", "purple", "pink", "orange", "red", "teal", "gray"}

// ValidColor reports whether color is in the palette.
func ValidColor(color string) bool {
	for _, c := range Palette {
		if c == color {
			return true
		}
	}
	return false
}

// defaultFolders returns the eight seed folders in their fixed declared
// order; positions are assigned 0..7 by the seeding path.
func defaultFolders(now time.Time) []Folder {
	seeds := []struct {
		id, name, color, icon string
	}{
		{FolderProductivity, bundle.CategoryProductivity, "blue", "briefcase"},
		{FolderDevelopment, bundle.CategoryDevelopment, "green", "hammer"},
		{FolderGraphics, bundle.CategoryGraphics, "purple", "paintbrush"},
		{FolderEntertainment, bundle.CategoryEntertainment, "pink", "tv"},
		{FolderUtilities, bundle.CategoryUtilities, "orange", "wrench.and.screwdriver"},
		{FolderGames, bundle.CategoryGames, "red", "gamecontroller"},
		{FolderCommunication, bundle.CategoryCommunication, "teal", "message"},
		{CatchAllFolderID, bundle.CategoryOther, "gray", "square.grid.2x2"},
	}

	folders := make([]Folder, len(seeds))
	for i, s := range seeds {
		folders[i] = Folder{
			ID:        s.id,
			Name:      s.name,
			Color:     s.color,
			Icon:      s.icon,
			AppIDs:    []string{},
			Position:  i,
			CreatedAt: now,
		}
	}
	return folders
}

// categoryFolder maps a category label from discovery to its default folder.
var categoryFolder = map[string]string{
	bundle.CategoryProductivity:  FolderProductivity,
	bundle.CategoryDevelopment:   FolderDevelopment,
	bundle.CategoryGraphics:      FolderGraphics,
	bundle.CategoryEntertainment: FolderEntertainment,
	bundle.CategoryUtilities:     FolderUtilities,
	bundle.CategoryGames:         FolderGames,
	bundle.CategoryCommunication: FolderCommunication,
	bundle.CategoryOther:         CatchAllFolderID,
}
