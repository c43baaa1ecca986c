package store

import (
	"encoding/json"
	"testing"

	"github.com/launchmat/launchmat/internal/errors"
)

func TestExportImport_RoundTrip(t *testing.T) {
	s, _ := newTestStore()
	s.LoadFolders()
	if err := s.MoveAppToFolder("app1", "", FolderDevelopment); err != nil {
		t.Fatal(err)
	}

	snapshot := s.ExportSettings()
	if snapshot.Version != SchemaVersion {
		t.Errorf("Version = %d, want %d", snapshot.Version, SchemaVersion)
	}
	if snapshot.ExportedAt.IsZero() {
		t.Error("ExportedAt should be stamped")
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		t.Fatal(err)
	}

	// Wipe, then restore
	if err := s.ClearAllData(); err != nil {
		t.Fatal(err)
	}
	if err := s.ImportSettings(data); err != nil {
		t.Fatalf("ImportSettings failed: %v", err)
	}

	folders := s.LoadFolders()
	if len(folders) != 8 {
		t.Fatalf("len(folders) = %d, want 8 restored", len(folders))
	}
	found := false
	for _, f := range folders {
		if f.ID == FolderDevelopment && f.Contains("app1") {
			found = true
		}
	}
	if !found {
		t.Error("app1 membership should survive the round trip")
	}
	if got := s.Mappings()["app1"]; got != FolderDevelopment {
		t.Errorf("mapping[app1] = %q, want %q", got, FolderDevelopment)
	}
}

func TestImport_PartialSnapshot(t *testing.T) {
	s, _ := newTestStore()
	s.LoadFolders()

	// Mappings-only snapshot leaves folders alone
	if err := s.ImportSettings([]byte(`{"mappings": {"app9": "folder_games"}}`)); err != nil {
		t.Fatalf("ImportSettings failed: %v", err)
	}

	if got := s.Mappings()["app9"]; got != "folder_games" {
		t.Errorf("mapping[app9] = %q, want folder_games", got)
	}
	if len(s.LoadFolders()) != 8 {
		t.Error("folders should be untouched by a mappings-only snapshot")
	}
}

func TestImport_Malformed(t *testing.T) {
	s, _ := newTestStore()
	s.LoadFolders()
	if err := s.MoveAppToFolder("app1", "", FolderGames); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		data string
	}{
		{"not json", `{broken`},
		{"no sections", `{"exportedAt": "2024-01-01T00:00:00Z", "version": 1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.ImportSettings([]byte(tt.data))
			if !errors.Is(err, errors.ErrImportFormat) {
				t.Errorf("err = %v, want IMPORT_FORMAT", err)
			}
		})
	}

	// Existing state untouched after the rejected imports
	if got := s.Mappings()["app1"]; got != FolderGames {
		t.Errorf("mapping[app1] = %q, existing state should be untouched", got)
	}
}

func TestClearAllData_Reseeds(t *testing.T) {
	s, backend := newTestStore()
	s.LoadFolders()
	if err := s.MoveAppToFolder("app1", "", FolderGames); err != nil {
		t.Fatal(err)
	}
	if err := s.ClearAllData(); err != nil {
		t.Fatalf("ClearAllData failed: %v", err)
	}

	for _, key := range []string{"launchmat.folders", "launchmat.mappings", "launchmat.settings", "launchmat.lastScan"} {
		if _, ok, _ := backend.Get(key); ok {
			t.Errorf("key %s should be deleted", key)
		}
	}

	// Next load reseeds the defaults, empty again
	folders := s.LoadFolders()
	if len(folders) != 8 {
		t.Fatalf("len(folders) = %d, want reseeded 8", len(folders))
	}
	for _, f := range folders {
		if len(f.AppIDs) != 0 {
			t.Errorf("%s should be empty after reset", f.ID)
		}
	}
	if len(s.Mappings()) != 0 {
		t.Error("mapping table should be empty after reset")
	}
}
