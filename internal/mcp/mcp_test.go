package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/launchmat/launchmat/internal/bundle"
	"github.com/launchmat/launchmat/internal/config"
	"github.com/launchmat/launchmat/internal/kvstore"
	"github.com/launchmat/launchmat/internal/session"
	"github.com/launchmat/launchmat/internal/store"
)

// testSetup returns handlers over an activated session with a fake
// discovery pass and an in-memory backend.
func testSetup(t *testing.T) (*Handlers, *store.Store) {
	t.Helper()

	st := store.New(kvstore.NewMemory())
	cfg := config.DefaultConfig()
	sess := session.NewWithScan(st, cfg, func([]string) []bundle.Application {
		return []bundle.Application{
			{ID: "app_safari", Name: "Safari", BundleID: "com.apple.safari", Path: "/Applications/Safari.app", Category: bundle.CategoryProductivity},
			{ID: "app_xcode", Name: "Xcode", BundleID: "com.apple.dt.xcode", Path: "/Applications/Xcode.app", Category: bundle.CategoryDevelopment},
		}
	})
	if err := sess.Activate(context.Background()); err != nil {
		t.Fatalf("failed to activate session: %v", err)
	}
	return NewHandlers(sess, st), st
}

// makeRequest creates a CallToolRequest with the given arguments.
func makeRequest(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

func decodeResult(t *testing.T, result *mcp.CallToolResult) map[string]any {
	t.Helper()

	if len(result.Content) == 0 {
		t.Fatal("no content in result")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("content is not TextContent")
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(text.Text), &payload); err != nil {
		t.Fatalf("failed to unmarshal result payload: %v", err)
	}
	return payload
}

func assertErrorCode(t *testing.T, result *mcp.CallToolResult, expectedCode string) {
	t.Helper()

	payload := decodeResult(t, result)
	errorObj, ok := payload["error"].(map[string]any)
	if !ok {
		t.Fatal("no error object in payload")
	}
	if errorObj["code"] != expectedCode {
		t.Errorf("error code = %v, want %s", errorObj["code"], expectedCode)
	}
}

func TestHandleFolderList(t *testing.T) {
	h, _ := testSetup(t)

	result, err := h.HandleFolderList(context.Background(), makeRequest(nil))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if result.IsError {
		t.Fatal("expected success result")
	}

	payload := decodeResult(t, result)
	folders, ok := payload["folders"].([]any)
	if !ok || len(folders) != 8 {
		t.Errorf("folders = %v, want the 8 defaults", payload["folders"])
	}
}

func TestHandleFolderCreate(t *testing.T) {
	h, _ := testSetup(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		args      map[string]any
		wantError bool
		errorCode string
	}{
		{
			name:      "create with defaults",
			args:      map[string]any{"name": "Work"},
			wantError: false,
		},
		{
			name:      "create with styling",
			args:      map[string]any{"name": "Media", "color": "purple", "icon": "film"},
			wantError: false,
		},
		{
			name:      "empty name",
			args:      map[string]any{"name": "   "},
			wantError: true,
			errorCode: "INVALID_REQUEST",
		},
		{
			name:      "invalid color",
			args:      map[string]any{"name": "Bad", "color": "chartreuse"},
			wantError: true,
			errorCode: "INVALID_REQUEST",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := h.HandleFolderCreate(ctx, makeRequest(tt.args))
			if err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if tt.wantError {
				if !result.IsError {
					t.Error("expected error result, got success")
				}
				if tt.errorCode != "" {
					assertErrorCode(t, result, tt.errorCode)
				}
			} else if result.IsError {
				t.Error("expected success, got error result")
			}
		})
	}
}

func TestHandleFolderDelete(t *testing.T) {
	h, _ := testSetup(t)
	ctx := context.Background()

	result, err := h.HandleFolderDelete(ctx, makeRequest(map[string]any{"id": store.FolderGames}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if result.IsError {
		t.Fatal("expected success result")
	}

	result, err = h.HandleFolderDelete(ctx, makeRequest(map[string]any{"id": store.CatchAllFolderID}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if !result.IsError {
		t.Fatal("deleting the catch-all folder should fail")
	}
	assertErrorCode(t, result, "CATCHALL_PROTECTED")

	result, err = h.HandleFolderDelete(ctx, makeRequest(map[string]any{}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	assertErrorCode(t, result, "INVALID_REQUEST")
}

func TestHandleFolderReorder(t *testing.T) {
	h, _ := testSetup(t)
	ctx := context.Background()

	result, err := h.HandleFolderReorder(ctx, makeRequest(map[string]any{
		"ordered_ids": []any{store.FolderGames},
	}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if !result.IsError {
		t.Fatal("partial reorder should fail")
	}
	assertErrorCode(t, result, "INVALID_REQUEST")
}

func TestHandleAppList(t *testing.T) {
	h, _ := testSetup(t)
	ctx := context.Background()

	result, err := h.HandleAppList(ctx, makeRequest(nil))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	payload := decodeResult(t, result)
	if payload["count"] != float64(2) {
		t.Errorf("count = %v, want 2", payload["count"])
	}

	result, err = h.HandleAppList(ctx, makeRequest(map[string]any{"folder_id": store.FolderDevelopment}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	payload = decodeResult(t, result)
	if payload["count"] != float64(1) {
		t.Errorf("folder-scoped count = %v, want 1", payload["count"])
	}

	result, err = h.HandleAppList(ctx, makeRequest(map[string]any{"query": "saf"}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	payload = decodeResult(t, result)
	if payload["count"] != float64(1) {
		t.Errorf("query count = %v, want 1", payload["count"])
	}

	result, err = h.HandleAppList(ctx, makeRequest(map[string]any{"folder_id": "folder_missing"}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	assertErrorCode(t, result, "NOT_FOUND")
}

func TestHandleAppMoveAndRemove(t *testing.T) {
	h, st := testSetup(t)
	ctx := context.Background()

	result, err := h.HandleAppMove(ctx, makeRequest(map[string]any{
		"app_id":    "app_safari",
		"folder_id": store.FolderUtilities,
	}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if result.IsError {
		t.Fatal("expected success result")
	}
	if st.Mappings()["app_safari"] != store.FolderUtilities {
		t.Error("mapping not updated after move")
	}

	result, err = h.HandleAppRemove(ctx, makeRequest(map[string]any{"app_id": "app_safari"}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if result.IsError {
		t.Fatal("expected success result")
	}
	if _, mapped := st.Mappings()["app_safari"]; mapped {
		t.Error("mapping still present after removal")
	}
}

func TestHandleAppLaunchUnknown(t *testing.T) {
	h, _ := testSetup(t)

	result, err := h.HandleAppLaunch(context.Background(), makeRequest(map[string]any{"app_id": "app_missing"}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if !result.IsError {
		t.Fatal("launching an unknown app should fail")
	}
	assertErrorCode(t, result, "NOT_FOUND")
}

func TestHandleSettingsRoundTrip(t *testing.T) {
	h, st := testSetup(t)
	ctx := context.Background()

	if _, err := st.CreateFolder("Keepsake", "teal", ""); err != nil {
		t.Fatalf("seeding folder: %v", err)
	}

	result, err := h.HandleSettingsExport(ctx, makeRequest(nil))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if result.IsError {
		t.Fatal("expected success result")
	}
	text := result.Content[0].(mcp.TextContent).Text

	if err := st.ClearAllData(); err != nil {
		t.Fatalf("clearing store: %v", err)
	}

	result, err = h.HandleSettingsImport(ctx, makeRequest(map[string]any{"data": text}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if result.IsError {
		t.Fatal("expected success result")
	}

	found := false
	for _, f := range st.LoadFolders() {
		if f.Name == "Keepsake" {
			found = true
		}
	}
	if !found {
		t.Error("imported snapshot missing the created folder")
	}

	result, err = h.HandleSettingsImport(ctx, makeRequest(map[string]any{"data": "not json"}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	assertErrorCode(t, result, "IMPORT_FORMAT")
}

func TestValidateDisabledTools(t *testing.T) {
	unknown := ValidateDisabledTools([]string{"folder_list", "bogus_tool"})
	if len(unknown) != 1 || unknown[0] != "bogus_tool" {
		t.Errorf("ValidateDisabledTools() = %v, want [bogus_tool]", unknown)
	}
}

func TestAllToolNames(t *testing.T) {
	names := AllToolNames()
	if len(names) != len(toolRegistry) {
		t.Errorf("AllToolNames() len = %d, want %d", len(names), len(toolRegistry))
	}
}
