package mcp

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/launchmat/launchmat/internal/bundle"
	"github.com/launchmat/launchmat/internal/errors"
	"github.com/launchmat/launchmat/internal/session"
	"github.com/launchmat/launchmat/internal/store"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	sess *session.Session
	st   *store.Store
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(sess *session.Session, st *store.Store) *Handlers {
	return &Handlers{sess: sess, st: st}
}

// Request types for each tool

// FolderCreateRequest represents the arguments for folder_create.
type FolderCreateRequest struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
	Icon  string `json:"icon,omitempty"`
}

// FolderUpdateRequest represents the arguments for folder_update.
type FolderUpdateRequest struct {
	ID    string  `json:"id"`
	Name  *string `json:"name,omitempty"`
	Color *string `json:"color,omitempty"`
	Icon  *string `json:"icon,omitempty"`
}

// FolderDeleteRequest represents the arguments for folder_delete.
type FolderDeleteRequest struct {
	ID string `json:"id"`
}

// FolderReorderRequest represents the arguments for folder_reorder.
type FolderReorderRequest struct {
	OrderedIDs []string `json:"ordered_ids"`
}

// AppListRequest represents the arguments for app_list.
type AppListRequest struct {
	FolderID string `json:"folder_id,omitempty"`
	Query    string `json:"query,omitempty"`
}

// AppMoveRequest represents the arguments for app_move.
type AppMoveRequest struct {
	AppID    string `json:"app_id"`
	FolderID string `json:"folder_id"`
}

// AppRequest carries the application id for single-app tools.
type AppRequest struct {
	AppID string `json:"app_id"`
}

// SettingsImportRequest represents the arguments for settings_import.
type SettingsImportRequest struct {
	Data string `json:"data"`
}

// Handler implementations

// HandleFolderList handles the folder_list tool call.
func (h *Handlers) HandleFolderList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return successResult(map[string]any{"folders": h.sess.Folders()})
}

// HandleFolderCreate handles the folder_create tool call.
func (h *Handlers) HandleFolderCreate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[FolderCreateRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	folder, err := h.sess.CreateFolder(input.Name, input.Color, input.Icon)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(map[string]any{"folder": folder})
}

// HandleFolderUpdate handles the folder_update tool call.
func (h *Handlers) HandleFolderUpdate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[FolderUpdateRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	if input.ID == "" {
		return errorResult(errors.NewInvalidRequest("id is required")), nil
	}

	update := store.FolderUpdate{
		Name:  input.Name,
		Color: input.Color,
		Icon:  input.Icon,
	}
	if err := h.sess.UpdateFolder(input.ID, update); err != nil {
		return errorResult(err), nil
	}
	return successResult(map[string]any{"updated": input.ID})
}

// HandleFolderDelete handles the folder_delete tool call.
func (h *Handlers) HandleFolderDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[FolderDeleteRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	if input.ID == "" {
		return errorResult(errors.NewInvalidRequest("id is required")), nil
	}

	if err := h.sess.DeleteFolder(input.ID); err != nil {
		return errorResult(err), nil
	}
	return successResult(map[string]any{"deleted": input.ID})
}

// HandleFolderReorder handles the folder_reorder tool call.
func (h *Handlers) HandleFolderReorder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[FolderReorderRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	if err := h.sess.ReorderFolders(input.OrderedIDs); err != nil {
		return errorResult(err), nil
	}
	return successResult(map[string]any{"folders": h.sess.Folders()})
}

// HandleAppList handles the app_list tool call.
func (h *Handlers) HandleAppList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[AppListRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	apps := h.sess.Applications()
	if input.FolderID != "" {
		found := false
		for _, f := range h.sess.Folders() {
			if f.ID != input.FolderID {
				continue
			}
			found = true
			inFolder := apps[:0:0]
			for _, app := range apps {
				if f.Contains(app.ID) {
					inFolder = append(inFolder, app)
				}
			}
			apps = inFolder
		}
		if !found {
			return errorResult(errors.NewNotFound(input.FolderID)), nil
		}
	}
	if input.Query != "" {
		apps = filterByName(apps, input.Query)
	}
	return successResult(map[string]any{"apps": apps, "count": len(apps)})
}

// HandleAppMove handles the app_move tool call.
func (h *Handlers) HandleAppMove(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[AppMoveRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	if err := h.sess.MoveApp(input.AppID, input.FolderID); err != nil {
		return errorResult(err), nil
	}
	return successResult(map[string]any{"moved": input.AppID, "folder": input.FolderID})
}

// HandleAppRemove handles the app_remove tool call.
func (h *Handlers) HandleAppRemove(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[AppRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	if input.AppID == "" {
		return errorResult(errors.NewInvalidRequest("app_id is required")), nil
	}

	if err := h.sess.RemoveApp(input.AppID); err != nil {
		return errorResult(err), nil
	}
	return successResult(map[string]any{"removed": input.AppID})
}

// HandleAppLaunch handles the app_launch tool call.
func (h *Handlers) HandleAppLaunch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[AppRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	if err := h.sess.Launch(ctx, input.AppID); err != nil {
		return errorResult(err), nil
	}
	return successResult(map[string]any{"launched": input.AppID})
}

// HandleAppReveal handles the app_reveal tool call.
func (h *Handlers) HandleAppReveal(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[AppRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	if err := h.sess.Reveal(ctx, input.AppID); err != nil {
		return errorResult(err), nil
	}
	return successResult(map[string]any{"revealed": input.AppID})
}

// HandleSettingsExport handles the settings_export tool call.
func (h *Handlers) HandleSettingsExport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return successResult(h.st.ExportSettings())
}

// HandleSettingsImport handles the settings_import tool call.
// A successful import re-activates the session so the view reflects the
// restored folders.
func (h *Handlers) HandleSettingsImport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SettingsImportRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	if err := h.st.ImportSettings([]byte(input.Data)); err != nil {
		return errorResult(err), nil
	}
	if err := h.sess.Activate(ctx); err != nil {
		return errorResult(err), nil
	}
	return successResult(map[string]any{"imported": true, "folders": len(h.sess.Folders())})
}

// filterByName keeps applications whose name contains query,
// case-insensitively.
func filterByName(apps []bundle.Application, query string) []bundle.Application {
	query = strings.ToLower(strings.TrimSpace(query))
	matched := apps[:0:0]
	for _, app := range apps {
		if strings.Contains(strings.ToLower(app.Name), query) {
			matched = append(matched, app)
		}
	}
	return matched
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Internal error details are not exposed to avoid leaking file paths.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if lmErr, ok := err.(*errors.LaunchmatError); ok {
		errorObj := map[string]any{
			"code":    lmErr.Code,
			"message": lmErr.Message,
			"status":  lmErr.Status,
		}
		if lmErr.Code != errors.ErrInternal && lmErr.Details != nil {
			errorObj["details"] = lmErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
