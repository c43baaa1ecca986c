// Package mcp exposes the organizer's operations as MCP tools over stdio.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/launchmat/launchmat/internal/config"
	"github.com/launchmat/launchmat/internal/session"
	"github.com/launchmat/launchmat/internal/store"
)

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"folder_list": {
		def:     folderListToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleFolderList },
	},
	"folder_create": {
		def:     folderCreateToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleFolderCreate },
	},
	"folder_update": {
		def:     folderUpdateToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleFolderUpdate },
	},
	"folder_delete": {
		def:     folderDeleteToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleFolderDelete },
	},
	"folder_reorder": {
		def:     folderReorderToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleFolderReorder },
	},
	"app_list": {
		def:     appListToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleAppList },
	},
	"app_move": {
		def:     appMoveToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleAppMove },
	},
	"app_remove": {
		def:     appRemoveToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleAppRemove },
	},
	"app_launch": {
		def:     appLaunchToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleAppLaunch },
	},
	"app_reveal": {
		def:     appRevealToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleAppReveal },
	},
	"settings_export": {
		def:     settingsExportToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSettingsExport },
	},
	"settings_import": {
		def:     settingsImportToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSettingsImport },
	},
}

// AllToolNames returns a list of all valid tool names.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	return names
}

// ValidateDisabledTools returns a list of unknown tool names from the given list.
func ValidateDisabledTools(names []string) []string {
	unknown := make([]string, 0)
	for _, name := range names {
		if _, ok := toolRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// NewServer creates a new MCP server with Launchmat tools registered.
// Tools listed in cfg.DisabledTools are excluded from registration.
func NewServer(sess *session.Session, st *store.Store, cfg *config.Config, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"launchmat",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(sess, st)

	disabled := make(map[string]bool, len(cfg.DisabledTools))
	for _, name := range cfg.DisabledTools {
		disabled[name] = true
	}

	for name, entry := range toolRegistry {
		if disabled[name] {
			continue
		}
		s.AddTool(entry.def, entry.handler(h))
	}

	return s
}

// Run activates the session and starts the MCP server on stdio transport.
func Run(ctx context.Context, sess *session.Session, st *store.Store, cfg *config.Config, version string) error {
	if err := sess.Activate(ctx); err != nil {
		return err
	}
	s := NewServer(sess, st, cfg, version)
	return server.ServeStdio(s)
}
