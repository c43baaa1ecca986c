package mcp

import "github.com/mark3labs/mcp-go/mcp"

// Tool definitions. Parameter names match the request structs in handlers.go.

var folderListToolDef = mcp.NewTool("folder_list",
	mcp.WithDescription("List all folders in position order, including their application ids."),
)

var folderCreateToolDef = mcp.NewTool("folder_create",
	mcp.WithDescription("Create an empty folder placed after the existing ones."),
	mcp.WithString("name", mcp.Required(), mcp.Description("Folder display name")),
	mcp.WithString("color", mcp.Description("Palette color (blue, green, purple, pink, orange, red, teal, gray); defaults to blue")),
	mcp.WithString("icon", mcp.Description("Symbol name for the folder icon; defaults to folder")),
)

var folderUpdateToolDef = mcp.NewTool("folder_update",
	mcp.WithDescription("Rename or restyle a folder. Omitted fields are left unchanged."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Folder id")),
	mcp.WithString("name", mcp.Description("New display name")),
	mcp.WithString("color", mcp.Description("New palette color")),
	mcp.WithString("icon", mcp.Description("New symbol name")),
)

var folderDeleteToolDef = mcp.NewTool("folder_delete",
	mcp.WithDescription("Delete a folder; its applications move to the catch-all folder. The catch-all folder itself cannot be deleted."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Folder id")),
)

var folderReorderToolDef = mcp.NewTool("folder_reorder",
	mcp.WithDescription("Reorder folders. ordered_ids must name every folder exactly once."),
	mcp.WithArray("ordered_ids", mcp.Required(),
		mcp.Description("Complete folder id list in the desired order"),
		mcp.Items(map[string]any{"type": "string"}),
	),
)

var appListToolDef = mcp.NewTool("app_list",
	mcp.WithDescription("List discovered applications, optionally restricted to one folder or filtered by name."),
	mcp.WithString("folder_id", mcp.Description("Only applications in this folder")),
	mcp.WithString("query", mcp.Description("Case-insensitive name filter")),
)

var appMoveToolDef = mcp.NewTool("app_move",
	mcp.WithDescription("Move an application into a folder, removing it from its current one."),
	mcp.WithString("app_id", mcp.Required(), mcp.Description("Application id")),
	mcp.WithString("folder_id", mcp.Required(), mcp.Description("Destination folder id")),
)

var appRemoveToolDef = mcp.NewTool("app_remove",
	mcp.WithDescription("Remove an application from the organizer. The bundle on disk is untouched."),
	mcp.WithString("app_id", mcp.Required(), mcp.Description("Application id")),
)

var appLaunchToolDef = mcp.NewTool("app_launch",
	mcp.WithDescription("Launch an application."),
	mcp.WithString("app_id", mcp.Required(), mcp.Description("Application id")),
)

var appRevealToolDef = mcp.NewTool("app_reveal",
	mcp.WithDescription("Reveal an application bundle in the file browser."),
	mcp.WithString("app_id", mcp.Required(), mcp.Description("Application id")),
)

var settingsExportToolDef = mcp.NewTool("settings_export",
	mcp.WithDescription("Export folders, mappings, and settings as a JSON snapshot."),
)

var settingsImportToolDef = mcp.NewTool("settings_import",
	mcp.WithDescription("Import a previously exported JSON snapshot, replacing the sections it contains."),
	mcp.WithString("data", mcp.Required(), mcp.Description("Snapshot JSON text")),
)
